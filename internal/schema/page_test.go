package schema

import (
	"testing"

	"blog-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageQuery(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]any
		want  domain.Page
		field string
	}{
		{name: "default_limit", query: map[string]any{"page": "1"}, want: domain.Page{Offset: 0, Limit: 20}},
		{name: "explicit", query: map[string]any{"page": "3", "limit": "10"}, want: domain.Page{Offset: 20, Limit: 10}},
		{name: "bounds", query: map[string]any{"page": "2", "limit": "100"}, want: domain.Page{Offset: 100, Limit: 100}},
		{name: "missing_page", query: map[string]any{}, field: "page"},
		{name: "zero_page", query: map[string]any{"page": "0"}, field: "page"},
		{name: "not_integer", query: map[string]any{"page": "one"}, field: "page"},
		{name: "repeated_page", query: map[string]any{"page": []string{"1", "2"}}, field: "page"},
		{name: "limit_too_small", query: map[string]any{"page": "1", "limit": "0"}, field: "limit"},
		{name: "limit_too_large", query: map[string]any{"page": "1", "limit": "105"}, field: "limit"},
		{name: "offset_overflow", query: map[string]any{"page": "9223372036854775807", "limit": "100"}, field: "page"},
		{name: "offset_overflow_default_limit", query: map[string]any{"page": "922337203685477581"}, field: "page"},
		{name: "page_beyond_int", query: map[string]any{"page": "9223372036854775808"}, field: "page"},
		{name: "limit_not_multiple", query: map[string]any{"page": "1", "limit": "12"}, field: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := PageQuery(tt.query)
			if tt.field != "" {
				require.Len(t, res.Issues, 1)
				assert.Equal(t, tt.field, res.Issues[0].Field)
				return
			}
			require.True(t, res.OK(), "%v", res.Issues)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}
