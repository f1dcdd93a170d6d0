package postgres

import (
	"errors"
	"fmt"
	"testing"

	"blog-api/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "matching_constraint",
			err:        &pq.Error{Code: "23505", Constraint: "users_username_key"},
			constraint: "users_username_key",
			want:       true,
		},
		{
			name:       "any_constraint",
			err:        &pq.Error{Code: "23505", Constraint: "users_email_key"},
			constraint: "",
			want:       true,
		},
		{
			name:       "different_constraint",
			err:        &pq.Error{Code: "23505", Constraint: "users_email_key"},
			constraint: "users_username_key",
			want:       false,
		},
		{
			name:       "foreign_key_violation",
			err:        &pq.Error{Code: "23503", Constraint: "users_username_key"},
			constraint: "users_username_key",
			want:       false,
		},
		{
			name:       "wrapped_pq_error",
			err:        fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}),
			constraint: "",
			want:       true,
		},
		{
			name: "plain_error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestUniqueViolationField(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{
			name:      "from_constraint_and_table",
			err:       &pq.Error{Code: "23505", Table: "users", Constraint: "users_email_key"},
			wantField: "email",
			wantOK:    true,
		},
		{
			name:      "from_constraint_without_table",
			err:       &pq.Error{Code: "23505", Constraint: "users_username_key"},
			wantField: "username",
			wantOK:    true,
		},
		{
			name:      "from_detail",
			err:       &pq.Error{Code: "23505", Constraint: "idx_custom", Detail: "Key (email)=(a@b.co) already exists."},
			wantField: "email",
			wantOK:    true,
		},
		{
			name:      "composite_key_uses_first_column",
			err:       &pq.Error{Code: "23505", Detail: "Key (series_id, post_id)=(1, 2) already exists."},
			wantField: "series_id",
			wantOK:    true,
		},
		{
			name:      "unknown_field",
			err:       &pq.Error{Code: "23505"},
			wantField: "",
			wantOK:    true,
		},
		{
			name:   "not_unique_violation",
			err:    errors.New("boom"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := uniqueViolationField(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestMapUserConflict(t *testing.T) {
	t.Run("email", func(t *testing.T) {
		err := mapUserConflict(&pq.Error{Code: "23505", Table: "users", Constraint: "users_email_key"})

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "email", conflict.Field)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("username", func(t *testing.T) {
		err := mapUserConflict(&pq.Error{Code: "23505", Table: "users", Constraint: "users_username_key"})
		assert.ErrorIs(t, err, domain.ErrUsernameExists)
		assert.Equal(t, "username already exists", err.Error())
	})

	t.Run("other_error_passes_through", func(t *testing.T) {
		orig := errors.New("boom")
		assert.Same(t, orig, mapUserConflict(orig))
	})
}
