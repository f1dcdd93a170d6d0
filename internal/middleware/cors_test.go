package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS_AllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		shouldAllow    bool
	}{
		{
			name:           "allowed origin",
			allowedOrigins: []string{"http://localhost:3000", "https://blog.test"},
			requestOrigin:  "http://localhost:3000",
			shouldAllow:    true,
		},
		{
			name:           "allowed second origin",
			allowedOrigins: []string{"http://localhost:3000", "https://blog.test"},
			requestOrigin:  "https://blog.test",
			shouldAllow:    true,
		},
		{
			name:           "wildcard",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://anything.test",
			shouldAllow:    true,
		},
		{
			name:           "disallowed origin",
			allowedOrigins: []string{"http://localhost:3000"},
			requestOrigin:  "http://malicious.com",
			shouldAllow:    false,
		},
		{
			name:           "no origin",
			allowedOrigins: []string{"*"},
			requestOrigin:  "",
			shouldAllow:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			w := httptest.NewRecorder()

			CORS(tt.allowedOrigins)(okHandler(&called)).ServeHTTP(w, req)

			assert.True(t, called)
			if tt.shouldAllow {
				assert.Equal(t, tt.requestOrigin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "https://blog.test")
	w := httptest.NewRecorder()

	CORS([]string{"https://blog.test"})(okHandler(&called)).ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
