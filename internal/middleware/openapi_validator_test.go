package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `openapi: 3.0.3
info:
  title: test
  version: 1.0.0
servers:
  - url: https://blog.test
paths:
  /api/auth/login:
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [identifier, password]
              properties:
                identifier:
                  type: string
                  minLength: 1
                password:
                  type: string
      responses:
        '200':
          description: ok
  /api/posts:
    get:
      parameters:
        - name: page
          in: query
          required: true
          schema:
            type: integer
            minimum: 1
      responses:
        '200':
          description: ok
`

func writeTestSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpec), 0o600))
	return path
}

func newValidator(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	cfg := DefaultOpenAPIValidatorConfig()
	cfg.Enabled = true
	cfg.SpecPath = writeTestSpec(t)
	mw, err := OpenAPIValidator(cfg)
	require.NoError(t, err)
	return mw
}

func TestOpenAPIValidator_Disabled(t *testing.T) {
	mw, err := OpenAPIValidator(OpenAPIValidatorConfig{Enabled: false, SpecPath: "does-not-exist.yaml"})
	require.NoError(t, err)

	called := false
	w := httptest.NewRecorder()
	mw(okHandler(&called)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	assert.True(t, called)
}

func TestOpenAPIValidator_MissingSpec(t *testing.T) {
	_, err := OpenAPIValidator(OpenAPIValidatorConfig{Enabled: true, SpecPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestOpenAPIValidator_Requests(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantCalled bool
	}{
		{name: "valid_body", method: http.MethodPost, target: "/api/auth/login", body: `{"identifier":"ada","password":"secret"}`, wantCalled: true},
		{name: "missing_field", method: http.MethodPost, target: "/api/auth/login", body: `{"identifier":"ada"}`},
		{name: "valid_query", method: http.MethodGet, target: "/api/posts?page=2", wantCalled: true},
		{name: "missing_query", method: http.MethodGet, target: "/api/posts"},
		{name: "undocumented_route", method: http.MethodGet, target: "/api/series/abc", wantCalled: true},
		{name: "skipped_path", method: http.MethodGet, target: "/health", wantCalled: true},
	}

	mw := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			called := false
			w := httptest.NewRecorder()

			mw(okHandler(&called)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"message":"Request does not match the API schema"}`, w.Body.String())
			}
		})
	}
}

func TestOpenAPIValidator_BodyStillReadable(t *testing.T) {
	mw := newValidator(t)
	var got string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		got = buf.String()
	}))

	payload := `{"identifier":"ada","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, payload, got)
}

func TestLoadOpenAPIRouter_RepositoryDocument(t *testing.T) {
	router, err := LoadOpenAPIRouter(filepath.Join("..", "..", "api", "openapi.yaml"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/0b7e0c0e-0000-4000-8000-000000000001", nil)
	route, params, err := router.FindRoute(req)
	require.NoError(t, err)
	assert.Equal(t, "/api/posts/{postId}", route.Path)
	assert.Equal(t, "0b7e0c0e-0000-4000-8000-000000000001", params["postId"])
}
