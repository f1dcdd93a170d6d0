package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request with body encoded as JSON.
func NewJSONRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// WithCookie adds a cookie to req and returns it.
func WithCookie(req *http.Request, name, value string) *http.Request {
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	return req
}

// DecodeJSON decodes the recorded response body into T.
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// AssertMessage checks the status code and the {"message": ...} body.
func AssertMessage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	assert.Equal(t, status, w.Code, "body: %s", w.Body.String())
	body := DecodeJSON[map[string]any](t, w)
	assert.Equal(t, message, body["message"])
}

// FindCookie returns the named Set-Cookie of the response, or nil.
func FindCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
