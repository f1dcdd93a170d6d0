package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-api/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/metrics-test/posts/{postId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := observability.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/posts/{postId}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics-test/posts/"+id, nil))
		require.Equal(t, http.StatusTeapot, w.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetrics_DefaultStatusAndUnmatched(t *testing.T) {
	counter := observability.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "200")
	before := testutil.ToFloat64(counter)

	h := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestResponseWriter_HijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
