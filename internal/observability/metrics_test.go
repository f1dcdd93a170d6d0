package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/posts", "200"))
	HTTPRequestDuration.WithLabelValues("GET", "/api/posts", "200").Observe(0.05)
	HTTPRequestsTotal.WithLabelValues("GET", "/api/posts", "200").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/posts", "200")))
}

func TestSessionMetrics(t *testing.T) {
	t.Run("validations_are_labelled_by_result", func(t *testing.T) {
		before := testutil.ToFloat64(SessionValidations.WithLabelValues("cache_hit"))
		SessionValidations.WithLabelValues("cache_hit").Inc()
		assert.Equal(t, before+1, testutil.ToFloat64(SessionValidations.WithLabelValues("cache_hit")))
	})

	t.Run("swept_counter_adds", func(t *testing.T) {
		before := testutil.ToFloat64(SessionsSwept)
		SessionsSwept.Add(3)
		assert.Equal(t, before+3, testutil.ToFloat64(SessionsSwept))
	})
}

func TestValidationFailures(t *testing.T) {
	before := testutil.ToFloat64(ValidationFailures.WithLabelValues("body"))
	ValidationFailures.WithLabelValues("body").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationFailures.WithLabelValues("body")))
}
