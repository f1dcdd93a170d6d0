package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"blog-api/internal/httpx"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Health returns basic health check
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status    string         `json:"status"`
	LatencyMs int64          `json:"latency_ms"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// HealthCheck probes one dependency. Check may return metadata to report
// alongside a healthy result.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) (map[string]any, error)
}

// Pinger is a dependency with a cheap liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck wraps a Pinger.
func PingCheck(name string, p Pinger) HealthCheck {
	return HealthCheck{
		Name: name,
		Check: func(ctx context.Context) (map[string]any, error) {
			return nil, p.Ping(ctx)
		},
	}
}

// DatabaseCheck pings the database and reports pool statistics.
func DatabaseCheck(db *sql.DB) HealthCheck {
	return HealthCheck{
		Name: "database",
		Check: func(ctx context.Context) (map[string]any, error) {
			if err := db.PingContext(ctx); err != nil {
				return nil, err
			}
			stats := db.Stats()
			return map[string]any{
				"connections_open":   stats.OpenConnections,
				"connections_in_use": stats.InUse,
				"connections_idle":   stats.Idle,
				"max_open":           stats.MaxOpenConnections,
			}, nil
		},
	}
}

// RedisCheck pings the session cache.
func RedisCheck(client redis.UniversalClient) HealthCheck {
	return HealthCheck{
		Name: "redis",
		Check: func(ctx context.Context) (map[string]any, error) {
			return nil, client.Ping(ctx).Err()
		},
	}
}

// Ready runs every check in parallel and answers 503 unless all are up.
func Ready(checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		results := make([]HealthCheckResult, len(checks))
		var g errgroup.Group
		for i, check := range checks {
			g.Go(func() error {
				results[i] = runCheck(ctx, check)
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		response := map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
		}
		byName := make(map[string]HealthCheckResult, len(checks))
		for i, check := range checks {
			byName[check.Name] = results[i]
			if results[i].Status != "up" {
				status = http.StatusServiceUnavailable
			}
		}
		response["checks"] = byName

		if status == http.StatusOK {
			response["status"] = "ready"
		} else {
			response["status"] = "not_ready"
		}
		httpx.WriteJSON(w, status, response)
	}
}

func runCheck(ctx context.Context, check HealthCheck) HealthCheckResult {
	start := time.Now()
	metadata, err := check.Check(ctx)
	latency := time.Since(start)

	if err != nil {
		return HealthCheckResult{
			Status:    "down",
			LatencyMs: latency.Milliseconds(),
			Error:     err.Error(),
		}
	}
	return HealthCheckResult{
		Status:    "up",
		LatencyMs: latency.Milliseconds(),
		Metadata:  metadata,
	}
}
