package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"blog-api/internal/httpx"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// OpenAPIValidatorConfig holds configuration for OpenAPI validation middleware
type OpenAPIValidatorConfig struct {
	Enabled  bool
	SpecPath string
	// SkipPaths are path prefixes never validated.
	SkipPaths []string
}

// DefaultOpenAPIValidatorConfig returns the configuration used when the
// caller only toggles validation on.
func DefaultOpenAPIValidatorConfig() OpenAPIValidatorConfig {
	return OpenAPIValidatorConfig{
		Enabled:   false,
		SpecPath:  "api/openapi.yaml",
		SkipPaths: []string{"/health", "/metrics", "/api/ws/"},
	}
}

// LoadOpenAPIRouter loads and validates the document at path and builds a
// router matching requests to its operations.
func LoadOpenAPIRouter(path string) (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec %s: %w", path, err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec %s: %w", path, err)
	}
	// Servers are matched by path only.
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAPI router: %w", err)
	}
	return router, nil
}

// OpenAPIValidator rejects requests that do not conform to the documented
// operation with 400. Requests for undocumented routes pass through to the
// router, which answers 404 or 405 itself.
func OpenAPIValidator(cfg OpenAPIValidatorConfig) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	router, err := LoadOpenAPIRouter(cfg.SpecPath)
	if err != nil {
		return nil, err
	}

	slog.Info("OpenAPI validation enabled", slog.String("spec_path", cfg.SpecPath))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipPath(r.URL.Path, cfg.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
					MultiError:         false,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				slog.Warn("request validation failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()))
				httpx.WriteMessage(w, http.StatusBadRequest, "Request does not match the API schema")
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func shouldSkipPath(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}
