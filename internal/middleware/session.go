package middleware

import (
	"context"
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/observability"
	"blog-api/internal/session"
)

// SessionValidator resolves a session id to its session and owner.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

// SessionGate resolves the session cookie on every request and stores the
// outcome as the request's RequestContext.
//
//   - no cookie: anonymous
//   - unknown or expired session: anonymous, and a blank cookie is sent
//   - valid session: authenticated; a renewed cookie is sent when the
//     session was extended
//
// A backend failure ends the request with 500.
func SessionGate(validator SessionValidator, cookies session.CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := session.ReadCookie(r)
			if id == "" {
				next.ServeHTTP(w, r.WithContext(WithRequestContext(ctx, nil, nil)))
				return
			}

			s, user, err := validator.ValidateSession(ctx, id)
			if err != nil {
				observability.FromContext(ctx).Error("session validation failed",
					"error", err,
					"path", r.URL.Path,
				)
				httpx.WriteInternalError(w)
				return
			}

			if s == nil {
				http.SetCookie(w, cookies.BlankSessionCookie())
				next.ServeHTTP(w, r.WithContext(WithRequestContext(ctx, nil, nil)))
				return
			}

			if s.Fresh {
				http.SetCookie(w, cookies.SessionCookie(s.ID, s.ExpiresAt))
			}

			ctx = observability.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(WithRequestContext(ctx, user, s)))
		})
	}
}
