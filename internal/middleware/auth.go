package middleware

import (
	"context"
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
)

type contextKey string

const requestContextKey contextKey = "request_context"

// RequestContext is the authentication state resolved once per request.
// User and Session are either both set or both nil.
type RequestContext struct {
	user    *domain.User
	session *domain.Session
}

// Authenticated reports whether the request carries a valid session.
func (rc RequestContext) Authenticated() bool {
	return rc.session != nil
}

// User returns the authenticated user or nil.
func (rc RequestContext) User() *domain.User {
	return rc.user
}

// Session returns the validated session or nil.
func (rc RequestContext) Session() *domain.Session {
	return rc.session
}

func newRequestContext(user *domain.User, session *domain.Session) RequestContext {
	if user == nil || session == nil {
		return RequestContext{}
	}
	return RequestContext{user: user, session: session}
}

// WithRequestContext attaches the resolved state to ctx. Either argument being
// nil yields an anonymous context.
func WithRequestContext(ctx context.Context, user *domain.User, session *domain.Session) context.Context {
	return context.WithValue(ctx, requestContextKey, newRequestContext(user, session))
}

// FromContext returns the resolved state. Requests that did not pass the
// session gate are anonymous.
func FromContext(ctx context.Context) RequestContext {
	rc, _ := ctx.Value(requestContextKey).(RequestContext)
	return rc
}

// CurrentUser returns the authenticated user and session.
func CurrentUser(ctx context.Context) (*domain.User, *domain.Session, bool) {
	rc := FromContext(ctx)
	return rc.user, rc.session, rc.Authenticated()
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Authenticated() {
			httpx.WriteMessage(w, http.StatusUnauthorized, httpx.MsgNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireNoSession rejects authenticated requests with 400. It guards
// signup and login.
func RequireNoSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()).Authenticated() {
			httpx.WriteMessage(w, http.StatusBadRequest, httpx.MsgAlreadyLoggedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}
