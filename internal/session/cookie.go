package session

import (
	"net/http"
	"time"
)

// CookieName is the name of the session id cookie.
const CookieName = "auth_session"

// CookieConfig controls the attributes of issued session cookies.
type CookieConfig struct {
	// Secure is set in production so the cookie only travels over HTTPS.
	Secure bool
	TTL    time.Duration
}

// SessionCookie builds the cookie carrying sessionID. expiresAt is the
// session's stored expiry and sets Expires for clients that ignore Max-Age.
func (c CookieConfig) SessionCookie(sessionID string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(c.TTL / time.Second),
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// BlankSessionCookie builds a cookie that makes the client drop its session id.
func (c CookieConfig) BlankSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ReadCookie returns the session id sent by the client, or "" when absent.
func ReadCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
