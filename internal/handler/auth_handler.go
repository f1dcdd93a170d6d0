package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/session"
	"blog-api/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	cookies     session.CookieConfig
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *service.AuthService, cookies session.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// Signup creates a password account and logs it in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.SignupInput](r)

	_, s, err := h.authService.Signup(r.Context(), service.SignupParams{
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(s.ID, s.ExpiresAt))
	httpx.WriteMessage(w, http.StatusCreated, "User successfully created")
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.LoginInput](r)

	_, s, err := h.authService.Login(r.Context(), in.Identifier, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(s.ID, s.ExpiresAt))
	httpx.WriteMessage(w, http.StatusOK, "User successfully logged in")
}

// Logout ends the current session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)

	if err := h.authService.Logout(r.Context(), s.ID); err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookies.BlankSessionCookie())
	httpx.WriteMessage(w, http.StatusOK, "User successfully logged out")
}

// Me returns the authenticated user and profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	profile, err := h.authService.Me(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MeResponse{User: user, Profile: profile})
}

// ChangePassword replaces the password, ends every session of the user and
// issues a new cookie for this client.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.ChangePasswordInput](r)
	user := currentUser(r)

	s, err := h.authService.ChangePassword(r.Context(), user.ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(s.ID, s.ExpiresAt))
	httpx.WriteMessage(w, http.StatusOK, "Password successfully changed")
}
