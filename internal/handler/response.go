package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/middleware"
)

// Client-facing messages for mapped domain errors.
const (
	msgInvalidCredentials = "Incorrect email/username or password"
	msgIncorrectLogin     = "Incorrect login method"
	msgIncorrectPassword  = "Incorrect password"
	msgUnauthorized       = "You are not authorized to perform this action"
)

var notFoundMessages = []struct {
	err error
	msg string
}{
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrProfileNotFound, "User not found"},
	{domain.ErrPostNotFound, "Post not found"},
	{domain.ErrCommentNotFound, "Comment not found"},
	{domain.ErrSeriesNotFound, "Series not found"},
	{domain.ErrPostNotInSeries, "Post not found in series"},
	{domain.ErrResourceNotFound, "Resource not found"},
}

var badRequestMessages = []struct {
	err error
	msg string
}{
	{domain.ErrInvalidCredentials, msgInvalidCredentials},
	{domain.ErrIncorrectLoginMethod, msgIncorrectLogin},
	{domain.ErrIncorrectPassword, msgIncorrectPassword},
	{domain.ErrPostTooShort, "Post content must be at least 1000 characters long to publish"},
	{domain.ErrPostAlreadyPublished, "Post is already published"},
	{domain.ErrNestedReply, "Replies can only be added to top-level comments"},
	{domain.ErrPostAlreadyInSeries, "Post is already part of this series"},
	{domain.ErrAlreadyAuthenticated, httpx.MsgAlreadyLoggedIn},
	{domain.ErrInvalidInput, "Invalid input"},
}

// writeError maps a service error to its response. Unrecognised errors are
// logged and answered with 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		httpx.WriteMessage(w, http.StatusBadRequest, "A user with this "+conflict.Field+" already exists")
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailExists):
		httpx.WriteMessage(w, http.StatusBadRequest, "A user with this email already exists")
		return
	case errors.Is(err, domain.ErrUsernameExists):
		httpx.WriteMessage(w, http.StatusBadRequest, "A user with this username already exists")
		return
	case errors.Is(err, domain.ErrUnauthenticated):
		httpx.WriteMessage(w, http.StatusUnauthorized, httpx.MsgNotAuthenticated)
		return
	case errors.Is(err, domain.ErrForbidden):
		httpx.WriteMessage(w, http.StatusForbidden, msgUnauthorized)
		return
	}

	for _, m := range notFoundMessages {
		if errors.Is(err, m.err) {
			httpx.WriteMessage(w, http.StatusNotFound, m.msg)
			return
		}
	}
	for _, m := range badRequestMessages {
		if errors.Is(err, m.err) {
			httpx.WriteMessage(w, http.StatusBadRequest, m.msg)
			return
		}
	}

	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	httpx.WriteInternalError(w)
}

// currentUser returns the authenticated user. Routes calling it sit behind
// RequireSession.
func currentUser(r *http.Request) *domain.User {
	return middleware.FromContext(r.Context()).User()
}

func currentSession(r *http.Request) *domain.Session {
	return middleware.FromContext(r.Context()).Session()
}

// viewerID returns the authenticated user's id, or "" for anonymous requests.
func viewerID(r *http.Request) string {
	if u := currentUser(r); u != nil {
		return u.ID
	}
	return ""
}

// listOrEmpty keeps empty lists encoded as [] rather than null.
func listOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
