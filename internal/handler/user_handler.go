package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

// UserHandler serves public profiles and profile updates.
type UserHandler struct {
	profiles *service.ProfileService
	posts    *service.PostService
}

func NewUserHandler(profiles *service.ProfileService, posts *service.PostService) *UserHandler {
	return &UserHandler{profiles: profiles, posts: posts}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.UsernameParams](r)

	profile, err := h.profiles.Get(r.Context(), params.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	update := validation.BodyValue[domain.ProfileUpdate](r)

	profile, err := h.profiles.Update(r.Context(), currentUser(r).ID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

// Posts lists the user's published posts.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.UsernameParams](r)
	page := validation.QueryValue[domain.Page](r)

	posts, err := h.posts.ListByAuthor(r.Context(), params.Username, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(posts))
}
