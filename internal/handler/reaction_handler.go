package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

type ReactionHandler struct {
	reactions *service.ReactionService
}

func NewReactionHandler(reactions *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

func postTarget(r *http.Request) domain.Resource {
	return domain.PostResource{PostID: postID(r)}
}

func commentTarget(r *http.Request) domain.Resource {
	return domain.CommentResource{CommentID: validation.ParamsValue[schema.CommentIDParams](r).CommentID}
}

// React returns a handler that sets the caller's reaction on the target
// resolved from the request.
func (h *ReactionHandler) React(target func(*http.Request) domain.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reaction := validation.BodyValue[string](r)

		res, err := h.reactions.React(r.Context(), currentUser(r).ID, target(r), reaction)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

func (h *ReactionHandler) Remove(target func(*http.Request) domain.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.reactions.Remove(r.Context(), currentUser(r).ID, target(r)); err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Reaction removed successfully")
	}
}

func (h *ReactionHandler) Counts(target func(*http.Request) domain.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.reactions.Counts(r.Context(), target(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, counts)
	}
}
