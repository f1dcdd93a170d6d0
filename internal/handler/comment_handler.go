package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

// CommentHandler serves comments, replies and mention suggestions.
type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), postID(r), validation.QueryValue[domain.Page](r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(comments))
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	content := validation.BodyValue[string](r)

	c, err := h.comments.Create(r.Context(), currentUser(r), postID(r), content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.CommentParams](r)
	content := validation.BodyValue[string](r)

	c, err := h.comments.Update(r.Context(), currentUser(r).ID, params.PostID, params.CommentID, content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.CommentParams](r)

	if err := h.comments.Delete(r.Context(), currentUser(r).ID, params.PostID, params.CommentID); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Comment deleted successfully")
}

func (h *CommentHandler) Replies(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.CommentParams](r)

	replies, err := h.comments.ListReplies(r.Context(), params.PostID, params.CommentID, validation.QueryValue[domain.Page](r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(replies))
}

func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.CommentParams](r)
	content := validation.BodyValue[string](r)

	c, err := h.comments.Reply(r.Context(), currentUser(r), params.PostID, params.CommentID, content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// Mentions lists the usernames a reply in the thread may mention.
func (h *CommentHandler) Mentions(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.CommentParams](r)

	names, err := h.comments.Mentionable(r.Context(), params.PostID, params.CommentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(names))
}
