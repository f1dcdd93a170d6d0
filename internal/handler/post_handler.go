package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

// PostHandler serves posts, drafts, saved posts and tags.
type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func postID(r *http.Request) string {
	return validation.ParamsValue[schema.PostParams](r).PostID
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context(), validation.QueryValue[domain.Page](r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(posts))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), viewerID(r), postID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

// Create stores a new draft.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.CreatePostInput](r)

	post, err := h.posts.Create(r.Context(), currentUser(r).ID, service.CreatePostParams{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListDrafts(r.Context(), currentUser(r).ID, validation.QueryValue[domain.Page](r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(posts))
}

func (h *PostHandler) Saved(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListSaved(r.Context(), currentUser(r).ID, validation.QueryValue[domain.Page](r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(posts))
}

func (h *PostHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	update := validation.BodyValue[domain.PostMetadataUpdate](r)

	post, err := h.posts.UpdateMetadata(r.Context(), currentUser(r).ID, postID(r), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	content := validation.BodyValue[string](r)

	if err := h.posts.UpdateContent(r.Context(), currentUser(r).ID, postID(r), content); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Blog post updated successfully")
}

func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Publish(r.Context(), currentUser(r).ID, postID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Blog post published successfully")
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), currentUser(r).ID, postID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Blog post deleted successfully")
}

func (h *PostHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Save(r.Context(), currentUser(r).ID, postID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Post saved successfully")
}

func (h *PostHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Unsave(r.Context(), currentUser(r).ID, postID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Post removed from saved posts")
}

// ReplaceTags sets the complete tag list of a post.
func (h *PostHandler) ReplaceTags(w http.ResponseWriter, r *http.Request) {
	names := validation.BodyValue[[]string](r)

	tags, err := h.posts.ReplaceTags(r.Context(), currentUser(r).ID, postID(r), names)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tags)
}

func (h *PostHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.posts.ListTags(r.Context(), viewerID(r), postID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(tags))
}
