package handler

import (
	"net/http"

	"blog-api/internal/domain"
	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

type SeriesHandler struct {
	series *service.SeriesService
}

func NewSeriesHandler(series *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{series: series}
}

func seriesID(r *http.Request) string {
	return validation.ParamsValue[schema.SeriesParams](r).SeriesID
}

func (h *SeriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.CreateSeriesInput](r)

	s, err := h.series.Create(r.Context(), currentUser(r).ID, service.CreateSeriesParams{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, s)
}

func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.series.Get(r.Context(), seriesID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *SeriesHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.series.ListPosts(r.Context(), seriesID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listOrEmpty(posts))
}

func (h *SeriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	update := validation.BodyValue[domain.SeriesUpdate](r)

	s, err := h.series.Update(r.Context(), currentUser(r).ID, seriesID(r), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *SeriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.series.Delete(r.Context(), currentUser(r).ID, seriesID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Series deleted successfully")
}

func (h *SeriesHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	postID := validation.BodyValue[string](r)

	if err := h.series.AddPost(r.Context(), currentUser(r).ID, seriesID(r), postID); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Post added to series successfully")
}

func (h *SeriesHandler) RemovePost(w http.ResponseWriter, r *http.Request) {
	params := validation.ParamsValue[schema.SeriesPostParams](r)

	if err := h.series.RemovePost(r.Context(), currentUser(r).ID, params.SeriesID, params.PostID); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Post removed from series successfully")
}
