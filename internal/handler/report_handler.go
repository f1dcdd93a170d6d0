package handler

import (
	"net/http"

	"blog-api/internal/httpx"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/validation"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := validation.BodyValue[schema.ReportInput](r)

	_, err := h.reports.Create(r.Context(), currentUser(r).ID, service.ReportParams{
		Resource:    in.Resource,
		Reason:      in.Reason,
		Description: in.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusCreated, "Report submitted successfully")
}
