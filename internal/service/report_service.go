package service

import (
	"context"
	"log/slog"

	"blog-api/internal/domain"

	"github.com/google/uuid"
)

// ReportParams is a validated report.
type ReportParams struct {
	Resource    domain.Resource
	Reason      string
	Description *string
}

type ReportService struct {
	reportRepo domain.ReportRepository
	resources  domain.ResourceChecker
}

func NewReportService(reportRepo domain.ReportRepository, resources domain.ResourceChecker) *ReportService {
	return &ReportService{reportRepo: reportRepo, resources: resources}
}

// Create files a report against an existing resource.
func (s *ReportService) Create(ctx context.Context, reporterID string, p ReportParams) (*domain.Report, error) {
	ok, err := s.resources.Exists(ctx, p.Resource)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrResourceNotFound
	}

	report := &domain.Report{
		ID:           uuid.NewString(),
		ReporterID:   reporterID,
		Resource:     p.Resource,
		ResourceType: p.Resource.Kind(),
		ResourceID:   p.Resource.ID(),
		Reason:       p.Reason,
		Description:  p.Description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	slog.Info("content reported",
		slog.String("report_id", report.ID),
		slog.String("resource_type", string(p.Resource.Kind())),
		slog.String("resource_id", p.Resource.ID()))
	return report, nil
}
