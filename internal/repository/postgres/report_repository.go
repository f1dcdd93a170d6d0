package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blog-api/internal/domain"
)

// ReportRepository implements domain.ReportRepository for PostgreSQL
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	report.ResourceType = report.Resource.Kind()
	report.ResourceID = report.Resource.ID()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reports (id, reporter_id, resource_type, resource_id, reason, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, report.ID, report.ReporterID, string(report.ResourceType), report.ResourceID,
		report.Reason, report.Description).Scan(&report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}
