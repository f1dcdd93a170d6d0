package domain

import (
	"context"
	"time"
)

// Reasons accepted for a content report.
var ReportReasons = []string{
	"spam", "harassment", "hate_speech", "misinformation", "plagiarism", "other",
}

// Report flags a post, comment or user for moderation.
type Report struct {
	ID           string       `json:"id"`
	ReporterID   string       `json:"reporter_id"`
	Resource     Resource     `json:"-"`
	ResourceType ResourceKind `json:"resource_type"`
	ResourceID   string       `json:"resource_id"`
	Reason       string       `json:"reason"`
	Description  *string      `json:"description"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
}
