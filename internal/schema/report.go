package schema

import (
	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

// ReportInput is the body of POST /reports.
type ReportInput struct {
	Resource    domain.Resource
	Reason      string
	Description *string
}

// Report validates POST /reports.
func Report(raw any) v.Result[ReportInput] {
	f := v.NewFields(raw)
	kind := f.String("resourceType", v.OneOf("Invalid report type",
		string(domain.KindPost), string(domain.KindComment), string(domain.KindUser)))
	id := f.String("resourceId", v.UUID("Invalid reported resource ID"))
	in := ReportInput{
		Reason: f.String("reason", v.OneOf("Invalid report reason", domain.ReportReasons...)),
		Description: f.OptionalString("description",
			v.Trim(),
			v.MinLen(3, "Description must be at least 3 characters long"),
			v.MaxLen(1000, "Description must be at most 1000 characters long"),
		),
	}
	if f.Failed() {
		return v.Finish(f, in)
	}

	resource, err := domain.NewResource(domain.ResourceKind(kind), id)
	f.Check("resourceType", err == nil, "Invalid report type")
	in.Resource = resource
	return v.Finish(f, in)
}
