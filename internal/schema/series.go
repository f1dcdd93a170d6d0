package schema

import (
	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

func seriesTitleRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.MinLen(5, "Series title must be at least 5 characters long"),
		v.MaxLen(100, "Series title must be at most 100 characters long"),
	}
}

func seriesDescriptionRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.NonEmpty("Series description must not be empty"),
		v.MaxLen(500, "Series description must be at most 500 characters long"),
	}
}

// CreateSeriesInput is the body of POST /series.
type CreateSeriesInput struct {
	Title       string
	Description *string
}

// CreateSeries validates POST /series.
func CreateSeries(raw any) v.Result[CreateSeriesInput] {
	f := v.NewFields(raw)
	in := CreateSeriesInput{
		Title:       f.String("title", seriesTitleRules()...),
		Description: f.OptionalString("description", seriesDescriptionRules()...),
	}
	return v.Finish(f, in)
}

// UpdateSeries validates PATCH /series/{seriesId}.
func UpdateSeries(raw any) v.Result[domain.SeriesUpdate] {
	f := v.NewFields(raw)
	u := domain.SeriesUpdate{
		Title:       f.OptionalString("title", seriesTitleRules()...),
		Description: f.OptionalString("description", seriesDescriptionRules()...),
	}
	f.Check("", u.Title != nil || u.Description != nil, "No fields to update")
	return v.Finish(f, u)
}

// AddSeriesPost validates PUT /series/{seriesId}/posts.
func AddSeriesPost(raw any) v.Result[string] {
	f := v.NewFields(raw)
	postID := f.String("postId", v.UUID("Invalid post id"))
	return v.Finish(f, postID)
}
