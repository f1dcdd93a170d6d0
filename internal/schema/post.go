package schema

import (
	"regexp"

	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

// MaxContentBytes caps a post body.
const MaxContentBytes = 64 * 1024

func titleRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.MinLen(3, "Title must be at least 3 characters long"),
		v.MaxLen(120, "Title must be at most 120 characters long"),
	}
}

func descriptionRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.MinLen(10, "Summary must be at least 10 characters long"),
		v.MaxLen(500, "Summary must be at most 500 characters long"),
	}
}

func contentRules() []v.Rule {
	return []v.Rule{
		v.NonEmpty("Blog content cannot be empty"),
		v.MaxBytes(MaxContentBytes, "Blog content cannot be too long"),
	}
}

// CreatePostInput is the body of POST /posts.
type CreatePostInput struct {
	Title       string
	Description *string
	Content     *string
}

// CreatePost validates POST /posts.
func CreatePost(raw any) v.Result[CreatePostInput] {
	f := v.NewFields(raw)
	in := CreatePostInput{
		Title:       f.String("title", titleRules()...),
		Description: f.OptionalString("description", descriptionRules()...),
		Content:     f.OptionalString("content", contentRules()...),
	}
	return v.Finish(f, in)
}

// UpdatePostMetadata validates PATCH /posts/{postId}/metadata.
func UpdatePostMetadata(raw any) v.Result[domain.PostMetadataUpdate] {
	f := v.NewFields(raw)
	u := domain.PostMetadataUpdate{
		Title:       f.OptionalString("title", titleRules()...),
		Description: f.OptionalString("description", descriptionRules()...),
	}
	f.Check("", u.Title != nil || u.Description != nil, "At least one field must be provided to update the post")
	return v.Finish(f, u)
}

// UpdatePostContent validates PUT /posts/{postId}/content.
func UpdatePostContent(raw any) v.Result[string] {
	f := v.NewFields(raw)
	content := f.String("content", contentRules()...)
	return v.Finish(f, content)
}

// MaxTags is the most tags a post may carry.
const MaxTags = 30

var tagPattern = regexp.MustCompile(`^[a-zA-Z0-9\-.'’]+$`)

// Tags validates the PUT /posts/{postId}/tags body, a JSON array of tags.
var Tags = v.StringArray(MaxTags,
	v.Trim(),
	v.NonEmpty("Tag must not be empty"),
	v.MaxLen(30, "Tag must be at most 30 characters long"),
	v.Matches(tagPattern, "Tag can only contain letters, numbers, hyphens, apostrophes, and periods"),
)
