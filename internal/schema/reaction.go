package schema

import (
	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

// PostReaction validates the body of PUT /reactions/posts/{postId}.
func PostReaction(raw any) v.Result[string] {
	f := v.NewFields(raw)
	reaction := f.String("reaction", v.OneOf("Invalid reaction for post", domain.PostReactions...))
	return v.Finish(f, reaction)
}

// CommentReaction validates the body of PUT /reactions/comments/{commentId}.
func CommentReaction(raw any) v.Result[string] {
	f := v.NewFields(raw)
	reaction := f.String("reaction", v.OneOf("Invalid reaction for comment", domain.CommentReactions...))
	return v.Finish(f, reaction)
}
