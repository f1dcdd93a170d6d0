package schema

import (
	v "blog-api/internal/validation"
)

// PostParams carries {postId}.
type PostParams struct {
	PostID string
}

func PostParamsSchema(raw any) v.Result[PostParams] {
	f := v.NewFields(raw)
	p := PostParams{PostID: f.String("postId", v.UUID("Invalid post id"))}
	return v.Finish(f, p)
}

// CommentParams carries {postId} and {commentId}.
type CommentParams struct {
	PostID    string
	CommentID string
}

func CommentParamsSchema(raw any) v.Result[CommentParams] {
	f := v.NewFields(raw)
	p := CommentParams{
		PostID:    f.String("postId", v.UUID("Invalid post id")),
		CommentID: f.String("commentId", v.UUID("Invalid comment id")),
	}
	return v.Finish(f, p)
}

// SeriesParams carries {seriesId}.
type SeriesParams struct {
	SeriesID string
}

func SeriesParamsSchema(raw any) v.Result[SeriesParams] {
	f := v.NewFields(raw)
	p := SeriesParams{SeriesID: f.String("seriesId", v.UUID("Invalid series id"))}
	return v.Finish(f, p)
}

// SeriesPostParams carries {seriesId} and {postId}.
type SeriesPostParams struct {
	SeriesID string
	PostID   string
}

func SeriesPostParamsSchema(raw any) v.Result[SeriesPostParams] {
	f := v.NewFields(raw)
	p := SeriesPostParams{
		SeriesID: f.String("seriesId", v.UUID("Invalid series id")),
		PostID:   f.String("postId", v.UUID("Invalid post id")),
	}
	return v.Finish(f, p)
}

// UsernameParams carries {username}.
type UsernameParams struct {
	Username string
}

func UsernameParamsSchema(raw any) v.Result[UsernameParams] {
	f := v.NewFields(raw)
	p := UsernameParams{Username: f.String("username", usernameRules()...)}
	return v.Finish(f, p)
}

// CommentIDParams carries {commentId} alone, for routes not nested under a post.
type CommentIDParams struct {
	CommentID string
}

func CommentIDParamsSchema(raw any) v.Result[CommentIDParams] {
	f := v.NewFields(raw)
	p := CommentIDParams{CommentID: f.String("commentId", v.UUID("Invalid comment id"))}
	return v.Finish(f, p)
}
