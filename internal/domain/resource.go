package domain

import (
	"context"
	"errors"
	"fmt"
)

var ErrResourceNotFound = errors.New("resource not found")

// ResourceKind names a resource variant on the wire and in the database.
type ResourceKind string

const (
	KindPost    ResourceKind = "post"
	KindComment ResourceKind = "comment"
	KindUser    ResourceKind = "user"
)

// Resource is a closed set of addressable entities: PostResource,
// CommentResource and UserResource. The unexported method keeps other
// packages from adding variants.
type Resource interface {
	Kind() ResourceKind
	ID() string
	resource()
}

type PostResource struct{ PostID string }

type CommentResource struct{ CommentID string }

type UserResource struct{ UserID string }

func (PostResource) Kind() ResourceKind    { return KindPost }
func (CommentResource) Kind() ResourceKind { return KindComment }
func (UserResource) Kind() ResourceKind    { return KindUser }

func (r PostResource) ID() string    { return r.PostID }
func (r CommentResource) ID() string { return r.CommentID }
func (r UserResource) ID() string    { return r.UserID }

func (PostResource) resource()    {}
func (CommentResource) resource() {}
func (UserResource) resource()    {}

// NewResource builds the variant named by kind.
func NewResource(kind ResourceKind, id string) (Resource, error) {
	switch kind {
	case KindPost:
		return PostResource{PostID: id}, nil
	case KindComment:
		return CommentResource{CommentID: id}, nil
	case KindUser:
		return UserResource{UserID: id}, nil
	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, kind)
	}
}

// ResourceCases holds one handler per variant for MatchResource.
type ResourceCases[T any] struct {
	Post    func(PostResource) T
	Comment func(CommentResource) T
	User    func(UserResource) T
}

// MatchResource dispatches r to the case for its variant.
func MatchResource[T any](r Resource, cases ResourceCases[T]) T {
	switch v := r.(type) {
	case PostResource:
		return cases.Post(v)
	case CommentResource:
		return cases.Comment(v)
	case UserResource:
		return cases.User(v)
	default:
		panic(fmt.Sprintf("domain: unhandled resource variant %T", r))
	}
}

// ResourceChecker reports whether a resource exists.
type ResourceChecker interface {
	Exists(ctx context.Context, r Resource) (bool, error)
}
