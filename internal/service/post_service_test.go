package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type postFixture struct {
	posts   *mocks.MockPostRepository
	tags    *mocks.MockTagRepository
	users   *mocks.MockUserRepository
	content *mocks.MockContentStore
	service *PostService
}

func newPostFixture(t *testing.T) *postFixture {
	ctrl := gomock.NewController(t)
	f := &postFixture{
		posts:   mocks.NewMockPostRepository(ctrl),
		tags:    mocks.NewMockTagRepository(ctrl),
		users:   mocks.NewMockUserRepository(ctrl),
		content: mocks.NewMockContentStore(ctrl),
	}
	f.service = NewPostService(f.posts, f.tags, f.users, f.content)
	return f
}

func strPtr(s string) *string { return &s }

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores draft and content", func(t *testing.T) {
		f := newPostFixture(t)
		var postID string
		f.posts.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Post) error {
				assert.NotEmpty(t, p.ID)
				assert.Equal(t, "author-1", p.AuthorID)
				postID = p.ID
				return nil
			})
		f.content.EXPECT().Put(gomock.Any(), gomock.Any(), "hello").
			DoAndReturn(func(_ context.Context, key, _ string) error {
				assert.Equal(t, domain.ContentKey("author-1", postID), key)
				return nil
			})

		post, err := f.service.Create(ctx, "author-1", CreatePostParams{Title: "Title", Content: strPtr("hello")})

		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.False(t, post.Published)
	})

	t.Run("rolls back when content cannot be stored", func(t *testing.T) {
		f := newPostFixture(t)
		storeErr := errors.New("bucket unavailable")
		f.posts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.content.EXPECT().Put(gomock.Any(), gomock.Any(), "hello").Return(storeErr)
		f.posts.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.Create(ctx, "author-1", CreatePostParams{Title: "Title", Content: strPtr("hello")})

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("without content skips the store", func(t *testing.T) {
		f := newPostFixture(t)
		f.posts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		post, err := f.service.Create(ctx, "author-1", CreatePostParams{Title: "Title"})

		require.NoError(t, err)
		assert.Empty(t, post.Content)
	})
}

func TestPostService_Get(t *testing.T) {
	ctx := context.Background()
	draft := &domain.Post{ID: "p1", AuthorID: "author-1"}

	t.Run("draft hidden from others", func(t *testing.T) {
		f := newPostFixture(t)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(draft, nil)

		_, err := f.service.Get(ctx, "someone-else", "p1")

		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("author sees draft with missing content", func(t *testing.T) {
		f := newPostFixture(t)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1", AuthorID: "author-1"}, nil)
		f.content.EXPECT().Get(gomock.Any(), "author-1/p1").Return("", domain.ErrContentNotFound)
		f.tags.EXPECT().ListByPost(gomock.Any(), "p1").Return([]domain.Tag{{Name: "go", Original: "Go"}}, nil)

		post, err := f.service.Get(ctx, "author-1", "p1")

		require.NoError(t, err)
		assert.Empty(t, post.Content)
		assert.Len(t, post.Tags, 1)
	})
}

func TestPostService_Publish(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("é", domain.MinPublishLength)
	short := strings.Repeat("a", domain.MinPublishLength-1)

	tests := []struct {
		name    string
		post    *domain.Post
		userID  string
		content string
		getErr  error
		wantErr error
	}{
		{name: "long enough", post: &domain.Post{ID: "p1", AuthorID: "a1"}, userID: "a1", content: long},
		{name: "too short", post: &domain.Post{ID: "p1", AuthorID: "a1"}, userID: "a1", content: short, wantErr: domain.ErrPostTooShort},
		{name: "no content", post: &domain.Post{ID: "p1", AuthorID: "a1"}, userID: "a1", getErr: domain.ErrContentNotFound, wantErr: domain.ErrPostTooShort},
		{name: "already published", post: &domain.Post{ID: "p1", AuthorID: "a1", Published: true}, userID: "a1", wantErr: domain.ErrPostAlreadyPublished},
		{name: "not the author", post: &domain.Post{ID: "p1", AuthorID: "a1"}, userID: "a2", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostFixture(t)
			now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
			f.service.now = func() time.Time { return now }

			f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(tt.post, nil)
			if tt.content != "" || tt.getErr != nil {
				f.content.EXPECT().Get(gomock.Any(), "a1/p1").Return(tt.content, tt.getErr)
			}
			if tt.wantErr == nil {
				f.posts.EXPECT().Publish(gomock.Any(), "p1", now).Return(nil)
			}

			err := f.service.Publish(ctx, tt.userID, "p1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostService_Delete_IgnoresContentFailure(t *testing.T) {
	f := newPostFixture(t)
	f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1", AuthorID: "a1"}, nil)
	f.posts.EXPECT().Delete(gomock.Any(), "p1").Return(nil)
	f.content.EXPECT().Delete(gomock.Any(), "a1/p1").Return(errors.New("timeout"))

	assert.NoError(t, f.service.Delete(context.Background(), "a1", "p1"))
}

func TestPostService_Save_DraftNotFound(t *testing.T) {
	f := newPostFixture(t)
	f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1", AuthorID: "a1"}, nil)

	err := f.service.Save(context.Background(), "reader", "p1")

	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostService_ReplaceTags(t *testing.T) {
	f := newPostFixture(t)
	f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1", AuthorID: "a1"}, nil)
	want := []domain.Tag{
		{Name: "go", Original: "Go"},
		{Name: "web", Original: "web"},
	}
	f.tags.EXPECT().Replace(gomock.Any(), "p1", want).Return(nil)

	tags, err := f.service.ReplaceTags(context.Background(), "a1", "p1", []string{"Go", "web", "GO"})

	require.NoError(t, err)
	assert.Equal(t, want, tags)
}

func TestPostService_ListByAuthor(t *testing.T) {
	f := newPostFixture(t)
	page := domain.Page{Limit: 20}
	f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&domain.User{ID: "u1"}, nil)
	f.posts.EXPECT().ListPublishedByAuthor(gomock.Any(), "u1", page).Return([]*domain.Post{{ID: "p1"}}, nil)

	posts, err := f.service.ListByAuthor(context.Background(), "alice", page)

	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
