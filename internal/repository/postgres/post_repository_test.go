package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"blog-api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{
	"id", "author_id", "username", "title", "description", "published", "published_at", "created_at", "updated_at",
}

func TestPostRepository_GetByID(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM posts p").
			WithArgs("post-1").
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow("post-1", "user-1", "ada", "Engines", nil, true, now, now, now))

		post, err := NewPostRepository(db).GetByID(context.Background(), "post-1")
		require.NoError(t, err)
		assert.Equal(t, "Engines", post.Title)
		assert.Equal(t, "ada", post.AuthorUsername)
		assert.Nil(t, post.Description)
		require.NotNil(t, post.PublishedAt)
		assert.Equal(t, now, *post.PublishedAt)
	})

	t.Run("not_found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM posts p").WillReturnError(sql.ErrNoRows)

		_, err = NewPostRepository(db).GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

func TestPostRepository_ListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("WHERE p.published").
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p1", "u1", "ada", "One", "first", true, now, now, now).
			AddRow("p2", "u1", "ada", "Two", nil, true, now, now, now))

	posts, err := NewPostRepository(db).ListPublished(context.Background(), domain.Page{Offset: 20, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.NotNil(t, posts[0].Description)
	assert.Equal(t, "first", *posts[0].Description)
	assert.Equal(t, "p2", posts[1].ID)
}

func TestPostRepository_ListDrafts_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("NOT p.published").
		WithArgs("u1", 20, 0).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, err := NewPostRepository(db).ListDrafts(context.Background(), "u1", domain.Page{Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostRepository_Publish(t *testing.T) {
	at := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("publishes_draft", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE posts SET published = TRUE").
			WithArgs("post-1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostRepository(db).Publish(context.Background(), "post-1", at))
	})

	t.Run("already_published", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE posts SET published = TRUE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewPostRepository(db).Publish(context.Background(), "post-1", at)
		assert.ErrorIs(t, err, domain.ErrPostAlreadyPublished)
	})
}

func TestPostRepository_UpdateMetadata(t *testing.T) {
	t.Run("returns_updated_post", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "New title"
		now := time.Now()
		mock.ExpectExec("UPDATE posts SET").
			WithArgs("post-1", title, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("FROM posts p").
			WithArgs("post-1").
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow("post-1", "u1", "ada", title, nil, false, nil, now, now))

		post, err := NewPostRepository(db).UpdateMetadata(context.Background(), "post-1",
			domain.PostMetadataUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, post.Title)
		assert.Nil(t, post.PublishedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing_post", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE posts SET").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err = NewPostRepository(db).UpdateMetadata(context.Background(), "nope", domain.PostMetadataUpdate{})
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM posts").
		WithArgs("post-1").
		WillReturnError(errors.New("connection lost"))

	err = NewPostRepository(db).Delete(context.Background(), "post-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete post")
	assert.NotErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepository_Save(t *testing.T) {
	t.Run("idempotent_insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO saved_posts").
			WithArgs("u1", "p1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewPostRepository(db).Save(context.Background(), "u1", "p1"))
	})

	t.Run("unknown_post", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO saved_posts").
			WillReturnError(&pq.Error{Code: "23503"})

		err = NewPostRepository(db).Save(context.Background(), "u1", "missing")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

func TestTagRepository_Replace(t *testing.T) {
	t.Run("clears_and_inserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM post_tags").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO post_tags").
			WithArgs("p1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err = NewTagRepository(db).Replace(context.Background(), "p1", []domain.Tag{
			{Name: "go", Original: "Go"},
			{Name: "web-dev", Original: "Web Dev"},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty_list_only_clears", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM post_tags").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, NewTagRepository(db).Replace(context.Background(), "p1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_ListByPost(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM post_tags").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"tag_name", "original_tag"}).
			AddRow("go", "Go").
			AddRow("web-dev", "Web Dev"))

	tags, err := NewTagRepository(db).ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{Name: "go", Original: "Go"}, {Name: "web-dev", Original: "Web Dev"}}, tags)
}
