//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/migrate"
	"blog-api/internal/repository/postgres"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL container with the schema applied.
func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "blog",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := sql.Open("postgres", fmt.Sprintf("postgres://test:test@%s:%s/blog?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.Eventually(t, func() bool { return db.PingContext(ctx) == nil }, 10*time.Second, 200*time.Millisecond)

	_, err = migrate.Run(ctx, db)
	require.NoError(t, err, "failed to run migrations")
	return db
}

func createUser(t *testing.T, repo *postgres.UserRepository, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Username: username, PasswordHash: "hash"}
	require.NoError(t, repo.CreateWithProfile(context.Background(), user, &domain.Profile{Name: username}))
	return user
}

func TestRepositories_Integration(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(db)

	t.Run("user_uniqueness_conflicts", func(t *testing.T) {
		createUser(t, users, "ada@example.com", "ada")

		err := users.CreateWithProfile(ctx, &domain.User{Email: "ada@example.com", Username: "other"}, &domain.Profile{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrEmailExists)

		err = users.CreateWithProfile(ctx, &domain.User{Email: "other@example.com", Username: "ada"}, &domain.Profile{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrUsernameExists)

		byName, err := users.GetByIdentifier(ctx, "ada")
		require.NoError(t, err)
		byEmail, err := users.GetByIdentifier(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, byName.ID, byEmail.ID)
	})

	t.Run("session_lifecycle", func(t *testing.T) {
		sessions, err := postgres.NewSessionRepository(db)
		require.NoError(t, err)
		defer sessions.Close()

		user := createUser(t, users, "grace@example.com", "grace")
		now := time.Now().UTC().Truncate(time.Microsecond)

		for _, s := range []*domain.Session{
			{ID: "live-1", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
			{ID: "live-2", UserID: user.ID, ExpiresAt: now.Add(2 * time.Hour)},
			{ID: "stale", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)},
		} {
			require.NoError(t, sessions.Create(ctx, s))
		}

		session, got, err := sessions.GetWithUser(ctx, "live-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.True(t, session.ExpiresAt.Equal(now.Add(time.Hour)))

		swept, err := sessions.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), swept)

		ids, err := sessions.ListIDsByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"live-1", "live-2"}, ids)

		require.NoError(t, sessions.DeleteByIDs(ctx, ids))
		_, _, err = sessions.GetWithUser(ctx, "live-2")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("posts_comments_and_series", func(t *testing.T) {
		author := createUser(t, users, "linus@example.com", "linus")
		posts := postgres.NewPostRepository(db)
		comments := postgres.NewCommentRepository(db)
		series := postgres.NewSeriesRepository(db)

		post := &domain.Post{ID: uuid.NewString(), AuthorID: author.ID, Title: "Kernels"}
		require.NoError(t, posts.Create(ctx, post))
		require.NoError(t, posts.Publish(ctx, post.ID, time.Now()))
		assert.ErrorIs(t, posts.Publish(ctx, post.ID, time.Now()), domain.ErrPostAlreadyPublished)

		parent := &domain.Comment{ID: uuid.NewString(), PostID: post.ID, AuthorID: author.ID, Content: "first"}
		require.NoError(t, comments.Create(ctx, parent))
		reply := &domain.Comment{ID: uuid.NewString(), PostID: post.ID, AuthorID: author.ID, ParentID: &parent.ID,
			Content: " hi @ada", Mentions: []string{"ada"}}
		require.NoError(t, comments.Create(ctx, reply))

		replies, err := comments.ListReplies(ctx, parent.ID, domain.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.Equal(t, []string{"ada"}, replies[0].Mentions)

		s := &domain.Series{ID: uuid.NewString(), AuthorID: author.ID, Title: "OS"}
		require.NoError(t, series.Create(ctx, s))
		require.NoError(t, series.AddPost(ctx, s.ID, post.ID))
		assert.ErrorIs(t, series.AddPost(ctx, s.ID, post.ID), domain.ErrPostAlreadyInSeries)
	})
}
