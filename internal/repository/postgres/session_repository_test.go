package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"blog-api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionRepositoryMocks expects the statements NewSessionRepository prepares, in order.
func setupSessionRepositoryMocks(mock sqlmock.Sqlmock) {
	for _, q := range []string{
		createSessionQuery,
		getSessionWithUserQuery,
		updateSessionExpirationQuery,
		deleteSessionQuery,
		listSessionIDsByUserQuery,
		deleteSessionsByIDsQuery,
		deleteExpiredSessionsQuery,
	} {
		mock.ExpectPrepare(regexp.QuoteMeta(q)).WillReturnCloseError(nil)
	}
}

func newSessionRepo(t *testing.T) (*SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	setupSessionRepositoryMocks(mock)
	repo, err := NewSessionRepository(db)
	require.NoError(t, err)
	return repo, mock
}

func TestNewSessionRepository(t *testing.T) {
	t.Run("prepares_all_statements", func(t *testing.T) {
		_, mock := newSessionRepo(t)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails_when_prepare_fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPrepare(regexp.QuoteMeta(createSessionQuery))
		mock.ExpectPrepare(regexp.QuoteMeta(getSessionWithUserQuery)).
			WillReturnError(errors.New("prepare failed"))

		repo, err := NewSessionRepository(db)
		require.Error(t, err)
		assert.Nil(t, repo)
		assert.Contains(t, err.Error(), "failed to prepare getWithUser statement")
	})
}

func TestSessionRepository_Create(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(createSessionQuery)).
			WithArgs("sess-1", "user-1", expiresAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), &domain.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: expiresAt})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database_error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(createSessionQuery)).
			WillReturnError(errors.New("database error"))

		err := repo.Create(context.Background(), &domain.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: expiresAt})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create session")
	})
}

func TestSessionRepository_GetWithUser(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	createdAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "expires_at", "id", "email", "username", "provider", "email_verified", "created_at"}

	t.Run("found", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getSessionWithUserQuery)).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("sess-1", "user-1", expiresAt, "user-1", "ada@example.com", "ada", "email", true, createdAt))

		session, user, err := repo.GetWithUser(context.Background(), "sess-1")
		require.NoError(t, err)
		assert.Equal(t, "sess-1", session.ID)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, expiresAt, session.ExpiresAt)
		assert.Equal(t, "ada", user.Username)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.True(t, user.EmailVerified)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("not_found", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getSessionWithUserQuery)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		session, user, err := repo.GetWithUser(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.Nil(t, session)
		assert.Nil(t, user)
	})

	t.Run("database_error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getSessionWithUserQuery)).
			WillReturnError(errors.New("connection reset"))

		_, _, err := repo.GetWithUser(context.Background(), "sess-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
		assert.Contains(t, err.Error(), "failed to get session")
	})
}

func TestSessionRepository_UpdateExpiration(t *testing.T) {
	repo, mock := newSessionRepo(t)
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(updateSessionExpirationQuery)).
		WithArgs("sess-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateExpiration(context.Background(), "sess-1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete(t *testing.T) {
	t.Run("missing_session_is_not_an_error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteSessionQuery)).
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(context.Background(), "gone"))
	})

	t.Run("database_error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteSessionQuery)).
			WillReturnError(errors.New("database error"))

		err := repo.Delete(context.Background(), "sess-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete session")
	})
}

func TestSessionRepository_ListIDsByUser(t *testing.T) {
	repo, mock := newSessionRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(listSessionIDsByUserQuery)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	ids, err := repo.ListIDsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestSessionRepository_DeleteByIDs(t *testing.T) {
	t.Run("deletes_given_ids", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteSessionsByIDsQuery)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.DeleteByIDs(context.Background(), []string{"a", "b"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty_list_skips_query", func(t *testing.T) {
		repo, mock := newSessionRepo(t)

		require.NoError(t, repo.DeleteByIDs(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns_count", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSessionsQuery)).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 5))

		count, err := repo.DeleteExpired(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("rows_affected_error", func(t *testing.T) {
		repo, mock := newSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSessionsQuery)).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("driver error")))

		_, err := repo.DeleteExpired(context.Background(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get rows affected")
	})
}
