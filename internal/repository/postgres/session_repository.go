package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/domain"

	"github.com/lib/pq"
)

const (
	createSessionQuery = `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	getSessionWithUserQuery = `
		SELECT s.id, s.user_id, s.expires_at,
			u.id, u.email, u.username, u.provider, u.email_verified, u.created_at
		FROM sessions s
		INNER JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`
	updateSessionExpirationQuery = `UPDATE sessions SET expires_at = $2 WHERE id = $1`
	deleteSessionQuery           = `DELETE FROM sessions WHERE id = $1`
	listSessionIDsByUserQuery    = `SELECT id FROM sessions WHERE user_id = $1`
	deleteSessionsByIDsQuery     = `DELETE FROM sessions WHERE id = ANY($1)`
	deleteExpiredSessionsQuery   = `DELETE FROM sessions WHERE expires_at <= $1`
)

// SessionRepository implements domain.SessionRepository with prepared
// statements, since every request with a session cookie may reach it.
type SessionRepository struct {
	db                   *sql.DB
	createStmt           *sql.Stmt
	getWithUserStmt      *sql.Stmt
	updateExpirationStmt *sql.Stmt
	deleteStmt           *sql.Stmt
	listIDsByUserStmt    *sql.Stmt
	deleteByIDsStmt      *sql.Stmt
	deleteExpiredStmt    *sql.Stmt
}

// NewSessionRepository creates a new SessionRepository with prepared statements.
// Returns an error if statement preparation fails.
func NewSessionRepository(db *sql.DB) (*SessionRepository, error) {
	repo := &SessionRepository{db: db}

	stmts := []struct {
		name  string
		query string
		dst   **sql.Stmt
	}{
		{"create", createSessionQuery, &repo.createStmt},
		{"getWithUser", getSessionWithUserQuery, &repo.getWithUserStmt},
		{"updateExpiration", updateSessionExpirationQuery, &repo.updateExpirationStmt},
		{"delete", deleteSessionQuery, &repo.deleteStmt},
		{"listIDsByUser", listSessionIDsByUserQuery, &repo.listIDsByUserStmt},
		{"deleteByIDs", deleteSessionsByIDsQuery, &repo.deleteByIDsStmt},
		{"deleteExpired", deleteExpiredSessionsQuery, &repo.deleteExpiredStmt},
	}

	for _, s := range stmts {
		stmt, err := db.Prepare(s.query)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", s.name, err)
		}
		*s.dst = stmt
	}

	return repo, nil
}

// Close releases the prepared statements.
func (r *SessionRepository) Close() {
	for _, stmt := range []*sql.Stmt{
		r.createStmt, r.getWithUserStmt, r.updateExpirationStmt, r.deleteStmt,
		r.listIDsByUserStmt, r.deleteByIDsStmt, r.deleteExpiredStmt,
	} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if _, err := r.createStmt.ExecContext(ctx, session.ID, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error) {
	session := &domain.Session{}
	user := &domain.User{}
	err := r.getWithUserStmt.QueryRowContext(ctx, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Provider,
		&user.EmailVerified,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, user, nil
}

func (r *SessionRepository) UpdateExpiration(ctx context.Context, id string, expiresAt time.Time) error {
	if _, err := r.updateExpirationStmt.ExecContext(ctx, id, expiresAt); err != nil {
		return fmt.Errorf("failed to update session expiration: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.deleteStmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.listIDsByUserStmt.QueryContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// DeleteByIDs deletes exactly the given sessions.
func (r *SessionRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.deleteByIDsStmt.ExecContext(ctx, pq.StringArray(ids)); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.deleteExpiredStmt.ExecContext(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return count, nil
}
