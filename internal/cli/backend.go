package cli

import (
	"context"
	"database/sql"
	"log/slog"

	"blog-api/internal/config"
	"blog-api/internal/domain"
	"blog-api/internal/migrate"
	"blog-api/internal/repository/postgres"
	redisrepo "blog-api/internal/repository/redis"
	"blog-api/internal/service"
	"blog-api/internal/session"

	"github.com/redis/go-redis/v9"
)

type dbBackend struct {
	db     *sql.DB
	redis  redis.UniversalClient
	cache  domain.SessionCache
	cfg    config.SessionConfig
	logger *slog.Logger

	// Prepared lazily; the tables may not exist before migrate runs.
	sessions *postgres.SessionRepository
	manager  *session.Manager
}

// OpenDatabase connects to the database and, when enabled, the session
// cache named by the environment.
func OpenDatabase(ctx context.Context, logger *slog.Logger) (Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := config.NewPostgresConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	b := &dbBackend{db: db, cfg: cfg.Session, logger: logger}

	// Revocation must evict cached snapshots too.
	if cfg.Redis.Enabled {
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		b.redis = client
		b.cache = redisrepo.NewSessionCache(client)
	}

	return b, nil
}

func (b *dbBackend) sessionManager() (*session.Manager, error) {
	if b.manager != nil {
		return b.manager, nil
	}

	sessions, err := postgres.NewSessionRepository(b.db)
	if err != nil {
		return nil, err
	}
	b.sessions = sessions
	b.manager = session.NewManager(sessions, b.cache,
		session.WithTTL(b.cfg.TTL),
		session.WithCacheTTL(b.cfg.CacheTTL),
		session.WithLogger(b.logger),
	)
	return b.manager, nil
}

func (b *dbBackend) Migrate(ctx context.Context) ([]string, error) {
	return migrate.Run(ctx, b.db)
}

func (b *dbBackend) SweepSessions(ctx context.Context) (int64, error) {
	m, err := b.sessionManager()
	if err != nil {
		return 0, err
	}
	return m.SweepExpiredSessions(ctx)
}

func (b *dbBackend) RevokeSessions(ctx context.Context, username string) (int, error) {
	m, err := b.sessionManager()
	if err != nil {
		return 0, err
	}
	auth := service.NewAuthService(postgres.NewUserRepository(b.db), postgres.NewProfileRepository(b.db), m)
	return auth.RevokeUserSessions(ctx, username)
}

func (b *dbBackend) Close() error {
	if b.sessions != nil {
		b.sessions.Close()
	}
	if b.redis != nil {
		b.redis.Close()
	}
	return b.db.Close()
}
