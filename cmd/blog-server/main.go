package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/internal/config"
	"blog-api/internal/domain"
	"blog-api/internal/handler"
	"blog-api/internal/messaging"
	"blog-api/internal/middleware"
	"blog-api/internal/migrate"
	"blog-api/internal/observability"
	"blog-api/internal/repository/postgres"
	redisrepo "blog-api/internal/repository/redis"
	"blog-api/internal/service"
	"blog-api/internal/session"
	"blog-api/internal/storage"
	"blog-api/internal/websocket"
)

// contentStore is a domain.ContentStore with a readiness probe.
type contentStore interface {
	domain.ContentStore
	handler.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("starting blog api", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connCtx, connCancel := context.WithTimeout(ctx, 10*time.Second)
	defer connCancel()

	db, err := config.NewPostgresConnection(connCtx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to postgresql")
	go config.ReportPoolStats(ctx, db, 15*time.Second)

	if cfg.Database.RunMigrationsOnStart {
		applied, err := migrate.Run(ctx, db)
		if err != nil {
			slog.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("migrations applied", slog.Int("count", len(applied)))
	}

	readyChecks := []handler.HealthCheck{handler.DatabaseCheck(db)}

	// A nil interface keeps the manager store-only.
	var cache domain.SessionCache
	if cfg.Redis.Enabled {
		client, err := config.NewRedisClient(connCtx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		cache = redisrepo.NewSessionCache(client)
		readyChecks = append(readyChecks, handler.RedisCheck(client))
		slog.Info("session cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	content, err := newContentStore(connCtx, cfg.Content)
	if err != nil {
		slog.Error("failed to create content store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	readyChecks = append(readyChecks, handler.PingCheck("content_store", content))

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	sessionRepo, err := postgres.NewSessionRepository(db)
	if err != nil {
		slog.Error("failed to prepare session statements", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sessionRepo.Close()
	postRepo := postgres.NewPostRepository(db)
	resources := postgres.NewResourceRepository(db)

	manager := session.NewManager(sessionRepo, cache,
		session.WithTTL(cfg.Session.TTL),
		session.WithCacheTTL(cfg.Session.CacheTTL),
	)
	go manager.RunSweeper(ctx, cfg.Session.SweepInterval)

	hub := websocket.NewHub()
	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("hub error", slog.String("error", err.Error()))
		}
	}()

	var events domain.EventPublisher = messaging.NewLocalPublisher(hub)
	if cfg.RabbitMQURL != "" {
		rmqCtx, rmqCancel := context.WithTimeout(ctx, 60*time.Second)
		rmq, err := messaging.NewRabbitMQWithRetry(rmqCtx, cfg.RabbitMQURL)
		rmqCancel()
		if err != nil {
			slog.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rmq.Close()

		if err := messaging.NewEventConsumer(rmq, hub).Start(ctx); err != nil {
			slog.Error("failed to start event consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		events = rmq
		readyChecks = append(readyChecks, handler.PingCheck("rabbitmq", rmq))
		slog.Info("comment events fan out through rabbitmq")
	}

	authLimiter := middleware.NewRateLimiter(5, 10)
	defer authLimiter.Stop()
	apiLimiter := middleware.NewRateLimiter(20, 50)
	defer apiLimiter.Stop()

	openAPI := middleware.DefaultOpenAPIValidatorConfig()
	openAPI.Enabled = cfg.OpenAPIValidation
	openAPI.SpecPath = cfg.OpenAPISpecPath

	router, err := handler.NewRouter(handler.Deps{
		Sessions:       manager,
		Cookies:        session.CookieConfig{Secure: cfg.SecureCookies(), TTL: manager.TTL()},
		Auth:           service.NewAuthService(userRepo, profileRepo, manager),
		Profiles:       service.NewProfileService(profileRepo),
		Posts:          service.NewPostService(postRepo, postgres.NewTagRepository(db), userRepo, content),
		Comments:       service.NewCommentService(postgres.NewCommentRepository(db), postRepo, events),
		Series:         service.NewSeriesService(postgres.NewSeriesRepository(db), postRepo),
		Reactions:      service.NewReactionService(postgres.NewReactionRepository(db), resources),
		Reports:        service.NewReportService(postgres.NewReportRepository(db), resources),
		Hub:            hub,
		AllowedOrigins: config.ParseList(cfg.AllowedOrigins),
		OpenAPI:        openAPI,
		ReadyChecks:    readyChecks,
		AuthLimiter:    authLimiter,
		APILimiter:     apiLimiter,
	})
	if err != nil {
		slog.Error("failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("blog api listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	slog.Info("server stopped gracefully")
}

func newContentStore(ctx context.Context, cfg config.ContentConfig) (contentStore, error) {
	if cfg.Store == "s3" {
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("post content stored in s3", slog.String("bucket", cfg.S3Bucket))
		return storage.NewS3Store(client, cfg.S3Bucket), nil
	}

	store, err := storage.NewDiskStore(cfg.Dir)
	if err != nil {
		return nil, err
	}
	slog.Info("post content stored on disk", slog.String("dir", cfg.Dir))
	return store, nil
}
