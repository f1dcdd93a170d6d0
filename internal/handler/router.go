package handler

import (
	"net/http"

	"blog-api/internal/httpx"
	"blog-api/internal/middleware"
	"blog-api/internal/schema"
	"blog-api/internal/service"
	"blog-api/internal/session"
	"blog-api/internal/validation"
	ws "blog-api/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Sessions middleware.SessionValidator
	Cookies  session.CookieConfig

	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Posts     *service.PostService
	Comments  *service.CommentService
	Series    *service.SeriesService
	Reactions *service.ReactionService
	Reports   *service.ReportService

	// Hub is optional; without it the comment feed route is not mounted.
	Hub *ws.Hub

	AllowedOrigins []string
	OpenAPI        middleware.OpenAPIValidatorConfig
	ReadyChecks    []HealthCheck

	// Optional per-IP limiters for the auth routes and the rest of the API.
	AuthLimiter *middleware.RateLimiter
	APILimiter  *middleware.RateLimiter
}

// NewRouter builds the application router.
func NewRouter(d Deps) (http.Handler, error) {
	openAPI, err := middleware.OpenAPIValidator(d.OpenAPI)
	if err != nil {
		return nil, err
	}

	authHandler := NewAuthHandler(d.Auth, d.Cookies)
	userHandler := NewUserHandler(d.Profiles, d.Posts)
	postHandler := NewPostHandler(d.Posts)
	commentHandler := NewCommentHandler(d.Comments)
	seriesHandler := NewSeriesHandler(d.Series)
	reactionHandler := NewReactionHandler(d.Reactions)
	reportHandler := NewReportHandler(d.Reports)

	page := validation.Query(schema.PageQuery)
	postParams := validation.Params(schema.PostParamsSchema, "postId")
	commentParams := validation.Params(schema.CommentParamsSchema, "postId", "commentId")
	seriesParams := validation.Params(schema.SeriesParamsSchema, "seriesId")
	usernameParams := validation.Params(schema.UsernameParamsSchema, "username")

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.Metrics())

	r.Get("/health", Health)
	r.Get("/health/ready", Ready(d.ReadyChecks...))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, "Not found")
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SessionGate(d.Sessions, d.Cookies))
		r.Use(middleware.CSRF(d.AllowedOrigins))
		r.Use(openAPI)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				useLimiter(r, d.AuthLimiter)
				r.Use(middleware.RequireNoSession)
				r.With(validation.Body(schema.Signup)).Post("/signup", authHandler.Signup)
				r.With(validation.Body(schema.Login)).Post("/login", authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.With(validation.Body(schema.ChangePassword)).Put("/password", authHandler.ChangePassword)
			})
		})

		r.Group(func(r chi.Router) {
			useLimiter(r, d.APILimiter)

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequireSession, validation.Body(schema.UpdateProfile)).
					Patch("/me/profile", userHandler.UpdateProfile)
				r.With(usernameParams).Get("/{username}", userHandler.Get)
				r.With(usernameParams, page).Get("/{username}/posts", userHandler.Posts)
			})

			r.Route("/posts", func(r chi.Router) {
				r.With(page).Get("/", postHandler.List)
				r.With(middleware.RequireSession, validation.Body(schema.CreatePost)).Post("/", postHandler.Create)
				r.With(middleware.RequireSession, page).Get("/drafts", postHandler.Drafts)
				r.With(middleware.RequireSession, page).Get("/saved", postHandler.Saved)

				r.Route("/{postId}", func(r chi.Router) {
					r.Use(postParams)

					r.Get("/", postHandler.Get)
					r.Get("/tags", postHandler.Tags)
					r.With(page).Get("/comments", commentHandler.List)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireSession)
						r.Delete("/", postHandler.Delete)
						r.With(validation.Body(schema.UpdatePostMetadata)).Patch("/metadata", postHandler.UpdateMetadata)
						r.With(validation.Body(schema.UpdatePostContent)).Put("/content", postHandler.UpdateContent)
						r.Post("/publish", postHandler.Publish)
						r.Put("/save", postHandler.Save)
						r.Delete("/save", postHandler.Unsave)
						r.With(validation.Body(schema.Tags)).Put("/tags", postHandler.ReplaceTags)
						r.With(validation.Body(schema.Comment)).Post("/comments", commentHandler.Create)
					})

					r.Route("/comments/{commentId}", func(r chi.Router) {
						r.Use(commentParams)

						r.With(page).Get("/replies", commentHandler.Replies)
						r.Get("/mentions", commentHandler.Mentions)

						r.Group(func(r chi.Router) {
							r.Use(middleware.RequireSession)
							r.With(validation.Body(schema.Comment)).Patch("/", commentHandler.Update)
							r.Delete("/", commentHandler.Delete)
							r.With(validation.Body(schema.Reply)).Post("/replies", commentHandler.Reply)
						})
					})
				})
			})

			r.Route("/series", func(r chi.Router) {
				r.With(middleware.RequireSession, validation.Body(schema.CreateSeries)).Post("/", seriesHandler.Create)

				r.Route("/{seriesId}", func(r chi.Router) {
					r.Use(seriesParams)

					r.Get("/", seriesHandler.Get)
					r.Get("/posts", seriesHandler.Posts)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireSession)
						r.With(validation.Body(schema.UpdateSeries)).Patch("/", seriesHandler.Update)
						r.Delete("/", seriesHandler.Delete)
						r.With(validation.Body(schema.AddSeriesPost)).Put("/posts", seriesHandler.AddPost)
						r.With(validation.Params(schema.SeriesPostParamsSchema, "seriesId", "postId")).
							Delete("/posts/{postId}", seriesHandler.RemovePost)
					})
				})
			})

			r.Route("/reactions", func(r chi.Router) {
				r.Route("/posts/{postId}", func(r chi.Router) {
					r.Use(postParams)
					r.Get("/", reactionHandler.Counts(postTarget))
					r.With(middleware.RequireSession, validation.Body(schema.PostReaction)).
						Put("/", reactionHandler.React(postTarget))
					r.With(middleware.RequireSession).Delete("/", reactionHandler.Remove(postTarget))
				})

				r.Route("/comments/{commentId}", func(r chi.Router) {
					r.Use(validation.Params(schema.CommentIDParamsSchema, "commentId"))
					r.Get("/", reactionHandler.Counts(commentTarget))
					r.With(middleware.RequireSession, validation.Body(schema.CommentReaction)).
						Put("/", reactionHandler.React(commentTarget))
					r.With(middleware.RequireSession).Delete("/", reactionHandler.Remove(commentTarget))
				})
			})

			r.With(middleware.RequireSession, validation.Body(schema.Report)).Post("/reports", reportHandler.Create)
		})

		if d.Hub != nil {
			wsHandler := NewWebSocketHandler(d.Hub, d.Posts, d.AllowedOrigins)
			r.With(postParams).Get("/ws/posts/{postId}/comments", wsHandler.CommentFeed)
		}
	})

	return r, nil
}

func useLimiter(r chi.Router, rl *middleware.RateLimiter) {
	if rl != nil {
		r.Use(rl.Middleware())
	}
}
