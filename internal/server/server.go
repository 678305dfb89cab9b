package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"parlor/internal/cache"
	"parlor/internal/config"
	"parlor/internal/database"
	"parlor/internal/featureflags"
	"parlor/internal/middleware"
	"parlor/internal/models"
	"parlor/internal/observability"
	"parlor/internal/repository"
	"parlor/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	ownerRepo      repository.OwnerRepository
	featureFlags   *featureflags.Manager
	profileService *service.ProfileService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)

	prom := middleware.InitMetrics("parlor-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		ownerRepo:      ownerRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	server.profileService = service.NewProfileService(profileRepo, ownerRepo, server.featureFlags)
	server.postService = service.NewPostService(postRepo, profileRepo, ownerRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo, profileRepo, ownerRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry span per request, X-Trace-ID on the response
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(
				models.ErrorEnvelope("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Parlor Backend Metrics Dashboard",
	}))

	// Feature flags as the caller sees them, handy when debugging rollouts
	app.Get("/debug/flags", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"configured": s.featureFlags.Raw(),
			"evaluated":  s.featureFlags.Snapshot(currentUserID(c)),
		})
	})

	// User routes
	app.Post("/user", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), RequireBody(), s.Signup)
	app.Post("/user/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), RequireBody(), s.Login)
	app.Put("/user", RequireBody(), s.AuthRequired(), s.UpdateCredentials)
	app.Delete("/user", s.AuthRequired(), s.DeleteUser)

	// Profile routes
	profile := app.Group("/profile")
	profile.Get("/:profileId", NumericParams(lookupParamsMessage, "profileId"), s.AuthRequired(), s.GetProfile)
	profile.Put("/:profileId", RequireBody(), NumericParams(lookupParamsMessage, "profileId"), s.AuthRequired(), s.UpdateProfile)
	profile.Delete("/:profileId", NumericParams(lookupParamsMessage, "profileId"), s.AuthRequired(), s.DeleteProfile)

	// Post routes
	post := app.Group("/post")
	post.Post("/from/:profileId", RequireBody(), NumericParams(createParamsMessage, "profileId"), s.AuthRequired(),
		middleware.RateLimit(s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	post.Post("/:postId/like", NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.LikePost)
	post.Delete("/:postId/like", NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.UnlikePost)
	post.Get("/:postId", NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.GetPost)
	post.Put("/:postId", RequireBody(), NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.UpdatePost)
	post.Delete("/:postId", NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.DeletePost)

	// Comment routes
	comment := app.Group("/comment")
	comment.Post("/post/:postId/from/:profileId", RequireBody(),
		NumericParams(createParamsMessage, "postId", "profileId"), s.AuthRequired(),
		middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.CreateComment)
	comment.Get("/post/:postId", NumericParams(lookupParamsMessage, "postId"), s.AuthRequired(), s.ListComments)
	comment.Post("/reply/:commentId/from/:profileId", RequireBody(),
		NumericParams(createParamsMessage, "commentId", "profileId"), s.AuthRequired(),
		middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.CreateReply)
	comment.Get("/reply/:commentId", NumericParams(lookupParamsMessage, "commentId"), s.AuthRequired(), s.ListReplies)
	comment.Put("/:commentId", RequireBody(), NumericParams(lookupParamsMessage, "commentId"), s.AuthRequired(), s.UpdateComment)
	comment.Delete("/:commentId", NumericParams(lookupParamsMessage, "commentId"), s.AuthRequired(), s.DeleteComment)

	// Anything else is a 404 with the standard envelope.
	app.Use(func(c *fiber.Ctx) error {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route not found"))
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; readiness only degrades, it does not fail.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. A missing Authorization
// header and an invalid token are distinct failures with distinct messages.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			middleware.AuthFailures.WithLabelValues("missing_header").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("You must be logged in to do that."))
		}

		userID, err := middleware.VerifyToken(middleware.TokenFromHeader(authHeader), s.config.JWTSecret)
		if err != nil {
			middleware.AuthFailures.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Please sign in again and re-try that."))
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		observability.AddTraceAttributesToContext(ctx,
			attribute.String("enduser.id", strconv.FormatUint(uint64(userID), 10)))

		return c.Next()
	}
}

// NewApp builds the fiber app with middleware and routes registered.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Parlor API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError("Internal server error", err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
