// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"devfolio/internal/auth"
	"devfolio/internal/cache"
	"devfolio/internal/config"
	"devfolio/internal/database"
	"devfolio/internal/middleware"
	"devfolio/internal/repository"
	"devfolio/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	tokens         *auth.TokenManager
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	chartRepo   repository.ChartRepository

	authService    *service.AuthService
	profileService *service.ProfileService
	postService    *service.PostService
	chartService   *service.ChartService
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
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		tokens:         auth.NewTokenManager(cfg.JWTSecret, 0),
		promMiddleware: middleware.InitMetrics("devfolio-api"),
	}

	s.userRepo = repository.NewUserRepository(db)
	s.profileRepo = repository.NewProfileRepository(db)
	s.postRepo = repository.NewPostRepository(db)
	s.chartRepo = repository.NewChartRepository(db)

	s.authService = service.NewAuthService(s.userRepo, s.tokens)
	s.profileService = service.NewProfileService(s.profileRepo, s.userRepo, db)
	s.postService = service.NewPostService(s.postRepo, s.userRepo)
	s.chartService = service.NewChartService(s.chartRepo)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware propagates request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	app.Use(s.promMiddleware.Middleware)

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Trace span per request
	app.Use(middleware.TracingMiddleware())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus, plus the live dashboard
	s.promMiddleware.RegisterAt(app, "/api/metrics")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Devfolio Metrics Dashboard",
	}))

	gate := middleware.AuthRequired(s.tokens)

	// Registration and login
	api.Post("/users", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	api.Post("/auth/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Get("/auth", gate, s.GetCurrentUser)

	// Profile routes; specific paths before the generic /user/:user_id
	profile := api.Group("/profile")
	profile.Post("/", gate, s.UpsertProfile)
	profile.Get("/", s.ListProfiles)
	profile.Delete("/", gate, s.DeleteAccount)
	profile.Get("/me", gate, s.GetMyProfile)
	profile.Put("/experience", gate, s.AddExperience)
	profile.Put("/experience/:exp_id", gate, s.UpdateExperience)
	profile.Delete("/experience/:exp_id", gate, s.DeleteExperience)
	profile.Get("/user/:user_id", s.GetProfileByUser)

	// Post routes
	posts := api.Group("/posts", gate)
	posts.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	// Like toggle
	api.Put("/like/:id", gate, s.LikePost)

	// Chart routes
	charts := api.Group("/charts", gate)
	charts.Post("/", s.CreateChart)
	charts.Get("/", s.GetCharts)
	charts.Delete("/:id", s.DeleteChart)
}

// HealthCheck is a simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and cache health.
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
		// The cache is optional; readiness only degrades on a real DB outage.
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

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// currentUserID returns the authenticated user's ID from locals. The gate
// always sets it on protected routes; a zero return means unauthenticated.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
