// Package rest wires the HTTP surface: routing, middleware and handlers
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/application/services"
	"coursehub/infrastructure/config"
	"coursehub/interfaces/http/rest/handlers"
	"coursehub/interfaces/http/rest/middleware"
	"coursehub/pkg/auth"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	catalog      *services.CatalogService
	ingest       *services.IngestService
	recommender  *services.RecommendationService
	adminRepo    ports.AdminRepository
	tokens       *auth.JWTManager
	errorHandler *pkgerrors.ErrorHandler
	metrics      *observability.Metrics
	registry     *prometheus.Registry
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	catalog *services.CatalogService,
	ingest *services.IngestService,
	recommender *services.RecommendationService,
	adminRepo ports.AdminRepository,
	tokens *auth.JWTManager,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Metrics,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		catalog:      catalog,
		ingest:       ingest,
		recommender:  recommender,
		adminRepo:    adminRepo,
		tokens:       tokens,
		errorHandler: errorHandler,
		metrics:      metrics,
		registry:     registry,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))

	var ipLimiter *auth.IPRateLimiter
	var userLimiter *auth.UserRateLimiter
	if !rt.cfg.RateLimit.Disabled {
		ipLimiter = auth.NewIPRateLimiter(rt.cfg.RateLimit.Requests)
		userLimiter = auth.NewUserRateLimiter(rt.cfg.RateLimit.Requests * 2)
	}
	authenticate := middleware.Authenticate(rt.tokens, ipLimiter, userLimiter, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		courseHandler := handlers.NewCourseHandler(rt.catalog, rt.ingest, rt.cfg.Upload.MaxBytes, rt.errorHandler, rt.logger)
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.ListCourses)
			r.Get("/stats/summary", courseHandler.GetStats)
			r.Get("/{courseID}", courseHandler.GetCourse)

			// Uploads mutate the catalog; they need an admin token
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireAdmin())
				r.Post("/upload", courseHandler.UploadCourses)
			})
		})

		recHandler := handlers.NewRecommendationHandler(rt.recommender, rt.catalog, rt.errorHandler, rt.logger)
		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", recHandler.Recommend)
			r.Get("/popular", recHandler.Popular)
			r.Get("/topics", recHandler.Topics)
		})

		authHandler := handlers.NewAuthHandler(rt.adminRepo, rt.tokens, rt.errorHandler, rt.logger)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
