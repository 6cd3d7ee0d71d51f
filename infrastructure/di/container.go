package di

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/application/services"
	"coursehub/infrastructure/config"
	"coursehub/pkg/auth"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	CourseRepo   ports.CourseRepository
	AdminRepo    ports.AdminRepository
	Cache        ports.Cache
	Metrics      *observability.Metrics
	Registry     *prometheus.Registry
	Tokens       *auth.JWTManager
	ErrorHandler *pkgerrors.ErrorHandler
	Catalog      *services.CatalogService
	Ingest       *services.IngestService
	Recommender  *services.RecommendationService
}

// Shutdown releases held resources, closing the cache backend if it owns
// an on-disk store
func (c *Container) Shutdown() {
	if closer, ok := c.Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("Failed to close cache", zap.Error(err))
		}
	}
}
