// Package di assembles the application dependencies
package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"coursehub/application/ports"
	"coursehub/application/services"
	"coursehub/infrastructure/ai"
	"coursehub/infrastructure/cache"
	"coursehub/infrastructure/config"
	"coursehub/infrastructure/persistence/dynamodb"
	"coursehub/infrastructure/persistence/memory"
	"coursehub/pkg/auth"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/observability"
)

// developmentJWTSecret keeps local setups running without configuration.
// Load rejects an empty secret in production before this is reached.
const developmentJWTSecret = "development-secret-change-in-production"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Logging.Format == "console" {
		zapCfg.Encoding = "console"
	}

	return zapCfg.Build()
}

// ProvideRegistry creates the prometheus registry with runtime collectors
func ProvideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// ProvideMetrics registers the service collectors
func ProvideMetrics(registry *prometheus.Registry) *observability.Metrics {
	return observability.NewMetrics(registry)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Database.Region),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client. A configured endpoint
// points the client at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.Database.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Database.Endpoint)
		}
	})
}

// ProvideCourseRepository selects the course store by driver
func ProvideCourseRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.CourseRepository, error) {
	switch cfg.Database.Driver {
	case "dynamodb":
		return dynamodb.NewCourseRepository(client, cfg.Database.TableName, logger), nil
	case "memory":
		return memory.NewCourseRepository(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// ProvideAdminRepository selects the admin store by driver
func ProvideAdminRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.AdminRepository, error) {
	switch cfg.Database.Driver {
	case "dynamodb":
		return dynamodb.NewAdminRepository(client, cfg.Database.TableName, logger), nil
	case "memory":
		return memory.NewAdminRepository(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// ProvideCache selects the cache backend
func ProvideCache(cfg *config.Config, logger *zap.Logger) (ports.Cache, error) {
	switch cfg.Cache.Backend {
	case "badger":
		db, err := cache.OpenBadger(cfg.Cache.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger cache: %w", err)
		}
		return cache.NewBadgerCache(db, logger), nil
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideJWTManager creates the token manager
func ProvideJWTManager(cfg *config.Config) (*auth.JWTManager, error) {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = developmentJWTSecret
	}
	return auth.NewJWTManager(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.Auth.JWTIssuer,
		Expiry:    cfg.Auth.TokenExpiry,
	})
}

// ProvideErrorHandler creates the shared HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger)
}

// ProvideRecommendationGenerator creates the candidate generator
func ProvideRecommendationGenerator() ports.RecommendationGenerator {
	return ai.NewStaticGenerator()
}

// ProvideCatalogService creates the catalog service
func ProvideCatalogService(repo ports.CourseRepository, c ports.Cache, metrics *observability.Metrics, logger *zap.Logger) *services.CatalogService {
	return services.NewCatalogService(repo, c, metrics, logger)
}

// ProvideIngestService creates the CSV ingest service
func ProvideIngestService(repo ports.CourseRepository, c ports.Cache, metrics *observability.Metrics, logger *zap.Logger) *services.IngestService {
	return services.NewIngestService(repo, c, metrics, logger)
}

// ProvideRecommendationService creates the recommendation service
func ProvideRecommendationService(repo ports.CourseRepository, gen ports.RecommendationGenerator, c ports.Cache, metrics *observability.Metrics, logger *zap.Logger) *services.RecommendationService {
	return services.NewRecommendationService(repo, gen, c, metrics, logger)
}
