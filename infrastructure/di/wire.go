//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"coursehub/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCourseRepository,
	ProvideAdminRepository,
	ProvideCache,
	ProvideJWTManager,
	ProvideErrorHandler,
	ProvideRecommendationGenerator,
	ProvideCatalogService,
	ProvideIngestService,
	ProvideRecommendationService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
