package services

import (
	"context"

	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/courses"
	"coursehub/domain/recommendations"
	"coursehub/pkg/observability"
)

// databaseMatchLimit caps the catalog matches returned next to the
// generated candidates
const databaseMatchLimit = 10

// RecommendationResult pairs the generated candidates with catalog
// courses matching the requested topics
type RecommendationResult struct {
	AIRecommendations []recommendations.Candidate `json:"aiRecommendations"`
	DatabaseCourses   []*courses.Course           `json:"databaseCourses"`
	Reasoning         string                      `json:"reasoning"`
	Preferences       recommendations.Preferences `json:"preferences"`
	FromCache         bool                        `json:"fromCache"`
}

// RecommendationService assembles recommendations from the candidate
// generator and the catalog, cached per normalized preference set.
type RecommendationService struct {
	repo      ports.CourseRepository
	generator ports.RecommendationGenerator
	cacheStore
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	repo ports.CourseRepository,
	generator ports.RecommendationGenerator,
	cache ports.Cache,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		repo:       repo,
		generator:  generator,
		cacheStore: cacheStore{cache: cache, metrics: metrics, logger: logger},
	}
}

// Recommend returns candidates for a preference set. Preferences are
// normalized before the cache key is derived, so equivalent requests
// share an entry regardless of topic order or casing of the skill level.
func (s *RecommendationService) Recommend(ctx context.Context, prefs recommendations.Preferences) (*RecommendationResult, error) {
	prefs = prefs.Normalize()
	key := recommendationKey(prefs)

	var cached RecommendationResult
	if s.lookup(ctx, key, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	candidates, reasoning, err := s.generator.Generate(ctx, prefs)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.FindByTopics(ctx, prefs.Topics, databaseMatchLimit)
	if err != nil {
		return nil, err
	}

	result := &RecommendationResult{
		AIRecommendations: candidates,
		DatabaseCourses:   matches,
		Reasoning:         reasoning,
		Preferences:       prefs,
		FromCache:         false,
	}
	s.store(ctx, key, result, TTLRecommendations)
	return result, nil
}
