// Package services contains the application services: cache-aside catalog
// reads, CSV ingestion and the recommendation assembler. Services own the
// cache keys and TTLs; repositories stay unaware of caching.
package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/courses"
	"coursehub/pkg/common"
	"coursehub/pkg/observability"
)

// CourseListResult is the payload for a catalog listing
type CourseListResult struct {
	Courses    []*courses.Course     `json:"courses"`
	Pagination common.PaginationInfo `json:"pagination"`
	FromCache  bool                  `json:"fromCache"`
}

// StatsResult is the payload for the statistics summary
type StatsResult struct {
	Summary         courses.Summary           `json:"summary"`
	ByLevel         map[string]int            `json:"byLevel"`
	ByAttendance    map[string]int            `json:"byAttendance"`
	TopUniversities []courses.UniversityCount `json:"topUniversities"`
	FromCache       bool                      `json:"fromCache"`
}

// PopularResult is the payload for the popularity ranking
type PopularResult struct {
	Courses   []*courses.Course `json:"courses"`
	FromCache bool              `json:"fromCache"`
}

// TopicsResult is the payload for the topic vocabulary
type TopicsResult struct {
	Topics    []string `json:"topics"`
	FromCache bool     `json:"fromCache"`
}

// CatalogService wraps repository reads with cache-aside lookups
type CatalogService struct {
	repo ports.CourseRepository
	cacheStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	repo ports.CourseRepository,
	cache ports.Cache,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		repo:       repo,
		cacheStore: cacheStore{cache: cache, metrics: metrics, logger: logger},
	}
}

// ListCourses serves a filtered, paginated listing through the cache
func (s *CatalogService) ListCourses(ctx context.Context, filter courses.Filter, page common.PaginationParams) (*CourseListResult, error) {
	page = page.Clamp()
	key := courseListKey(filter, page)

	var cached CourseListResult
	if s.lookup(ctx, key, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	items, total, err := s.repo.Query(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	result := &CourseListResult{
		Courses:    items,
		Pagination: common.BuildPaginationInfo(page, total),
		FromCache:  false,
	}
	s.store(ctx, key, result, TTLCourses)
	return result, nil
}

// GetCourse fetches a single course by its natural key; not cached
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*courses.Course, error) {
	return s.repo.FindByID(ctx, id)
}

// Stats serves the aggregate statistics through the cache
func (s *CatalogService) Stats(ctx context.Context) (*StatsResult, error) {
	var cached StatsResult
	if s.lookup(ctx, KeyCourseStats, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	result := &StatsResult{
		Summary:         stats.Summary,
		ByLevel:         stats.ByLevel,
		ByAttendance:    stats.ByAttendance,
		TopUniversities: stats.TopUniversities,
		FromCache:       false,
	}
	s.store(ctx, KeyCourseStats, result, TTLStats)
	return result, nil
}

// Popular serves the popularity ranking through the cache
func (s *CatalogService) Popular(ctx context.Context) (*PopularResult, error) {
	var cached PopularResult
	if s.lookup(ctx, KeyPopular, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	ranked, err := s.repo.PopularityRank(ctx)
	if err != nil {
		return nil, err
	}

	result := &PopularResult{Courses: ranked, FromCache: false}
	s.store(ctx, KeyPopular, result, TTLPopular)
	return result, nil
}

// Topics serves the topic vocabulary, the deduplicated sorted union of
// disciplines and keywords, through the cache.
func (s *CatalogService) Topics(ctx context.Context) (*TopicsResult, error) {
	var cached TopicsResult
	if s.lookup(ctx, KeyTopics, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	disciplines, err := s.repo.DistinctValues(ctx, ports.FieldDisciplineMajor)
	if err != nil {
		return nil, err
	}
	keywords, err := s.repo.DistinctValues(ctx, ports.FieldKeywords)
	if err != nil {
		return nil, err
	}

	result := &TopicsResult{
		Topics:    mergeSorted(disciplines, keywords),
		FromCache: false,
	}
	s.store(ctx, KeyTopics, result, TTLTopics)
	return result, nil
}

// mergeSorted merges two sorted, deduplicated string slices
func mergeSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}
	// Inputs are individually sorted but the union is not
	sort.Strings(merged)
	return merged
}
