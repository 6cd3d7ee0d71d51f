package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursehub/domain/courses"
	"coursehub/infrastructure/cache"
	"coursehub/infrastructure/persistence/memory"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/observability"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.NewRegistry())
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func seedCourse(id, name, university, discipline string, tuition float64) *courses.Course {
	return &courses.Course{
		UniqueID:            id,
		Name:                name,
		University:          university,
		UniversityCode:      university,
		DisciplineMajor:     discipline,
		Level:               courses.LevelPostgraduate,
		AttendanceType:      courses.AttendanceFullTime,
		FirstYearTuition:    tuition,
		ApplicationDeadline: "2026-12-01",
		CourseURL:           "https://example.edu/" + id,
	}
}

func newCatalogFixture(t *testing.T) (*CatalogService, *memory.CourseRepository, *cache.MemoryCache) {
	t.Helper()
	repo := memory.NewCourseRepository()
	memCache := cache.NewMemoryCache()
	svc := NewCatalogService(repo, memCache, newTestMetrics(), zap.NewNop())
	return svc, repo, memCache
}

func seedCatalog(t *testing.T, repo *memory.CourseRepository, items ...*courses.Course) {
	t.Helper()
	ctx := context.Background()
	for _, c := range items {
		_, err := repo.Upsert(ctx, c)
		require.NoError(t, err)
	}
}

func TestListCoursesCacheAside(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)
	seedCatalog(t, repo,
		seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000),
		seedCourse("B-1", "Botany", "Oxford", "Biology", 20000),
	)

	first, err := svc.ListCourses(ctx, courses.Filter{}, common.DefaultPaginationParams())
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Len(t, first.Courses, 2)
	assert.Equal(t, 2, first.Pagination.Total)

	second, err := svc.ListCourses(ctx, courses.Filter{}, common.DefaultPaginationParams())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	require.Len(t, second.Courses, len(first.Courses))
	for i := range first.Courses {
		assert.Equal(t, first.Courses[i].UniqueID, second.Courses[i].UniqueID)
	}
	assert.Equal(t, first.Pagination, second.Pagination)
}

func TestListCoursesKeyedByFilter(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)
	seedCatalog(t, repo,
		seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000),
		seedCourse("B-1", "Botany", "Oxford", "Biology", 20000),
	)

	_, err := svc.ListCourses(ctx, courses.Filter{}, common.DefaultPaginationParams())
	require.NoError(t, err)

	// A different filter misses the earlier entry
	filtered, err := svc.ListCourses(ctx, courses.Filter{DisciplineMajor: "Biology"}, common.DefaultPaginationParams())
	require.NoError(t, err)
	assert.False(t, filtered.FromCache)
	require.Len(t, filtered.Courses, 1)
	assert.Equal(t, "B-1", filtered.Courses[0].UniqueID)
	assert.Equal(t, 1, filtered.Pagination.Total)
}

func TestListCoursesPaginationClamping(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)
	seedCatalog(t, repo, seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000))

	t.Run("limit at the maximum is accepted", func(t *testing.T) {
		result, err := svc.ListCourses(ctx, courses.Filter{}, common.PaginationParams{Page: 1, Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, 100, result.Pagination.Limit)
	})

	t.Run("limit above the maximum clamps to it", func(t *testing.T) {
		result, err := svc.ListCourses(ctx, courses.Filter{}, common.PaginationParams{Page: 1, Limit: 101})
		require.NoError(t, err)
		assert.Equal(t, 100, result.Pagination.Limit)
	})

	t.Run("zero values take the defaults", func(t *testing.T) {
		result, err := svc.ListCourses(ctx, courses.Filter{}, common.PaginationParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, common.DefaultPageSize, result.Pagination.Limit)
	})
}

func TestListCoursesTotalIndependentOfPage(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)
	for _, id := range []string{"C-1", "C-2", "C-3", "C-4", "C-5"} {
		seedCatalog(t, repo, seedCourse(id, "Course "+id, "MIT", "Computer Science", 10000))
	}

	page1, err := svc.ListCourses(ctx, courses.Filter{}, common.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	page3, err := svc.ListCourses(ctx, courses.Filter{}, common.PaginationParams{Page: 3, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, page1.Pagination.Total)
	assert.Equal(t, 5, page3.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.Pages)
	assert.Len(t, page1.Courses, 2)
	assert.Len(t, page3.Courses, 1)
}

func TestGetCourse(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)
	seedCatalog(t, repo, seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000))

	found, err := svc.GetCourse(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", found.Name)

	_, err = svc.GetCourse(ctx, "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestStatsCacheAside(t *testing.T) {
	ctx := context.Background()
	svc, repo, memCache := newCatalogFixture(t)
	seedCatalog(t, repo,
		seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000),
		seedCourse("B-1", "Botany", "Oxford", "Biology", 20000),
	)

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 2, first.Summary.TotalCourses)
	assert.True(t, memCache.Exists(ctx, KeyCourseStats))

	second, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestPopularCacheAside(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)

	popular := seedCourse("P-1", "Popular Course", "MIT", "Computer Science", 40000)
	popular.Ranking = intPtr(10)
	popular.AcceptanceRate = floatPtr(5)
	seedCatalog(t, repo,
		popular,
		seedCourse("U-1", "Unranked Course", "Oxford", "Biology", 20000),
	)

	first, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, first.Courses, 2)
	assert.Equal(t, "P-1", first.Courses[0].UniqueID)

	second, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
}

func TestTopicsMergesDisciplinesAndKeywords(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogFixture(t)

	withKeywords := seedCourse("K-1", "Kelp Studies", "UCSD", "Marine Biology", 15000)
	withKeywords.Keywords = []string{"ocean", "algae"}
	seedCatalog(t, repo,
		withKeywords,
		seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000),
	)

	first, err := svc.Topics(ctx)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, []string{"Computer Science", "Marine Biology", "algae", "ocean"}, first.Topics)

	second, err := svc.Topics(ctx)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Topics, second.Topics)
}

func TestCorruptCacheEntryFallsBack(t *testing.T) {
	ctx := context.Background()
	svc, repo, memCache := newCatalogFixture(t)
	seedCatalog(t, repo, seedCourse("A-1", "Algorithms", "MIT", "Computer Science", 40000))

	require.NoError(t, memCache.Set(ctx, KeyCourseStats, []byte("{not json"), TTLStats))

	result, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 1, result.Summary.TotalCourses)
}
