package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursehub/domain/recommendations"
	"coursehub/infrastructure/ai"
	"coursehub/infrastructure/cache"
	"coursehub/infrastructure/persistence/memory"
)

func newRecommendFixture(t *testing.T) (*RecommendationService, *memory.CourseRepository) {
	t.Helper()
	repo := memory.NewCourseRepository()
	svc := NewRecommendationService(repo, ai.NewStaticGenerator(), cache.NewMemoryCache(), newTestMetrics(), zap.NewNop())
	return svc, repo
}

func TestRecommendCombinesSources(t *testing.T) {
	ctx := context.Background()
	svc, repo := newRecommendFixture(t)

	aiCourse := seedCourse("AI-1", "Applied Machine Learning", "MIT", "Computer Science", 45000)
	aiCourse.Keywords = []string{"ai", "deep learning"}
	seedCatalog(t, repo,
		aiCourse,
		seedCourse("H-1", "Medieval History", "Oxford", "History", 18000),
	)

	result, err := svc.Recommend(ctx, recommendations.Preferences{Topics: []string{"ai"}})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.NotEmpty(t, result.AIRecommendations)
	assert.LessOrEqual(t, len(result.AIRecommendations), 5)
	assert.NotEmpty(t, result.Reasoning)

	require.Len(t, result.DatabaseCourses, 1)
	assert.Equal(t, "AI-1", result.DatabaseCourses[0].UniqueID)

	// Normalized preferences are echoed back
	assert.Equal(t, recommendations.SkillIntermediate, result.Preferences.SkillLevel)
}

func TestRecommendCacheAside(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecommendFixture(t)

	prefs := recommendations.Preferences{Topics: []string{"data science"}}

	first, err := svc.Recommend(ctx, prefs)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := svc.Recommend(ctx, prefs)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Reasoning, second.Reasoning)
	assert.Len(t, second.AIRecommendations, len(first.AIRecommendations))
}

func TestRecommendEquivalentPreferencesShareEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecommendFixture(t)

	_, err := svc.Recommend(ctx, recommendations.Preferences{Topics: []string{"ai", "ml"}})
	require.NoError(t, err)

	// Same topics in a different order hit the same entry
	result, err := svc.Recommend(ctx, recommendations.Preferences{Topics: []string{"ml", "ai"}})
	require.NoError(t, err)
	assert.True(t, result.FromCache)
}

func TestRecommendTuitionCeiling(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecommendFixture(t)

	ceiling := 40000.0
	result, err := svc.Recommend(ctx, recommendations.Preferences{
		Topics:     []string{"ai"},
		MaxTuition: &ceiling,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.AIRecommendations)
	for _, c := range result.AIRecommendations {
		assert.LessOrEqual(t, c.Tuition, ceiling)
	}
}

func TestRecommendDurationBand(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRecommendFixture(t)

	result, err := svc.Recommend(ctx, recommendations.Preferences{
		Topics:   []string{"ai"},
		Duration: recommendations.DurationShort,
	})
	require.NoError(t, err)

	for _, c := range result.AIRecommendations {
		months, ok := c.DurationMonths()
		require.True(t, ok)
		assert.LessOrEqual(t, months, 12)
	}
}

func TestRecommendNoCatalogMatches(t *testing.T) {
	ctx := context.Background()
	svc, repo := newRecommendFixture(t)
	seedCatalog(t, repo, seedCourse("H-1", "Medieval History", "Oxford", "History", 18000))

	result, err := svc.Recommend(ctx, recommendations.Preferences{Topics: []string{"quantum computing"}})
	require.NoError(t, err)
	assert.Empty(t, result.DatabaseCourses)
}

func TestStaticGeneratorPool(t *testing.T) {
	gen := ai.NewStaticGenerator()
	candidates, reasoning, err := gen.Generate(context.Background(), recommendations.Preferences{}.Normalize())
	require.NoError(t, err)
	assert.NotEmpty(t, reasoning)
	assert.Len(t, candidates, 5)

	for _, c := range candidates {
		assert.NotEmpty(t, c.Name)
		assert.Greater(t, c.MatchScore, 0)
	}
}
