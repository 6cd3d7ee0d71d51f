package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestPreferencesNormalize(t *testing.T) {
	t.Run("topics trimmed, blanks dropped, sorted", func(t *testing.T) {
		p := Preferences{Topics: []string{" data science ", "", "ai", "  "}}
		normalized := p.Normalize()
		assert.Equal(t, []string{"ai", "data science"}, normalized.Topics)
	})

	t.Run("skill level defaults to intermediate", func(t *testing.T) {
		assert.Equal(t, SkillIntermediate, Preferences{}.Normalize().SkillLevel)
		assert.Equal(t, SkillAdvanced, Preferences{SkillLevel: SkillAdvanced}.Normalize().SkillLevel)
	})

	t.Run("topic order does not matter", func(t *testing.T) {
		a := Preferences{Topics: []string{"ai", "ml"}}.Normalize()
		b := Preferences{Topics: []string{"ml", "ai"}}.Normalize()
		assert.Equal(t, a.Topics, b.Topics)
	})
}

func TestDurationBand(t *testing.T) {
	cases := []struct {
		band   DurationBand
		months int
	}{
		{DurationShort, 12},
		{DurationMedium, 18},
		{DurationLong, 24},
	}
	for _, tc := range cases {
		months, ok := tc.band.MaxMonths()
		require.True(t, ok)
		assert.Equal(t, tc.months, months)
	}

	_, ok := DurationBand("").MaxMonths()
	assert.False(t, ok)
}

func TestCandidateDurationMonths(t *testing.T) {
	months, ok := Candidate{Duration: "18 months"}.DurationMonths()
	require.True(t, ok)
	assert.Equal(t, 18, months)

	months, ok = Candidate{Duration: "9mo"}.DurationMonths()
	require.True(t, ok)
	assert.Equal(t, 9, months)

	_, ok = Candidate{Duration: "about a year"}.DurationMonths()
	assert.False(t, ok)

	_, ok = Candidate{}.DurationMonths()
	assert.False(t, ok)
}

func testPool() []Candidate {
	return []Candidate{
		{Name: "MSc Artificial Intelligence", Duration: "24 months", Tuition: 52000, MatchScore: 95},
		{Name: "MSc Data Science", Duration: "18 months", Tuition: 38000, MatchScore: 88},
		{Name: "MBA Business Analytics", Duration: "12 months", Tuition: 61000, MatchScore: 81},
		{Name: "BSc Software Engineering", Duration: "36 months", Tuition: 29000, MatchScore: 76},
		{Name: "Graduate Certificate Cybersecurity", Duration: "9 months", Tuition: 14500, MatchScore: 69},
	}
}

func TestFilterCandidates(t *testing.T) {
	t.Run("no constraints keeps top five by score", func(t *testing.T) {
		kept := FilterCandidates(testPool(), Preferences{})
		require.Len(t, kept, 5)
		assert.Equal(t, "MSc Artificial Intelligence", kept[0].Name)
		assert.Equal(t, "Graduate Certificate Cybersecurity", kept[4].Name)
	})

	t.Run("tuition ceiling excludes expensive candidates", func(t *testing.T) {
		kept := FilterCandidates(testPool(), Preferences{MaxTuition: floatPtr(40000)})
		require.Len(t, kept, 3)
		for _, c := range kept {
			assert.LessOrEqual(t, c.Tuition, 40000.0)
		}
		assert.Equal(t, "MSc Data Science", kept[0].Name)
	})

	t.Run("short duration band excludes longer programs", func(t *testing.T) {
		kept := FilterCandidates(testPool(), Preferences{Duration: DurationShort})
		require.Len(t, kept, 2)
		assert.Equal(t, "MBA Business Analytics", kept[0].Name)
		assert.Equal(t, "Graduate Certificate Cybersecurity", kept[1].Name)
	})

	t.Run("combined constraints", func(t *testing.T) {
		kept := FilterCandidates(testPool(), Preferences{
			Duration:   DurationShort,
			MaxTuition: floatPtr(20000),
		})
		require.Len(t, kept, 1)
		assert.Equal(t, "Graduate Certificate Cybersecurity", kept[0].Name)
	})

	t.Run("ordering is score descending", func(t *testing.T) {
		kept := FilterCandidates(testPool(), Preferences{})
		for i := 1; i < len(kept); i++ {
			assert.GreaterOrEqual(t, kept[i-1].MatchScore, kept[i].MatchScore)
		}
	})
}
