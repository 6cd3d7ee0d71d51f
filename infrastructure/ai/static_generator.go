// Package ai holds the recommendation generator implementations. The
// static generator stands in for a model-backed service; the assembler
// only sees the ports.RecommendationGenerator interface, so a real
// network-backed generator can be swapped in without touching it.
package ai

import (
	"context"
	"fmt"
	"strings"

	"coursehub/application/ports"
	"coursehub/domain/recommendations"
)

// StaticGenerator serves suggestions from a fixed candidate pool with
// precomputed match scores.
type StaticGenerator struct {
	pool []recommendations.Candidate
}

// NewStaticGenerator creates the generator with its built-in pool
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{pool: defaultPool()}
}

// Generate filters and ranks the candidate pool against the preferences.
// Deterministic and side-effect free for fixed inputs.
func (g *StaticGenerator) Generate(ctx context.Context, prefs recommendations.Preferences) ([]recommendations.Candidate, string, error) {
	candidates := recommendations.FilterCandidates(g.pool, prefs)

	reasoning := fmt.Sprintf(
		"Matched %d of %d curated courses against topics [%s] for a %s learner.",
		len(candidates), len(g.pool), strings.Join(prefs.Topics, ", "), prefs.SkillLevel,
	)

	return candidates, reasoning, nil
}

// Pool returns the full candidate pool; used by tests
func (g *StaticGenerator) Pool() []recommendations.Candidate {
	pool := make([]recommendations.Candidate, len(g.pool))
	copy(pool, g.pool)
	return pool
}

func defaultPool() []recommendations.Candidate {
	return []recommendations.Candidate{
		{
			Name:       "MSc Artificial Intelligence",
			University: "Northfield Institute of Technology",
			Discipline: "Computer Science",
			Duration:   "24 months",
			Tuition:    52000,
			MatchScore: 95,
			Topics:     []string{"AI", "Machine Learning", "Computer Science"},
			Reason:     "Strong research focus on machine learning and neural systems.",
		},
		{
			Name:       "MSc Data Science",
			University: "Lakeview University",
			Discipline: "Data Science",
			Duration:   "18 months",
			Tuition:    38000,
			MatchScore: 88,
			Topics:     []string{"Data Science", "Statistics", "Machine Learning"},
			Reason:     "Applied curriculum with an industry placement semester.",
		},
		{
			Name:       "MBA Business Analytics",
			University: "Harborside Business School",
			Discipline: "Business",
			Duration:   "12 months",
			Tuition:    61000,
			MatchScore: 81,
			Topics:     []string{"Business", "Analytics", "Management"},
			Reason:     "Accelerated program combining management and analytics.",
		},
		{
			Name:       "BSc Software Engineering",
			University: "Westbrook University",
			Discipline: "Computer Science",
			Duration:   "36 months",
			Tuition:    29000,
			MatchScore: 76,
			Topics:     []string{"Software Engineering", "Computer Science", "Programming"},
			Reason:     "Project-driven degree with a strong systems foundation.",
		},
		{
			Name:       "Graduate Certificate in Cybersecurity",
			University: "Crestline College",
			Discipline: "Information Security",
			Duration:   "9 months",
			Tuition:    14500,
			MatchScore: 69,
			Topics:     []string{"Cybersecurity", "Networking", "Security"},
			Reason:     "Short practical credential for working professionals.",
		},
	}
}

var _ ports.RecommendationGenerator = (*StaticGenerator)(nil)
