// Package ports defines the interfaces between the application services
// and the infrastructure that backs them.
package ports

import (
	"context"

	"coursehub/domain/admins"
	"coursehub/domain/courses"
	"coursehub/domain/recommendations"
	"coursehub/pkg/common"
)

// Distinct-value fields supported by CourseRepository.DistinctValues
const (
	FieldDisciplineMajor = courses.FieldDisciplineMajor
	FieldKeywords        = courses.FieldKeywords
)

// CourseRepository is the persistent course collection. Implementations
// are unaware of caching.
type CourseRepository interface {
	// FindByID matches by the natural key
	FindByID(ctx context.Context, id string) (*courses.Course, error)

	// Query returns one page of matching courses plus the total match
	// count independent of pagination
	Query(ctx context.Context, filter courses.Filter, page common.PaginationParams) ([]*courses.Course, int, error)

	// Upsert replaces the record with the same natural key or inserts a
	// new one; both paths run full validation
	Upsert(ctx context.Context, course *courses.Course) (*courses.Course, error)

	// DistinctValues enumerates the deduplicated, sorted, non-blank
	// values of a field
	DistinctValues(ctx context.Context, field string) ([]string, error)

	// Statistics computes the collection aggregates
	Statistics(ctx context.Context) (courses.Statistics, error)

	// PopularityRank returns the ten most popular courses
	PopularityRank(ctx context.Context) ([]*courses.Course, error)

	// FindByTopics returns up to limit courses matching any topic
	FindByTopics(ctx context.Context, topics []string, limit int) ([]*courses.Course, error)
}

// AdminRepository stores operator identities
type AdminRepository interface {
	Create(ctx context.Context, admin *admins.Admin) error
	FindByEmail(ctx context.Context, email string) (*admins.Admin, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// RecommendationGenerator produces synthetic course suggestions for a set
// of preferences. The static implementation is the only one today; a
// network-backed model can be substituted without touching the assembler.
type RecommendationGenerator interface {
	Generate(ctx context.Context, prefs recommendations.Preferences) ([]recommendations.Candidate, string, error)
}
