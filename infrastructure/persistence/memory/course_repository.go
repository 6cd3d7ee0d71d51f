// Package memory provides in-process repository implementations used by
// tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"coursehub/application/ports"
	"coursehub/domain/courses"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
)

// CourseRepository keeps the course collection in a map keyed by the
// natural key.
type CourseRepository struct {
	mu      sync.RWMutex
	byID    map[string]*courses.Course
	failing bool
}

// NewCourseRepository creates an empty in-memory course repository
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		byID: make(map[string]*courses.Course),
	}
}

// SetFailing makes every subsequent operation return a database error.
// Used by tests to simulate a store-level outage.
func (r *CourseRepository) SetFailing(failing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = failing
}

func (r *CourseRepository) checkFailing(operation string) error {
	if r.failing {
		return pkgerrors.NewDatabaseError(operation, nil)
	}
	return nil
}

// FindByID matches by the natural key
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*courses.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("find course"); err != nil {
		return nil, err
	}

	c, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("course")
	}
	return cloneCourse(c), nil
}

// Query returns one page of matching courses plus the total match count
func (r *CourseRepository) Query(ctx context.Context, filter courses.Filter, page common.PaginationParams) ([]*courses.Course, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("query courses"); err != nil {
		return nil, 0, err
	}

	matched := courses.ApplyFilter(r.snapshot(), filter)
	total := len(matched)
	page = page.Clamp()
	return courses.Page(matched, page.Page, page.Limit), total, nil
}

// Upsert replaces by natural key or inserts, validating either way
func (r *CourseRepository) Upsert(ctx context.Context, course *courses.Course) (*courses.Course, error) {
	if err := course.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkFailing("upsert course"); err != nil {
		return nil, err
	}

	stored := cloneCourse(course)
	if existing, ok := r.byID[course.UniqueID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = time.Time{}
	}
	stored.Touch(time.Now())
	r.byID[course.UniqueID] = stored

	return cloneCourse(stored), nil
}

// DistinctValues enumerates the deduplicated sorted values of a field
func (r *CourseRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("distinct values"); err != nil {
		return nil, err
	}

	values, ok := courses.DistinctField(r.snapshot(), field)
	if !ok {
		return nil, pkgerrors.NewValidationError("unsupported distinct field: " + field)
	}
	return values, nil
}

// Statistics computes the collection aggregates
func (r *CourseRepository) Statistics(ctx context.Context) (courses.Statistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("aggregate statistics"); err != nil {
		return courses.Statistics{}, err
	}

	return courses.Aggregate(r.snapshot()), nil
}

// PopularityRank returns the ten most popular courses
func (r *CourseRepository) PopularityRank(ctx context.Context) ([]*courses.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("popularity rank"); err != nil {
		return nil, err
	}

	return courses.RankByPopularity(r.snapshot()), nil
}

// FindByTopics returns up to limit courses matching any topic
func (r *CourseRepository) FindByTopics(ctx context.Context, topics []string, limit int) ([]*courses.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkFailing("find by topics"); err != nil {
		return nil, err
	}

	matched := make([]*courses.Course, 0)
	for _, c := range r.snapshot() {
		if courses.MatchesAnyTopic(c, topics) {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Count returns the number of stored courses
func (r *CourseRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// snapshot returns course clones; callers hold at least the read lock
func (r *CourseRepository) snapshot() []*courses.Course {
	all := make([]*courses.Course, 0, len(r.byID))
	for _, c := range r.byID {
		all = append(all, cloneCourse(c))
	}
	return all
}

func cloneCourse(c *courses.Course) *courses.Course {
	clone := *c
	clone.Prerequisites = append([]string(nil), c.Prerequisites...)
	clone.LearningOutcomes = append([]string(nil), c.LearningOutcomes...)
	clone.AssessmentMethods = append([]string(nil), c.AssessmentMethods...)
	clone.Keywords = append([]string(nil), c.Keywords...)
	return &clone
}

var _ ports.CourseRepository = (*CourseRepository)(nil)
