package courses

import (
	"sort"
	"strings"
)

// Filter is an exact-match conjunction over the indexed fields, plus an
// optional inclusive tuition range and an optional free-text search.
type Filter struct {
	UniversityCode  string
	Level           Level
	DisciplineMajor string
	AttendanceType  AttendanceType
	MinTuition      *float64
	MaxTuition      *float64
	SearchText      string
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return f.UniversityCode == "" && f.Level == "" && f.DisciplineMajor == "" &&
		f.AttendanceType == "" && f.MinTuition == nil && f.MaxTuition == nil &&
		f.SearchText == ""
}

// Matches applies the exact-match conjunction and the tuition range.
// The free-text component is applied separately during ranking.
func (f Filter) Matches(c *Course) bool {
	if f.UniversityCode != "" && c.UniversityCode != f.UniversityCode {
		return false
	}
	if f.Level != "" && c.Level != f.Level {
		return false
	}
	if f.DisciplineMajor != "" && c.DisciplineMajor != f.DisciplineMajor {
		return false
	}
	if f.AttendanceType != "" && c.AttendanceType != f.AttendanceType {
		return false
	}
	if f.MinTuition != nil && c.FirstYearTuition < *f.MinTuition {
		return false
	}
	if f.MaxTuition != nil && c.FirstYearTuition > *f.MaxTuition {
		return false
	}
	return true
}

// Relevance weights for the composite text index over name, keywords,
// discipline and description.
const (
	weightName        = 4
	weightKeyword     = 3
	weightDiscipline  = 2
	weightDescription = 1
)

// RelevanceScore scores a course against the search terms. Zero means no
// textual match.
func RelevanceScore(c *Course, terms []string) int {
	if len(terms) == 0 {
		return 0
	}

	name := strings.ToLower(c.Name)
	discipline := strings.ToLower(c.DisciplineMajor)
	description := strings.ToLower(c.Description)

	score := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(name, term) {
			score += weightName
		}
		for _, kw := range c.Keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				score += weightKeyword
				break
			}
		}
		if strings.Contains(discipline, term) {
			score += weightDiscipline
		}
		if strings.Contains(description, term) {
			score += weightDescription
		}
	}
	return score
}

// SearchTerms tokenizes a free-text query into lowercase terms
func SearchTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// ApplyFilter returns the matching courses in their result order: ranked
// by textual relevance when search text is present, sorted by name
// otherwise. The returned slice is a fresh copy.
func ApplyFilter(all []*Course, f Filter) []*Course {
	matched := make([]*Course, 0, len(all))
	for _, c := range all {
		if f.Matches(c) {
			matched = append(matched, c)
		}
	}

	terms := SearchTerms(f.SearchText)
	if len(terms) > 0 {
		type scored struct {
			course *Course
			score  int
		}
		ranked := make([]scored, 0, len(matched))
		for _, c := range matched {
			if s := RelevanceScore(c, terms); s > 0 {
				ranked = append(ranked, scored{course: c, score: s})
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].score != ranked[j].score {
				return ranked[i].score > ranked[j].score
			}
			return ranked[i].course.Name < ranked[j].course.Name
		})
		result := make([]*Course, len(ranked))
		for i, s := range ranked {
			result[i] = s.course
		}
		return result
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})
	return matched
}

// Page slices a result set for 1-indexed pagination
func Page(items []*Course, page, limit int) []*Course {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return nil
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []*Course{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MatchesAnyTopic reports whether the course matches any of the topics by
// case-insensitive substring over keywords, discipline, name and
// description. Used by the recommendation assembler.
func MatchesAnyTopic(c *Course, topics []string) bool {
	for _, topic := range topics {
		t := strings.ToLower(strings.TrimSpace(topic))
		if t == "" {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), t) ||
			strings.Contains(strings.ToLower(c.DisciplineMajor), t) ||
			strings.Contains(strings.ToLower(c.Description), t) {
			return true
		}
		for _, kw := range c.Keywords {
			if strings.Contains(strings.ToLower(kw), t) {
				return true
			}
		}
	}
	return false
}
