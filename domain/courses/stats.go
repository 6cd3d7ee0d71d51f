package courses

import (
	"sort"
	"strings"
)

// Summary holds the collection-wide tuition aggregates
type Summary struct {
	TotalCourses int     `json:"totalCourses"`
	AvgTuition   float64 `json:"avgTuition"`
	MinTuition   float64 `json:"minTuition"`
	MaxTuition   float64 `json:"maxTuition"`
}

// UniversityCount is a university with its course count
type UniversityCount struct {
	University string `json:"university"`
	Count      int    `json:"count"`
}

// Statistics is the aggregate view over the whole collection
type Statistics struct {
	Summary         Summary           `json:"summary"`
	ByLevel         map[string]int    `json:"byLevel"`
	ByAttendance    map[string]int    `json:"byAttendance"`
	TopUniversities []UniversityCount `json:"topUniversities"`
}

// Aggregate computes the collection statistics: tuition summary, grouped
// counts by level and attendance type, and the top-10 universities by
// course count.
func Aggregate(all []*Course) Statistics {
	stats := Statistics{
		ByLevel:         make(map[string]int),
		ByAttendance:    make(map[string]int),
		TopUniversities: []UniversityCount{},
	}

	if len(all) == 0 {
		return stats
	}

	var sum float64
	min := all[0].FirstYearTuition
	max := all[0].FirstYearTuition
	byUniversity := make(map[string]int)

	for _, c := range all {
		sum += c.FirstYearTuition
		if c.FirstYearTuition < min {
			min = c.FirstYearTuition
		}
		if c.FirstYearTuition > max {
			max = c.FirstYearTuition
		}
		stats.ByLevel[string(c.Level)]++
		stats.ByAttendance[string(c.AttendanceType)]++
		if c.University != "" {
			byUniversity[c.University]++
		}
	}

	stats.Summary = Summary{
		TotalCourses: len(all),
		AvgTuition:   sum / float64(len(all)),
		MinTuition:   min,
		MaxTuition:   max,
	}

	universities := make([]UniversityCount, 0, len(byUniversity))
	for name, count := range byUniversity {
		universities = append(universities, UniversityCount{University: name, Count: count})
	}
	sort.Slice(universities, func(i, j int) bool {
		if universities[i].Count != universities[j].Count {
			return universities[i].Count > universities[j].Count
		}
		return universities[i].University < universities[j].University
	})
	if len(universities) > 10 {
		universities = universities[:10]
	}
	stats.TopUniversities = universities

	return stats
}

// Popularity defaults for courses missing ranking or acceptance data
const (
	defaultRanking        = 1000
	defaultAcceptanceRate = 50
	partnerBonus          = 100
)

// PopularityScore computes the ranking score; lower is more popular
func PopularityScore(c *Course) float64 {
	ranking := float64(defaultRanking)
	if c.Ranking != nil {
		ranking = float64(*c.Ranking)
	}
	acceptance := float64(defaultAcceptanceRate)
	if c.AcceptanceRate != nil {
		acceptance = *c.AcceptanceRate
	}
	score := ranking - acceptance
	if c.PartnerCourse {
		score -= partnerBonus
	}
	return score
}

// RankByPopularity returns the ten most popular courses, ascending by
// popularity score.
func RankByPopularity(all []*Course) []*Course {
	ranked := make([]*Course, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := PopularityScore(ranked[i]), PopularityScore(ranked[j])
		if si != sj {
			return si < sj
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return ranked
}

// Field names supported by DistinctField
const (
	FieldDisciplineMajor = "disciplineMajor"
	FieldKeywords        = "keywords"
)

// DistinctField returns the deduplicated, blank-dropped, case-sensitive,
// sorted values of a field. ok is false for unsupported fields.
func DistinctField(all []*Course, field string) ([]string, bool) {
	seen := make(map[string]struct{})
	switch field {
	case FieldDisciplineMajor:
		for _, c := range all {
			if v := strings.TrimSpace(c.DisciplineMajor); v != "" {
				seen[v] = struct{}{}
			}
		}
	case FieldKeywords:
		for _, c := range all {
			for _, kw := range c.Keywords {
				if v := strings.TrimSpace(kw); v != "" {
					seen[v] = struct{}{}
				}
			}
		}
	default:
		return nil, false
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, true
}

// DistinctTopics returns the deduplicated union of disciplines and
// keywords, blanks dropped, case-sensitive, sorted.
func DistinctTopics(all []*Course) []string {
	seen := make(map[string]struct{})
	for _, c := range all {
		if v := strings.TrimSpace(c.DisciplineMajor); v != "" {
			seen[v] = struct{}{}
		}
		for _, kw := range c.Keywords {
			if v := strings.TrimSpace(kw); v != "" {
				seen[v] = struct{}{}
			}
		}
	}

	topics := make([]string, 0, len(seen))
	for v := range seen {
		topics = append(topics, v)
	}
	sort.Strings(topics)
	return topics
}
