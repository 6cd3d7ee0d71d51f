package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coursehub/domain/courses"
	"coursehub/domain/recommendations"
	"coursehub/pkg/common"
)

// Cache key namespaces and fixed keys
const (
	NamespaceCourses         = "courses:"
	NamespaceRecommendations = "recommendations:"
	KeyCourseStats           = "course_stats"
	KeyPopular               = "popular_recommendations"
	KeyTopics                = "available_topics"
)

// Operation-specific TTLs
const (
	TTLCourses         = 30 * time.Minute
	TTLRecommendations = time.Hour
	TTLPopular         = 2 * time.Hour
	TTLTopics          = 24 * time.Hour
	TTLStats           = time.Hour
)

// courseListKey serializes the full query parameter set in a fixed field
// order so that equal queries always map to the same key.
func courseListKey(filter courses.Filter, page common.PaginationParams) string {
	var b strings.Builder
	b.WriteString(NamespaceCourses)
	b.WriteString("query=")
	b.WriteString(filter.SearchText)
	b.WriteString("|universityCode=")
	b.WriteString(filter.UniversityCode)
	b.WriteString("|courseLevel=")
	b.WriteString(string(filter.Level))
	b.WriteString("|disciplineMajor=")
	b.WriteString(filter.DisciplineMajor)
	b.WriteString("|attendanceType=")
	b.WriteString(string(filter.AttendanceType))
	b.WriteString("|minTuition=")
	b.WriteString(formatOptionalFloat(filter.MinTuition))
	b.WriteString("|maxTuition=")
	b.WriteString(formatOptionalFloat(filter.MaxTuition))
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(page.Page))
	b.WriteString("|limit=")
	b.WriteString(strconv.Itoa(page.Limit))
	return b.String()
}

// recommendationKey serializes normalized preferences; topics are already
// sorted by Normalize so the key is order-independent.
func recommendationKey(prefs recommendations.Preferences) string {
	return fmt.Sprintf("%stopics=%s|skillLevel=%s|duration=%s|maxTuition=%s",
		NamespaceRecommendations,
		strings.Join(prefs.Topics, ","),
		prefs.SkillLevel,
		prefs.Duration,
		formatOptionalFloat(prefs.MaxTuition),
	)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
