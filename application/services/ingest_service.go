package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/courses"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/observability"
)

// maxReportedErrors bounds the error list in the import response
const maxReportedErrors = 10

// RowError records a single failed CSV row
type RowError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Raw     map[string]string `json:"raw"`
}

// ImportSummary reports the outcome counts of a CSV import
type ImportSummary struct {
	TotalProcessed int `json:"totalProcessed"`
	Successful     int `json:"successful"`
	Errors         int `json:"errors"`
}

// ImportResult is the full outcome of a CSV import. Errors holds at most
// the first ten row errors to bound the response size.
type ImportResult struct {
	Summary ImportSummary `json:"summary"`
	Errors  []RowError    `json:"errors"`
}

// IngestService parses uploaded CSV data, upserts courses by natural key
// and invalidates the affected cache entries afterwards.
type IngestService struct {
	repo    ports.CourseRepository
	cache   ports.Cache
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(
	repo ports.CourseRepository,
	cache ports.Cache,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ImportCSV processes the rows independently: a failed row is recorded
// and skipped, never aborting the batch. A store-level failure aborts
// the remaining rows; the partial result is still returned alongside the
// error so callers can report what did land.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.NewValidationError("csv file is empty or has no header row")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	batchStart := time.Now()
	result := &ImportResult{Errors: []RowError{}}

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Summary.TotalProcessed++
			s.recordRowError(result, RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("malformed csv row: %v", err),
				Raw:     map[string]string{},
			})
			continue
		}

		result.Summary.TotalProcessed++
		raw := rowValues(columns, record)

		course, mapErr := mapRow(raw, batchStart, rowNum)
		if mapErr != nil {
			s.recordRowError(result, RowError{Row: rowNum, Message: errorMessage(mapErr), Raw: raw})
			continue
		}

		if _, err := s.repo.Upsert(ctx, course); err != nil {
			if pkgerrors.IsDatabase(err) {
				// Store-level failure: the batch cannot continue
				s.logger.Error("Store failure aborted CSV import",
					zap.Int("row", rowNum),
					zap.Int("processed", result.Summary.TotalProcessed),
					zap.Int("successful", result.Summary.Successful),
					zap.Error(err),
				)
				return result, err
			}
			s.recordRowError(result, RowError{Row: rowNum, Message: errorMessage(err), Raw: raw})
			continue
		}

		result.Summary.Successful++
		s.metrics.IngestRows.WithLabelValues("success").Inc()
	}

	s.invalidate(ctx)

	s.logger.Info("CSV import finished",
		zap.Int("processed", result.Summary.TotalProcessed),
		zap.Int("successful", result.Summary.Successful),
		zap.Int("errors", result.Summary.Errors),
		zap.Duration("took", time.Since(batchStart)),
	)

	return result, nil
}

func (s *IngestService) recordRowError(result *ImportResult, rowErr RowError) {
	result.Summary.Errors++
	if len(result.Errors) < maxReportedErrors {
		result.Errors = append(result.Errors, rowErr)
	}
	s.metrics.IngestRows.WithLabelValues("error").Inc()
}

// invalidate drops every cache entry an import can stale: the courses
// listing namespace plus the statistics, popularity and topic keys.
func (s *IngestService) invalidate(ctx context.Context) {
	s.cache.DeleteByPrefix(ctx, NamespaceCourses)
	s.cache.Delete(ctx, KeyCourseStats)
	s.cache.Delete(ctx, KeyPopular)
	s.cache.Delete(ctx, KeyTopics)
}

// rowValues pairs the header columns with one record's fields
func rowValues(columns map[string]int, record []string) map[string]string {
	values := make(map[string]string, len(columns))
	for name, idx := range columns {
		if idx < len(record) {
			values[name] = strings.TrimSpace(record[idx])
		}
	}
	return values
}

// mapRow normalizes one CSV row into a course record. Column names fall
// back through known aliases; numeric fields coerce to 0 on parse
// failure, optional score fields to absent, and booleans are true only
// for the literal string "true".
func mapRow(raw map[string]string, batchStart time.Time, rowNum int) (*courses.Course, error) {
	uniqueID := pick(raw, "uniqueId", "course_id")
	if uniqueID == "" {
		uniqueID = fmt.Sprintf("IMPORT-%d-%d", batchStart.Unix(), rowNum)
	}

	course := &courses.Course{
		UniqueID:        uniqueID,
		Name:            pick(raw, "name", "course_name", "title"),
		Code:            pick(raw, "code", "course_code"),
		University:      pick(raw, "university", "university_name"),
		UniversityCode:  pick(raw, "universityCode", "university_code"),
		Department:      pick(raw, "department"),
		DisciplineMajor: pick(raw, "disciplineMajor", "discipline", "major"),
		Level:           courses.Level(pick(raw, "courseLevel", "level")),
		AttendanceType:  courses.AttendanceType(pick(raw, "attendanceType", "attendance_type")),
		Description:     pick(raw, "description"),
		Summary:         pick(raw, "summary"),

		Prerequisites:     splitList(pick(raw, "prerequisites"), ";"),
		LearningOutcomes:  splitList(pick(raw, "learningOutcomes", "learning_outcomes"), ";"),
		AssessmentMethods: splitList(pick(raw, "assessmentMethods", "assessment_methods"), ";"),
		Keywords:          splitList(pick(raw, "keywords"), ","),

		Credits:          parseFloat(pick(raw, "credits")),
		DurationMonths:   parseInt(pick(raw, "durationMonths", "duration_months", "duration")),
		FirstYearTuition: parseFloat(pick(raw, "firstYearTuition", "first_year_tuition", "tuition")),
		TotalTuition:     parseFloat(pick(raw, "totalTuition", "total_tuition")),
		ApplicationFee:   parseFloat(pick(raw, "applicationFee", "application_fee")),

		GREScore:       parseOptionalFloat(pick(raw, "greScore", "gre_score")),
		GMATScore:      parseOptionalFloat(pick(raw, "gmatScore", "gmat_score")),
		SATScore:       parseOptionalFloat(pick(raw, "satScore", "sat_score")),
		ACTScore:       parseOptionalFloat(pick(raw, "actScore", "act_score")),
		Ranking:        parseOptionalInt(pick(raw, "ranking")),
		AcceptanceRate: parseOptionalFloat(pick(raw, "acceptanceRate", "acceptance_rate")),

		EnglishRequired: parseBool(pick(raw, "englishRequired", "english_required")),
		GRERequired:     parseBool(pick(raw, "greRequired", "gre_required")),
		GMATRequired:    parseBool(pick(raw, "gmatRequired", "gmat_required")),
		SATRequired:     parseBool(pick(raw, "satRequired", "sat_required")),
		ACTRequired:     parseBool(pick(raw, "actRequired", "act_required")),
		FeeWaived:       parseBool(pick(raw, "feeWaived", "fee_waived")),
		PartnerCourse:   parseBool(pick(raw, "partnerCourse", "partner_course")),

		ApplicationDeadline: pick(raw, "applicationDeadline", "application_deadline", "deadline"),
		CourseURL:           pick(raw, "courseUrl", "course_url", "url"),
		BrochureURL:         pick(raw, "brochureUrl", "brochure_url"),
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}

// pick returns the first non-empty value along a column fallback chain
func pick(raw map[string]string, names ...string) string {
	for _, name := range names {
		if v, ok := raw[name]; ok && v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw, sep string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(raw string) bool {
	return raw == "true"
}

// errorMessage strips the type prefix from application errors so row
// errors read as plain messages
func errorMessage(err error) string {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
