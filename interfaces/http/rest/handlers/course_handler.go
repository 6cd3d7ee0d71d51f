// Package handlers contains the HTTP handlers for the REST API
package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coursehub/application/services"
	"coursehub/domain/courses"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
)

// CourseHandler serves the catalog endpoints
type CourseHandler struct {
	catalog        *services.CatalogService
	ingest         *services.IngestService
	uploadMaxBytes int64
	errorHandler   *pkgerrors.ErrorHandler
	logger         *zap.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(
	catalog *services.CatalogService,
	ingest *services.IngestService,
	uploadMaxBytes int64,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *CourseHandler {
	return &CourseHandler{
		catalog:        catalog,
		ingest:         ingest,
		uploadMaxBytes: uploadMaxBytes,
		errorHandler:   errorHandler,
		logger:         logger,
	}
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	page := common.ExtractPaginationParams(r)

	result, err := h.catalog.ListCourses(r.Context(), filter, page)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetCourse handles GET /api/v1/courses/{courseID}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("course id is required"))
		return
	}

	course, err := h.catalog.GetCourse(r.Context(), courseID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"course": course})
}

// GetStats handles GET /api/v1/courses/stats/summary
func (h *CourseHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Stats(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// UploadCourses handles POST /api/v1/courses/upload. The CSV arrives as
// the multipart field "csvFile"; a row that fails is reported, not fatal.
func (h *CourseHandler) UploadCourses(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("upload too large or malformed multipart body"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("csvFile")
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("multipart field csvFile is required"))
		return
	}
	defer file.Close()

	if !isCSVUpload(header) {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("only csv files are accepted"))
		return
	}

	result, err := h.ingest.ImportCSV(r.Context(), file)
	if err != nil {
		if result != nil && result.Summary.TotalProcessed > 0 {
			// A store failure aborted the batch part-way through; report
			// what did land so the client can resume rather than retry all
			common.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":   "import aborted by a storage failure",
				"summary": result.Summary,
				"errors":  result.Errors,
			})
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "import completed",
		"summary": result.Summary,
		"errors":  result.Errors,
	})
}

// isCSVUpload accepts a .csv filename or a CSV content type
func isCSVUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	contentType := header.Header.Get("Content-Type")
	return strings.Contains(contentType, "csv")
}

// filterFromQuery maps the listing query parameters onto a course filter
func filterFromQuery(r *http.Request) (courses.Filter, error) {
	q := r.URL.Query()
	filter := courses.Filter{
		UniversityCode:  strings.TrimSpace(q.Get("universityCode")),
		Level:           courses.Level(strings.TrimSpace(q.Get("courseLevel"))),
		DisciplineMajor: strings.TrimSpace(q.Get("disciplineMajor")),
		AttendanceType:  courses.AttendanceType(strings.TrimSpace(q.Get("attendanceType"))),
		SearchText:      strings.TrimSpace(q.Get("query")),
	}

	var err error
	if filter.MinTuition, err = optionalFloatParam(q.Get("minTuition"), "minTuition"); err != nil {
		return courses.Filter{}, err
	}
	if filter.MaxTuition, err = optionalFloatParam(q.Get("maxTuition"), "maxTuition"); err != nil {
		return courses.Filter{}, err
	}
	return filter, nil
}

func optionalFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.NewValidationError(name + " must be a number")
	}
	return &v, nil
}
