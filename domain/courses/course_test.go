package courses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "coursehub/pkg/errors"
)

func validCourse() *Course {
	return &Course{
		UniqueID:            "MIT-CS-101",
		Name:                "Introduction to Computer Science",
		University:          "MIT",
		UniversityCode:      "MIT",
		DisciplineMajor:     "Computer Science",
		Level:               LevelUndergraduate,
		AttendanceType:      AttendanceFullTime,
		FirstYearTuition:    30000,
		TotalTuition:        120000,
		ApplicationDeadline: "2026-12-01",
		CourseURL:           "https://example.edu/cs-101",
	}
}

func TestCourseValidate(t *testing.T) {
	t.Run("valid course", func(t *testing.T) {
		assert.NoError(t, validCourse().Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		c := &Course{}
		err := c.Validate()
		require.Error(t, err)

		appErr := pkgerrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.ErrorTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Details, "uniqueId")
		assert.Contains(t, appErr.Details, "name")
		assert.Contains(t, appErr.Details, "university")
		assert.Contains(t, appErr.Details, "courseLevel")
		assert.Contains(t, appErr.Details, "attendanceType")
	})

	t.Run("invalid level", func(t *testing.T) {
		c := validCourse()
		c.Level = "Bootcamp"
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, pkgerrors.GetAppError(err).Details, "courseLevel")
	})

	t.Run("invalid attendance type", func(t *testing.T) {
		c := validCourse()
		c.AttendanceType = "Weekend"
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, pkgerrors.GetAppError(err).Details, "attendanceType")
	})

	t.Run("negative tuition", func(t *testing.T) {
		c := validCourse()
		c.FirstYearTuition = -1
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, pkgerrors.GetAppError(err).Details, "firstYearTuition")
	})

	t.Run("whitespace-only name", func(t *testing.T) {
		c := validCourse()
		c.Name = "   "
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, pkgerrors.GetAppError(err).Details, "name")
	})
}

func TestCourseTouch(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh insert sets both timestamps", func(t *testing.T) {
		c := validCourse()
		c.Touch(now)
		assert.Equal(t, now, c.CreatedAt)
		assert.Equal(t, now, c.UpdatedAt)
	})

	t.Run("update preserves creation time", func(t *testing.T) {
		c := validCourse()
		created := now.Add(-24 * time.Hour)
		c.CreatedAt = created
		c.Touch(now)
		assert.Equal(t, created, c.CreatedAt)
		assert.Equal(t, now, c.UpdatedAt)
	})
}
