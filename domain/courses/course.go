package courses

import (
	"strings"
	"time"

	pkgerrors "coursehub/pkg/errors"
)

// Level is the academic level of a course
type Level string

const (
	LevelUndergraduate Level = "Undergraduate"
	LevelPostgraduate  Level = "Postgraduate"
	LevelDoctorate     Level = "Doctorate"
	LevelDiploma       Level = "Diploma"
	LevelCertificate   Level = "Certificate"
)

// Levels lists the valid course levels
var Levels = []Level{
	LevelUndergraduate,
	LevelPostgraduate,
	LevelDoctorate,
	LevelDiploma,
	LevelCertificate,
}

// IsValid reports whether the level is one of the fixed values
func (l Level) IsValid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// AttendanceType is the attendance mode of a course
type AttendanceType string

const (
	AttendanceFullTime AttendanceType = "Full-time"
	AttendancePartTime AttendanceType = "Part-time"
	AttendanceOnline   AttendanceType = "Online"
)

// AttendanceTypes lists the valid attendance modes
var AttendanceTypes = []AttendanceType{
	AttendanceFullTime,
	AttendancePartTime,
	AttendanceOnline,
}

// IsValid reports whether the attendance type is one of the fixed values
func (a AttendanceType) IsValid() bool {
	for _, v := range AttendanceTypes {
		if a == v {
			return true
		}
	}
	return false
}

// Course is the central catalog entity. UniqueID is the natural key used
// for upserts; CreatedAt and UpdatedAt are system-managed.
type Course struct {
	UniqueID        string         `json:"uniqueId" dynamodbav:"UniqueID"`
	Name            string         `json:"name" dynamodbav:"Name"`
	Code            string         `json:"code,omitempty" dynamodbav:"Code"`
	University      string         `json:"university" dynamodbav:"University"`
	UniversityCode  string         `json:"universityCode,omitempty" dynamodbav:"UniversityCode"`
	Department      string         `json:"department,omitempty" dynamodbav:"Department"`
	DisciplineMajor string         `json:"disciplineMajor,omitempty" dynamodbav:"DisciplineMajor"`
	Level           Level          `json:"courseLevel" dynamodbav:"Level"`
	AttendanceType  AttendanceType `json:"attendanceType" dynamodbav:"AttendanceType"`
	Description     string         `json:"description,omitempty" dynamodbav:"Description"`
	Summary         string         `json:"summary,omitempty" dynamodbav:"Summary"`

	Prerequisites     []string `json:"prerequisites,omitempty" dynamodbav:"Prerequisites"`
	LearningOutcomes  []string `json:"learningOutcomes,omitempty" dynamodbav:"LearningOutcomes"`
	AssessmentMethods []string `json:"assessmentMethods,omitempty" dynamodbav:"AssessmentMethods"`
	Keywords          []string `json:"keywords,omitempty" dynamodbav:"Keywords"`

	Credits          float64 `json:"credits" dynamodbav:"Credits"`
	DurationMonths   int     `json:"durationMonths" dynamodbav:"DurationMonths"`
	FirstYearTuition float64 `json:"firstYearTuition" dynamodbav:"FirstYearTuition"`
	TotalTuition     float64 `json:"totalTuition" dynamodbav:"TotalTuition"`
	ApplicationFee   float64 `json:"applicationFee" dynamodbav:"ApplicationFee"`

	// Optional admission thresholds; absent when the course has none
	GREScore       *float64 `json:"greScore,omitempty" dynamodbav:"GREScore,omitempty"`
	GMATScore      *float64 `json:"gmatScore,omitempty" dynamodbav:"GMATScore,omitempty"`
	SATScore       *float64 `json:"satScore,omitempty" dynamodbav:"SATScore,omitempty"`
	ACTScore       *float64 `json:"actScore,omitempty" dynamodbav:"ACTScore,omitempty"`
	Ranking        *int     `json:"ranking,omitempty" dynamodbav:"Ranking,omitempty"`
	AcceptanceRate *float64 `json:"acceptanceRate,omitempty" dynamodbav:"AcceptanceRate,omitempty"`

	EnglishRequired bool `json:"englishRequired" dynamodbav:"EnglishRequired"`
	GRERequired     bool `json:"greRequired" dynamodbav:"GRERequired"`
	GMATRequired    bool `json:"gmatRequired" dynamodbav:"GMATRequired"`
	SATRequired     bool `json:"satRequired" dynamodbav:"SATRequired"`
	ACTRequired     bool `json:"actRequired" dynamodbav:"ACTRequired"`
	FeeWaived       bool `json:"feeWaived" dynamodbav:"FeeWaived"`
	PartnerCourse   bool `json:"partnerCourse" dynamodbav:"PartnerCourse"`

	ApplicationDeadline string `json:"applicationDeadline" dynamodbav:"ApplicationDeadline"`
	CourseURL           string `json:"courseUrl" dynamodbav:"CourseURL"`
	BrochureURL         string `json:"brochureUrl,omitempty" dynamodbav:"BrochureURL"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// Validate enforces the field invariants shared by insert and upsert
func (c *Course) Validate() error {
	details := make(map[string]interface{})

	if strings.TrimSpace(c.UniqueID) == "" {
		details["uniqueId"] = "uniqueId is required"
	}
	if strings.TrimSpace(c.Name) == "" {
		details["name"] = "name is required"
	}
	if strings.TrimSpace(c.University) == "" {
		details["university"] = "university is required"
	}
	if !c.Level.IsValid() {
		details["courseLevel"] = "courseLevel must be one of Undergraduate, Postgraduate, Doctorate, Diploma, Certificate"
	}
	if !c.AttendanceType.IsValid() {
		details["attendanceType"] = "attendanceType must be one of Full-time, Part-time, Online"
	}
	if c.FirstYearTuition < 0 {
		details["firstYearTuition"] = "firstYearTuition must not be negative"
	}
	if c.TotalTuition < 0 {
		details["totalTuition"] = "totalTuition must not be negative"
	}
	if c.ApplicationFee < 0 {
		details["applicationFee"] = "applicationFee must not be negative"
	}
	if strings.TrimSpace(c.ApplicationDeadline) == "" {
		details["applicationDeadline"] = "applicationDeadline is required"
	}
	if strings.TrimSpace(c.CourseURL) == "" {
		details["courseUrl"] = "courseUrl is required"
	}

	if len(details) > 0 {
		return pkgerrors.NewValidationError("course validation failed").WithDetails(details)
	}
	return nil
}

// Touch updates the system-managed timestamps. A zero CreatedAt marks a
// fresh insert.
func (c *Course) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
