package recommendations

import (
	"sort"
	"strconv"
	"strings"
)

// SkillLevel is the requested experience level
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// IsValid reports whether the skill level is one of the fixed values
func (s SkillLevel) IsValid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// DurationBand is the requested course length band
type DurationBand string

const (
	DurationShort  DurationBand = "short"
	DurationMedium DurationBand = "medium"
	DurationLong   DurationBand = "long"
)

// IsValid reports whether the duration band is one of the fixed values
func (d DurationBand) IsValid() bool {
	switch d {
	case DurationShort, DurationMedium, DurationLong:
		return true
	}
	return false
}

// MaxMonths maps a duration band to its maximum course length in months
func (d DurationBand) MaxMonths() (int, bool) {
	switch d {
	case DurationShort:
		return 12, true
	case DurationMedium:
		return 18, true
	case DurationLong:
		return 24, true
	}
	return 0, false
}

// Preferences are the inputs to the recommendation assembler
type Preferences struct {
	Topics     []string     `json:"topics"`
	SkillLevel SkillLevel   `json:"skillLevel"`
	Duration   DurationBand `json:"duration,omitempty"`
	MaxTuition *float64     `json:"maxTuition,omitempty"`
}

// Normalize applies defaults and makes the preferences order-independent:
// topics are trimmed, blanks dropped and sorted; skill level defaults to
// intermediate.
func (p Preferences) Normalize() Preferences {
	topics := make([]string, 0, len(p.Topics))
	for _, t := range p.Topics {
		if v := strings.TrimSpace(t); v != "" {
			topics = append(topics, v)
		}
	}
	sort.Strings(topics)
	p.Topics = topics

	if p.SkillLevel == "" {
		p.SkillLevel = SkillIntermediate
	}
	return p
}

// Candidate is a synthetic course suggestion produced by a generator
type Candidate struct {
	Name       string   `json:"name"`
	University string   `json:"university"`
	Discipline string   `json:"discipline"`
	Duration   string   `json:"duration"`
	Tuition    float64  `json:"tuition"`
	MatchScore int      `json:"matchScore"`
	Topics     []string `json:"topics"`
	Reason     string   `json:"reason"`
}

// DurationMonths extracts the numeric prefix of the candidate's listed
// duration, e.g. "18 months" -> 18. Returns false when there is none.
func (c Candidate) DurationMonths() (int, bool) {
	s := strings.TrimSpace(c.Duration)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	months, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return months, true
}

// FilterCandidates applies the tuition ceiling and duration band to a
// candidate pool, then orders by match score descending and keeps the
// top five.
func FilterCandidates(pool []Candidate, prefs Preferences) []Candidate {
	kept := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if prefs.MaxTuition != nil && c.Tuition > *prefs.MaxTuition {
			continue
		}
		if maxMonths, ok := prefs.Duration.MaxMonths(); ok {
			if months, hasMonths := c.DurationMonths(); hasMonths && months > maxMonths {
				continue
			}
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].MatchScore > kept[j].MatchScore
	})
	if len(kept) > 5 {
		kept = kept[:5]
	}
	return kept
}
