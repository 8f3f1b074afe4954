package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// StepOneFields are validated as a batch before the onboarding wizard may leave step 1.
var StepOneFields = []string{"mobile", "location", "linkedin", "github", "portfolio"}

const (
	MinExperienceYears = 0
	MaxExperienceYears = 50
)

// OnboardingProfile is the validated, one-time setup payload handed to persistence.
type OnboardingProfile struct {
	Mobile        string   `json:"mobile"`
	Location      string   `json:"location"`
	LinkedIn      string   `json:"linkedin"`
	GitHub        string   `json:"github,omitempty"`
	Portfolio     string   `json:"portfolio,omitempty"`
	Industry      string   `json:"industry"`
	SubIndustries []string `json:"subIndustries"`
	Experience    int      `json:"experience"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
}

// OnboardingDraft is the staged, not yet validated onboarding input.
// Experience keeps the raw user text until validation coerces it.
type OnboardingDraft struct {
	Email         string          `json:"email,omitempty"`
	Mobile        string          `json:"mobile" validate:"min=7,max=20"`
	Location      string          `json:"location" validate:"min=2,max=100"`
	LinkedIn      string          `json:"linkedin" validate:"url,contains=linkedin.com"`
	GitHub        string          `json:"github,omitempty" validate:"omitempty,github_url"`
	Portfolio     string          `json:"portfolio,omitempty" validate:"omitempty,portfolio_url"`
	Industry      string          `json:"industry" validate:"required"`
	SubIndustries []string        `json:"subIndustries" validate:"min=1"`
	Experience    ExperienceInput `json:"experience"`
	Bio           string          `json:"bio" validate:"min=20,max=500"`
	Skills        []string        `json:"skills" validate:"min=1"`
}

// Clone returns a deep copy of the draft.
func (d OnboardingDraft) Clone() OnboardingDraft {
	out := d
	out.SubIndustries = cloneStrings(d.SubIndustries)
	out.Skills = cloneStrings(d.Skills)
	return out
}

// IndustryCatalog scopes industry and sub-industry choices.
type IndustryCatalog interface {
	Has(industryID string) bool
	Allows(industryID, subIndustry string) bool
}

var (
	errExperienceMissing = errors.New("experience is required")
	errExperienceNaN     = errors.New("experience is not a number")
)

// ExperienceInput holds years of experience as typed by the user.
// JSON numbers and strings are both accepted and kept verbatim.
type ExperienceInput string

// UnmarshalJSON accepts a JSON string, number or null.
func (e *ExperienceInput) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*e = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = ExperienceInput(s)
		return nil
	}
	*e = ExperienceInput(raw)
	return nil
}

// Years coerces the input to an integer. Blank input and non-integers are errors, never zero.
func (e ExperienceInput) Years() (int, error) {
	raw := strings.TrimSpace(string(e))
	if raw == "" {
		return 0, errExperienceMissing
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errExperienceNaN
	}
	return n, nil
}
