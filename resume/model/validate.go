package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field path such as "experience[0].endDate" to a message.
type FieldErrors map[string]string

// ValidationResult is the outcome of validating a document. It is a value, never an error.
type ValidationResult struct {
	Errors FieldErrors `json:"errors"`
}

// OK reports whether no field failed.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Paths returns the failing field paths in sorted order.
func (r ValidationResult) Paths() []string {
	out := make([]string, 0, len(r.Errors))
	for path := range r.Errors {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Only keeps errors at or below the given paths. No paths keeps everything.
func (r ValidationResult) Only(paths ...string) ValidationResult {
	if len(paths) == 0 {
		return r
	}
	out := ValidationResult{Errors: FieldErrors{}}
	for key, msg := range r.Errors {
		for _, p := range paths {
			if coversPath(p, key) {
				out.Errors[key] = msg
				break
			}
		}
	}
	return out
}

func coversPath(parent, key string) bool {
	if parent == key {
		return true
	}
	return strings.HasPrefix(key, parent+".") || strings.HasPrefix(key, parent+"[")
}

const tagRequiredUnlessCurrent = "required_unless_current"

var (
	githubURLPattern    = regexp.MustCompile(`^https?://(www\.)?github\.com/.+`)
	portfolioURLPattern = regexp.MustCompile(`^https?://.+\..+`)
)

var messages = map[string]string{
	"email|email":                     "Invalid email address",
	"summary|required":                "Professional summary is required",
	"skills|min":                      "Please select at least one skill",
	"skills|required":                 "Skill cannot be empty",
	"title|required":                  "Title is required",
	"organization|required":           "Organization is required",
	"startDate|required":              "Start date is required",
	"description|required":            "Description is required",
	"endDate|required_unless_current": "End date is required unless this is your current position",

	"mobile|min":              "Mobile number must be at least 7 digits",
	"mobile|max":              "Mobile number can't exceed 20 digits",
	"location|min":            "Location must be at least 2 characters",
	"location|max":            "Location can't exceed 100 characters",
	"linkedin|url":            "Please enter a valid LinkedIn URL",
	"linkedin|contains":       "Must be a LinkedIn profile URL",
	"github|github_url":       "Please enter a valid GitHub URL",
	"portfolio|portfolio_url": "Please enter a valid portfolio URL",
	"industry|required":       "Please select an industry",
	"industry|known":          "Please select a valid industry",
	"subIndustries|min":       "Please select at least one specialization",
	"subIndustries|allowed":   "Specialization does not belong to the selected industry",
	"bio|min":                 "Bio must be at least 20 characters",
	"bio|max":                 "Bio cannot exceed 500 characters",
	"experience|required":     "Experience is required",
	"experience|number":       "Please enter a valid number",
	"experience|min":          "Experience must be at least 0 years",
	"experience|max":          "Experience cannot exceed 50 years",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterStructValidation(entryStructLevel, Entry{})
		mustRegister(v, "github_url", githubURLPattern)
		mustRegister(v, "portfolio_url", portfolioURLPattern)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// entryStructLevel reports a missing end date against the endDate field itself.
func entryStructLevel(sl validator.StructLevel) {
	entry, ok := sl.Current().Interface().(Entry)
	if !ok {
		return
	}
	if !entry.Current && strings.TrimSpace(entry.EndDate) == "" {
		sl.ReportError(entry.EndDate, "endDate", "EndDate", tagRequiredUnlessCurrent, "")
	}
}

// Validate checks the resume rules and returns per-field errors.
func (d ResumeDocument) Validate() ValidationResult {
	return runValidator(d)
}

// ValidateOnboarding checks every onboarding rule, including the catalog-scoped industry rules and
// experience coercion. The profile is only meaningful when the result is OK.
func ValidateOnboarding(draft OnboardingDraft, catalog IndustryCatalog) (OnboardingProfile, ValidationResult) {
	result := runValidator(draft)

	years, err := draft.Experience.Years()
	switch {
	case errors.Is(err, errExperienceMissing):
		result.Errors["experience"] = messageFor("experience", "required")
	case err != nil:
		result.Errors["experience"] = messageFor("experience", "number")
	case years < MinExperienceYears:
		result.Errors["experience"] = messageFor("experience", "min")
	case years > MaxExperienceYears:
		result.Errors["experience"] = messageFor("experience", "max")
	}

	industry := strings.TrimSpace(draft.Industry)
	if catalog != nil && industry != "" {
		if !catalog.Has(industry) {
			result.Errors["industry"] = messageFor("industry", "known")
		} else {
			for i, sub := range draft.SubIndustries {
				if !catalog.Allows(industry, sub) {
					result.Errors[fmt.Sprintf("subIndustries[%d]", i)] = messageFor("subIndustries", "allowed")
				}
			}
		}
	}

	if !result.OK() {
		return OnboardingProfile{}, result
	}
	return OnboardingProfile{
		Mobile:        strings.TrimSpace(draft.Mobile),
		Location:      strings.TrimSpace(draft.Location),
		LinkedIn:      strings.TrimSpace(draft.LinkedIn),
		GitHub:        strings.TrimSpace(draft.GitHub),
		Portfolio:     strings.TrimSpace(draft.Portfolio),
		Industry:      industry,
		SubIndustries: cloneStrings(draft.SubIndustries),
		Experience:    years,
		Bio:           draft.Bio,
		Skills:        cloneStrings(draft.Skills),
	}, result
}

func runValidator(value any) ValidationResult {
	result := ValidationResult{Errors: FieldErrors{}}
	err := validatorInstance().Struct(value)
	if err == nil {
		return result
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Errors[""] = err.Error()
		return result
	}
	for _, fe := range fieldErrs {
		path := stripRoot(fe.Namespace())
		if _, exists := result.Errors[path]; exists {
			continue
		}
		result.Errors[path] = messageFor(leafName(path), fe.Tag())
	}
	return result
}

// stripRoot drops the struct type prefix ("ResumeDocument.") from a validator namespace.
func stripRoot(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func leafName(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.Index(path, "["); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func messageFor(field, tag string) string {
	if msg, ok := messages[field+"|"+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}
