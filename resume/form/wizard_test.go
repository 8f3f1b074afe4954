package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/resume/model"
)

type catalogStub map[string][]string

func (c catalogStub) Has(id string) bool {
	_, ok := c[id]
	return ok
}

func (c catalogStub) Allows(id, sub string) bool {
	for _, s := range c[id] {
		if s == sub {
			return true
		}
	}
	return false
}

var industries = catalogStub{
	"tech":    {"Software Development", "Data Science"},
	"finance": {"Banking"},
}

func filledWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard(industries, "ada@example.com", model.OnboardingDraft{})
	fields := map[string]any{
		"mobile":        "+1 555 0100",
		"location":      "Toronto",
		"linkedin":      "https://linkedin.com/in/ada",
		"industry":      "tech",
		"subIndustries": []string{"Data Science"},
		"experience":    "5",
		"bio":           "Engineer shipping services for a decade.",
		"skills":        []string{"Go"},
	}
	for _, path := range []string{"mobile", "location", "linkedin", "industry", "subIndustries", "experience", "bio", "skills"} {
		require.NoError(t, w.SetField(path, fields[path]))
	}
	return w
}

func TestWizardNextGatesOnStepOne(t *testing.T) {
	w := NewWizard(industries, "ada@example.com", model.OnboardingDraft{})

	res := w.Next()
	assert.False(t, res.OK())
	assert.Equal(t, StepContact, w.Step())
	assert.Contains(t, res.Errors, "linkedin")
	assert.NotContains(t, res.Errors, "bio")

	require.NoError(t, w.SetField("mobile", "5550100"))
	require.NoError(t, w.SetField("location", "Lagos"))
	require.NoError(t, w.SetField("linkedin", "https://linkedin.com/in/x"))
	assert.True(t, w.Next().OK())
	assert.Equal(t, StepProfile, w.Step())

	w.Back()
	assert.Equal(t, StepContact, w.Step())
	assert.Equal(t, "Lagos", w.Snapshot().Draft.Location)
}

func TestWizardIndustryChangeResetsSubIndustries(t *testing.T) {
	w := filledWizard(t)

	require.NoError(t, w.SetField("industry", "tech"))
	assert.Equal(t, []string{"Data Science"}, w.Snapshot().Draft.SubIndustries)

	require.NoError(t, w.SetField("industry", "finance"))
	assert.Empty(t, w.Snapshot().Draft.SubIndustries)

	res, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, model.OnboardingProfile) error {
		t.Fatal("must not submit without sub-industries")
		return nil
	}))
	require.NoError(t, err)
	assert.Contains(t, res.Errors, "subIndustries")
}

func TestWizardEmailIsReadOnly(t *testing.T) {
	w := NewWizard(industries, "ada@example.com", model.OnboardingDraft{})
	assert.ErrorIs(t, w.SetField("email", "x@y.z"), ErrReadOnlyField)
	assert.Equal(t, "ada@example.com", w.Snapshot().Draft.Email)
}

func TestWizardSubmitReturnsToStepOne(t *testing.T) {
	w := filledWizard(t)
	require.True(t, w.Next().OK())
	w.Back()
	require.NoError(t, w.SetField("linkedin", "https://example.com/in/me"))
	w.Next()

	res, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, model.OnboardingProfile) error {
		t.Fatal("must not submit an invalid step 1")
		return nil
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"linkedin"}, res.Paths())
	assert.Equal(t, StepContact, w.Step())
	assert.False(t, w.Completed())
}

func TestWizardSubmitSuccess(t *testing.T) {
	w := filledWizard(t)
	var got model.OnboardingProfile
	var states []WizardState
	w.OnChange(func(s WizardState) { states = append(states, s) })

	res, err := w.Submit(context.Background(), SubmitterFunc(func(_ context.Context, p model.OnboardingProfile) error {
		got = p
		return nil
	}))

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.True(t, w.Completed())
	assert.Equal(t, 5, got.Experience)
	require.NotEmpty(t, states)
	assert.True(t, states[len(states)-1].Completed)

	_, err = w.Submit(context.Background(), SubmitterFunc(func(context.Context, model.OnboardingProfile) error { return nil }))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.ErrorIs(t, w.SetField("bio", "changed after the fact"), ErrAlreadyCompleted)
}

func TestWizardSubmitFailureKeepsDraft(t *testing.T) {
	w := filledWizard(t)
	boom := errors.New("db down")

	_, err := w.Submit(context.Background(), SubmitterFunc(func(context.Context, model.OnboardingProfile) error {
		return boom
	}))

	assert.ErrorIs(t, err, boom)
	assert.False(t, w.Completed())
	assert.Equal(t, "Toronto", w.Snapshot().Draft.Location)
}

func TestWizardExperienceCoercion(t *testing.T) {
	w := filledWizard(t)

	require.NoError(t, w.SetField("experience", "abc"))
	assert.Equal(t, "Please enter a valid number", w.ValidateFields("experience").Errors["experience"])

	require.NoError(t, w.SetField("experience", float64(7)))
	assert.True(t, w.ValidateFields("experience").OK())
	assert.ErrorIs(t, w.SetField("experience", true), ErrInvalidValue)
}
