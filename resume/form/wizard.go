package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"career-backend/resume/model"
)

const (
	StepContact = 1
	StepProfile = 2
)

var (
	ErrAlreadyCompleted = errors.New("onboarding already completed")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// ProfileSubmitter persists a validated onboarding profile.
type ProfileSubmitter interface {
	SubmitProfile(ctx context.Context, profile model.OnboardingProfile) error
}

// SubmitterFunc adapts a function to ProfileSubmitter.
type SubmitterFunc func(ctx context.Context, profile model.OnboardingProfile) error

func (f SubmitterFunc) SubmitProfile(ctx context.Context, profile model.OnboardingProfile) error {
	return f(ctx, profile)
}

// WizardState is a copy of the wizard as seen by listeners.
type WizardState struct {
	Step      int                   `json:"step"`
	Draft     model.OnboardingDraft `json:"draft"`
	Completed bool                  `json:"completed"`
}

// Wizard stages onboarding input over two steps. Step 1 holds the contact links and is
// validated as a batch before step 2 is reachable.
type Wizard struct {
	catalog model.IndustryCatalog

	mu        sync.Mutex
	draft     model.OnboardingDraft
	step      int
	completed bool
	listeners registry[WizardState]

	submitting atomic.Bool
}

// NewWizard starts on step 1. The email comes from identity and cannot be edited.
func NewWizard(catalog model.IndustryCatalog, email string, draft model.OnboardingDraft) *Wizard {
	d := draft.Clone()
	d.Email = email
	return &Wizard{catalog: catalog, draft: d, step: StepContact}
}

func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Completed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.completed
}

// Snapshot returns a deep copy of the wizard state.
func (w *Wizard) Snapshot() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Wizard) stateLocked() WizardState {
	return WizardState{Step: w.step, Draft: w.draft.Clone(), Completed: w.completed}
}

// OnChange registers fn for accepted changes. The returned func unregisters it.
func (w *Wizard) OnChange(fn func(WizardState)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.listeners.add(fn)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.listeners.remove(id)
			w.mu.Unlock()
		})
	}
}

// mutate applies fn under the lock and notifies listeners when it succeeds.
func (w *Wizard) mutate(fn func() error) error {
	w.mu.Lock()
	if err := fn(); err != nil {
		w.mu.Unlock()
		return err
	}
	state := w.stateLocked()
	fns := w.listeners.snapshot()
	w.mu.Unlock()

	for _, notify := range fns {
		notify(WizardState{Step: state.Step, Draft: state.Draft.Clone(), Completed: state.Completed})
	}
	return nil
}

// SetField stages one onboarding field. Choosing a different industry clears the sub-industries.
func (w *Wizard) SetField(path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}
	return w.mutate(func() error {
		if w.completed {
			return ErrAlreadyCompleted
		}
		next := w.draft.Clone()
		if err := applyDraftField(&next, segs, value); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
		w.draft = next
		return nil
	})
}

// ValidateFields runs every onboarding rule and reports only the requested paths.
func (w *Wizard) ValidateFields(paths ...string) model.ValidationResult {
	draft := w.Snapshot().Draft
	_, res := model.ValidateOnboarding(draft, w.catalog)
	return res.Only(paths...)
}

// Next validates the step 1 batch and advances only when it passes.
func (w *Wizard) Next() model.ValidationResult {
	res := w.ValidateFields(model.StepOneFields...)
	if res.OK() {
		_ = w.mutate(func() error {
			w.step = StepProfile
			return nil
		})
	}
	return res
}

// Back returns to step 1. Staged values are kept.
func (w *Wizard) Back() {
	_ = w.mutate(func() error {
		w.step = StepContact
		return nil
	})
}

// Submit re-validates step 1, then everything, then hands the profile to submitter.
// Validation failures come back as a result with a nil error; the wizard is only
// marked completed once submitter succeeds.
func (w *Wizard) Submit(ctx context.Context, submitter ProfileSubmitter) (model.ValidationResult, error) {
	if w.Completed() {
		return model.ValidationResult{}, ErrAlreadyCompleted
	}
	if !w.submitting.CompareAndSwap(false, true) {
		return model.ValidationResult{}, ErrSubmitInProgress
	}
	defer w.submitting.Store(false)

	draft := w.Snapshot().Draft
	profile, res := model.ValidateOnboarding(draft, w.catalog)

	if stepOne := res.Only(model.StepOneFields...); !stepOne.OK() {
		w.setStep(StepContact)
		return stepOne, nil
	}
	w.setStep(StepProfile)
	if !res.OK() {
		return res, nil
	}

	if err := submitter.SubmitProfile(ctx, profile); err != nil {
		return res, err
	}

	_ = w.mutate(func() error {
		w.completed = true
		return nil
	})
	return res, nil
}

func (w *Wizard) setStep(step int) {
	_ = w.mutate(func() error {
		w.step = step
		return nil
	})
}

func applyDraftField(d *model.OnboardingDraft, segs []segment, value any) error {
	head := segs[0]
	if len(segs) != 1 {
		return ErrUnknownField
	}

	switch head.name {
	case "email":
		return ErrReadOnlyField
	case "subIndustries":
		return setStringList(&d.SubIndustries, head, value)
	case "skills":
		return setStringList(&d.Skills, head, value)
	case "experience":
		if head.slot {
			return ErrUnknownField
		}
		raw, err := experienceText(value)
		if err != nil {
			return err
		}
		d.Experience = model.ExperienceInput(raw)
		return nil
	}

	if head.slot {
		return ErrUnknownField
	}
	var target *string
	switch head.name {
	case "mobile":
		target = &d.Mobile
	case "location":
		target = &d.Location
	case "linkedin":
		target = &d.LinkedIn
	case "github":
		target = &d.GitHub
	case "portfolio":
		target = &d.Portfolio
	case "bio":
		target = &d.Bio
	case "industry":
		s, ok := value.(string)
		if !ok {
			return ErrInvalidValue
		}
		if s != d.Industry {
			d.SubIndustries = []string{}
		}
		d.Industry = s
		return nil
	default:
		return ErrUnknownField
	}
	s, ok := value.(string)
	if !ok {
		return ErrInvalidValue
	}
	*target = s
	return nil
}

// experienceText keeps experience as text, the way it was typed.
func experienceText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", ErrInvalidValue
}
