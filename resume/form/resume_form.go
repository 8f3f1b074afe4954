package form

import (
	"fmt"
	"sync"

	"career-backend/resume/model"
)

// ResumeForm holds the live resume document being edited. Accepted changes are pushed to listeners
// as deep-copied snapshots.
type ResumeForm struct {
	mu        sync.Mutex
	doc       model.ResumeDocument
	listeners registry[model.ResumeDocument]
}

// NewResumeForm starts a form from an initial document.
func NewResumeForm(initial model.ResumeDocument) *ResumeForm {
	return &ResumeForm{doc: initial.Clone()}
}

// SetField writes value at path, for example "summary", "skills[2]" or "experience[0].endDate".
// A rejected write leaves the document untouched and notifies nobody.
func (f *ResumeForm) SetField(path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	next := f.doc.Clone()
	if err := applyResumeField(&next, segs, value); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("set %s: %w", path, err)
	}
	f.doc = next
	fns := f.listeners.snapshot()
	f.mu.Unlock()

	for _, fn := range fns {
		fn(next.Clone())
	}
	return nil
}

// Snapshot returns a deep copy of the current document.
func (f *ResumeForm) Snapshot() model.ResumeDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Clone()
}

// Validate runs every resume rule.
func (f *ResumeForm) Validate() model.ValidationResult {
	return f.Snapshot().Validate()
}

// ValidateFields runs every rule but reports only errors at or below the given paths.
func (f *ResumeForm) ValidateFields(paths ...string) model.ValidationResult {
	return f.Validate().Only(paths...)
}

// OnChange registers fn for accepted changes. The returned func unregisters it.
func (f *ResumeForm) OnChange(fn func(model.ResumeDocument)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.listeners.add(fn)
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.listeners.remove(id)
			f.mu.Unlock()
		})
	}
}

func applyResumeField(doc *model.ResumeDocument, segs []segment, value any) error {
	head := segs[0]
	switch head.name {
	case "summary":
		if head.slot || len(segs) != 1 {
			return ErrUnknownField
		}
		s, ok := value.(string)
		if !ok {
			return ErrInvalidValue
		}
		doc.Summary = s
		return nil
	case "contactInfo":
		if head.slot {
			return ErrUnknownField
		}
		return applyContact(&doc.ContactInfo, segs[1:], value)
	case "skills":
		if len(segs) != 1 {
			return ErrUnknownField
		}
		return setStringList(&doc.Skills, head, value)
	case "experience":
		return applyEntries(&doc.Experience, segs, value)
	case "education":
		return applyEntries(&doc.Education, segs, value)
	case "projects":
		return applyEntries(&doc.Projects, segs, value)
	}
	return ErrUnknownField
}

func applyContact(info *model.ContactInfo, rest []segment, value any) error {
	if len(rest) == 0 {
		switch v := value.(type) {
		case model.ContactInfo:
			*info = v
			return nil
		case map[string]any:
			next := *info
			for key, item := range v {
				if err := setContactField(&next, key, item); err != nil {
					return err
				}
			}
			*info = next
			return nil
		}
		return ErrInvalidValue
	}
	if len(rest) != 1 || rest[0].slot {
		return ErrUnknownField
	}
	return setContactField(info, rest[0].name, value)
}

func setContactField(info *model.ContactInfo, name string, value any) error {
	var target *string
	switch name {
	case "email":
		target = &info.Email
	case "mobile":
		target = &info.Mobile
	case "location":
		target = &info.Location
	case "linkedin":
		target = &info.LinkedIn
	case "github":
		target = &info.GitHub
	case "portfolio":
		target = &info.Portfolio
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

func applyEntries(list *[]model.Entry, segs []segment, value any) error {
	head := segs[0]
	if !head.slot {
		if len(segs) != 1 {
			return ErrUnknownField
		}
		switch v := value.(type) {
		case nil:
			*list = nil
		case []model.Entry:
			*list = append([]model.Entry(nil), v...)
		default:
			return ErrInvalidValue
		}
		return nil
	}

	cur := *list
	if head.index > len(cur) {
		return ErrIndexOutOfRange
	}
	if len(segs) == 2 {
		if head.index == len(cur) || segs[1].slot {
			return ErrIndexOutOfRange
		}
		return setEntryField(&cur[head.index], segs[1].name, value)
	}
	if len(segs) > 2 {
		return ErrUnknownField
	}

	var entry model.Entry
	if head.index < len(cur) {
		entry = cur[head.index]
	}
	switch v := value.(type) {
	case nil:
		if head.index == len(cur) {
			return ErrIndexOutOfRange
		}
		*list = append(cur[:head.index:head.index], cur[head.index+1:]...)
		return nil
	case model.Entry:
		entry = v
	case map[string]any:
		for key, item := range v {
			if err := setEntryField(&entry, key, item); err != nil {
				return err
			}
		}
	default:
		return ErrInvalidValue
	}
	if head.index == len(cur) {
		*list = append(cur, entry)
	} else {
		cur[head.index] = entry
	}
	return nil
}

func setEntryField(e *model.Entry, name string, value any) error {
	if name == "current" {
		b, ok := value.(bool)
		if !ok {
			return ErrInvalidValue
		}
		e.Current = b
		return nil
	}
	var target *string
	switch name {
	case "title":
		target = &e.Title
	case "organization":
		target = &e.Organization
	case "startDate":
		target = &e.StartDate
	case "endDate":
		target = &e.EndDate
	case "description":
		target = &e.Description
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
