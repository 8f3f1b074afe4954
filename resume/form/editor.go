package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"career-backend/resume/model"
	"career-backend/resume/render"
)

// DefaultResumeName names a resume that was never given one.
const DefaultResumeName = "Untitled Resume"

var ErrSaveInProgress = errors.New("a save is already in progress")

// SaveRequest is what the editor hands to persistence.
type SaveRequest struct {
	Content  string
	ID       string
	Name     string
	Document *model.ResumeDocument
}

// Saved is the persisted record as reported back by persistence.
type Saved struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Saver persists resume content.
type Saver interface {
	SaveResume(ctx context.Context, req SaveRequest) (Saved, error)
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, req SaveRequest) (Saved, error)

func (f SaverFunc) SaveResume(ctx context.Context, req SaveRequest) (Saved, error) {
	return f(ctx, req)
}

// Editor couples a resume form with its Markdown preview buffer.
// Every accepted form change recomposes the preview and discards hand edits.
type Editor struct {
	form       *ResumeForm
	authorName string

	mu       sync.Mutex
	id       string
	name     string
	preview  string
	diverged bool

	saving atomic.Bool
}

func NewEditor(doc model.ResumeDocument, authorName string) *Editor {
	e := &Editor{
		form:       NewResumeForm(doc),
		authorName: authorName,
		id:         doc.ID,
		name:       doc.Name,
		preview:    render.Compose(doc, authorName),
	}
	e.form.OnChange(e.recompose)
	return e
}

func (e *Editor) recompose(doc model.ResumeDocument) {
	md := render.Compose(doc, e.authorName)
	e.mu.Lock()
	e.preview = md
	e.diverged = false
	e.mu.Unlock()
}

// Form exposes the underlying form for field edits.
func (e *Editor) Form() *ResumeForm { return e.form }

// Preview returns the current Markdown buffer.
func (e *Editor) Preview() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preview
}

// EditPreview replaces the preview with hand-edited Markdown.
func (e *Editor) EditPreview(markdown string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.preview = markdown
	e.diverged = markdown != render.Compose(e.form.Snapshot(), e.authorName)
}

// Diverged reports whether the preview holds hand edits the form does not reflect.
func (e *Editor) Diverged() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diverged
}

func (e *Editor) SetName(name string) {
	e.mu.Lock()
	e.name = name
	e.mu.Unlock()
}

// Name returns the resume name, DefaultResumeName when blank.
func (e *Editor) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if strings.TrimSpace(e.name) == "" {
		return DefaultResumeName
	}
	return e.name
}

// ID is empty until the first successful save.
func (e *Editor) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Save persists the preview buffer. Only one save runs at a time; a failed save keeps all entered data.
func (e *Editor) Save(ctx context.Context, saver Saver) (Saved, error) {
	if !e.saving.CompareAndSwap(false, true) {
		return Saved{}, ErrSaveInProgress
	}
	defer e.saving.Store(false)

	doc := e.form.Snapshot()
	req := SaveRequest{
		Content:  e.Preview(),
		ID:       e.ID(),
		Name:     e.Name(),
		Document: &doc,
	}

	saved, err := saver.SaveResume(ctx, req)
	if err != nil {
		return Saved{}, err
	}

	e.mu.Lock()
	if e.id == "" {
		e.id = saved.ID
	}
	e.mu.Unlock()
	return saved, nil
}
