package resumes

import (
	"time"

	"career-backend/resume/model"
)

// Resume is a saved Markdown resume plus the structured document it was composed from.
type Resume struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Name      string                `json:"name"`
	Content   string                `json:"content"`
	Document  *model.ResumeDocument `json:"document,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// SaveInput is a create (empty ID) or an update of an owned resume.
type SaveInput struct {
	ID       string
	Name     string
	Content  string
	Document *model.ResumeDocument
	// AuthorName heads the composed Markdown when Content is empty.
	AuthorName string
}

// Summary is the list view of a resume.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSummary(r Resume) Summary {
	return Summary{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}
