package model

// ResumeDocument is the structured resume payload edited through the form.
type ResumeDocument struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Summary     string      `json:"summary" validate:"required"`
	Skills      []string    `json:"skills" validate:"min=1,dive,required"`
	Experience  []Entry     `json:"experience" validate:"dive"`
	Education   []Entry     `json:"education" validate:"dive"`
	Projects    []Entry     `json:"projects" validate:"dive"`
}

// ContactInfo captures the header contact details of a resume.
type ContactInfo struct {
	Email     string `json:"email" validate:"email"`
	Mobile    string `json:"mobile,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Entry is one item of a repeated section (experience, education or projects).
// EndDate is only meaningful when Current is false.
type Entry struct {
	Title        string `json:"title" validate:"required"`
	Organization string `json:"organization" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate,omitempty"`
	Description  string `json:"description" validate:"required"`
	Current      bool   `json:"current"`
}

// Clone returns a deep copy so callers can hand out snapshots without sharing slices.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Skills = cloneStrings(d.Skills)
	out.Experience = cloneEntries(d.Experience)
	out.Education = cloneEntries(d.Education)
	out.Projects = cloneEntries(d.Projects)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	out := make([]Entry, len(in))
	copy(out, in)
	return out
}
