package render

import (
	"strings"

	"career-backend/resume/model"
)

const (
	sectionSeparator = "\n\n"
	contactSeparator = " | "
	presentMarker    = "Present"
)

// Section labels used for the repeated entry lists.
const (
	LabelExperience = "Work Experience"
	LabelEducation  = "Education"
	LabelProjects   = "Projects"
)

// Compose renders a resume document as Markdown. It is pure: identical inputs give identical output.
// Empty sections are omitted, and a document with nothing to show renders as "".
func Compose(doc model.ResumeDocument, authorName string) string {
	sections := []string{
		HeaderMarkdown(doc.ContactInfo, authorName),
		summaryMarkdown(doc.Summary),
		skillsMarkdown(doc.Skills),
		RenderEntries(doc.Experience, LabelExperience),
		RenderEntries(doc.Education, LabelEducation),
		RenderEntries(doc.Projects, LabelProjects),
	}

	out := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sectionSeparator)
}

// HeaderMarkdown renders the centered name heading and contact line.
// Without any contact part the whole block is empty, name included.
func HeaderMarkdown(info model.ContactInfo, authorName string) string {
	parts := ContactParts(info)
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`## <div align="center">`)
	b.WriteString(authorName)
	b.WriteString("</div>\n\n")
	b.WriteString(`<div align="center">`)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(parts, contactSeparator))
	b.WriteString("\n\n</div>")
	return b.String()
}

// ContactParts returns the present contact parts in display order.
func ContactParts(info model.ContactInfo) []string {
	var parts []string
	if present(info.Email) {
		parts = append(parts, "📧 "+info.Email)
	}
	if present(info.Mobile) {
		parts = append(parts, "📱 "+info.Mobile)
	}
	if present(info.Location) {
		parts = append(parts, "📍 "+info.Location)
	}
	if present(info.LinkedIn) {
		parts = append(parts, "💼 [LinkedIn]("+info.LinkedIn+")")
	}
	if present(info.GitHub) {
		parts = append(parts, "🐦 [Github]("+info.GitHub+")")
	}
	if present(info.Portfolio) {
		parts = append(parts, "🐦 [Portfolio]("+info.Portfolio+")")
	}
	return parts
}

func summaryMarkdown(summary string) string {
	if !present(summary) {
		return ""
	}
	return "## Professional Summary\n\n" + summary
}

func skillsMarkdown(skills []string) string {
	lines := make([]string, 0, len(skills))
	for _, skill := range skills {
		if present(skill) {
			lines = append(lines, "- "+skill)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Skills\n\n" + strings.Join(lines, "\n")
}

// RenderEntries renders one labeled entry section in input order. No entries renders "".
// It never validates: a past entry without an end date gets an empty right-hand side.
func RenderEntries(entries []model.Entry, label string) string {
	if len(entries) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, entryMarkdown(e))
	}
	return "## " + label + "\n\n" + strings.Join(blocks, "\n\n")
}

func entryMarkdown(e model.Entry) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(e.Title)
	b.WriteString(" @ ")
	b.WriteString(e.Organization)
	b.WriteString("\n")
	b.WriteString(DateRange(e))
	if e.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Description)
	}
	return b.String()
}

// DateRange renders "start - end", with "Present" for current entries.
func DateRange(e model.Entry) string {
	end := e.EndDate
	if e.Current {
		end = presentMarker
	}
	return e.StartDate + " - " + end
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
