package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/resume/model"
)

func TestResumeFormSetScalarAndNestedFields(t *testing.T) {
	f := NewResumeForm(model.ResumeDocument{})

	require.NoError(t, f.SetField("summary", "Builder of things."))
	require.NoError(t, f.SetField("contactInfo.email", "ada@example.com"))
	require.NoError(t, f.SetField("skills", []string{"Go"}))
	require.NoError(t, f.SetField("skills[1]", "Rust"))

	doc := f.Snapshot()
	assert.Equal(t, "Builder of things.", doc.Summary)
	assert.Equal(t, "ada@example.com", doc.ContactInfo.Email)
	assert.Equal(t, []string{"Go", "Rust"}, doc.Skills)
}

func TestResumeFormEntryLifecycle(t *testing.T) {
	f := NewResumeForm(model.ResumeDocument{})

	require.NoError(t, f.SetField("experience[0]", map[string]any{
		"title":        "Engineer",
		"organization": "Acme",
		"startDate":    "2020",
	}))
	require.NoError(t, f.SetField("experience[0].current", true))
	require.NoError(t, f.SetField("experience[1]", model.Entry{Title: "Intern"}))

	doc := f.Snapshot()
	require.Len(t, doc.Experience, 2)
	assert.True(t, doc.Experience[0].Current)
	assert.Equal(t, "Acme", doc.Experience[0].Organization)

	require.NoError(t, f.SetField("experience[0]", nil))
	doc = f.Snapshot()
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Intern", doc.Experience[0].Title)
}

func TestResumeFormRejectsBadWrites(t *testing.T) {
	f := NewResumeForm(model.ResumeDocument{Skills: []string{"Go"}})
	calls := 0
	f.OnChange(func(model.ResumeDocument) { calls++ })

	assert.ErrorIs(t, f.SetField("hobbies", "chess"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField("summary", 42), ErrInvalidValue)
	assert.ErrorIs(t, f.SetField("skills[5]", "Rust"), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.SetField("experience[0].title", "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.SetField("experience[0].salary", "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, f.SetField("contactInfo.fax", "x"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField("education[x]", nil), ErrIndexOutOfRange)

	assert.Equal(t, 0, calls)
	assert.Equal(t, []string{"Go"}, f.Snapshot().Skills)
}

func TestResumeFormListenersGetCopies(t *testing.T) {
	f := NewResumeForm(model.ResumeDocument{Skills: []string{"Go"}})
	var order []string
	var seen model.ResumeDocument
	f.OnChange(func(d model.ResumeDocument) {
		order = append(order, "first")
		seen = d
		d.Skills[0] = "mutated"
	})
	unsubscribe := f.OnChange(func(model.ResumeDocument) { order = append(order, "second") })

	require.NoError(t, f.SetField("summary", "hi"))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, "hi", seen.Summary)
	assert.Equal(t, []string{"Go"}, f.Snapshot().Skills)

	unsubscribe()
	unsubscribe()
	require.NoError(t, f.SetField("summary", "again"))
	assert.Equal(t, []string{"first", "second", "first"}, order)
}

func TestResumeFormValidateFields(t *testing.T) {
	f := NewResumeForm(model.ResumeDocument{
		Experience: []model.Entry{{Title: "Engineer", Organization: "Acme", StartDate: "2020", Description: "Did."}},
	})

	res := f.ValidateFields("experience")
	assert.Equal(t, []string{"experience[0].endDate"}, res.Paths())

	require.NoError(t, f.SetField("experience[0].current", true))
	assert.True(t, f.ValidateFields("experience").OK())
	assert.False(t, f.Validate().OK())
}
