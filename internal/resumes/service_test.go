package resumes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/resume/form"
	"career-backend/resume/model"
)

func newTestService(repo Repo) *Service {
	svc := NewService(repo)
	var n atomic.Int64
	svc.newID = func() string { return fmt.Sprintf("resume-%d", n.Add(1)) }
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	svc.now = func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Minute) }
	return svc
}

func sampleDocument() model.ResumeDocument {
	return model.ResumeDocument{
		ContactInfo: model.ContactInfo{Email: "ada@example.com"},
		Summary:     "Engineer.",
		Skills:      []string{"Go"},
	}
}

func TestServiceSaveCreatesWithDefaultName(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	resume, created, err := svc.Save(context.Background(), "u1", SaveInput{Content: "# Resume"})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "resume-1", resume.ID)
	assert.Equal(t, form.DefaultResumeName, resume.Name)
	assert.Equal(t, "# Resume", resume.Content)
}

func TestServiceSaveComposesFromDocument(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	doc := sampleDocument()

	resume, _, err := svc.Save(context.Background(), "u1", SaveInput{Document: &doc, AuthorName: "Ada"})

	require.NoError(t, err)
	assert.Equal(t, svc.Compose(doc, "Ada"), resume.Content)
	require.NotNil(t, resume.Document)
	assert.Equal(t, doc.Skills, resume.Document.Skills)
}

func TestServiceSaveRequiresContent(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	_, _, err := svc.Save(context.Background(), "u1", SaveInput{Content: "   "})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceSaveUpdatesOwnedResume(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	first, _, err := svc.Save(ctx, "u1", SaveInput{Name: "Backend", Content: "v1"})
	require.NoError(t, err)

	second, created, err := svc.Save(ctx, "u1", SaveInput{ID: first.ID, Name: "Backend", Content: "v2"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := svc.Get(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
}

func TestServiceSaveRejectsOtherUsersResume(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	owned, _, err := svc.Save(ctx, "u1", SaveInput{Content: "mine"})
	require.NoError(t, err)

	_, _, err = svc.Save(ctx, "u2", SaveInput{ID: owned.ID, Content: "stolen"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Save(ctx, "u1", SaveInput{ID: "missing", Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

type brokenRepo struct {
	*MemoryRepo
}

func (brokenRepo) Create(context.Context, Resume) error {
	return errors.New("pq: relation \"resumes\" does not exist")
}

func TestServiceSaveHidesStorageErrors(t *testing.T) {
	svc := newTestService(brokenRepo{MemoryRepo: NewMemoryRepo()})

	_, _, err := svc.Save(context.Background(), "u1", SaveInput{Content: "x"})

	require.ErrorIs(t, err, ErrPersistence)
	assert.NotContains(t, err.Error(), "relation")
}

type blockingRepo struct {
	*MemoryRepo
	entered chan struct{}
	release chan struct{}
	creates atomic.Int32
}

func (r *blockingRepo) Create(ctx context.Context, resume Resume) error {
	if r.creates.Add(1) == 1 {
		close(r.entered)
	}
	<-r.release
	return r.MemoryRepo.Create(ctx, resume)
}

func TestServiceSaveCollapsesIdenticalConcurrentSaves(t *testing.T) {
	repo := &blockingRepo{
		MemoryRepo: NewMemoryRepo(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := newTestService(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 2)
	save := func(i int) {
		defer wg.Done()
		resume, _, err := svc.Save(ctx, "u1", SaveInput{Content: "same"})
		if err == nil {
			ids[i] = resume.ID
		}
	}

	wg.Add(1)
	go save(0)
	<-repo.entered
	wg.Add(1)
	go save(1)
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.creates.Load())
	assert.Equal(t, ids[0], ids[1])

	items, err := svc.List(ctx, "u1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestServiceListNewestFirst(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	a, _, err := svc.Save(ctx, "u1", SaveInput{Name: "A", Content: "a"})
	require.NoError(t, err)
	b, _, err := svc.Save(ctx, "u1", SaveInput{Name: "B", Content: "b"})
	require.NoError(t, err)
	_, _, err = svc.Save(ctx, "u2", SaveInput{Name: "C", Content: "c"})
	require.NoError(t, err)

	items, err := svc.List(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)

	page, err := svc.List(ctx, "u1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, a.ID, page[0].ID)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	ctx := context.Background()

	resume, _, err := svc.Save(ctx, "u1", SaveInput{Content: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", resume.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "u1", resume.ID))
	_, err = svc.Get(ctx, "u1", resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServicePreview(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	valid := svc.Preview(sampleDocument(), "Ada")
	assert.True(t, valid.Valid)
	assert.Empty(t, valid.Errors)
	assert.Contains(t, valid.Markdown, "Ada")

	invalid := svc.Preview(model.ResumeDocument{}, "Ada")
	assert.False(t, invalid.Valid)
	assert.Contains(t, invalid.Errors, "summary")
}

func TestServiceSaverAssignsIDOnFirstEditorSave(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	editor := form.NewEditor(sampleDocument(), "Ada")

	saved, err := editor.Save(context.Background(), svc.Saver("u1", "Ada"))
	require.NoError(t, err)
	assert.Equal(t, saved.ID, editor.ID())

	_, err = editor.Save(context.Background(), svc.Saver("u1", "Ada"))
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "u1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "Backend Engineer.md", DownloadName("Backend Engineer"))
	assert.Equal(t, "a_b.md", DownloadName("a/b"))
	assert.Equal(t, "resume.md", DownloadName("../../etc"))
}
