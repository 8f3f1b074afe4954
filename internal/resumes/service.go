package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/util"
	"career-backend/resume/form"
	"career-backend/resume/model"
	"career-backend/resume/render"
)

// Preview is a composed document together with its validation outcome.
type Preview struct {
	Markdown string            `json:"markdown"`
	Valid    bool              `json:"valid"`
	Errors   model.FieldErrors `json:"errors"`
}

// Service contains business logic for saved resumes.
type Service struct {
	Repo Repo

	now    func() time.Time
	newID  func() string
	flight singleflight.Group
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func (s *Service) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// Compose renders doc as Markdown headed by authorName.
func (s *Service) Compose(doc model.ResumeDocument, authorName string) string {
	start := time.Now()
	md := render.Compose(doc, authorName)
	metrics.ObserveCompose(time.Since(start))
	return md
}

func (s *Service) Preview(doc model.ResumeDocument, authorName string) Preview {
	res := doc.Validate()
	errs := res.Errors
	if errs == nil {
		errs = model.FieldErrors{}
	}
	return Preview{
		Markdown: s.Compose(doc, authorName),
		Valid:    res.OK(),
		Errors:   errs,
	}
}

// Save creates a resume when in.ID is empty and otherwise updates an owned one.
// Identical concurrent saves collapse into a single write.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Resume, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, false, ErrInvalidInput
	}
	if s.Repo == nil {
		return Resume{}, false, errors.New("missing dependencies")
	}
	if strings.TrimSpace(in.Content) == "" && in.Document != nil {
		in.Content = s.Compose(*in.Document, in.AuthorName)
	}
	if strings.TrimSpace(in.Content) == "" {
		return Resume{}, false, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = form.DefaultResumeName
	}

	key := userID + "|" + in.ID + "|" + util.HashContent(in.Name+"\x00"+in.Content)
	// A started write is not abandoned when the caller goes away.
	writeCtx := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do(key, func() (any, error) {
		return s.save(writeCtx, userID, in)
	})
	if err != nil {
		metrics.IncResumeSave(metrics.OutcomeFailure)
		return Resume{}, false, err
	}
	metrics.IncResumeSave(metrics.OutcomeSuccess)
	out := v.(savedResult)
	return cloneResume(out.resume), out.created, nil
}

type savedResult struct {
	resume  Resume
	created bool
}

func (s *Service) save(ctx context.Context, userID string, in SaveInput) (savedResult, error) {
	now := s.clock()
	resume := Resume{
		ID:        in.ID,
		UserID:    userID,
		Name:      in.Name,
		Content:   in.Content,
		Document:  in.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if resume.Document != nil {
		doc := resume.Document.Clone()
		doc.ID = ""
		doc.Name = ""
		resume.Document = &doc
	}

	if in.ID == "" {
		resume.ID = s.id()
		if err := s.Repo.Create(ctx, resume); err != nil {
			return savedResult{}, s.persistFailed("resume.create_failed", userID, resume.ID, err)
		}
		telemetry.Info("resume.created", map[string]any{"user_id": userID, "resume_id": resume.ID})
		return savedResult{resume: resume, created: true}, nil
	}

	existing, err := s.Repo.GetByID(ctx, userID, in.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return savedResult{}, err
		}
		return savedResult{}, s.persistFailed("resume.load_failed", userID, in.ID, err)
	}
	resume.CreatedAt = existing.CreatedAt
	if err := s.Repo.Update(ctx, resume); err != nil {
		if errors.Is(err, ErrNotFound) {
			return savedResult{}, err
		}
		return savedResult{}, s.persistFailed("resume.update_failed", userID, in.ID, err)
	}
	telemetry.Info("resume.updated", map[string]any{"user_id": userID, "resume_id": resume.ID})
	return savedResult{resume: resume}, nil
}

func (s *Service) persistFailed(event, userID, resumeID string, err error) error {
	telemetry.Error(event, map[string]any{
		"user_id":   userID,
		"resume_id": resumeID,
		"error":     err.Error(),
	})
	return ErrPersistence
}

// Saver adapts the service to an editor save for one user.
func (s *Service) Saver(userID, authorName string) form.Saver {
	return form.SaverFunc(func(ctx context.Context, req form.SaveRequest) (form.Saved, error) {
		resume, _, err := s.Save(ctx, userID, SaveInput{
			ID:         req.ID,
			Name:       req.Name,
			Content:    req.Content,
			Document:   req.Document,
			AuthorName: authorName,
		})
		if err != nil {
			return form.Saved{}, err
		}
		return form.Saved{ID: resume.ID, Name: resume.Name, UpdatedAt: resume.UpdatedAt}, nil
	})
}

func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns resumes for a user, most recently updated first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Summary, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		out = append(out, toSummary(item))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		return err
	}
	telemetry.Info("resume.deleted", map[string]any{"user_id": userID, "resume_id": resumeID})
	return nil
}

// DownloadName is the attachment file name for a resume.
func DownloadName(name string) string {
	clean, err := util.SanitizeFileName(name)
	if err != nil {
		clean = "resume"
	}
	return clean + ".md"
}
