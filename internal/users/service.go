package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/resume/model"
)

var errNotConfigured = errors.New("users service not configured")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureFromIdentity records the signed-in identity and returns the stored user.
func (s *Service) EnsureFromIdentity(ctx context.Context, identity Identity) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	if strings.TrimSpace(identity.ID) == "" || strings.TrimSpace(identity.Email) == "" {
		return User{}, fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	err := s.Repo.Upsert(ctx, User{
		ID:       identity.ID,
		Email:    identity.Email,
		FullName: strings.TrimSpace(identity.Name),
	})
	if err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, identity.ID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// IsOnboarded reports the onboarding flag. Unknown users have not onboarded.
func (s *Service) IsOnboarded(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsOnboarded, nil
}

func (s *Service) OnboardingStatus(ctx context.Context, identity Identity) (OnboardingStatus, error) {
	user, err := s.EnsureFromIdentity(ctx, identity)
	if err != nil {
		return OnboardingStatus{}, err
	}
	return OnboardingStatus{IsOnboarded: user.IsOnboarded, Email: user.Email}, nil
}

// SubmitOnboarding persists a validated profile and marks the user onboarded.
// It runs once per user. Storage failures are logged and surfaced as ErrPersistence.
func (s *Service) SubmitOnboarding(ctx context.Context, identity Identity, profile model.OnboardingProfile) (User, error) {
	existing, err := s.EnsureFromIdentity(ctx, identity)
	if err != nil {
		return User{}, s.onboardingFailed(identity.ID, err)
	}
	if existing.IsOnboarded {
		return User{}, ErrAlreadyOnboarded
	}
	user, err := s.Repo.CompleteOnboarding(context.WithoutCancel(ctx), identity.ID, profile)
	if err != nil {
		return User{}, s.onboardingFailed(identity.ID, err)
	}
	metrics.IncOnboardingSubmit(metrics.OutcomeSuccess)
	telemetry.Info("onboarding.completed", map[string]any{
		"user_id":  identity.ID,
		"industry": profile.Industry,
	})
	return user, nil
}

func (s *Service) onboardingFailed(userID string, err error) error {
	metrics.IncOnboardingSubmit(metrics.OutcomeFailure)
	telemetry.Error("onboarding.persist_failed", map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	return ErrPersistence
}
