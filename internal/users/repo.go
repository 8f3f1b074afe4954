package users

import (
	"context"

	"career-backend/resume/model"
)

type Repo interface {
	// Upsert stores identity fields only. Profile and onboarding state are untouched.
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	// CompleteOnboarding writes the profile and flags the user onboarded atomically.
	CompleteOnboarding(ctx context.Context, userID string, profile model.OnboardingProfile) (User, error)
}
