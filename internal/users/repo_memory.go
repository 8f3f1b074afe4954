package users

import (
	"context"
	"sync"
	"time"

	"career-backend/resume/model"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	existing, ok := r.users[user.ID]
	if !ok {
		existing = User{ID: user.ID, CreatedAt: now}
	}
	existing.Email = user.Email
	if user.FullName != "" {
		existing.FullName = user.FullName
	}
	existing.UpdatedAt = now
	r.users[user.ID] = existing
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *MemoryRepo) CompleteOnboarding(ctx context.Context, userID string, profile model.OnboardingProfile) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	applyProfile(&user, profile)
	user.UpdatedAt = time.Now().UTC()
	r.users[userID] = user
	return cloneUser(user), nil
}

func cloneUser(u User) User {
	u.SubIndustries = append([]string{}, u.SubIndustries...)
	u.Skills = append([]string{}, u.Skills...)
	return u
}
