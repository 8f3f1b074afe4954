package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// OnboardingChecker reports whether a user finished onboarding.
type OnboardingChecker interface {
	IsOnboarded(ctx context.Context, userID string) (bool, error)
}

// RequireOnboarded refuses guests and users that have not finished onboarding.
func RequireOnboarded(checker OnboardingChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		onboarded, ok := onboardingState(c, checker)
		if !ok {
			return
		}
		if !onboarded {
			respond.Error(c, http.StatusForbidden, "onboarding_required", "Complete onboarding first", nil)
			return
		}
		c.Next()
	}
}

// RequireNotOnboarded refuses users that already finished onboarding.
func RequireNotOnboarded(checker OnboardingChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		onboarded, ok := onboardingState(c, checker)
		if !ok {
			return
		}
		if onboarded {
			respond.Error(c, http.StatusConflict, "already_onboarded", "Onboarding already completed", nil)
			return
		}
		c.Next()
	}
}

func onboardingState(c *gin.Context, checker OnboardingChecker) (bool, bool) {
	userID := UserIDFromContext(c)
	if userID == "" || IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Sign in to continue", nil)
		return false, false
	}
	onboarded, err := checker.IsOnboarded(c.Request.Context(), userID)
	if err != nil {
		telemetry.Error("onboarding.status_failed", map[string]any{
			"request_id": RequestIDFromContext(c),
			"user_id":    userID,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to check onboarding status", nil)
		return false, false
	}
	return onboarded, true
}
