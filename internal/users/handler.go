package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/resume/form"
	"career-backend/resume/model"
)

type Handler struct {
	Svc     *Service
	Catalog model.IndustryCatalog
}

func NewHandler(svc *Service, catalog model.IndustryCatalog) *Handler {
	return &Handler{Svc: svc, Catalog: catalog}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.GET("/onboarding/status", h.status)
	rg.POST("/onboarding/step1", h.validateStepOne)
	rg.POST("/onboarding", middleware.RequireNotOnboarded(h.Svc), h.submit)
}

func (h *Handler) identity(c *gin.Context) (Identity, bool) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return Identity{}, false
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" || middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Sign in to continue", nil)
		return Identity{}, false
	}
	return Identity{
		ID:    userID,
		Email: middleware.UserEmailFromContext(c),
		Name:  middleware.UserNameFromContext(c),
	}, true
}

func (h *Handler) me(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	user, err := h.Svc.EnsureFromIdentity(c.Request.Context(), identity)
	if errors.Is(err, ErrInvalidInput) {
		user, err = h.Svc.GetByID(c.Request.Context(), identity.ID)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) status(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	status, err := h.Svc.OnboardingStatus(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_input", "identity is missing an email", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to check onboarding status", nil)
		return
	}
	respond.OK(c, status)
}

// validateStepOne checks the contact batch so the client can advance the wizard.
func (h *Handler) validateStepOne(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var draft model.OnboardingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}
	wizard := form.NewWizard(h.Catalog, identity.Email, draft)
	res := wizard.Next()
	respond.OK(c, gin.H{
		"valid":  res.OK(),
		"step":   wizard.Step(),
		"errors": errorsOrEmpty(res),
	})
}

func (h *Handler) submit(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var draft model.OnboardingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	var saved User
	wizard := form.NewWizard(h.Catalog, identity.Email, draft)
	res, err := wizard.Submit(c.Request.Context(), form.SubmitterFunc(func(ctx context.Context, profile model.OnboardingProfile) error {
		user, err := h.Svc.SubmitOnboarding(ctx, identity, profile)
		if err != nil {
			return err
		}
		saved = user
		return nil
	}))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", "identity is missing an email", nil)
		case errors.Is(err, ErrAlreadyOnboarded):
			respond.Error(c, http.StatusConflict, "already_onboarded", "Onboarding already completed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", ErrPersistence.Error(), nil)
		}
		return
	}
	if !res.OK() {
		metrics.IncOnboardingSubmit(metrics.OutcomeInvalid)
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "Please fix the highlighted fields", gin.H{
			"step":   wizard.Step(),
			"errors": res.Errors,
		})
		return
	}
	respond.OK(c, saved)
}

func errorsOrEmpty(res model.ValidationResult) model.FieldErrors {
	if res.Errors == nil {
		return model.FieldErrors{}
	}
	return res.Errors
}
