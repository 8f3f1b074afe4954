package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/resume/form"
	"career-backend/resume/model"
)

const maxBodySize = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group. Callers gate the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/preview", h.preview)
	rg.POST("/resumes", h.save)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/download", h.download)
	rg.DELETE("/resumes/:id", h.delete)
}

type previewRequest struct {
	Document   model.ResumeDocument `json:"document"`
	AuthorName string               `json:"authorName"`
}

func (h *Handler) preview(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}
	respond.OK(c, h.Svc.Preview(req.Document, authorName(c, req.AuthorName)))
}

type saveRequest struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Content    string                `json:"content"`
	Document   *model.ResumeDocument `json:"document"`
	AuthorName string                `json:"authorName"`
}

// save persists the Markdown buffer. With a document, the buffer starts as the
// composed document and a supplied content replaces it as a hand edit.
func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}
	if req.ID != "" {
		c.Set(middleware.ResumeIDKey, req.ID)
	}
	author := authorName(c, req.AuthorName)

	var (
		saved form.Saved
		err   error
	)
	if req.Document != nil {
		doc := req.Document.Clone()
		doc.ID = req.ID
		doc.Name = req.Name
		editor := form.NewEditor(doc, author)
		if req.Content != "" {
			editor.EditPreview(req.Content)
		}
		saved, err = editor.Save(c.Request.Context(), h.Svc.Saver(userID, author))
	} else {
		saved, err = h.Svc.Saver(userID, author).SaveResume(c.Request.Context(), form.SaveRequest{
			ID:      req.ID,
			Name:    req.Name,
			Content: req.Content,
		})
	}
	if err != nil {
		h.writeError(c, err, "failed to save resume")
		return
	}
	c.Set(middleware.ResumeIDKey, saved.ID)

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	respond.JSON(c, status, saved)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	resume, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) download(c *gin.Context) {
	resume, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+DownloadName(resume.Name)+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(resume.Content))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) load(c *gin.Context) (Resume, bool) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to fetch resume")
		return Resume{}, false
	}
	return resume, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "resume belongs to another user", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "content or document is required", nil)
	case errors.Is(err, form.ErrSaveInProgress):
		respond.Error(c, http.StatusConflict, "save_in_progress", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func authorName(c *gin.Context, fallback string) string {
	if name := middleware.UserNameFromContext(c); name != "" {
		return name
	}
	return fallback
}
