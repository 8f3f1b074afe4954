package industries

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
)

// Handler serves the industry catalog.
type Handler struct {
	Catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/industries", h.list)
	rg.GET("/industries/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"items": h.Catalog.List()})
}

func (h *Handler) get(c *gin.Context) {
	it, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "industry not found", nil)
		return
	}
	respond.OK(c, it)
}
