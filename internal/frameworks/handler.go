package frameworks

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/respond"
)

// Handler serves the read-only catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/frameworks", h.list)
	rg.GET("/frameworks/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"frameworks": All()})
}

func (h *Handler) get(c *gin.Context) {
	fw, ok := ByID(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "Framework not found", gin.H{"allowed": IDs()})
		return
	}
	respond.OK(c, fw)
}
