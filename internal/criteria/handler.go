package criteria

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/server/respond"
	"promptstudio/internal/usage"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/criteria", h.list)
	rg.POST("/criteria", h.create)
	rg.DELETE("/criteria/:id", middleware.RequireLogin(), h.delete)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.ListForUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Internal(c, "criteria.list_failed", err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be JSON with a name", nil)
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.Name, req.Description)
	if err != nil {
		switch {
		case usage.WriteError(c, err):
		case errors.Is(err, ErrInvalidName):
			respond.Error(c, http.StatusBadRequest, "invalid_name", err.Error(), nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate_criterion", err.Error(), nil)
		default:
			respond.Internal(c, "criteria.create_failed", err)
		}
		return
	}
	respond.Created(c, created)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Criterion not found", nil)
			return
		}
		respond.Internal(c, "criteria.delete_failed", err)
		return
	}
	respond.NoContent(c)
}
