package prompts

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/frameworks"
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

// RegisterRoutes attaches prompt routes. Generation is open to guests; the
// library requires a signed-in account.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/prompts/generate", h.generate)
	rg.POST("/prompts", h.save)

	library := rg.Group("/prompts", middleware.RequireLogin())
	library.GET("", h.list)
	library.GET("/:id", h.get)
	library.DELETE("/:id", h.delete)
	library.GET("/:id/export", h.export)
}

type generateRequest struct {
	FrameworkID string                 `json:"frameworkId"`
	Fields      frameworks.FieldValues `json:"fields"`
}

type saveRequest struct {
	Title       string                 `json:"title"`
	FrameworkID string                 `json:"frameworkId"`
	Fields      frameworks.FieldValues `json:"fields"`
}

type listResponse struct {
	Items  []Prompt `json:"items"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be JSON with frameworkId and fields", nil)
		return
	}
	c.Set(middleware.FrameworkIDKey, req.FrameworkID)
	content, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req.FrameworkID, req.Fields)
	if err != nil {
		if !writeFrameworkError(c, err) {
			respond.Internal(c, "prompts.generate_failed", err)
		}
		return
	}
	respond.OK(c, gin.H{"frameworkId": req.FrameworkID, "content": content})
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be JSON with title, frameworkId and fields", nil)
		return
	}
	c.Set(middleware.FrameworkIDKey, req.FrameworkID)
	p, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), SaveInput{
		Title:       req.Title,
		FrameworkID: req.FrameworkID,
		Fields:      req.Fields,
	})
	if err != nil {
		switch {
		case writeFrameworkError(c, err), usage.WriteError(c, err):
		case errors.Is(err, ErrTitleTooLong):
			respond.Error(c, http.StatusBadRequest, "title_too_long", fmt.Sprintf("title must be at most %d characters", maxTitleRunes), nil)
		default:
			respond.Internal(c, "prompts.save_failed", err)
		}
		return
	}
	c.Set(middleware.PromptIDKey, p.ID)
	respond.Created(c, p)
}

func (h *Handler) list(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_pagination", "limit and offset must be non-negative integers", nil)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), page)
	if err != nil {
		respond.Internal(c, "prompts.list_failed", err)
		return
	}
	page = page.normalized()
	respond.OK(c, listResponse{Items: items, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PromptIDKey, id)
	p, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeLookupError(c, "prompts.get_failed", err)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PromptIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeLookupError(c, "prompts.delete_failed", err)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) export(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PromptIDKey, id)
	format := Format(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(FormatText)))))

	file, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), id, format)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidFormat):
			respond.Error(c, http.StatusBadRequest, "invalid_format", "format must be one of txt, md, json", nil)
		case usage.WriteError(c, err):
		default:
			writeLookupError(c, "prompts.export_failed", err)
		}
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func writeLookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Prompt not found", nil)
		return
	}
	respond.Internal(c, op, err)
}

// writeFrameworkError maps catalog and form validation errors to 400s.
func writeFrameworkError(c *gin.Context, err error) bool {
	var missing *frameworks.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		respond.Error(c, http.StatusBadRequest, "missing_required_fields", err.Error(), gin.H{"fields": missing.Fields})
	case errors.Is(err, frameworks.ErrInvalidFrameworkType):
		respond.Error(c, http.StatusBadRequest, "invalid_framework_type", err.Error(), gin.H{"allowed": frameworks.IDs()})
	default:
		return false
	}
	return true
}

func parsePage(c *gin.Context) (Page, bool) {
	var page Page
	for key, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, false
		}
		*dst = n
	}
	return page, true
}
