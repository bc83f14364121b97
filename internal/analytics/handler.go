package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/respond"
)

const defaultWindow = 30 * 24 * time.Hour

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches the dashboard summary. The group must already
// be restricted to admins.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	since, ok := parseSince(c.Query("since"), h.Svc.now())
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_since", "since must be RFC3339 or a day count like 7d", nil)
		return
	}
	out, err := h.Svc.Summary(c.Request.Context(), since)
	if err != nil {
		respond.Internal(c, "analytics.summary_failed", err)
		return
	}
	respond.OK(c, out)
}

// parseSince accepts "", "<n>d" or an RFC3339 timestamp.
func parseSince(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Add(-defaultWindow), true
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		return now.Add(-time.Duration(n) * 24 * time.Hour), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
