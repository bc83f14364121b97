package usage

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/server/respond"
)

// Handler exposes usage endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Internal(c, "usage.fetch_failed", err)
		}
		return
	}
	respond.OK(c, u)
}

// WriteError maps entitlement errors onto the HTTP envelope. It reports
// whether err was one of them.
func WriteError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrLoginRequired):
		respond.Error(c, http.StatusUnauthorized, "login_required", "Sign in to use this feature", nil)
	case errors.Is(err, ErrLimitReached):
		respond.Error(c, http.StatusPaymentRequired, "limit_reached", "Free plan prompt limit reached; upgrade to premium to save more", nil)
	case errors.Is(err, ErrPremiumRequired):
		respond.Error(c, http.StatusForbidden, "premium_required", "This feature requires a premium subscription", nil)
	default:
		return false
	}
	return true
}
