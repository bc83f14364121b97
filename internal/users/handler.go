package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/server/respond"
	"promptstudio/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAuthRoutes attaches the public email/password routes.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

// RegisterAdminRoutes attaches admin-only user management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/users/:id/subscription", h.setSubscription)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and password are required", nil)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "An account with this email already exists", nil)
		case errors.Is(err, ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "invalid_email", "Email address is not valid", nil)
		case errors.Is(err, ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", err.Error(), nil)
		default:
			respond.Internal(c, "users.register_failed", err)
		}
		return
	}
	telemetry.Info("users.registered", map[string]any{"user_id": user.ID})
	h.issueSession(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and password are required", nil)
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Internal(c, "users.login_failed", err)
		return
	}
	h.issueSession(c, http.StatusOK, user)
}

func (h *Handler) issueSession(c *gin.Context, status int, user User) {
	token, err := h.Svc.IssueToken(user)
	if err != nil {
		respond.Internal(c, "users.token_failed", err)
		return
	}
	respond.JSON(c, status, sessionResponse{Token: token, User: user.ProfileAt(h.Svc.now())})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if middleware.IsGuest(c) {
		respond.OK(c, Profile{ID: userID, Tier: TierFree, IsGuest: true})
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Internal(c, "users.load_failed", err)
		return
	}
	respond.OK(c, user.ProfileAt(h.Svc.now()))
}

type subscriptionRequest struct {
	Tier      string     `json:"tier" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (h *Handler) setSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "tier is required", nil)
		return
	}
	user, err := h.Svc.SetSubscription(c.Request.Context(), c.Param("id"), Tier(strings.ToLower(req.Tier)), req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTier):
			respond.Error(c, http.StatusBadRequest, "invalid_tier", "tier must be free or premium", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Internal(c, "users.subscription_failed", err)
		}
		return
	}
	telemetry.Info("users.subscription_changed", map[string]any{
		"user_id":  user.ID,
		"tier":     user.Tier,
		"admin_id": middleware.UserIDFromContext(c),
	})
	respond.OK(c, user.ProfileAt(h.Svc.now()))
}

// RequireAdmin only lets signed-in admins through.
func RequireAdmin(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.IsGuest(c) {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Sign in to use this feature", nil)
			return
		}
		user, err := svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
		if err != nil && !errors.Is(err, ErrNotFound) {
			respond.Internal(c, "users.load_failed", err)
			return
		}
		if err != nil || !user.IsAdmin {
			respond.Error(c, http.StatusForbidden, "forbidden", "Admin access required", nil)
			return
		}
		c.Next()
	}
}
