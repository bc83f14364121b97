package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/analytics"
	googleauth "promptstudio/internal/auth"
	"promptstudio/internal/criteria"
	"promptstudio/internal/frameworks"
	"promptstudio/internal/prompts"
	"promptstudio/internal/services/health"
	"promptstudio/internal/shared/config"
	"promptstudio/internal/shared/metrics"
	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/server/respond"
	"promptstudio/internal/usage"
	"promptstudio/internal/users"
	"promptstudio/internal/wizardsessions"
)

// RouterDeps are the handlers the API serves.
type RouterDeps struct {
	Config      config.Config
	Health      *health.Service
	Users       *users.Handler
	GoogleAuth  *googleauth.GoogleService
	Usage       *usage.Handler
	Frameworks  *frameworks.Handler
	Wizard      *wizardsessions.Handler
	Prompts     *prompts.Handler
	Criteria    *criteria.Handler
	Analytics   *analytics.Handler
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    middleware.DefaultRateLimitRules(),
			GroupFor: middleware.GroupByRoute("/prompts/generate", "/wizard/recommendation", "/export"),
			Limiter:  deps.RateLimiter,
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	deps.Users.RegisterAuthRoutes(api)
	deps.Users.RegisterRoutes(api)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	deps.Usage.RegisterRoutes(api)
	deps.Frameworks.RegisterRoutes(api)
	deps.Wizard.RegisterRoutes(api)
	deps.Prompts.RegisterRoutes(api)
	deps.Criteria.RegisterRoutes(api)

	admin := api.Group("/admin", middleware.RequireLogin(), users.RequireAdmin(deps.Users.Svc))
	deps.Users.RegisterAdminRoutes(admin)
	deps.Analytics.RegisterAdminRoutes(admin)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
