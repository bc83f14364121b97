package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/analytics"
	googleauth "promptstudio/internal/auth"
	"promptstudio/internal/criteria"
	"promptstudio/internal/frameworks"
	"promptstudio/internal/prompts"
	"promptstudio/internal/services/health"
	"promptstudio/internal/shared/config"
	"promptstudio/internal/shared/server"
	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/storage/db"
	"promptstudio/internal/shared/telemetry"
	"promptstudio/internal/usage"
	"promptstudio/internal/users"
	"promptstudio/internal/wizard"
	"promptstudio/internal/wizardsessions"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Sessions wizardsessions.Store
	Health   *health.Service

	UsersService     *users.Service
	UsageService     *usage.Service
	PromptsService   *prompts.Service
	CriteriaService  *criteria.Service
	AnalyticsService *analytics.Service
	WizardService    *wizardsessions.Service

	closers []func() error
}

// Build connects infrastructure, constructs services and wires routes. In
// dev-like environments a missing database or Redis falls back to memory.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg, Health: health.NewService()}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
		app.Health.Add("database", sqlDB.PingContext)
	}

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Sessions = sessions
	if rs, ok := sessions.(*wizardsessions.RedisStore); ok {
		app.closers = append(app.closers, rs.Close)
		app.Health.Add("redis", rs.Ping)
	}

	if err := buildServices(app); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.IsDevLike() {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildSessionStore(cfg config.Config) (wizardsessions.Store, error) {
	if cfg.RedisAddr == "" {
		return wizardsessions.NewMemoryStore(wizardsessions.DefaultTTL), nil
	}
	store, err := wizardsessions.NewRedisStore(wizardsessions.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_sessions", map[string]any{"reason": "redis unavailable", "error": err})
			return wizardsessions.NewMemoryStore(wizardsessions.DefaultTTL), nil
		}
		return nil, err
	}
	return store, nil
}

func buildServices(app *App) error {
	var (
		userRepo      users.Repo
		promptRepo    prompts.Repo
		criteriaRepo  criteria.Repo
		analyticsRepo analytics.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		promptRepo = &prompts.PGRepo{DB: app.DB}
		criteriaRepo = &criteria.PGRepo{DB: app.DB}
		analyticsRepo = &analytics.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		promptRepo = prompts.NewMemoryRepo()
		criteriaRepo = criteria.NewMemoryRepo()
		analyticsRepo = analytics.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	analyticsSvc := analytics.NewService(analyticsRepo)
	usageSvc := usage.NewService(userSvc, promptRepo, app.Config.FreePromptLimit)
	promptSvc := prompts.NewService(promptRepo, usageSvc, analyticsSvc)
	criteriaSvc := criteria.NewService(criteriaRepo, usageSvc)
	wizardSvc := wizardsessions.NewService(app.Sessions, wizard.Default(), analyticsSvc)

	googleAuth := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.UsersService = userSvc
	app.UsageService = usageSvc
	app.PromptsService = promptSvc
	app.CriteriaService = criteriaSvc
	app.AnalyticsService = analyticsSvc
	app.WizardService = wizardSvc

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		Health:      app.Health,
		Users:       users.NewHandler(userSvc),
		GoogleAuth:  googleAuth,
		Usage:       usage.NewHandler(usageSvc),
		Frameworks:  frameworks.NewHandler(),
		Wizard:      wizardsessions.NewHandler(wizardSvc),
		Prompts:     prompts.NewHandler(promptSvc),
		Criteria:    criteria.NewHandler(criteriaSvc),
		Analytics:   analytics.NewHandler(analyticsSvc),
		RateLimiter: middleware.NewRateLimiter(nil),
	})
	if app.Router == nil {
		return errors.New("failed to initialize router")
	}
	return nil
}
