package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/content"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
	"resume-builder/internal/users"
)

const devJWTSecret = "dev-secret"

// App holds shared dependencies and the wired router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	LLM             llm.Client
	Tokens          *sharedauth.TokenService
	UsersRepo       users.Repo
	ResumesRepo     resumes.Store
	UsersService    *users.Service
	ResumesService  *resumes.Service
	ContentService  *content.Service
	HealthService   *health.Service
	UsersHandler    *users.Handler
	ResumesHandler  *resumes.Handler
	ContentHandler  *content.Handler
	TemplateHandler *templates.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares dependencies and the router. Without DATABASE_URL in a
// dev-like environment it falls back to in-memory repositories; without a
// model credential the content service runs on fallbacks only.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	applyDefaults(&cfg)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		secret = devJWTSecret
	}
	tokens, err := sharedauth.NewTokenService(secret, cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		LLM:    llmClient,
		Tokens: tokens,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Tokens:          app.Tokens,
		Health:          app.HealthService,
		UserHandler:     app.UsersHandler,
		ResumeHandler:   app.ResumesHandler,
		ContentHandler:  app.ContentHandler,
		TemplateHandler: app.TemplateHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"database":     app.HealthService.Check(ctx).Database,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    cfg.LLMModel,
		"ai_enabled":   llmClient != nil,
	})
	return app, nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = content.DefaultTimeout
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = 10
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.Migrate(ctx, sqlDB, db.Up)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := metrics.RegisterDBStats(sqlDB); err != nil {
		telemetry.Warn("bootstrap.db_metrics", map[string]any{"error": err})
	}
	return sqlDB, nil
}

// buildLLM returns nil when no credential is configured for the provider.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if !cfg.AIConfigured() {
		telemetry.Warn("bootstrap.ai_fallback_only", map[string]any{"provider": cfg.LLMProvider})
		return nil, nil
	}
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.AITimeout)
	default:
		return nil, nil
	}
}

func buildServices(app *App) {
	var userRepo users.Repo
	var resumeRepo resumes.Store
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo, sharedauth.NewBcryptHasher(app.Config.BcryptCost))
	resumeSvc := resumes.NewService(resumeRepo)
	contentSvc := content.NewService(app.LLM, app.Config.AITimeout)

	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.ContentService = contentSvc
	app.HealthService = health.NewService(app.DB, contentSvc.Configured())
	app.UsersHandler = users.NewHandler(userSvc, app.Tokens)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.ContentHandler = content.NewHandler(contentSvc)
	app.TemplateHandler = templates.NewHandler(resumeSvc)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     app.Config.GoogleClientID,
		ClientSecret: app.Config.GoogleClientSecret,
		RedirectURL:  app.Config.GoogleRedirectURL,
		UIRedirect:   app.Config.UIRedirectURL,
	}, userSvc, app.Tokens)
}

// Close releases the database pool and model client.
func (a *App) Close() error {
	var errs []error
	if closer, ok := a.LLM.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
