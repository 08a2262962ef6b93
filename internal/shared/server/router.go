package server

import (
	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/content"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/templates"
	"resume-builder/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Tokens          middleware.TokenVerifier
	Health          *health.Service
	UserHandler     *users.Handler
	ResumeHandler   *resumes.Handler
	ContentHandler  *content.Handler
	TemplateHandler *templates.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		metrics.GinMiddleware(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Errors(deps.Config.Env),
	)

	r.GET("/", health.Banner)
	if deps.Health != nil {
		r.GET("/health", deps.Health.Handle)
	}
	r.GET("/metrics", metrics.Handler())

	public := r.Group("/api")
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(public)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(public)
	}

	protected := r.Group("/api", middleware.Auth(deps.Tokens))
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(protected)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(protected)
	}
	if deps.TemplateHandler != nil {
		deps.TemplateHandler.RegisterRoutes(protected)
	}
	if deps.ContentHandler != nil {
		deps.ContentHandler.RegisterRoutes(protected)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.NotFound(c, "route not found")
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
