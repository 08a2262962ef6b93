package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/db"
)

const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseMemory       = "memory"
)

// Service reports process and dependency health.
type Service struct {
	// DB is nil when the process runs on in-memory repositories.
	DB           *sql.DB
	AIConfigured bool
	PingTimeout  time.Duration
	now          func() time.Time
}

// Status is the /health payload.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	AIService string    `json:"ai_service"`
}

// NewService constructs a new health service.
func NewService(database *sql.DB, aiConfigured bool) *Service {
	return &Service{
		DB:           database,
		AIConfigured: aiConfigured,
		PingTimeout:  2 * time.Second,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Check returns the current status. The process is reported OK even when the
// database is unreachable so the payload stays informative.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{
		Status:    "OK",
		Timestamp: s.now(),
		Database:  DatabaseMemory,
		AIService: "not configured",
	}
	if s.AIConfigured {
		st.AIService = "configured"
	}
	if s.DB != nil {
		st.Database = DatabaseConnected
		if err := db.Ping(ctx, s.DB, s.PingTimeout); err != nil {
			st.Database = DatabaseDisconnected
		}
	}
	return st
}

// Handle serves GET /health.
func (s *Service) Handle(c *gin.Context) {
	respond.Plain(c, s.Check(c.Request.Context()))
}

// Banner serves GET / with the list of available endpoints.
func Banner(c *gin.Context) {
	respond.Plain(c, gin.H{
		"message": "Resume Builder API",
		"endpoints": gin.H{
			"health":  "/health",
			"metrics": "/metrics",
			"auth":    "/api/auth",
			"resumes": "/api/resumes",
			"render":  "/api/resumes/:id/render?template=modern|creative|tech|executive",
			"ai":      "/api/ai",
		},
	})
}
