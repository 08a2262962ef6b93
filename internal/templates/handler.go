package templates

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// ResumeFinder loads an owned resume.
type ResumeFinder interface {
	Get(ctx context.Context, id, ownerID string) (resumes.Resume, error)
}

// Handler serves rendered resumes.
type Handler struct {
	Resumes ResumeFinder
}

// NewHandler constructs a Handler.
func NewHandler(finder ResumeFinder) *Handler {
	return &Handler{Resumes: finder}
}

// RegisterRoutes attaches the render route to the (authenticated) router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/render", h.render)
	rg.GET("/templates", h.list)
}

func (h *Handler) list(c *gin.Context) {
	respond.Success(c, http.StatusOK, gin.H{"templates": Names()})
}

func (h *Handler) render(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	doc, err := h.Resumes.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			respond.NotFound(c, "Resume not found")
			return
		}
		_ = c.Error(err)
		return
	}

	name := strings.ToLower(strings.TrimSpace(c.DefaultQuery("template", doc.Template)))
	if !Valid(name) {
		respond.BadRequest(c, "unknown template", []map[string]string{
			{"field": "template", "issue": "must be one of: modern, creative, tech, executive"},
		})
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, doc, name); err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
