package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const msgNotFound = "Resume not found"

// Handler wires HTTP handlers to the resume service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the (authenticated) router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{
		"count":   len(docs),
		"resumes": docs,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	doc, err := h.Svc.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"resume": doc})
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var fields Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), userID, fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("resumeId", doc.ID)
	respond.Success(c, http.StatusCreated, gin.H{"resume": doc})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	var fields Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), id, userID, fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"resume": doc})
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	if err := h.Svc.Delete(c.Request.Context(), id, userID); err != nil {
		h.fail(c, err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, msgNotFound)
	case errors.As(err, &verr):
		respond.BadRequest(c, "validation failed", verr.Fields)
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, "validation failed", nil)
	default:
		_ = c.Error(err)
	}
}
