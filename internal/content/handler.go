package content

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const (
	msgSummaryRequired     = "Name and target role are required"
	msgDescriptionRequired = "Description is required"
	msgSkillsRequired      = "Target role is required"
	msgResumeRequired      = "Resume data is required"
)

// Handler exposes the content service over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the /ai routes to the (authenticated) router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ai := rg.Group("/ai")
	ai.POST("/generate-summary", h.generateSummary)
	ai.POST("/improve-description", h.improveDescription)
	ai.POST("/suggest-skills", h.suggestSkills)
	ai.POST("/analyze-resume", h.analyzeResume)
}

func (h *Handler) generateSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, msgSummaryRequired, nil)
		return
	}
	res, err := h.Svc.GenerateSummary(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err, msgSummaryRequired)
		return
	}
	c.Set("aiSource", string(res.Source))
	respond.Success(c, http.StatusOK, gin.H{"summary": res.Value, "source": res.Source})
}

func (h *Handler) improveDescription(c *gin.Context) {
	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, msgDescriptionRequired, nil)
		return
	}
	res, err := h.Svc.ImproveDescription(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err, msgDescriptionRequired)
		return
	}
	c.Set("aiSource", string(res.Source))
	respond.Success(c, http.StatusOK, gin.H{"improved": res.Value, "source": res.Source})
}

func (h *Handler) suggestSkills(c *gin.Context) {
	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, msgSkillsRequired, nil)
		return
	}
	res, err := h.Svc.SuggestSkills(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err, msgSkillsRequired)
		return
	}
	c.Set("aiSource", string(res.Source))
	respond.Success(c, http.StatusOK, gin.H{"skills": res.Value, "source": res.Source})
}

func (h *Handler) analyzeResume(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, msgResumeRequired, nil)
		return
	}
	res, err := h.Svc.AnalyzeResume(c.Request.Context(), req.ResumeData)
	if err != nil {
		h.fail(c, err, msgResumeRequired)
		return
	}
	c.Set("aiSource", string(res.Source))
	respond.Success(c, http.StatusOK, gin.H{"analysis": res.Value, "source": res.Source})
}

func (h *Handler) fail(c *gin.Context, err error, validationMsg string) {
	if errors.Is(err, ErrInvalidInput) {
		respond.BadRequest(c, validationMsg, nil)
		return
	}
	_ = c.Error(err)
}
