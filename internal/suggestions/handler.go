package suggestions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/job-description", h.jobDescription)
	rg.POST("/ai/project-description", h.projectDescription)
	rg.POST("/ai/summary", h.summary)
	rg.POST("/ai/skills", h.skills)
	rg.POST("/ai/cover-letter", h.coverLetter)
	rg.POST("/ai/ats-check", h.ats)
}

func (h *Handler) jobDescription(c *gin.Context) {
	var req JobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	text, err := h.Svc.JobDescription(c.Request.Context(), req.Position, req.Company, req.Industry)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"suggestion": text})
}

func (h *Handler) projectDescription(c *gin.Context) {
	var req ProjectDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	text, err := h.Svc.ProjectDescription(c.Request.Context(), req.Name, req.Technologies, req.ProjectType)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"suggestion": text})
}

func (h *Handler) summary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	text, err := h.Svc.Summary(c.Request.Context(), req.PersonalInfo, req.Experience, req.Skills)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"suggestion": text})
}

func (h *Handler) skills(c *gin.Context) {
	var req SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	skills, err := h.Svc.Skills(c.Request.Context(), req.Industry, req.CurrentSkills)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"skills": skills})
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	text, err := h.Svc.CoverLetter(c.Request.Context(), req.Content, req.JobTitle, req.CompanyName, req.JobDescription)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"coverLetter": text})
}

func (h *Handler) ats(c *gin.Context) {
	var req ATSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	text, err := h.Svc.ATS(c.Request.Context(), req.Content, req.JobDescription)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"suggestions": text})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "AI suggestions are not configured")
	default:
		respond.Error(c, http.StatusBadGateway, "ai_error", "failed to generate suggestion")
	}
}
