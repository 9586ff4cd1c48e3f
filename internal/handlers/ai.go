package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/config"
	"github.com/projectmate/backend/internal/middleware"
	"github.com/projectmate/backend/internal/services"
	"github.com/projectmate/backend/pkg/response"
)

type AIHandler struct {
	projectAI  *services.AIProjectService
	learningAI *services.AILearningService
}

func NewAIHandler(db *gorm.DB, cfg *config.Config, ai *services.AIService) *AIHandler {
	return &AIHandler{
		projectAI:  services.NewAIProjectService(db, ai),
		learningAI: services.NewAILearningService(db, ai, cfg.Usage.PortfolioGenerationLimit),
	}
}

// AnalyzeFeasibility scores a project idea
// POST /api/ai/projects/feasibility
func (h *AIHandler) AnalyzeFeasibility(c *gin.Context) {
	var req services.FeasibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectAI.AnalyzeFeasibility(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GenerateTimeline builds a weekly plan and WBS for a project
// POST /api/ai/projects/:id/timeline
func (h *AIHandler) GenerateTimeline(c *gin.Context) {
	var req services.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectAI.GenerateTimeline(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GenerateLearningPath builds a personalized learning roadmap
// POST /api/ai/learning-path
func (h *AIHandler) GenerateLearningPath(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req services.LearningRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.learningAI.GenerateRoadmap(c.Request.Context(), user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MonitorProject assesses project health from activity signals
// POST /api/ai/projects/:id/monitor
func (h *AIHandler) MonitorProject(c *gin.Context) {
	var req services.MonitoringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectAI.MonitorHealth(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GeneratePortfolio produces portfolio content, metered per project and user
// POST /api/ai/projects/:id/portfolio
func (h *AIHandler) GeneratePortfolio(c *gin.Context) {
	var req services.PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.ProjectID = c.Param("id")

	result, err := h.learningAI.GeneratePortfolio(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
