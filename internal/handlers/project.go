package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/middleware"
	"github.com/projectmate/backend/internal/services"
	"github.com/projectmate/backend/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{projectService: services.NewProjectService(db)}
}

// Create creates a project owned by the authenticated leader
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// List returns filtered, paginated projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	filters := services.ProjectFilters{
		Category:   c.Query("category"),
		RemoteType: c.Query("remote_type"),
		Difficulty: c.Query("difficulty"),
		TechStack:  c.Query("tech_stack"),
		Page:       page,
		Size:       size,
	}

	list, err := h.projectService.List(&filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Update applies a partial update, leader only
// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Apply submits an application to an open project
// POST /api/projects/:id/apply
func (h *ProjectHandler) Apply(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req services.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.projectService.Apply(c.Param("id"), user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// ListApplications returns a project's applications, leader only
// GET /api/projects/:id/applications
func (h *ProjectHandler) ListApplications(c *gin.Context) {
	apps, err := h.projectService.ListApplications(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, apps)
}

// AcceptApplication accepts a pending application
// POST /api/projects/:id/applications/:app_id/accept
func (h *ProjectHandler) AcceptApplication(c *gin.Context) {
	app, err := h.projectService.AcceptApplication(c.Param("id"), c.Param("app_id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, app)
}

// RejectApplication rejects a pending application
// POST /api/projects/:id/applications/:app_id/reject
func (h *ProjectHandler) RejectApplication(c *gin.Context) {
	app, err := h.projectService.RejectApplication(c.Param("id"), c.Param("app_id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, app)
}

// Team lists a project's team members
// GET /api/projects/:id/team
func (h *ProjectHandler) Team(c *gin.Context) {
	members, err := h.projectService.Team(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

// Start transitions an open, fully staffed project to IN_PROGRESS
// POST /api/projects/:id/start
func (h *ProjectHandler) Start(c *gin.Context) {
	project, err := h.projectService.StartProgress(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}
