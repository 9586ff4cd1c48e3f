package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/middleware"
	"github.com/projectmate/backend/internal/services"
	"github.com/projectmate/backend/pkg/response"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{userService: services.NewUserService(db)}
}

// GetMe returns the authenticated user's profile
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	profile, err := h.userService.GetProfile(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateMe applies a partial profile update
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetUser returns another user's public profile
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetPublicProfile(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}
