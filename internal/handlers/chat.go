package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/middleware"
	"github.com/projectmate/backend/internal/services"
	"github.com/projectmate/backend/pkg/response"
)

type ChatHandler struct {
	chatService    *services.ChatService
	projectService *services.ProjectService
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{
		chatService:    services.NewChatService(db),
		projectService: services.NewProjectService(db),
	}
}

// requireProjectAccess gates chat operations to the leader and active
// team members.
func (h *ChatHandler) requireProjectAccess(c *gin.Context, projectID string) bool {
	ok, err := h.projectService.HasProjectAccess(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return false
	}
	if !ok {
		response.Forbidden(c, "project team membership required")
		return false
	}
	return true
}

// CreateRoom creates a chat room in a project
// POST /api/chat/projects/:id/chatrooms
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	projectID := c.Param("id")
	if !h.requireProjectAccess(c, projectID) {
		return
	}

	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := h.chatService.CreateRoom(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// ListRooms lists a project's chat rooms
// GET /api/chat/projects/:id/chatrooms
func (h *ChatHandler) ListRooms(c *gin.Context) {
	projectID := c.Param("id")
	if !h.requireProjectAccess(c, projectID) {
		return
	}

	rooms, err := h.chatService.ListRooms(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetMessages returns one page of room history, oldest first
// GET /api/chat/chatrooms/:room_id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	room, err := h.chatService.GetRoom(c.Param("room_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.requireProjectAccess(c, room.ProjectID) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	messages, err := h.chatService.GetMessages(room.ID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// SendMessage stores a message in a room
// POST /api/chat/chatrooms/:room_id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	room, err := h.chatService.GetRoom(c.Param("room_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.requireProjectAccess(c, room.ProjectID) {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.chatService.SendMessage(room.ID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// SummarizeMeeting creates a meeting note for a project
// POST /api/chat/projects/:id/meeting-notes/ai-summarize
func (h *ChatHandler) SummarizeMeeting(c *gin.Context) {
	projectID := c.Param("id")
	if !h.requireProjectAccess(c, projectID) {
		return
	}

	var req services.SummarizeMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	note, err := h.chatService.SummarizeMeeting(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// ListMeetingNotes lists a project's meeting notes, newest first
// GET /api/chat/projects/:id/meeting-notes
func (h *ChatHandler) ListMeetingNotes(c *gin.Context) {
	projectID := c.Param("id")
	if !h.requireProjectAccess(c, projectID) {
		return
	}

	notes, err := h.chatService.ListMeetingNotes(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notes)
}
