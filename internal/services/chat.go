package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/response"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type"`
}

type MessagePage struct {
	Messages []models.ChatMessage `json:"messages"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	Size     int                  `json:"size"`
}

type SummarizeMeetingRequest struct {
	RawText           string  `json:"raw_text" binding:"required"`
	NextMeetingAgenda *string `json:"next_meeting_agenda"`
}

// MeetingNoteView is a MeetingNote with the action items decoded.
type MeetingNoteView struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	RawText           string    `json:"raw_text"`
	SummaryAI         string    `json:"summary_ai"`
	ActionItemsAI     []string  `json:"action_items_ai"`
	NextMeetingAgenda *string   `json:"next_meeting_agenda"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateRoom creates a chat room. Room names are unique per project.
func (s *ChatService) CreateRoom(projectID string, req *CreateRoomRequest) (*models.ChatRoom, error) {
	var count int64
	s.db.Model(&models.ChatRoom{}).
		Where("project_id = ? AND name = ?", projectID, req.Name).
		Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("a chat room with this name already exists")
	}

	room := models.ChatRoom{ProjectID: projectID, Name: req.Name}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms returns a project's chat rooms.
func (s *ChatService) ListRooms(projectID string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoom loads a room by ID.
func (s *ChatService) GetRoom(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("chat room not found")
		}
		return nil, err
	}
	return &room, nil
}

// GetMessages returns one page of a room's history. The page is
// selected newest-first and then reversed so messages read
// oldest-first within the page. Total counts the whole room.
func (s *ChatService) GetMessages(roomID string, page, size int) (*MessagePage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 50
	}

	var total int64
	if err := s.db.Model(&models.ChatMessage{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	offset := (page - 1) * size
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Offset(offset).Limit(size).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return &MessagePage{Messages: messages, Total: total, Page: page, Size: size}, nil
}

// SendMessage stores a message in a room.
func (s *ChatService) SendMessage(roomID, senderID string, req *SendMessageRequest) (*models.ChatMessage, error) {
	msgType := models.MessageText
	if req.MessageType != "" {
		switch models.MessageType(req.MessageType) {
		case models.MessageText, models.MessageSystem:
			msgType = models.MessageType(req.MessageType)
		default:
			return nil, response.NewBadRequest("invalid message type")
		}
	}

	msg := models.ChatMessage{
		RoomID:      roomID,
		SenderID:    senderID,
		Content:     req.Content,
		MessageType: msgType,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// SummarizeMeeting produces a stored meeting note. Summarization is a
// placeholder pending a real LLM-backed pipeline: the summary echoes
// the opening of the raw text and the action items are canned.
func (s *ChatService) SummarizeMeeting(projectID, userID string, req *SummarizeMeetingRequest) (*MeetingNoteView, error) {
	head := req.RawText
	if len(head) > 100 {
		head = head[:100]
	}

	actionItems := []string{
		"Review the discussed items before the next meeting",
		"Share progress updates in the project chat room",
	}
	itemsJSON, _ := json.Marshal(actionItems)

	note := models.MeetingNote{
		ProjectID:         projectID,
		RawText:           req.RawText,
		SummaryAI:         fmt.Sprintf("Meeting summary for: %s...", head),
		ActionItemsAI:     string(itemsJSON),
		NextMeetingAgenda: req.NextMeetingAgenda,
		CreatedBy:         userID,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return toNoteView(&note), nil
}

// ListMeetingNotes returns a project's meeting notes, newest first.
func (s *ChatService) ListMeetingNotes(projectID string) ([]MeetingNoteView, error) {
	var notes []models.MeetingNote
	if err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}

	views := make([]MeetingNoteView, 0, len(notes))
	for i := range notes {
		views = append(views, *toNoteView(&notes[i]))
	}
	return views, nil
}

func toNoteView(n *models.MeetingNote) *MeetingNoteView {
	return &MeetingNoteView{
		ID:                n.ID,
		ProjectID:         n.ProjectID,
		RawText:           n.RawText,
		SummaryAI:         n.SummaryAI,
		ActionItemsAI:     decodeStringList(n.ActionItemsAI),
		NextMeetingAgenda: n.NextMeetingAgenda,
		CreatedBy:         n.CreatedBy,
		CreatedAt:         n.CreatedAt,
	}
}
