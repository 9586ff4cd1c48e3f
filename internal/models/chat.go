package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageText   MessageType = "TEXT"
	MessageSystem MessageType = "SYSTEM"
)

// ChatRoom is a named channel scoped to a project. Room names are
// unique within a project.
type ChatRoom struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Project  *Project      `gorm:"foreignKey:ProjectID" json:"-"`
	Messages []ChatMessage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ChatMessage struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	RoomID      string      `gorm:"type:varchar(36);index;not null" json:"room_id"`
	SenderID    string      `gorm:"type:varchar(36);index;not null" json:"sender_id"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	MessageType MessageType `gorm:"size:20;default:TEXT" json:"message_type"`
	CreatedAt   time.Time   `json:"created_at"`

	Room   *ChatRoom `gorm:"foreignKey:RoomID" json:"-"`
	Sender *User     `gorm:"foreignKey:SenderID" json:"-"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MeetingNote stores a summarized meeting record for a project.
// ActionItemsAI is a JSON-encoded string list.
type MeetingNote struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID         string    `gorm:"type:varchar(36);index;not null" json:"project_id"`
	RawText           string    `gorm:"type:text;not null" json:"raw_text"`
	SummaryAI         string    `gorm:"type:text" json:"summary_ai"`
	ActionItemsAI     string    `gorm:"type:text" json:"-"`
	NextMeetingAgenda *string   `gorm:"type:text" json:"next_meeting_agenda"`
	CreatedBy         string    `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	Author  *User    `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (MeetingNote) TableName() string { return "meeting_notes" }

func (n *MeetingNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
