package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// ProjectApplication records one user's application to one project.
// A (project, user) pair may have at most one application.
type ProjectApplication struct {
	ID              string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID       string            `gorm:"type:varchar(36);index;not null" json:"project_id"`
	UserID          string            `gorm:"type:varchar(36);index;not null" json:"user_id"`
	AppliedPosition string            `gorm:"size:50;not null" json:"applied_position"`
	Motivation      string            `gorm:"type:text" json:"motivation"`
	PortfolioLink   *string           `gorm:"size:500" json:"portfolio_link"`
	Status          ApplicationStatus `gorm:"size:20;default:PENDING" json:"status"`
	FitScoreAI      *float64          `json:"fit_score_ai"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (ProjectApplication) TableName() string { return "project_applications" }

func (a *ProjectApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// CanBeAccepted reports whether the application may transition to ACCEPTED.
// Only PENDING applications are mutable.
func (a *ProjectApplication) CanBeAccepted() bool {
	return a.Status == ApplicationPending
}

// CanBeRejected reports whether the application may transition to REJECTED.
func (a *ProjectApplication) CanBeRejected() bool {
	return a.Status == ApplicationPending
}

// TeamMember links a user to a project team. The leader row is created
// together with the project; member rows are created when applications
// are accepted.
type TeamMember struct {
	ID               string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID        string     `gorm:"type:varchar(36);index;not null" json:"project_id"`
	UserID           string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	RoleInProject    string     `gorm:"size:50;not null" json:"role_in_project"`
	IsLeader         bool       `gorm:"default:false" json:"is_leader"`
	PerformanceScore *float64   `json:"performance_score"`
	JoinedAt         time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	LeftAt           *time.Time `json:"left_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (TeamMember) TableName() string { return "team_members" }

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsActiveMember reports whether the membership is still in effect.
func (m *TeamMember) IsActiveMember() bool {
	return m.LeftAt == nil
}
