package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleLeader UserRole = "LEADER"
	RoleMember UserRole = "MEMBER"
	RoleBoth   UserRole = "BOTH"
)

type ExperienceLevel string

const (
	ExperienceBeginner ExperienceLevel = "BEGINNER"
	ExperienceJunior   ExperienceLevel = "JUNIOR"
	ExperienceMid      ExperienceLevel = "MID"
	ExperienceSenior   ExperienceLevel = "SENIOR"
)

// User represents a platform account. List-valued profile fields
// (certifications, tech stack, preferred positions) are stored as
// JSON-encoded strings.
type User struct {
	ID                    string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email                 string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash          string          `gorm:"size:255;not null" json:"-"`
	Name                  string          `gorm:"size:100;not null" json:"name"`
	Role                  UserRole        `gorm:"size:20;not null" json:"role"`
	Bio                   string          `gorm:"type:text" json:"bio"`
	Region                string          `gorm:"size:100" json:"region"`
	AvailableHoursPerWeek *int            `json:"available_hours_per_week"`
	DomainKnowledge       string          `gorm:"type:text" json:"domain_knowledge"`
	ExperienceLevel       ExperienceLevel `gorm:"size:20;default:BEGINNER" json:"experience_level"`
	ProjectExperience     string          `gorm:"type:text" json:"project_experience"`
	Certifications        string          `gorm:"type:text" json:"-"`
	TechStack             string          `gorm:"type:text" json:"-"`
	PreferredPositions    string          `gorm:"type:text" json:"-"`
	IsActive              bool            `gorm:"default:true" json:"is_active"`
	NoShowCount           int             `gorm:"default:0" json:"no_show_count"`
	PenaltyUntil          *time.Time      `json:"penalty_until"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsUnderPenalty reports whether the user is currently suspended by
// the no-show penalty system.
func (u *User) IsUnderPenalty() bool {
	if u.PenaltyUntil == nil {
		return false
	}
	return time.Now().Before(*u.PenaltyUntil)
}

// ApplyNoShow increments the no-show counter and, once the counter
// reaches maxNoShows, suspends the user for the given duration.
func (u *User) ApplyNoShow(maxNoShows int, duration time.Duration) {
	u.NoShowCount++
	if u.NoShowCount >= maxNoShows {
		until := time.Now().Add(duration)
		u.PenaltyUntil = &until
	}
}

// CanCreateProjects reports whether the user may create projects.
func (u *User) CanCreateProjects() bool {
	return (u.Role == RoleLeader || u.Role == RoleBoth) && !u.IsUnderPenalty()
}

// CanApplyToProjects reports whether the user may apply to projects.
func (u *User) CanApplyToProjects() bool {
	return u.IsActive && !u.IsUnderPenalty()
}
