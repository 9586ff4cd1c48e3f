package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectCategory string

const (
	CategoryContest  ProjectCategory = "CONTEST"
	CategoryBusiness ProjectCategory = "BUSINESS"
	CategoryStudy    ProjectCategory = "STUDY"
	CategoryEtc      ProjectCategory = "ETC"
)

type RemoteType string

const (
	RemoteOnline  RemoteType = "ONLINE"
	RemoteOffline RemoteType = "OFFLINE"
	RemoteHybrid  RemoteType = "HYBRID"
)

type RecruitmentStatus string

const (
	RecruitmentOpen       RecruitmentStatus = "OPEN"
	RecruitmentClosed     RecruitmentStatus = "CLOSED"
	RecruitmentInProgress RecruitmentStatus = "IN_PROGRESS"
	RecruitmentFinished   RecruitmentStatus = "FINISHED"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// Project is a posting owned by exactly one leader. TechStackRequired
// is a JSON-encoded string list. PositionsNeeded is a JSON-encoded map
// of position name to required count (e.g. {"FE": 2, "BE": 1}).
type Project struct {
	ID                    string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	LeaderID              string            `gorm:"type:varchar(36);index;not null" json:"leader_id"`
	Title                 string            `gorm:"size:200;not null" json:"title"`
	Summary               string            `gorm:"size:500;not null" json:"summary"`
	Description           string            `gorm:"type:text;not null" json:"description"`
	Category              ProjectCategory   `gorm:"size:20;not null" json:"category"`
	Goal                  string            `gorm:"size:500;not null" json:"goal"`
	ExpectedDurationWeeks int               `gorm:"not null" json:"expected_duration_weeks"`
	StartDate             *time.Time        `json:"start_date"`
	RemoteType            RemoteType        `gorm:"size:20;not null" json:"remote_type"`
	RecruitmentStatus     RecruitmentStatus `gorm:"size:20;default:OPEN" json:"recruitment_status"`
	TechStackRequired     string            `gorm:"type:text" json:"-"`
	PositionsNeeded       string            `gorm:"type:text" json:"-"`
	DifficultyLevelManual *DifficultyLevel  `gorm:"size:20" json:"difficulty_level_manual"`
	DifficultyLevelAI     *DifficultyLevel  `gorm:"size:20" json:"difficulty_level_ai"`
	FeasibilityScore      *float64          `json:"feasibility_score"`
	RiskNotes             string            `gorm:"type:text" json:"risk_notes"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`

	Leader      *User        `gorm:"foreignKey:LeaderID" json:"-"`
	TeamMembers []TeamMember `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TeamSize returns the current team size including the leader.
func (p *Project) TeamSize() int {
	n := 1 // leader
	for _, m := range p.TeamMembers {
		if m.IsActiveMember() && !m.IsLeader {
			n++
		}
	}
	return n
}

// IsTeamComplete reports whether every required position is filled by
// active team members. A project with no position requirements is
// vacuously complete.
func (p *Project) IsTeamComplete(positionsNeeded map[string]int) bool {
	if len(positionsNeeded) == 0 {
		return true
	}

	current := make(map[string]int)
	for _, m := range p.TeamMembers {
		if m.IsActiveMember() {
			current[m.RoleInProject]++
		}
	}

	for position, needed := range positionsNeeded {
		if current[position] < needed {
			return false
		}
	}
	return true
}

// CanStartProgress reports whether the project may transition from
// OPEN to IN_PROGRESS.
func (p *Project) CanStartProgress(positionsNeeded map[string]int) bool {
	return p.RecruitmentStatus == RecruitmentOpen && p.IsTeamComplete(positionsNeeded)
}
