package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/response"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserProfile is the owner's view of an account, with the JSON-encoded
// list columns decoded.
type UserProfile struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Role                  string     `json:"role"`
	Bio                   string     `json:"bio"`
	Region                string     `json:"region"`
	AvailableHoursPerWeek *int       `json:"available_hours_per_week"`
	DomainKnowledge       string     `json:"domain_knowledge"`
	ExperienceLevel       string     `json:"experience_level"`
	ProjectExperience     string     `json:"project_experience"`
	Certifications        []string   `json:"certifications"`
	TechStack             []string   `json:"tech_stack"`
	PreferredPositions    []string   `json:"preferred_positions"`
	IsActive              bool       `json:"is_active"`
	NoShowCount           int        `json:"no_show_count"`
	PenaltyUntil          *time.Time `json:"penalty_until"`
	CreatedAt             time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name                  *string   `json:"name"`
	Bio                   *string   `json:"bio"`
	Region                *string   `json:"region"`
	AvailableHoursPerWeek *int      `json:"available_hours_per_week"`
	DomainKnowledge       *string   `json:"domain_knowledge"`
	ExperienceLevel       *string   `json:"experience_level"`
	ProjectExperience     *string   `json:"project_experience"`
	Certifications        *[]string `json:"certifications"`
	TechStack             *[]string `json:"tech_stack"`
	PreferredPositions    *[]string `json:"preferred_positions"`
}

func (s *UserService) GetProfile(userID string) (*UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return toProfile(&user), nil
}

// GetPublicProfile returns another user's profile with the penalty
// bookkeeping hidden.
func (s *UserService) GetPublicProfile(userID string) (*UserProfile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.NoShowCount = 0
	profile.PenaltyUntil = nil
	return profile, nil
}

// UpdateProfile applies a partial update. Only non-nil fields change.
func (s *UserService) UpdateProfile(userID string, req *UpdateProfileRequest) (*UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Region != nil {
		user.Region = *req.Region
	}
	if req.AvailableHoursPerWeek != nil {
		user.AvailableHoursPerWeek = req.AvailableHoursPerWeek
	}
	if req.DomainKnowledge != nil {
		user.DomainKnowledge = *req.DomainKnowledge
	}
	if req.ExperienceLevel != nil {
		level := models.ExperienceLevel(*req.ExperienceLevel)
		switch level {
		case models.ExperienceBeginner, models.ExperienceJunior, models.ExperienceMid, models.ExperienceSenior:
			user.ExperienceLevel = level
		default:
			return nil, response.NewBadRequest("invalid experience level")
		}
	}
	if req.ProjectExperience != nil {
		user.ProjectExperience = *req.ProjectExperience
	}
	if req.Certifications != nil {
		data, _ := json.Marshal(*req.Certifications)
		user.Certifications = string(data)
	}
	if req.TechStack != nil {
		data, _ := json.Marshal(*req.TechStack)
		user.TechStack = string(data)
	}
	if req.PreferredPositions != nil {
		data, _ := json.Marshal(*req.PreferredPositions)
		user.PreferredPositions = string(data)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return toProfile(&user), nil
}

func toProfile(u *models.User) *UserProfile {
	return &UserProfile{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		Role:                  string(u.Role),
		Bio:                   u.Bio,
		Region:                u.Region,
		AvailableHoursPerWeek: u.AvailableHoursPerWeek,
		DomainKnowledge:       u.DomainKnowledge,
		ExperienceLevel:       string(u.ExperienceLevel),
		ProjectExperience:     u.ProjectExperience,
		Certifications:        decodeStringList(u.Certifications),
		TechStack:             decodeStringList(u.TechStack),
		PreferredPositions:    decodeStringList(u.PreferredPositions),
		IsActive:              u.IsActive,
		NoShowCount:           u.NoShowCount,
		PenaltyUntil:          u.PenaltyUntil,
		CreatedAt:             u.CreatedAt,
	}
}

// decodeStringList decodes a JSON-encoded list column. Empty or broken
// values decode to an empty list rather than an error.
func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}
