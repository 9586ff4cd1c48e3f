package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/config"
	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/internal/utils"
	"github.com/projectmate/backend/pkg/response"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Email                 string   `json:"email" binding:"required,email"`
	Password              string   `json:"password" binding:"required,min=8"`
	Name                  string   `json:"name" binding:"required"`
	Role                  string   `json:"role" binding:"required,oneof=LEADER MEMBER BOTH"`
	Bio                   string   `json:"bio"`
	Region                string   `json:"region"`
	AvailableHoursPerWeek *int     `json:"available_hours_per_week"`
	DomainKnowledge       string   `json:"domain_knowledge"`
	ExperienceLevel       string   `json:"experience_level" binding:"omitempty,oneof=BEGINNER JUNIOR MID SENIOR"`
	ProjectExperience     string   `json:"project_experience"`
	Certifications        []string `json:"certifications"`
	TechStack             []string `json:"tech_stack"`
	PreferredPositions    []string `json:"preferred_positions"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpireAt  time.Time `json:"access_expire_at"`
	RefreshExpireAt time.Time `json:"refresh_expire_at"`
}

type LoginResult struct {
	Tokens TokenPair    `json:"tokens"`
	User   *models.User `json:"user"`
}

// Register creates a new account. Email addresses are unique.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:                 req.Email,
		PasswordHash:          hash,
		Name:                  req.Name,
		Role:                  models.UserRole(req.Role),
		Bio:                   req.Bio,
		Region:                req.Region,
		AvailableHoursPerWeek: req.AvailableHoursPerWeek,
		DomainKnowledge:       req.DomainKnowledge,
		ProjectExperience:     req.ProjectExperience,
		IsActive:              true,
	}
	if req.ExperienceLevel != "" {
		user.ExperienceLevel = models.ExperienceLevel(req.ExperienceLevel)
	}
	if len(req.Certifications) > 0 {
		data, _ := json.Marshal(req.Certifications)
		user.Certifications = string(data)
	}
	if len(req.TechStack) > 0 {
		data, _ := json.Marshal(req.TechStack)
		user.TechStack = string(data)
	}
	if len(req.PreferredPositions) > 0 {
		data, _ := json.Marshal(req.PreferredPositions)
		user.PreferredPositions = string(data)
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates by email and password and returns a token pair.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, response.NewForbidden("account is deactivated")
	}

	tokens, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: *tokens, User: &user}, nil
}

// Refresh validates a refresh token and issues a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, response.NewUnauthorized("invalid or expired refresh token")
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		return nil, response.NewUnauthorized("refresh token required")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, response.NewUnauthorized("user not found")
	}
	if !user.IsActive {
		return nil, response.NewForbidden("account is deactivated")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessHours := s.jwtConfig.AccessExpireHour
	refreshHours := s.jwtConfig.RefreshExpireHour

	access, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), utils.TokenTypeAccess, accessHours)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), utils.TokenTypeRefresh, refreshHours)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpireAt:  now.Add(time.Duration(accessHours) * time.Hour),
		RefreshExpireAt: now.Add(time.Duration(refreshHours) * time.Hour),
	}, nil
}
