package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/response"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title                 string         `json:"title" binding:"required"`
	Summary               string         `json:"summary" binding:"required"`
	Description           string         `json:"description" binding:"required"`
	Category              string         `json:"category" binding:"required,oneof=CONTEST BUSINESS STUDY ETC"`
	Goal                  string         `json:"goal" binding:"required"`
	ExpectedDurationWeeks int            `json:"expected_duration_weeks" binding:"required,min=1"`
	StartDate             *time.Time     `json:"start_date"`
	RemoteType            string         `json:"remote_type" binding:"required,oneof=ONLINE OFFLINE HYBRID"`
	TechStackRequired     []string       `json:"tech_stack_required"`
	PositionsNeeded       map[string]int `json:"positions_needed"`
	DifficultyLevelManual *string        `json:"difficulty_level_manual"`
}

type UpdateProjectRequest struct {
	Title                 *string         `json:"title"`
	Summary               *string         `json:"summary"`
	Description           *string         `json:"description"`
	Goal                  *string         `json:"goal"`
	ExpectedDurationWeeks *int            `json:"expected_duration_weeks"`
	StartDate             *time.Time      `json:"start_date"`
	RemoteType            *string         `json:"remote_type"`
	RecruitmentStatus     *string         `json:"recruitment_status"`
	TechStackRequired     *[]string       `json:"tech_stack_required"`
	PositionsNeeded       *map[string]int `json:"positions_needed"`
	DifficultyLevelManual *string         `json:"difficulty_level_manual"`
}

// ProjectFilters narrows the project listing.
type ProjectFilters struct {
	Category   string
	RemoteType string
	Difficulty string
	TechStack  string // comma-separated, substring match per item
	Page       int
	Size       int
}

type ProjectList struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}

type ApplyRequest struct {
	AppliedPosition string  `json:"applied_position" binding:"required"`
	Motivation      string  `json:"motivation"`
	PortfolioLink   *string `json:"portfolio_link"`
}

// Create stores a new project and its leader team membership.
func (s *ProjectService) Create(leader *models.User, req *CreateProjectRequest) (*models.Project, error) {
	if !leader.CanCreateProjects() {
		return nil, response.NewForbidden("only leaders may create projects")
	}

	project := models.Project{
		LeaderID:              leader.ID,
		Title:                 req.Title,
		Summary:               req.Summary,
		Description:           req.Description,
		Category:              models.ProjectCategory(req.Category),
		Goal:                  req.Goal,
		ExpectedDurationWeeks: req.ExpectedDurationWeeks,
		StartDate:             req.StartDate,
		RemoteType:            models.RemoteType(req.RemoteType),
		RecruitmentStatus:     models.RecruitmentOpen,
	}
	if len(req.TechStackRequired) > 0 {
		data, _ := json.Marshal(req.TechStackRequired)
		project.TechStackRequired = string(data)
	}
	if len(req.PositionsNeeded) > 0 {
		data, _ := json.Marshal(req.PositionsNeeded)
		project.PositionsNeeded = string(data)
	}
	if req.DifficultyLevelManual != nil {
		level := models.DifficultyLevel(*req.DifficultyLevelManual)
		project.DifficultyLevelManual = &level
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		leaderMember := models.TeamMember{
			ProjectID:     project.ID,
			UserID:        leader.ID,
			RoleInProject: "LEADER",
			IsLeader:      true,
		}
		return tx.Create(&leaderMember).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns projects matching the filters, paginated.
func (s *ProjectService) List(f *ProjectFilters) (*ProjectList, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 || f.Size > 100 {
		f.Size = 20
	}

	query := s.db.Model(&models.Project{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.RemoteType != "" {
		query = query.Where("remote_type = ?", f.RemoteType)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty_level_manual = ? OR difficulty_level_ai = ?", f.Difficulty, f.Difficulty)
	}
	if f.TechStack != "" {
		for _, item := range strings.Split(f.TechStack, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			query = query.Where("tech_stack_required LIKE ?", "%"+item+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var projects []models.Project
	offset := (f.Page - 1) * f.Size
	if err := query.Order("created_at DESC").Offset(offset).Limit(f.Size).Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectList{Projects: projects, Total: total, Page: f.Page, Size: f.Size}, nil
}

// Get loads a project by ID.
func (s *ProjectService) Get(projectID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Update applies a partial update. Leader only.
func (s *ProjectService) Update(projectID, userID string, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != userID {
		return nil, response.NewForbidden("only the project leader may update the project")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Summary != nil {
		project.Summary = *req.Summary
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Goal != nil {
		project.Goal = *req.Goal
	}
	if req.ExpectedDurationWeeks != nil {
		project.ExpectedDurationWeeks = *req.ExpectedDurationWeeks
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.RemoteType != nil {
		project.RemoteType = models.RemoteType(*req.RemoteType)
	}
	if req.RecruitmentStatus != nil {
		status := models.RecruitmentStatus(*req.RecruitmentStatus)
		switch status {
		case models.RecruitmentOpen, models.RecruitmentClosed, models.RecruitmentInProgress, models.RecruitmentFinished:
			project.RecruitmentStatus = status
		default:
			return nil, response.NewBadRequest("invalid recruitment status")
		}
	}
	if req.TechStackRequired != nil {
		data, _ := json.Marshal(*req.TechStackRequired)
		project.TechStackRequired = string(data)
	}
	if req.PositionsNeeded != nil {
		data, _ := json.Marshal(*req.PositionsNeeded)
		project.PositionsNeeded = string(data)
	}
	if req.DifficultyLevelManual != nil {
		level := models.DifficultyLevel(*req.DifficultyLevelManual)
		project.DifficultyLevelManual = &level
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Apply submits a PENDING application. A user may apply once per
// project, and only while recruitment is OPEN.
func (s *ProjectService) Apply(projectID string, user *models.User, req *ApplyRequest) (*models.ProjectApplication, error) {
	if !user.CanApplyToProjects() {
		return nil, response.NewForbidden("account may not apply to projects")
	}

	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.RecruitmentStatus != models.RecruitmentOpen {
		return nil, response.NewBadRequest("project is not recruiting")
	}
	if project.LeaderID == user.ID {
		return nil, response.NewBadRequest("leader cannot apply to own project")
	}

	var count int64
	s.db.Model(&models.ProjectApplication{}).
		Where("project_id = ? AND user_id = ?", projectID, user.ID).
		Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("already applied to this project")
	}

	app := models.ProjectApplication{
		ProjectID:       projectID,
		UserID:          user.ID,
		AppliedPosition: req.AppliedPosition,
		Motivation:      req.Motivation,
		PortfolioLink:   req.PortfolioLink,
		Status:          models.ApplicationPending,
	}
	if err := s.db.Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications returns all applications for a project. Leader only.
func (s *ProjectService) ListApplications(projectID, userID string) ([]models.ProjectApplication, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != userID {
		return nil, response.NewForbidden("only the project leader may view applications")
	}

	var apps []models.ProjectApplication
	if err := s.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// AcceptApplication moves a PENDING application to ACCEPTED and adds
// the applicant to the team in the position they applied for.
func (s *ProjectService) AcceptApplication(projectID, appID, userID string) (*models.ProjectApplication, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != userID {
		return nil, response.NewForbidden("only the project leader may accept applications")
	}

	var app models.ProjectApplication
	if err := s.db.First(&app, "id = ? AND project_id = ?", appID, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("application not found")
		}
		return nil, err
	}
	if !app.CanBeAccepted() {
		return nil, response.NewBadRequest("application has already been processed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		app.Status = models.ApplicationAccepted
		if err := tx.Save(&app).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			ProjectID:     projectID,
			UserID:        app.UserID,
			RoleInProject: app.AppliedPosition,
			IsLeader:      false,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// RejectApplication moves a PENDING application to REJECTED.
func (s *ProjectService) RejectApplication(projectID, appID, userID string) (*models.ProjectApplication, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != userID {
		return nil, response.NewForbidden("only the project leader may reject applications")
	}

	var app models.ProjectApplication
	if err := s.db.First(&app, "id = ? AND project_id = ?", appID, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("application not found")
		}
		return nil, err
	}
	if !app.CanBeRejected() {
		return nil, response.NewBadRequest("application has already been processed")
	}

	app.Status = models.ApplicationRejected
	if err := s.db.Save(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Team lists a project's team members.
func (s *ProjectService) Team(projectID string) ([]models.TeamMember, error) {
	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}
	var members []models.TeamMember
	if err := s.db.Where("project_id = ?", projectID).Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// StartProgress transitions an OPEN project with a complete team to
// IN_PROGRESS. Leader only.
func (s *ProjectService) StartProgress(projectID, userID string) (*models.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.LeaderID != userID {
		return nil, response.NewForbidden("only the project leader may start the project")
	}

	members, err := s.Team(projectID)
	if err != nil {
		return nil, err
	}
	project.TeamMembers = members

	needed := decodePositions(project.PositionsNeeded)
	if !project.CanStartProgress(needed) {
		return nil, response.NewBadRequest("project must be open with a complete team to start")
	}

	project.RecruitmentStatus = models.RecruitmentInProgress
	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// HasProjectAccess reports whether the user is the leader or an active
// team member of the project.
func (s *ProjectService) HasProjectAccess(projectID, userID string) (bool, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return false, err
	}
	if project.LeaderID == userID {
		return true, nil
	}

	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("project_id = ? AND user_id = ? AND left_at IS NULL", projectID, userID).
		Count(&count)
	return count > 0, nil
}

// decodePositions decodes the positions_needed column. Broken values
// decode to no requirements.
func decodePositions(raw string) map[string]int {
	if raw == "" {
		return map[string]int{}
	}
	var out map[string]int
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]int{}
	}
	return out
}
