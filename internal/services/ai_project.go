package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/logger"
)

// AIProjectService exposes AI-assisted project analysis: feasibility,
// timeline generation, and health monitoring. Provider failures never
// surface as errors; the caller gets a labeled static fallback.
type AIProjectService struct {
	db *gorm.DB
	ai *AIService
}

func NewAIProjectService(db *gorm.DB, ai *AIService) *AIProjectService {
	return &AIProjectService{db: db, ai: ai}
}

type FeasibilityRequest struct {
	ProjectID             *string  `json:"project_id"`
	Title                 string   `json:"title" binding:"required"`
	Summary               string   `json:"summary" binding:"required"`
	Description           string   `json:"description" binding:"required"`
	Goal                  string   `json:"goal" binding:"required"`
	TeamSize              int      `json:"team_size" binding:"required,min=1"`
	ExpectedDurationWeeks int      `json:"expected_duration_weeks" binding:"required,min=1"`
	Stack                 []string `json:"stack"`
	Category              string   `json:"category"`
}

type FeasibilityResult struct {
	FeasibilityScore    float64  `json:"feasibility_score"`
	DifficultyLevelAI   string   `json:"difficulty_level_ai"`
	RiskFactors         []string `json:"risk_factors"`
	MissingRoles        []string `json:"missing_roles"`
	OverScopedFeatures  []string `json:"over_scoped_features"`
	Recommendations     string   `json:"recommendations"`
	AutoProjectProposal string   `json:"auto_project_proposal"`
}

type TimelineRequest struct {
	Features      []string         `json:"features" binding:"required,min=1"`
	TeamSize      int              `json:"team_size" binding:"required,min=1"`
	Members       []TeamMemberInfo `json:"members"`
	HoursPerWeek  int              `json:"hours_per_week" binding:"required,min=1"`
	DurationWeeks int              `json:"duration_weeks" binding:"required,min=1"`
}

type TimelineWeek struct {
	Week    int      `json:"week"`
	Summary string   `json:"summary"`
	Tasks   []string `json:"tasks"`
}

type WBSItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ParentID      *string `json:"parent_id"`
	EstimateHours int     `json:"estimate_hours"`
}

type TimelineResult struct {
	Timeline               []TimelineWeek `json:"timeline"`
	WBS                    []WBSItem      `json:"wbs"`
	Risks                  []string       `json:"risks"`
	Bottlenecks            []string       `json:"bottlenecks"`
	ArchitectureSuggestion string         `json:"architecture_suggestion"`
}

type MonitoringRequest struct {
	CommitActivity   string   `json:"commit_activity"`
	MeetingSummaries []string `json:"meeting_summaries"`
	TaskProgress     []string `json:"task_progress"`
}

type MonitoringResult struct {
	HealthScore     float64  `json:"health_score"`
	RiskLevel       string   `json:"risk_level"`
	IssuesDetected  []string `json:"issues_detected"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeFeasibility scores a project idea. When a project ID is
// supplied, the results are also stored on the project row.
func (s *AIProjectService) AnalyzeFeasibility(ctx context.Context, userID string, req *FeasibilityRequest) (*FeasibilityResult, error) {
	prompt := feasibilityPrompt(req.Title, req.Summary, req.Description, req.Goal,
		req.TeamSize, req.ExpectedDurationWeeks, req.Stack, req.Category)

	reply, err := s.ai.Generate(ctx, prompt, CallMeta{
		UserID:      userID,
		ProjectID:   req.ProjectID,
		FeatureType: models.FeatureFeasibilityAnalysis,
	})

	var result *FeasibilityResult
	if err != nil {
		logger.Warnf("[AI] feasibility analysis falling back to static result: %v", err)
		result = &FeasibilityResult{
			FeasibilityScore:    50.0,
			DifficultyLevelAI:   string(models.DifficultyMedium),
			RiskFactors:         []string{"AI analysis unavailable", "Manual review required"},
			MissingRoles:        []string{"Technical reviewer"},
			OverScopedFeatures:  []string{"Unable to analyze scope"},
			Recommendations:     "Please review project manually due to AI service unavailability.",
			AutoProjectProposal: "Manual project planning recommended.",
		}
	} else {
		result = parseFeasibilityReply(reply)
	}

	if req.ProjectID != nil {
		if err := s.storeFeasibilityResults(*req.ProjectID, result); err != nil {
			logger.Warnf("[AI] failed to store feasibility results on project %s: %v", *req.ProjectID, err)
		}
	}
	return result, nil
}

func parseFeasibilityReply(reply string) *FeasibilityResult {
	return &FeasibilityResult{
		FeasibilityScore: extractScalar(reply, "FEASIBILITY SCORE:", 50.0),
		DifficultyLevelAI: extractEnum(reply, "DIFFICULTY LEVEL:",
			[]string{"EASY", "MEDIUM", "HARD"}, string(models.DifficultyMedium)),
		RiskFactors:         extractListSection(reply, "RISK FACTORS:", 5),
		MissingRoles:        extractListSection(reply, "MISSING ROLES:", 5),
		OverScopedFeatures:  extractListSection(reply, "OVER-SCOPED FEATURES:", 5),
		Recommendations:     extractTextSection(reply, "RECOMMENDATIONS:"),
		AutoProjectProposal: extractTextSection(reply, "PROJECT PROPOSAL OUTLINE:"),
	}
}

// storeFeasibilityResults copies the AI verdict onto the project row.
func (s *AIProjectService) storeFeasibilityResults(projectID string, result *FeasibilityResult) error {
	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		return err
	}

	level := models.DifficultyLevel(result.DifficultyLevelAI)
	project.DifficultyLevelAI = &level
	project.FeasibilityScore = &result.FeasibilityScore

	riskNotes, _ := json.Marshal(map[string]interface{}{
		"risk_factors":         result.RiskFactors,
		"missing_roles":        result.MissingRoles,
		"over_scoped_features": result.OverScopedFeatures,
		"recommendations":      result.Recommendations,
	})
	project.RiskNotes = string(riskNotes)

	return s.db.Save(&project).Error
}

// GenerateTimeline builds a week-by-week plan and WBS for a project.
func (s *AIProjectService) GenerateTimeline(ctx context.Context, userID, projectID string, req *TimelineRequest) (*TimelineResult, error) {
	prompt := timelinePrompt(req.Features, req.TeamSize, req.Members, req.HoursPerWeek, req.DurationWeeks)

	reply, err := s.ai.Generate(ctx, prompt, CallMeta{
		UserID:      userID,
		ProjectID:   &projectID,
		FeatureType: models.FeatureTimelineGeneration,
	})
	if err != nil {
		logger.Warnf("[AI] timeline generation falling back to static result: %v", err)
		return fallbackTimeline(), nil
	}
	return parseTimelineReply(reply, req.DurationWeeks), nil
}

func fallbackTimeline() *TimelineResult {
	return &TimelineResult{
		Timeline: []TimelineWeek{
			{
				Week:    1,
				Summary: "Project setup and planning",
				Tasks:   []string{"Set up development environment", "Define project structure", "Create initial documentation"},
			},
			{
				Week:    2,
				Summary: "Core development begins",
				Tasks:   []string{"Implement basic features", "Set up testing framework", "Create CI/CD pipeline"},
			},
		},
		WBS: []WBSItem{
			{ID: "1", Name: "Project Setup", ParentID: nil, EstimateHours: 20},
			{ID: "1.1", Name: "Environment Setup", ParentID: strPtr("1"), EstimateHours: 8},
			{ID: "1.2", Name: "Documentation", ParentID: strPtr("1"), EstimateHours: 12},
		},
		Risks:                  []string{"AI service unavailable", "Manual planning required"},
		Bottlenecks:            []string{"Resource allocation", "Technical dependencies"},
		ArchitectureSuggestion: "Please consult with technical lead for architecture recommendations.",
	}
}

func parseTimelineReply(reply string, durationWeeks int) *TimelineResult {
	timeline := []TimelineWeek{}
	for week := 1; week <= durationWeeks; week++ {
		block, ok := extractWeekBlock(reply, week, "WORK BREAKDOWN STRUCTURE:")
		if !ok {
			continue
		}

		summary := extractWeekScalar(block, weekSummaryRe, fmt.Sprintf("Week %d activities", week))
		tasks := extractWeekList(block, "Tasks:")
		if len(tasks) == 0 {
			tasks = []string{fmt.Sprintf("Continue development work for week %d", week)}
		}

		timeline = append(timeline, TimelineWeek{Week: week, Summary: summary, Tasks: tasks})
	}

	wbs := []WBSItem{}
	if wbsSection, ok := extractSection(reply, "WORK BREAKDOWN STRUCTURE:"); ok {
		for i, line := range splitNumberedLines(wbsSection, 10) {
			wbs = append(wbs, WBSItem{
				ID:            fmt.Sprintf("%d", i+1),
				Name:          line,
				ParentID:      nil,
				EstimateHours: 8,
			})
		}
	} else {
		logger.Warnf("[AI] section %q missing from reply", "WORK BREAKDOWN STRUCTURE:")
	}

	return &TimelineResult{
		Timeline:               timeline,
		WBS:                    wbs,
		Risks:                  extractListSection(reply, "IDENTIFIED RISKS:", 5),
		Bottlenecks:            extractListSection(reply, "BOTTLENECKS:", 5),
		ArchitectureSuggestion: extractTextSection(reply, "ARCHITECTURE SUGGESTIONS:"),
	}
}

// MonitorHealth assesses project health from activity signals.
func (s *AIProjectService) MonitorHealth(ctx context.Context, userID, projectID string, req *MonitoringRequest) (*MonitoringResult, error) {
	prompt := monitoringPrompt(req.CommitActivity, req.MeetingSummaries, req.TaskProgress)

	reply, err := s.ai.Generate(ctx, prompt, CallMeta{
		UserID:      userID,
		ProjectID:   &projectID,
		FeatureType: models.FeatureProjectMonitoring,
	})
	if err != nil {
		logger.Warnf("[AI] project monitoring falling back to static result: %v", err)
		return &MonitoringResult{
			HealthScore:     70.0,
			RiskLevel:       "MEDIUM",
			IssuesDetected:  []string{"AI monitoring unavailable", "Manual review recommended"},
			Recommendations: []string{"Check project status manually", "Ensure team communication is active"},
		}, nil
	}

	return &MonitoringResult{
		HealthScore:     extractScalar(reply, "HEALTH SCORE:", 70.0),
		RiskLevel:       extractEnum(reply, "RISK LEVEL:", []string{"LOW", "MEDIUM", "HIGH"}, "MEDIUM"),
		IssuesDetected:  extractListSection(reply, "ISSUES DETECTED:", 5),
		Recommendations: extractListSection(reply, "RECOMMENDATIONS:", 5),
	}, nil
}

func strPtr(s string) *string { return &s }
