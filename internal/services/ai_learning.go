package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/logger"
	"github.com/projectmate/backend/pkg/response"
)

// AILearningService covers the member-facing AI features: personalized
// learning roadmaps and portfolio generation. Portfolio generation is
// metered per (project, user); the other features are not.
type AILearningService struct {
	db             *gorm.DB
	ai             *AIService
	portfolioLimit int
}

func NewAILearningService(db *gorm.DB, ai *AIService, portfolioLimit int) *AILearningService {
	return &AILearningService{db: db, ai: ai, portfolioLimit: portfolioLimit}
}

type LearningRoadmapRequest struct {
	ProjectID                      string   `json:"project_id" binding:"required"`
	TargetStack                    []string `json:"target_stack" binding:"required,min=1"`
	DaysAvailablePerWeek           int      `json:"days_available_per_week" binding:"required,min=1,max=7"`
	WeeksUntilProjectCriticalPhase int      `json:"weeks_until_project_critical_phase" binding:"required,min=1"`
}

type LearningPhase struct {
	DayRange      string   `json:"day_range"`
	FocusTopic    string   `json:"focus_topic"`
	Resources     []string `json:"resources"`
	PracticeTasks []string `json:"practice_tasks"`
}

type LearningRoadmapResult struct {
	Roadmap             []LearningPhase `json:"roadmap"`
	CheckpointQuizIdeas []string        `json:"checkpoint_quiz_ideas"`
	SummaryForLeader    string          `json:"summary_for_leader"`
}

// PortfolioRequest describes a portfolio generation call. ProjectID is
// taken from the route, not the body.
type PortfolioRequest struct {
	ProjectID     string   `json:"-"`
	RoleInProject string   `json:"role_in_project" binding:"required"`
	TechStackUsed []string `json:"tech_stack_used"`
	Contributions string   `json:"contributions" binding:"required"`
}

type PortfolioResult struct {
	PortfolioText string        `json:"portfolio_text"`
	InterviewQAs  []InterviewQA `json:"interview_qas"`
	RawMarkdown   string        `json:"raw_markdown"`
}

// GenerateRoadmap builds a week-by-week learning plan for a member.
func (s *AILearningService) GenerateRoadmap(ctx context.Context, user *models.User, req *LearningRoadmapRequest) (*LearningRoadmapResult, error) {
	experience := string(user.ExperienceLevel)
	if experience == "" {
		experience = string(models.ExperienceBeginner)
	}

	prompt := learningRoadmapPrompt(req.TargetStack, experience,
		req.DaysAvailablePerWeek, req.WeeksUntilProjectCriticalPhase,
		fmt.Sprintf("Project %s preparation", req.ProjectID))

	reply, err := s.ai.Generate(ctx, prompt, CallMeta{
		UserID:      user.ID,
		ProjectID:   &req.ProjectID,
		FeatureType: models.FeatureLearningRoadmap,
	})
	if err != nil {
		logger.Warnf("[AI] learning roadmap falling back to static result: %v", err)
		return &LearningRoadmapResult{
			Roadmap: []LearningPhase{
				{
					DayRange:      "Week 1",
					FocusTopic:    "Technology fundamentals",
					Resources:     []string{"Official documentation", "Online tutorials"},
					PracticeTasks: []string{"Build simple examples", "Complete exercises"},
				},
			},
			CheckpointQuizIdeas: []string{"Basic concept questions", "Practical implementation tasks"},
			SummaryForLeader:    "Team member is learning required technologies. Manual guidance recommended due to AI service unavailability.",
		}, nil
	}

	return parseRoadmapReply(reply, req.WeeksUntilProjectCriticalPhase), nil
}

func parseRoadmapReply(reply string, weeksAvailable int) *LearningRoadmapResult {
	roadmap := []LearningPhase{}
	for week := 1; week <= weeksAvailable; week++ {
		block, ok := extractWeekBlock(reply, week, "CHECKPOINT QUIZ IDEAS:")
		if !ok {
			continue
		}

		focusTopic := extractWeekScalar(block, focusTopicRe, fmt.Sprintf("Week %d learning", week))
		resources := extractWeekList(block, "Resources:")
		if len(resources) == 0 {
			resources = []string{"Study materials to be determined"}
		}
		practiceTasks := extractWeekList(block, "Practice Tasks:")
		if len(practiceTasks) == 0 {
			practiceTasks = []string{"Hands-on practice exercises"}
		}

		roadmap = append(roadmap, LearningPhase{
			DayRange:      fmt.Sprintf("Week %d", week),
			FocusTopic:    focusTopic,
			Resources:     resources,
			PracticeTasks: practiceTasks,
		})
	}

	return &LearningRoadmapResult{
		Roadmap:             roadmap,
		CheckpointQuizIdeas: extractListSection(reply, "CHECKPOINT QUIZ IDEAS:", 10),
		SummaryForLeader:    extractTextSection(reply, "LEADER SUMMARY:"),
	}
}

// GeneratePortfolio produces portfolio content, enforcing the per
// (project, user) usage ceiling. The counter only advances after a
// successful generation, so provider failures do not consume a use.
func (s *AILearningService) GeneratePortfolio(ctx context.Context, userID string, req *PortfolioRequest) (*PortfolioResult, error) {
	var usage models.AIFeatureUsage
	err := s.db.Where("project_id = ? AND user_id = ? AND feature_type = ?",
		req.ProjectID, userID, models.FeaturePortfolioGeneration).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		usage = models.AIFeatureUsage{
			ProjectID:   req.ProjectID,
			UserID:      userID,
			FeatureType: models.FeaturePortfolioGeneration,
			Count:       0,
		}
		if err := s.db.Create(&usage).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !usage.CanUseFeature(s.portfolioLimit) {
		return nil, response.NewTooManyRequests(
			fmt.Sprintf("portfolio generation limit exceeded, maximum %d uses allowed", s.portfolioLimit))
	}

	prompt := portfolioPrompt(req.RoleInProject, req.TechStackUsed, req.Contributions, "Team collaboration project")

	reply, err := s.ai.Generate(ctx, prompt, CallMeta{
		UserID:      userID,
		ProjectID:   &req.ProjectID,
		FeatureType: models.FeaturePortfolioGeneration,
	})
	if err != nil {
		logger.Warnf("[AI] portfolio generation falling back to static result: %v", err)
		return &PortfolioResult{
			PortfolioText: "Portfolio content generation unavailable. Please create manually.",
			InterviewQAs: []InterviewQA{
				{
					Question: "Tell me about your role in this project.",
					Answer:   "Please prepare this answer based on your specific contributions.",
				},
			},
			RawMarkdown: "# Portfolio Content\n\nManual creation recommended due to AI service unavailability.",
		}, nil
	}

	result := parsePortfolioReply(reply)

	usage.IncrementUsage()
	if err := s.db.Save(&usage).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func parsePortfolioReply(reply string) *PortfolioResult {
	portfolioText := extractTextSection(reply, "PORTFOLIO PROJECT DESCRIPTION")

	interviewQAs := []InterviewQA{}
	if qaSection, ok := extractSection(reply, "INTERVIEW QUESTIONS AND ANSWERS:"); ok {
		interviewQAs = extractQAPairs(qaSection, 5)
	} else {
		logger.Warnf("[AI] section %q missing from reply", "INTERVIEW QUESTIONS AND ANSWERS:")
	}

	var md strings.Builder
	md.WriteString("# Portfolio Project\n\n")
	md.WriteString("## Project Description\n")
	md.WriteString(portfolioText + "\n\n")
	md.WriteString("## Technical Highlights\n")
	md.WriteString(extractTextSection(reply, "TECHNICAL HIGHLIGHTS:") + "\n\n")
	md.WriteString("## Challenges and Solutions\n")
	md.WriteString(extractTextSection(reply, "CHALLENGES AND SOLUTIONS:") + "\n\n")
	md.WriteString("## Interview Preparation\n")
	for _, qa := range interviewQAs {
		md.WriteString(fmt.Sprintf("\n**Q:** %s\n**A:** %s\n", qa.Question, qa.Answer))
	}

	return &PortfolioResult{
		PortfolioText: portfolioText,
		InterviewQAs:  interviewQAs,
		RawMarkdown:   md.String(),
	}
}
