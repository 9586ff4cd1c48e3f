package services

import (
	"fmt"
	"strings"
)

// Prompt builders for the AI features. Each prompt instructs the model
// to answer in a fixed layout with ALL-CAPS section headers so the
// reply can be parsed with the helpers in ai_parse.go.

func feasibilityPrompt(title, summary, description, goal string, teamSize, durationWeeks int, techStack []string, category string) string {
	return fmt.Sprintf(`Analyze the feasibility of this project and provide a detailed assessment:

Project Title: %s
Summary: %s
Description: %s
Goal: %s
Team Size: %d people
Duration: %d weeks
Technology Stack: %s
Category: %s

Please provide your analysis in the following format:

FEASIBILITY SCORE: [0-100 score where 0=impossible, 40=high risk, 70=feasible, 100=very achievable]

DIFFICULTY LEVEL: [EASY/MEDIUM/HARD based on technical complexity and team requirements]

RISK FACTORS:
- [List specific risks that could impact project success]

MISSING ROLES:
- [List any critical roles/skills missing from the team composition]

OVER-SCOPED FEATURES:
- [List features that seem too ambitious for the given constraints]

RECOMMENDATIONS:
[Provide specific actionable recommendations to improve feasibility]

PROJECT PROPOSAL OUTLINE:
[Generate a brief project proposal structure that addresses the identified issues]

Consider the project category when evaluating:
- STUDY: Focus on learning and demonstration value
- CONTEST: Consider competition deadlines and judging criteria
- BUSINESS: Evaluate market viability and technical feasibility
`, title, summary, description, goal, teamSize, durationWeeks, strings.Join(techStack, ", "), category)
}

// TeamMemberInfo is a slim team description used by prompts.
type TeamMemberInfo struct {
	Role            string `json:"role"`
	ExperienceLevel string `json:"experience_level"`
}

func timelinePrompt(features []string, teamSize int, members []TeamMemberInfo, hoursPerWeek, durationWeeks int) string {
	var featureLines strings.Builder
	for _, f := range features {
		featureLines.WriteString("- " + f + "\n")
	}

	var teamInfo strings.Builder
	if len(members) > 0 {
		teamInfo.WriteString("\nTeam Composition:\n")
		for _, m := range members {
			teamInfo.WriteString(fmt.Sprintf("- %s: %s level\n", m.Role, m.ExperienceLevel))
		}
	}

	return fmt.Sprintf(`Create a detailed project timeline and work breakdown structure for this project:

Features to Implement:
%s
Team Size: %d people
Available Hours per Week: %d hours total
Project Duration: %d weeks
%s
Please provide your response in the following format:

WEEKLY TIMELINE:
Week 1:
- Summary: [Brief description of week's focus]
- Tasks: [List of specific tasks]

Week 2:
- Summary: [Brief description of week's focus]
- Tasks: [List of specific tasks]

[Continue for all weeks...]

WORK BREAKDOWN STRUCTURE:
1. [Main Component]
   1.1 [Sub-task] - [Estimated hours]
   1.2 [Sub-task] - [Estimated hours]
2. [Main Component]
   2.1 [Sub-task] - [Estimated hours]

IDENTIFIED RISKS:
- [List potential scheduling and technical risks]

BOTTLENECKS:
- [List likely bottlenecks and dependencies]

ARCHITECTURE SUGGESTIONS:
[Provide high-level technical architecture recommendations]

Adjust the timeline complexity based on team experience levels:
- BEGINNER teams: More time for learning and simpler tasks
- MID/SENIOR teams: More aggressive timelines and complex features
`, featureLines.String(), teamSize, hoursPerWeek, durationWeeks, teamInfo.String())
}

func learningRoadmapPrompt(targetTechnologies []string, currentExperience string, daysPerWeek, weeksAvailable int, projectContext string) string {
	return fmt.Sprintf(`Create a personalized learning roadmap for a team member who needs to learn new technologies:

Target Technologies: %s
Current Experience Level: %s
Available Study Time: %d days per week
Time Until Critical Phase: %d weeks
Project Context: %s

Please provide your response in the following format:

LEARNING ROADMAP:
Week 1 (Days 1-%d):
- Focus Topic: [Main learning objective]
- Resources: [List of recommended tutorials, docs, courses]
- Practice Tasks: [Hands-on exercises to reinforce learning]

Week 2 (Days %d-%d):
- Focus Topic: [Main learning objective]
- Resources: [List of recommended tutorials, docs, courses]
- Practice Tasks: [Hands-on exercises to reinforce learning]

[Continue for all weeks...]

CHECKPOINT QUIZ IDEAS:
- [Questions team leader can ask to assess progress]
- [Practical challenges to test understanding]

LEADER SUMMARY:
[Brief summary for team leader about what to expect and how to support learning]

Tailor the roadmap based on experience level:
- BEGINNER: Start with fundamentals, more guided resources
- JUNIOR: Focus on practical application and best practices
- MID: Advanced concepts and optimization techniques
- SENIOR: Architecture patterns and team leadership aspects
`, strings.Join(targetTechnologies, ", "), currentExperience, daysPerWeek, weeksAvailable, projectContext,
		daysPerWeek, daysPerWeek+1, daysPerWeek*2)
}

func monitoringPrompt(commitActivity string, meetingSummaries []string, taskProgress []string) string {
	commitInfo := "No commit data available"
	if commitActivity != "" {
		commitInfo = "Commit Activity: " + commitActivity
	}

	meetingInfo := "No meeting summaries available"
	if len(meetingSummaries) > 0 {
		var b strings.Builder
		b.WriteString("Recent Meeting Summaries:\n")
		for _, s := range meetingSummaries {
			b.WriteString("- " + s + "\n")
		}
		meetingInfo = strings.TrimRight(b.String(), "\n")
	}

	taskInfo := "No task progress data available"
	if len(taskProgress) > 0 {
		var b strings.Builder
		b.WriteString("Task Progress:\n")
		for _, t := range taskProgress {
			b.WriteString("- " + t + "\n")
		}
		taskInfo = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(`Analyze the current health and progress of this project:

%s

%s

%s

Please provide your analysis in the following format:

HEALTH SCORE: [0-100 where 0=critical issues, 50=concerning, 80=healthy, 100=excellent]

RISK LEVEL: [LOW/MEDIUM/HIGH based on identified issues]

ISSUES DETECTED:
- [List specific problems or warning signs]

RECOMMENDATIONS:
- [Actionable suggestions to improve project health]

Consider these factors in your analysis:
- Code contribution patterns and frequency
- Team communication and meeting outcomes
- Task completion rates and blockers
- Overall project momentum and engagement
`, commitInfo, meetingInfo, taskInfo)
}

func portfolioPrompt(role string, techStack []string, contributions, projectContext string) string {
	return fmt.Sprintf(`Create professional portfolio content for a team member based on their project contributions:

Role in Project: %s
Technologies Used: %s
Personal Contributions: %s
Project Context: %s

Please provide your response in the following format:

PORTFOLIO PROJECT DESCRIPTION (STAR Format):
Situation: [Context and project background]
Task: [Specific responsibilities and challenges]
Action: [What you did and how you approached problems]
Result: [Outcomes and impact of your work]

TECHNICAL HIGHLIGHTS:
1. [Key technical achievement with specific details]
2. [Another significant contribution or skill demonstration]
3. [Problem-solving example or innovation]
4. [Additional technical accomplishment]
5. [Learning or growth demonstration]

CHALLENGES AND SOLUTIONS:
[Describe a significant challenge faced and how it was overcome]

INTERVIEW QUESTIONS AND ANSWERS:
Q: [Relevant technical question about the project]
A: [Detailed answer demonstrating knowledge and experience]

Q: [Behavioral question about teamwork or problem-solving]
A: [STAR format answer based on project experience]

Q: [Question about specific technology or approach used]
A: [Technical explanation with project examples]

[Continue with 3-5 more relevant Q&A pairs]

Focus on creating content that demonstrates both technical skills and professional growth.
`, role, strings.Join(techStack, ", "), contributions, projectContext)
}
