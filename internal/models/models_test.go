package models

import (
	"testing"
	"time"
)

func TestUser_IsUnderPenalty(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name         string
		penaltyUntil *time.Time
		expected     bool
	}{
		{"no penalty", nil, false},
		{"active penalty", &future, true},
		{"expired penalty", &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{PenaltyUntil: tt.penaltyUntil}
			if got := u.IsUnderPenalty(); got != tt.expected {
				t.Errorf("IsUnderPenalty() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestUser_ApplyNoShow_BelowThreshold(t *testing.T) {
	u := User{NoShowCount: 1}
	u.ApplyNoShow(3, 30*24*time.Hour)

	if u.NoShowCount != 2 {
		t.Errorf("NoShowCount = %d, expected 2", u.NoShowCount)
	}
	if u.PenaltyUntil != nil {
		t.Error("penalty should not apply below the threshold")
	}
}

func TestUser_ApplyNoShow_AtThreshold(t *testing.T) {
	u := User{NoShowCount: 2}
	u.ApplyNoShow(3, 30*24*time.Hour)

	if u.NoShowCount != 3 {
		t.Errorf("NoShowCount = %d, expected 3", u.NoShowCount)
	}
	if u.PenaltyUntil == nil {
		t.Fatal("penalty should apply exactly at the threshold")
	}

	expected := time.Now().Add(30 * 24 * time.Hour)
	diff := u.PenaltyUntil.Sub(expected)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("penalty expiry is off by more than 1 minute: %v", diff)
	}
}

func TestUser_CanCreateProjects(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name     string
		role     UserRole
		penalty  *time.Time
		expected bool
	}{
		{"leader", RoleLeader, nil, true},
		{"both", RoleBoth, nil, true},
		{"member", RoleMember, nil, false},
		{"penalized leader", RoleLeader, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Role: tt.role, PenaltyUntil: tt.penalty}
			if got := u.CanCreateProjects(); got != tt.expected {
				t.Errorf("CanCreateProjects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestUser_CanApplyToProjects(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name     string
		isActive bool
		penalty  *time.Time
		expected bool
	}{
		{"active", true, nil, true},
		{"inactive", false, nil, false},
		{"penalized", true, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{IsActive: tt.isActive, PenaltyUntil: tt.penalty}
			if got := u.CanApplyToProjects(); got != tt.expected {
				t.Errorf("CanApplyToProjects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func activeMember(position string) TeamMember {
	return TeamMember{RoleInProject: position}
}

func leftMember(position string) TeamMember {
	left := time.Now()
	return TeamMember{RoleInProject: position, LeftAt: &left}
}

func TestProject_IsTeamComplete(t *testing.T) {
	tests := []struct {
		name     string
		needed   map[string]int
		members  []TeamMember
		expected bool
	}{
		{"no requirements is vacuously complete", nil, nil, true},
		{"empty requirements map", map[string]int{}, nil, true},
		{
			"exactly filled",
			map[string]int{"BE": 1, "FE": 1},
			[]TeamMember{activeMember("BE"), activeMember("FE")},
			true,
		},
		{
			"overfilled position",
			map[string]int{"BE": 1},
			[]TeamMember{activeMember("BE"), activeMember("BE")},
			true,
		},
		{
			"missing position",
			map[string]int{"BE": 1, "FE": 1},
			[]TeamMember{activeMember("BE")},
			false,
		},
		{
			"underfilled position",
			map[string]int{"BE": 2},
			[]TeamMember{activeMember("BE")},
			false,
		},
		{
			"left members do not count",
			map[string]int{"BE": 1},
			[]TeamMember{leftMember("BE")},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{TeamMembers: tt.members}
			if got := p.IsTeamComplete(tt.needed); got != tt.expected {
				t.Errorf("IsTeamComplete() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestProject_TeamSize(t *testing.T) {
	p := Project{TeamMembers: []TeamMember{
		activeMember("BE"),
		activeMember("FE"),
		leftMember("FE"),
	}}

	if got := p.TeamSize(); got != 3 {
		t.Errorf("TeamSize() = %d, expected 3 (leader + 2 active)", got)
	}
}

func TestProject_CanStartProgress(t *testing.T) {
	needed := map[string]int{"BE": 1}
	members := []TeamMember{activeMember("BE")}

	tests := []struct {
		name     string
		status   RecruitmentStatus
		members  []TeamMember
		expected bool
	}{
		{"open and complete", RecruitmentOpen, members, true},
		{"open but incomplete", RecruitmentOpen, nil, false},
		{"already in progress", RecruitmentInProgress, members, false},
		{"closed", RecruitmentClosed, members, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{RecruitmentStatus: tt.status, TeamMembers: tt.members}
			if got := p.CanStartProgress(needed); got != tt.expected {
				t.Errorf("CanStartProgress() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestProjectApplication_Transitions(t *testing.T) {
	tests := []struct {
		status    ApplicationStatus
		acceptOK  bool
		rejectOK  bool
	}{
		{ApplicationPending, true, true},
		{ApplicationAccepted, false, false},
		{ApplicationRejected, false, false},
	}

	for _, tt := range tests {
		a := ProjectApplication{Status: tt.status}
		if got := a.CanBeAccepted(); got != tt.acceptOK {
			t.Errorf("status %s: CanBeAccepted() = %v, expected %v", tt.status, got, tt.acceptOK)
		}
		if got := a.CanBeRejected(); got != tt.rejectOK {
			t.Errorf("status %s: CanBeRejected() = %v, expected %v", tt.status, got, tt.rejectOK)
		}
	}
}

func TestAIFeatureUsage_Ceiling(t *testing.T) {
	u := AIFeatureUsage{Count: 0}
	limit := 3

	for i := 0; i < limit; i++ {
		if !u.CanUseFeature(limit) {
			t.Fatalf("use %d should be allowed under limit %d", i+1, limit)
		}
		u.IncrementUsage()
	}

	if u.CanUseFeature(limit) {
		t.Errorf("count %d should block further use at limit %d", u.Count, limit)
	}
	if u.Count != limit {
		t.Errorf("Count = %d, expected %d", u.Count, limit)
	}
	if u.LastUsedAt == nil {
		t.Error("LastUsedAt should be set after use")
	}
}
