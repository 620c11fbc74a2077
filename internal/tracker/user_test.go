package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === Unit Tests: Role ===

func TestParseRole_AcceptsAnyCase(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"QA", RoleQA},
		{"qa", RoleQA},
		{"Dev", RoleDev},
		{"manager", RoleManager},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole_RejectsUnknown(t *testing.T) {
	_, err := ParseRole("intern")
	require.ErrorIs(t, err, ErrUnknownRole)
}

// === Unit Tests: User ===

func TestNewUser_EmptyBio(t *testing.T) {
	user := NewUser("U1", "Alice", RoleQA, "alice@example.com")

	assert.Equal(t, "U1", user.ID())
	assert.Equal(t, "Alice", user.Name())
	assert.Equal(t, RoleQA, user.Role())
	assert.Equal(t, "alice@example.com", user.Email())
	assert.Empty(t, user.Bio())
}

func TestUser_Setters(t *testing.T) {
	user := NewUser("U1", "Alice", RoleQA, "alice@example.com")

	user.SetName("Alicia")
	user.SetRole(RoleDev)
	user.SetEmail("alicia@example.com")
	user.SetBio("breaks things for a living")

	assert.Equal(t, "Alicia", user.Name())
	assert.Equal(t, RoleDev, user.Role())
	assert.Equal(t, "alicia@example.com", user.Email())
	assert.Equal(t, "breaks things for a living", user.Bio())
}

// === Unit Tests: ApproveIssue ===

func TestUser_ApproveIssue_ManagerEscalatesCritical(t *testing.T) {
	manager := NewUser("M1", "Carol", RoleManager, "carol@example.com")
	issue := NewIssue("I1", "Login crash", "NPE", SeverityCritical, KindBug)

	ok := manager.ApproveIssue(issue)

	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, issue.Status())
}

func TestUser_ApproveIssue_WorksFromAnyStatus(t *testing.T) {
	manager := NewUser("M1", "Carol", RoleManager, "carol@example.com")
	issue := NewIssue("I1", "Login crash", "NPE", SeverityCritical, KindBug)
	issue.SetStatus(StatusClosed)

	ok := manager.ApproveIssue(issue)

	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, issue.Status())
}

func TestUser_ApproveIssue_RejectsBelowCritical(t *testing.T) {
	manager := NewUser("M1", "Carol", RoleManager, "carol@example.com")
	for _, severity := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		t.Run(severity.String(), func(t *testing.T) {
			issue := NewIssue("I1", "t", "d", severity, KindBug)

			ok := manager.ApproveIssue(issue)

			assert.False(t, ok)
			assert.Equal(t, StatusNew, issue.Status())
		})
	}
}

func TestUser_ApproveIssue_RejectsNonManagers(t *testing.T) {
	for _, role := range []Role{RoleQA, RoleDev} {
		t.Run(role.String(), func(t *testing.T) {
			user := NewUser("U1", "Alice", role, "alice@example.com")
			issue := NewIssue("I1", "t", "d", SeverityCritical, KindBug)

			ok := user.ApproveIssue(issue)

			assert.False(t, ok)
			assert.Equal(t, StatusNew, issue.Status())
		})
	}
}

func TestUser_ApproveIssue_NilIssue(t *testing.T) {
	manager := NewUser("M1", "Carol", RoleManager, "carol@example.com")
	assert.False(t, manager.ApproveIssue(nil))
}
