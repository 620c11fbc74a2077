package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/docket/internal/tracker"
)

func TestPreset_DemoData(t *testing.T) {
	svc := tracker.NewService(nil)

	NewBuilder(t, svc).WithDemoData().Build()

	require.Len(t, svc.Users(), 3)
	require.Len(t, svc.Projects(), 1)
	require.Len(t, svc.Issues(), 2)

	project, ok := svc.Project("P1")
	require.True(t, ok)
	require.Equal(t, "Alpha", project.Name())
	require.Equal(t, []string{"U1", "U2", "M1"}, project.Team())
	require.Equal(t, []string{"I1", "I2"}, project.Backlog())

	// Verify specific issue attributes
	i1, ok := svc.Issue("I1")
	require.True(t, ok)
	require.Equal(t, "NullPointer in Login", i1.Title())
	require.Equal(t, tracker.SeverityCritical, i1.Severity())
	require.Equal(t, "U2", i1.AssigneeID())
	require.Equal(t, tracker.StatusInProgress, i1.Status())
	require.True(t, i1.HasTag("login"))

	i2, ok := svc.Issue("I2")
	require.True(t, ok)
	require.Equal(t, tracker.KindTask, i2.Kind())
	require.Equal(t, tracker.StatusInProgress, i2.Status())
}

func TestPreset_TriageData(t *testing.T) {
	svc := tracker.NewService(nil)

	NewBuilder(t, svc).WithTriageData().Build()

	require.Len(t, svc.Issues(), 6)

	project, ok := svc.Project("P1")
	require.True(t, ok)
	require.Len(t, project.Backlog(), 6)

	// Two lows, one medium, one high, two criticals
	require.Len(t, svc.ListBySeverity("P1", tracker.SeverityLow), 2)
	require.Len(t, svc.ListBySeverity("P1", tracker.SeverityMedium), 1)
	require.Len(t, svc.ListBySeverity("P1", tracker.SeverityHigh), 1)
	require.Len(t, svc.ListBySeverity("P1", tracker.SeverityCritical), 2)

	// Statuses spread across the board
	t2, ok := svc.Issue("T2")
	require.True(t, ok)
	require.Equal(t, tracker.StatusClosed, t2.Status())

	t3, ok := svc.Issue("T3")
	require.True(t, ok)
	require.Equal(t, tracker.StatusInProgress, t3.Status())

	t4, ok := svc.Issue("T4")
	require.True(t, ok)
	require.Equal(t, tracker.StatusResolved, t4.Status())
}
