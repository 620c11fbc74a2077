package testutil

import "github.com/zjrosen/docket/internal/tracker"

// WithDemoData adds the built-in demo dataset.
// Mirrors internal/seed scenario.yaml.
func (b *Builder) WithDemoData() *Builder {
	return b.
		WithUser("U1", "Alice", tracker.RoleQA).
		WithUser("U2", "Bob", tracker.RoleDev).
		WithUser("M1", "Carol", tracker.RoleManager).
		WithProject("P1",
			ProjectName("Alpha"), RepoURL("https://repo/alpha"),
			Members("U1", "U2", "M1")).
		WithIssue("I1",
			Title("NullPointer in Login"), Description("NPE when user logs in"),
			Severity(tracker.SeverityCritical), Kind("bug"), InProject("P1"),
			Attachments("screenshot.png"), Tags("login"), Assignee("U2")).
		WithIssue("I2",
			Title("UI alignment"), Description("Button misaligned on mobile"),
			Severity(tracker.SeverityLow), Kind("task"), InProject("P1"),
			Status(tracker.StatusInProgress))
}

// WithTriageData adds a wider dataset covering every severity and status.
// Useful for dashboard and report assertions.
func (b *Builder) WithTriageData() *Builder {
	return b.
		WithUser("U1", "Dana", tracker.RoleDev).
		WithProject("P1", ProjectName("Triage")).
		WithIssue("T1", Severity(tracker.SeverityLow), InProject("P1")).
		WithIssue("T2", Severity(tracker.SeverityLow), InProject("P1"), Status(tracker.StatusClosed)).
		WithIssue("T3", Severity(tracker.SeverityMedium), InProject("P1"), Assignee("U1")).
		WithIssue("T4", Severity(tracker.SeverityHigh), InProject("P1"), Status(tracker.StatusResolved)).
		WithIssue("T5", Severity(tracker.SeverityCritical), Kind("task"), InProject("P1")).
		WithIssue("T6", Severity(tracker.SeverityCritical), InProject("P1"), Tags("urgent"))
}
