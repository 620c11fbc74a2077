// Package report derives read-only aggregates from tracker state: the
// per-project severity histogram, the flat severity report, and the
// global issue listing.
package report

import (
	"github.com/zjrosen/docket/internal/tracker"
)

// SeverityCount is one histogram bucket.
type SeverityCount struct {
	Severity tracker.Severity
	Count    int
}

// Summary is a project dashboard: the complete severity histogram in
// canonical order. Every severity level appears, zero counts included.
type Summary struct {
	ProjectID   string
	ProjectName string
	Counts      []SeverityCount
}

// Total returns the number of issues counted across all buckets.
func (s Summary) Total() int {
	total := 0
	for _, entry := range s.Counts {
		total += entry.Count
	}
	return total
}

// Row is one line of a severity report.
type Row struct {
	IssueID  string
	Title    string
	Severity tracker.Severity
	Status   tracker.Status
}

// BuildDashboard computes the histogram for a project from live state.
// An unknown project id yields a zero-valued histogram.
func BuildDashboard(svc *tracker.Service, projectID string) Summary {
	summary := Summary{ProjectID: projectID}
	counts := make(map[tracker.Severity]int)

	if project, ok := svc.Project(projectID); ok {
		summary.ProjectName = project.Name()
		for _, issueID := range project.Backlog() {
			if issue, ok := svc.Issue(issueID); ok {
				counts[issue.Severity()]++
			}
		}
	}

	for _, severity := range tracker.Severities() {
		summary.Counts = append(summary.Counts, SeverityCount{
			Severity: severity,
			Count:    counts[severity],
		})
	}
	return summary
}

// BuildSeverityReport lists the project backlog as flat rows in backlog
// order. An unknown project id yields no rows.
func BuildSeverityReport(svc *tracker.Service, projectID string) []Row {
	rows := []Row{}
	project, ok := svc.Project(projectID)
	if !ok {
		return rows
	}
	for _, issueID := range project.Backlog() {
		issue, ok := svc.Issue(issueID)
		if !ok {
			continue
		}
		rows = append(rows, Row{
			IssueID:  issue.ID(),
			Title:    issue.Title(),
			Severity: issue.Severity(),
			Status:   issue.Status(),
		})
	}
	return rows
}
