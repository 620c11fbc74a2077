package presentation

import (
	"github.com/zjrosen/docket/internal/report"
	"github.com/zjrosen/docket/internal/tracker"
)

// IssueDTO is the rendering descriptor for one issue: the variant label
// plus the fields every listing shows.
type IssueDTO struct {
	Label    string `json:"label"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Severity string `json:"severity"`
}

// SeverityCountDTO is one dashboard histogram bucket.
type SeverityCountDTO struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// DashboardDTO represents a project dashboard for presentation.
type DashboardDTO struct {
	ProjectID   string             `json:"project_id"`
	ProjectName string             `json:"project_name"`
	Counts      []SeverityCountDTO `json:"counts"`
}

// ReportRowDTO is one severity report line.
type ReportRowDTO struct {
	IssueID  string `json:"issue_id"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
}

// FromDomainIssue converts an issue entity to its rendering descriptor.
func FromDomainIssue(issue *tracker.Issue) IssueDTO {
	return IssueDTO{
		Label:    issue.Kind().Label(),
		ID:       issue.ID(),
		Title:    issue.Title(),
		Status:   issue.Status().String(),
		Severity: issue.Severity().String(),
	}
}

// FromDomainIssues converts a slice of issue entities to DTOs.
func FromDomainIssues(issues []*tracker.Issue) []IssueDTO {
	dtos := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		dtos[i] = FromDomainIssue(issue)
	}
	return dtos
}

// FromSummary converts a dashboard summary to a DTO.
func FromSummary(summary report.Summary) DashboardDTO {
	counts := make([]SeverityCountDTO, len(summary.Counts))
	for i, entry := range summary.Counts {
		counts[i] = SeverityCountDTO{
			Severity: entry.Severity.String(),
			Count:    entry.Count,
		}
	}
	return DashboardDTO{
		ProjectID:   summary.ProjectID,
		ProjectName: summary.ProjectName,
		Counts:      counts,
	}
}

// FromRows converts severity report rows to DTOs.
func FromRows(rows []report.Row) []ReportRowDTO {
	dtos := make([]ReportRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = ReportRowDTO{
			IssueID:  row.IssueID,
			Title:    row.Title,
			Severity: row.Severity.String(),
			Status:   row.Status.String(),
		}
	}
	return dtos
}
