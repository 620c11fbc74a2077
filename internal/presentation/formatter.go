package presentation

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatIssues formats an issue listing as JSON
func (f *Formatter) FormatIssues(issues []IssueDTO) error {
	return f.encode(issues)
}

// FormatDashboard formats a project dashboard as JSON
func (f *Formatter) FormatDashboard(dashboard DashboardDTO) error {
	return f.encode(dashboard)
}

// FormatReport formats severity report rows as JSON
func (f *Formatter) FormatReport(rows []ReportRowDTO) error {
	return f.encode(rows)
}

func (f *Formatter) encode(value any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// FormatIssuesText writes one "[LABEL] id title STATUS SEVERITY" line
// per issue.
func (f *Formatter) FormatIssuesText(issues []IssueDTO) error {
	for _, issue := range issues {
		_, err := fmt.Fprintf(f.writer, "[%s] %s %s %s %s\n", issue.Label, issue.ID, issue.Title, issue.Status, issue.Severity)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatDashboardText writes the project header and one "SEVERITY: n"
// line per histogram bucket.
func (f *Formatter) FormatDashboardText(dashboard DashboardDTO) error {
	if _, err := fmt.Fprintf(f.writer, "Project: %s\n", dashboard.ProjectName); err != nil {
		return err
	}
	for _, entry := range dashboard.Counts {
		if _, err := fmt.Fprintf(f.writer, "%s: %d\n", entry.Severity, entry.Count); err != nil {
			return err
		}
	}
	return nil
}

// FormatReportText writes one "id title SEVERITY STATUS" line per row.
func (f *Formatter) FormatReportText(rows []ReportRowDTO) error {
	for _, row := range rows {
		_, err := fmt.Fprintf(f.writer, "%s %s %s %s\n", row.IssueID, row.Title, row.Severity, row.Status)
		if err != nil {
			return err
		}
	}
	return nil
}
