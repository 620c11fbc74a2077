package testutil

import "github.com/zjrosen/docket/internal/tracker"

// projectData holds all data for a project to be created.
type projectData struct {
	id      string
	name    string
	repoURL string
	members []string
}

// defaultProject returns a projectData with sensible defaults.
func defaultProject(id string) projectData {
	return projectData{
		id:   id,
		name: id, // Default name is the ID
	}
}

// ProjectOption configures a project during builder setup.
type ProjectOption func(*projectData)

// ProjectName sets the project display name.
func ProjectName(name string) ProjectOption {
	return func(p *projectData) { p.name = name }
}

// RepoURL sets the project repository URL.
func RepoURL(url string) ProjectOption {
	return func(p *projectData) { p.repoURL = url }
}

// Members adds user ids to the project team (nested option).
func Members(userIDs ...string) ProjectOption {
	return func(p *projectData) { p.members = append(p.members, userIDs...) }
}

// issueData holds all data for an issue to be created.
type issueData struct {
	id          string
	title       string
	description string
	severity    tracker.Severity
	kind        string
	projectID   string
	assignee    string
	tags        []string
	attachments []string
	status      tracker.Status
}

// defaultIssue returns an issueData with sensible defaults.
func defaultIssue(id string) issueData {
	return issueData{
		id:       id,
		title:    id, // Default title is the ID
		severity: tracker.SeverityMedium,
		kind:     "bug",
	}
}

// IssueOption configures an issue during builder setup.
type IssueOption func(*issueData)

// Title sets the issue title.
func Title(title string) IssueOption {
	return func(i *issueData) { i.title = title }
}

// Description sets the issue description.
func Description(desc string) IssueOption {
	return func(i *issueData) { i.description = desc }
}

// Severity sets the issue severity.
func Severity(s tracker.Severity) IssueOption {
	return func(i *issueData) { i.severity = s }
}

// Kind sets the issue kind token ("task" or anything else for bug).
func Kind(kind string) IssueOption {
	return func(i *issueData) { i.kind = kind }
}

// InProject places the issue in the project's backlog.
func InProject(projectID string) IssueOption {
	return func(i *issueData) { i.projectID = projectID }
}

// Assignee assigns the issue to a user, which also moves it to IN_PROGRESS.
func Assignee(userID string) IssueOption {
	return func(i *issueData) { i.assignee = userID }
}

// Tags adds tags to the issue (nested option).
func Tags(tags ...string) IssueOption {
	return func(i *issueData) { i.tags = append(i.tags, tags...) }
}

// Attachments adds attachment names to the issue (nested option).
func Attachments(names ...string) IssueOption {
	return func(i *issueData) { i.attachments = append(i.attachments, names...) }
}

// Status sets an explicit status, applied after any assignment.
func Status(status tracker.Status) IssueOption {
	return func(i *issueData) { i.status = status }
}
