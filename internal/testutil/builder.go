// Package testutil provides a builder for seeding tracker services in tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/docket/internal/tracker"
)

// userData holds data for a user to be created.
type userData struct {
	id    string
	name  string
	role  tracker.Role
	email string
}

// Builder accumulates test data and applies it in the correct order.
type Builder struct {
	t        *testing.T
	svc      *tracker.Service
	users    []userData
	projects []projectData
	issues   []issueData
}

// NewBuilder creates a builder for the given service.
func NewBuilder(t *testing.T, svc *tracker.Service) *Builder {
	t.Helper()
	return &Builder{t: t, svc: svc}
}

// WithUser adds a user. The email is derived from the id.
func (b *Builder) WithUser(id, name string, role tracker.Role) *Builder {
	b.users = append(b.users, userData{
		id:    id,
		name:  name,
		role:  role,
		email: id + "@example.com",
	})
	return b
}

// WithProject adds a project with optional configuration.
func (b *Builder) WithProject(id string, opts ...ProjectOption) *Builder {
	project := defaultProject(id)
	for _, opt := range opts {
		opt(&project)
	}
	b.projects = append(b.projects, project)
	return b
}

// WithIssue adds an issue with optional configuration.
func (b *Builder) WithIssue(id string, opts ...IssueOption) *Builder {
	issue := defaultIssue(id)
	for _, opt := range opts {
		opt(&issue)
	}
	b.issues = append(b.issues, issue)
	return b
}

// Build applies all accumulated data to the service.
// Order: users → projects → memberships → issues → links.
// Fails the test on dangling references so setup typos surface immediately.
func (b *Builder) Build() *tracker.Service {
	b.t.Helper()

	for _, user := range b.users {
		b.svc.CreateUser(user.id, user.name, user.role, user.email)
	}

	for _, project := range b.projects {
		b.svc.CreateProject(project.id, project.name, project.repoURL)
		for _, userID := range project.members {
			_, ok := b.svc.User(userID)
			require.True(b.t, ok, "member %s of project %s does not exist", userID, project.id)
			b.svc.AddUserToProject(project.id, userID)
		}
	}

	for _, issue := range b.issues {
		b.svc.CreateIssue(issue.id, issue.title, issue.description, issue.severity, issue.kind)
		if issue.projectID != "" {
			_, ok := b.svc.Project(issue.projectID)
			require.True(b.t, ok, "project %s for issue %s does not exist", issue.projectID, issue.id)
			b.svc.AddIssueToProject(issue.projectID, issue.id)
		}
		for _, name := range issue.attachments {
			b.svc.AttachToIssue(issue.id, name)
		}
		for _, tag := range issue.tags {
			b.svc.TagIssue(issue.id, tag)
		}
		if issue.assignee != "" {
			ok := b.svc.AssignIssue(issue.id, issue.assignee)
			require.True(b.t, ok, "assignee %s for issue %s does not exist", issue.assignee, issue.id)
		}
		if issue.status != "" {
			b.svc.ChangeStatus(issue.id, issue.status)
		}
	}

	return b.svc
}
