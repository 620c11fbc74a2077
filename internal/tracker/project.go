package tracker

import "time"

// Project groups issues and team members. Both collections hold ids
// rather than entities; the registries own the referenced objects.
type Project struct {
	id          string
	name        string
	repoURL     string
	description string
	backlog     []string
	team        []string
	createdAt   time.Time
}

// NewProject creates a project with an empty backlog and team.
func NewProject(id, name, repoURL string) *Project {
	return &Project{
		id:        id,
		name:      name,
		repoURL:   repoURL,
		createdAt: time.Now(),
	}
}

// ID returns the project identifier.
func (p *Project) ID() string {
	return p.id
}

// Name returns the project name.
func (p *Project) Name() string {
	return p.name
}

// RepoURL returns the linked repository URL.
func (p *Project) RepoURL() string {
	return p.repoURL
}

// Description returns the free-form description text.
func (p *Project) Description() string {
	return p.description
}

// Backlog returns a copy of the issue id list in insertion order.
func (p *Project) Backlog() []string {
	out := make([]string, len(p.backlog))
	copy(out, p.backlog)
	return out
}

// Team returns a copy of the member user id list in insertion order.
func (p *Project) Team() []string {
	out := make([]string, len(p.team))
	copy(out, p.team)
	return out
}

// CreatedAt returns when this project was created.
func (p *Project) CreatedAt() time.Time {
	return p.createdAt
}

// SetDescription sets the free-form description text.
func (p *Project) SetDescription(description string) {
	p.description = description
}

// AddIssue appends an issue id to the backlog. Duplicates are kept.
func (p *Project) AddIssue(issueID string) {
	p.backlog = append(p.backlog, issueID)
}

// RemoveIssue unlinks the first occurrence of the issue id from the
// backlog. The issue itself is untouched.
func (p *Project) RemoveIssue(issueID string) {
	for idx, id := range p.backlog {
		if id == issueID {
			p.backlog = append(p.backlog[:idx], p.backlog[idx+1:]...)
			return
		}
	}
}

// AddUser appends a user id to the team. Duplicates are kept.
func (p *Project) AddUser(userID string) {
	p.team = append(p.team, userID)
}

// RemoveUser unlinks the first occurrence of the user id from the team.
// The user itself is untouched.
func (p *Project) RemoveUser(userID string) {
	for idx, id := range p.team {
		if id == userID {
			p.team = append(p.team[:idx], p.team[idx+1:]...)
			return
		}
	}
}
