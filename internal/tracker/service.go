// Package tracker implements the in-memory issue tracking core: the
// entity types (users, projects, issues), the registries that own them,
// and the operations the rest of the application drives them with.
//
// The operations are deliberately permissive: creating over an existing
// id overwrites it, linking against an unknown id is a silent no-op,
// and operations that can fail report a bare bool. Callers that need
// stricter guarantees layer them on top.
package tracker

import (
	"sync"

	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/pubsub"
)

// Service owns the three identity registries and serializes all access
// to them and to the entities reached through them. A single lock keeps
// compound mutations (assign sets assignee and status together) atomic.
type Service struct {
	mu       sync.RWMutex
	users    map[string]*User
	projects map[string]*Project
	issues   map[string]*Issue

	// revision increments on every successful mutation. Read-side
	// caches key off it so stale entries become unreachable.
	revision uint64

	broker *pubsub.Broker[Event]
}

// NewService creates an empty service. The broker receives an event for
// every successful mutation; pass nil to disable publishing.
func NewService(broker *pubsub.Broker[Event]) *Service {
	return &Service{
		users:    make(map[string]*User),
		projects: make(map[string]*Project),
		issues:   make(map[string]*Issue),
		broker:   broker,
	}
}

// Revision returns the current mutation counter.
func (s *Service) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// CreateUser registers a user. An empty id gets a generated one; an
// existing id is silently overwritten, last write wins.
func (s *Service) CreateUser(id, name string, role Role, email string) *User {
	if id == "" {
		id = NewUserID()
	}
	user := NewUser(id, name, role, email)

	s.mu.Lock()
	s.users[id] = user
	s.revision++
	s.mu.Unlock()

	log.Debug(log.CatTracker, "user created", "user_id", id, "role", role)
	s.publish(EntityUser, OpCreated, id, name)
	return user
}

// CreateProject registers a project. An empty id gets a generated one;
// an existing id is silently overwritten, last write wins.
func (s *Service) CreateProject(id, name, repoURL string) *Project {
	if id == "" {
		id = NewProjectID()
	}
	project := NewProject(id, name, repoURL)

	s.mu.Lock()
	s.projects[id] = project
	s.revision++
	s.mu.Unlock()

	log.Debug(log.CatTracker, "project created", "project_id", id, "name", name)
	s.publish(EntityProject, OpCreated, id, name)
	return project
}

// CreateIssue registers an issue in status NEW. The kind token is
// resolved case-insensitively ("task" means task, anything else is a
// bug). An empty id gets a generated one; an existing id is silently
// overwritten, last write wins.
func (s *Service) CreateIssue(id, title, description string, severity Severity, kind string) *Issue {
	if id == "" {
		id = NewIssueID()
	}
	issue := NewIssue(id, title, description, severity, KindFromString(kind))

	s.mu.Lock()
	s.issues[id] = issue
	s.revision++
	s.mu.Unlock()

	log.Debug(log.CatTracker, "issue created", "issue_id", id, "severity", severity, "kind", issue.Kind())
	s.publish(EntityIssue, OpCreated, id, title)
	return issue
}

// User looks up a user by id.
func (s *Service) User(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// Project looks up a project by id.
func (s *Service) Project(id string) (*Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	return project, ok
}

// Issue looks up an issue by id.
func (s *Service) Issue(id string) (*Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issue, ok := s.issues[id]
	return issue, ok
}

// Users returns all registered users in no particular order.
func (s *Service) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out
}

// Projects returns all registered projects in no particular order.
func (s *Service) Projects() []*Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Project, 0, len(s.projects))
	for _, project := range s.projects {
		out = append(out, project)
	}
	return out
}

// Issues returns all registered issues in no particular order.
func (s *Service) Issues() []*Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		out = append(out, issue)
	}
	return out
}

// AttachToIssue appends an attachment to the issue. Unknown issue ids
// are ignored.
func (s *Service) AttachToIssue(issueID, attachment string) {
	s.mu.Lock()
	issue, ok := s.issues[issueID]
	if ok {
		issue.AddAttachment(attachment)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "attach skipped, unknown issue", "issue_id", issueID)
		return
	}
	s.publish(EntityIssue, OpAttached, issueID, attachment)
}

// TagIssue adds a tag to the issue. Duplicate tags collapse; unknown
// issue ids are ignored.
func (s *Service) TagIssue(issueID, tag string) {
	s.mu.Lock()
	issue, ok := s.issues[issueID]
	if ok {
		issue.AddTag(tag)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "tag skipped, unknown issue", "issue_id", issueID)
		return
	}
	s.publish(EntityIssue, OpTagged, issueID, tag)
}

// AssignIssue assigns an issue to a user and moves it to IN_PROGRESS in
// one step. Both ids must resolve; otherwise nothing changes and the
// result is false.
func (s *Service) AssignIssue(issueID, userID string) bool {
	s.mu.Lock()
	issue, issueOK := s.issues[issueID]
	_, userOK := s.users[userID]
	ok := issueOK && userOK
	if ok {
		issue.AssignTo(userID)
		issue.SetStatus(StatusInProgress)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "assign failed", "issue_id", issueID, "user_id", userID)
		return false
	}
	log.Debug(log.CatTracker, "issue assigned", "issue_id", issueID, "user_id", userID)
	s.publish(EntityIssue, OpAssigned, issueID, userID)
	return true
}

// ChangeStatus sets the issue status. Any transition is allowed. The
// result is false only when the issue id is unknown.
func (s *Service) ChangeStatus(issueID string, status Status) bool {
	s.mu.Lock()
	issue, ok := s.issues[issueID]
	if ok {
		issue.SetStatus(status)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "status change failed, unknown issue", "issue_id", issueID)
		return false
	}
	s.publish(EntityIssue, OpStatusChanged, issueID, status.String())
	return true
}

// AddIssueToProject appends the issue id to the project backlog.
// Unknown project ids are ignored; the issue id is not checked and
// duplicates are kept.
func (s *Service) AddIssueToProject(projectID, issueID string) {
	s.mu.Lock()
	project, ok := s.projects[projectID]
	if ok {
		project.AddIssue(issueID)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "link skipped, unknown project", "project_id", projectID)
		return
	}
	s.publish(EntityProject, OpLinked, projectID, issueID)
}

// AddUserToProject appends the user id to the project team. Unknown
// project ids are ignored; the user id is not checked and duplicates
// are kept.
func (s *Service) AddUserToProject(projectID, userID string) {
	s.mu.Lock()
	project, ok := s.projects[projectID]
	if ok {
		project.AddUser(userID)
		s.revision++
	}
	s.mu.Unlock()

	if !ok {
		log.Debug(log.CatTracker, "link skipped, unknown project", "project_id", projectID)
		return
	}
	s.publish(EntityProject, OpLinked, projectID, userID)
}

// ListBySeverity returns the project backlog filtered to issues whose
// current severity matches, in backlog order. Unknown project ids and
// backlog entries that resolve to nothing yield no rows.
func (s *Service) ListBySeverity(projectID string, severity Severity) []*Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Issue{}
	project, ok := s.projects[projectID]
	if !ok {
		return out
	}
	for _, issueID := range project.backlog {
		issue, ok := s.issues[issueID]
		if !ok {
			continue
		}
		if issue.Severity() == severity {
			out = append(out, issue)
		}
	}
	return out
}

func (s *Service) publish(entity EntityKind, op Op, id, detail string) {
	if s.broker == nil {
		return
	}
	eventType := pubsub.UpdatedEvent
	if op == OpCreated {
		eventType = pubsub.CreatedEvent
	}
	s.broker.Publish(eventType, Event{Entity: entity, Op: op, ID: id, Detail: detail})
}
