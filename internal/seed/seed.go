// Package seed loads YAML scenario files and applies them to a tracker
// service. A scenario declares users, projects with their memberships, and
// issues with their links (backlog placement, attachments, tags, assignee,
// status). The built-in default scenario is the dataset `docket demo` runs.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/tracker"
)

//go:embed scenario.yaml
var defaultScenario []byte

// Scenario is the root structure for a scenario file.
type Scenario struct {
	Users    []UserDef    `yaml:"users"`
	Projects []ProjectDef `yaml:"projects"`
	Issues   []IssueDef   `yaml:"issues"`
}

// UserDef defines a single user in YAML.
type UserDef struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"` // QA, DEV or MANAGER
	Email string `yaml:"email"`
}

// ProjectDef defines a single project in YAML.
type ProjectDef struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	RepoURL string   `yaml:"repo_url"`
	Members []string `yaml:"members"` // User ids added to the team
}

// IssueDef defines a single issue in YAML.
type IssueDef struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"` // LOW, MEDIUM, HIGH or CRITICAL
	Kind        string   `yaml:"kind"`     // "task" or anything else for bug
	Project     string   `yaml:"project"`  // Project id whose backlog gets the issue
	Attachments []string `yaml:"attachments"`
	Tags        []string `yaml:"tags"`
	Assignee    string   `yaml:"assignee"` // Assigning also moves the issue to IN_PROGRESS
	Status      string   `yaml:"status"`   // Optional explicit status, applied last
}

// Stats reports what an Apply call created.
type Stats struct {
	Users    int
	Projects int
	Issues   int
}

// Default returns the built-in demo scenario.
func Default() (*Scenario, error) {
	return Parse(defaultScenario)
}

// Load reads a scenario file from disk.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse unmarshals scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Apply runs the scenario against the service: users first, then projects
// with their memberships, then issues with their links. Unknown references
// are skipped with a warning so a typo never plants a dangling id. Returns
// an error when an enum value (role, severity, status) cannot be parsed;
// entities applied before the bad definition stay in the registry.
func (s *Scenario) Apply(svc *tracker.Service) (Stats, error) {
	var stats Stats

	for _, def := range s.Users {
		role, err := tracker.ParseRole(def.Role)
		if err != nil {
			return stats, fmt.Errorf("user %s: %w", def.ID, err)
		}
		svc.CreateUser(def.ID, def.Name, role, def.Email)
		stats.Users++
	}

	for _, def := range s.Projects {
		svc.CreateProject(def.ID, def.Name, def.RepoURL)
		stats.Projects++
		for _, userID := range def.Members {
			if _, ok := svc.User(userID); !ok {
				log.Warn(log.CatSeed, "Unknown member in scenario", "project", def.ID, "user", userID)
				continue
			}
			svc.AddUserToProject(def.ID, userID)
		}
	}

	for _, def := range s.Issues {
		severity, err := tracker.ParseSeverity(def.Severity)
		if err != nil {
			return stats, fmt.Errorf("issue %s: %w", def.ID, err)
		}
		svc.CreateIssue(def.ID, def.Title, def.Description, severity, def.Kind)
		stats.Issues++

		if def.Project != "" {
			if _, ok := svc.Project(def.Project); !ok {
				log.Warn(log.CatSeed, "Unknown project in scenario", "project", def.Project, "issue", def.ID)
			} else {
				svc.AddIssueToProject(def.Project, def.ID)
			}
		}
		for _, name := range def.Attachments {
			svc.AttachToIssue(def.ID, name)
		}
		for _, tag := range def.Tags {
			svc.TagIssue(def.ID, tag)
		}
		if def.Assignee != "" {
			if !svc.AssignIssue(def.ID, def.Assignee) {
				log.Warn(log.CatSeed, "Unknown assignee in scenario", "issue", def.ID, "user", def.Assignee)
			}
		}
		if def.Status != "" {
			status, err := tracker.ParseStatus(def.Status)
			if err != nil {
				return stats, fmt.Errorf("issue %s: %w", def.ID, err)
			}
			svc.ChangeStatus(def.ID, status)
		}
	}

	log.Info(log.CatSeed, "Scenario applied",
		"users", stats.Users, "projects", stats.Projects, "issues", stats.Issues)
	return stats, nil
}
