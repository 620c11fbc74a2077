package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Severity ranks how badly an issue hurts.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities returns every severity in canonical order, least to most
// severe. Reports iterate this to emit complete histograms.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a recognized level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// ErrUnknownSeverity is returned when parsing an unrecognized severity token.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity maps a case-insensitive token onto a Severity.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !severity.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
	}
	return severity, nil
}

// Status represents the issue lifecycle state. Any status may be set
// from any other status; the workflow carries no transition rules.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// ErrUnknownStatus is returned when parsing an unrecognized status token.
var ErrUnknownStatus = errors.New("unknown status")

// ParseStatus maps a case-insensitive token onto a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// Kind categorizes the nature of an issue. The two kinds behave
// identically everywhere except their display label.
type Kind string

const (
	KindBug  Kind = "bug"
	KindTask Kind = "task"
)

// KindFromString resolves a raw kind token. Only "task" (any casing)
// yields KindTask; everything else, including the empty string, is a bug.
func KindFromString(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindTask)) {
		return KindTask
	}
	return KindBug
}

// Label returns the uppercase display label for listings.
func (k Kind) Label() string {
	if k == KindTask {
		return "TASK"
	}
	return "BUG"
}

// Issue represents a tracked unit of work. All fields are unexported to
// enforce encapsulation; use the constructor and accessor methods.
// Issues reference their assignee by user id rather than holding the
// entity, so ownership stays with the registries.
type Issue struct {
	id          string
	title       string
	description string
	severity    Severity
	status      Status
	kind        Kind
	assigneeID  string
	attachments []string
	tags        map[string]struct{}
	createdAt   time.Time
}

// NewIssue creates an issue in status NEW with no assignee, no
// attachments and no tags.
func NewIssue(id, title, description string, severity Severity, kind Kind) *Issue {
	return &Issue{
		id:          id,
		title:       title,
		description: description,
		severity:    severity,
		status:      StatusNew,
		kind:        kind,
		assigneeID:  "",
		attachments: nil,
		tags:        make(map[string]struct{}),
		createdAt:   time.Now(),
	}
}

// ID returns the issue identifier.
func (i *Issue) ID() string {
	return i.id
}

// Title returns the issue title.
func (i *Issue) Title() string {
	return i.title
}

// Description returns the issue description.
func (i *Issue) Description() string {
	return i.description
}

// Severity returns the current severity.
func (i *Issue) Severity() Severity {
	return i.severity
}

// Status returns the current lifecycle state.
func (i *Issue) Status() Status {
	return i.status
}

// Kind returns the issue kind.
func (i *Issue) Kind() Kind {
	return i.kind
}

// AssigneeID returns the id of the assigned user, or "" when unassigned.
func (i *Issue) AssigneeID() string {
	return i.assigneeID
}

// Attachments returns a copy of the attachment list in insertion order.
func (i *Issue) Attachments() []string {
	out := make([]string, len(i.attachments))
	copy(out, i.attachments)
	return out
}

// Tags returns the tags as a sorted copy.
func (i *Issue) Tags() []string {
	out := make([]string, 0, len(i.tags))
	for tag := range i.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// CreatedAt returns when this issue was created.
func (i *Issue) CreatedAt() time.Time {
	return i.createdAt
}

// SetTitle sets the issue title.
func (i *Issue) SetTitle(title string) {
	i.title = title
}

// SetDescription sets the issue description.
func (i *Issue) SetDescription(description string) {
	i.description = description
}

// SetSeverity sets the severity.
func (i *Issue) SetSeverity(severity Severity) {
	i.severity = severity
}

// SetStatus sets the lifecycle state. No transition is rejected.
func (i *Issue) SetStatus(status Status) {
	i.status = status
}

// AssignTo records the assignee by user id. It does not touch the
// status; registry-level assignment pairs the two.
func (i *Issue) AssignTo(userID string) {
	i.assigneeID = userID
}

// AddAttachment appends an attachment reference.
func (i *Issue) AddAttachment(attachment string) {
	i.attachments = append(i.attachments, attachment)
}

// AddTag adds a tag. Adding an existing tag is a no-op.
func (i *Issue) AddTag(tag string) {
	i.tags[tag] = struct{}{}
}

// HasTag returns true if the tag is present.
func (i *Issue) HasTag(tag string) bool {
	_, ok := i.tags[tag]
	return ok
}
