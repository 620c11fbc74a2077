package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies what a user does on the team.
type Role string

const (
	RoleQA      Role = "QA"
	RoleDev     Role = "DEV"
	RoleManager Role = "MANAGER"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleQA, RoleDev, RoleManager:
		return true
	default:
		return false
	}
}

// ErrUnknownRole is returned when parsing an unrecognized role token.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a case-insensitive token onto a Role.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return role, nil
}

// User represents a member of the team. All fields are unexported;
// use the constructor and accessor methods.
type User struct {
	id    string
	name  string
	role  Role
	email string
	bio   string
}

// NewUser creates a user with an empty bio.
func NewUser(id, name string, role Role, email string) *User {
	return &User{
		id:    id,
		name:  name,
		role:  role,
		email: email,
		bio:   "",
	}
}

// ID returns the user identifier.
func (u *User) ID() string {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// Email returns the contact email.
func (u *User) Email() string {
	return u.email
}

// Bio returns the free-form bio text.
func (u *User) Bio() string {
	return u.bio
}

// SetName sets the display name.
func (u *User) SetName(name string) {
	u.name = name
}

// SetRole sets the user's role.
func (u *User) SetRole(role Role) {
	u.role = role
}

// SetEmail sets the contact email.
func (u *User) SetEmail(email string) {
	u.email = email
}

// SetBio sets the free-form bio text.
func (u *User) SetBio(bio string) {
	u.bio = bio
}

// ApproveIssue escalates a critical issue into work. Only a manager can
// approve, and only a CRITICAL issue qualifies; any other combination
// returns false and leaves the issue untouched. Approval moves the
// issue to IN_PROGRESS no matter what state it was in.
func (u *User) ApproveIssue(issue *Issue) bool {
	if issue == nil {
		return false
	}
	if u.role != RoleManager || issue.Severity() != SeverityCritical {
		return false
	}
	issue.SetStatus(StatusInProgress)
	return true
}
