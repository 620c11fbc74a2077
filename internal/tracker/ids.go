package tracker

import "github.com/google/uuid"

// ID helpers for callers that do not supply their own identifiers.
// Prefixes make the entity type readable in logs and listings.

// NewUserID returns a generated user id.
func NewUserID() string {
	return "U-" + uuid.NewString()
}

// NewProjectID returns a generated project id.
func NewProjectID() string {
	return "P-" + uuid.NewString()
}

// NewIssueID returns a generated issue id.
func NewIssueID() string {
	return "I-" + uuid.NewString()
}
