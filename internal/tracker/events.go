package tracker

// EntityKind identifies which registry an event refers to.
type EntityKind string

const (
	EntityUser    EntityKind = "user"
	EntityProject EntityKind = "project"
	EntityIssue   EntityKind = "issue"
)

// Op identifies the mutation that produced an event.
type Op string

const (
	OpCreated       Op = "created"
	OpAssigned      Op = "assigned"
	OpStatusChanged Op = "status_changed"
	OpTagged        Op = "tagged"
	OpAttached      Op = "attached"
	OpLinked        Op = "linked"
)

// Event describes one successful registry mutation. Detail carries the
// secondary datum of the operation: the assignee for OpAssigned, the
// new status for OpStatusChanged, the tag, the attachment, or the
// linked child id for OpLinked.
type Event struct {
	Entity EntityKind `json:"entity"`
	Op     Op         `json:"op"`
	ID     string     `json:"id"`
	Detail string     `json:"detail,omitempty"`
}
