package domain

// ChangeKind classifies a phase mutation recorded in the history log.
type ChangeKind string

const (
	ChangeCreate         ChangeKind = "create"
	ChangeDelete         ChangeKind = "delete"
	ChangeDateChange     ChangeKind = "date_change"
	ChangeDurationChange ChangeKind = "duration_change"
	ChangeAssigneeChange ChangeKind = "assignee_change"
	ChangeBudgetChange   ChangeKind = "budget_change"
	ChangeUpdate         ChangeKind = "update"
)

// ValidChangeKinds is the canonical set of accepted change kind strings.
var ValidChangeKinds = map[string]bool{
	"create": true, "delete": true, "date_change": true, "duration_change": true,
	"assignee_change": true, "budget_change": true, "update": true,
}

// Valid reports whether k is one of the recorded change kinds.
func (k ChangeKind) Valid() bool {
	return ValidChangeKinds[string(k)]
}
