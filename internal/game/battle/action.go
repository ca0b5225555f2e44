package battle

import "fmt"

// ActionKind tags an Action as a move use or a switch.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
)

// String returns a human-readable kind label.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Action is one side's request for a turn: use the move at Index on the
// active Combatant, or switch to the team member at Index.
type Action struct {
	Kind  ActionKind
	Index int
}

// MoveAction builds a move-use Action.
func MoveAction(index int) Action { return Action{Kind: ActionMove, Index: index} }

// SwitchAction builds a switch Action.
func SwitchAction(index int) Action { return Action{Kind: ActionSwitch, Index: index} }

// IllegalActionError reports an action that violates the legality
// constraints. It is always raised before any state mutation; the caller
// must resubmit a corrected action.
type IllegalActionError struct {
	Side   int
	Action Action
	Reason string
}

// Error implements the error interface.
func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal %s action for side %d: %s", e.Action.Kind, e.Side, e.Reason)
}

// State is one battle's complete mutable state: two Teams and the shared
// FieldState. A State is owned exclusively by one battle for its lifetime.
type State struct {
	Teams [2]*Team
	Field *FieldState
}

// NewState builds a State from two Teams and a FieldState.
//
// Precondition: both teams and the field must be non-nil.
func NewState(a, b *Team, field *FieldState) (*State, error) {
	if a == nil || b == nil || field == nil {
		return nil, fmt.Errorf("battle: NewState requires two teams and a field")
	}
	return &State{Teams: [2]*Team{a, b}, Field: field}, nil
}

// Team returns the Team for side i.
//
// Precondition: i is 0 or 1.
func (s *State) Team(i int) *Team { return s.Teams[i] }

// Opponent returns the opposing side index.
func Opponent(side int) int { return 1 - side }
