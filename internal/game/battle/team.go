package battle

import "fmt"

// MaxTeamSize is the fixed upper bound on Combatants per Team.
const MaxTeamSize = 6

// Team is an ordered, owning collection of up to six Combatants plus the
// index of the currently active one.
//
// Invariant: the active index refers to a Combatant with HP > 0 unless every
// member has HP == 0 (team defeated). The Battle Driver maintains this via
// forced switches.
type Team struct {
	// Name labels the side in log entries ("Player", "Opponent", ...).
	Name string

	members []*Combatant
	active  int
}

// NewTeam constructs a Team with the first member active.
//
// Precondition: 1 <= len(members) <= MaxTeamSize; all members non-nil.
func NewTeam(name string, members []*Combatant) (*Team, error) {
	if len(members) == 0 || len(members) > MaxTeamSize {
		return nil, fmt.Errorf("battle: team %q size must be in [1, %d], got %d", name, MaxTeamSize, len(members))
	}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("battle: team %q member %d is nil", name, i)
		}
	}
	return &Team{Name: name, members: members}, nil
}

// Active returns the currently active Combatant.
func (t *Team) Active() *Combatant { return t.members[t.active] }

// ActiveIndex returns the active member index.
func (t *Team) ActiveIndex() int { return t.active }

// Members returns the ordered member slice. Callers must not mutate the
// slice itself; the pointed-to Combatants are the live battle state.
func (t *Team) Members() []*Combatant { return t.members }

// Member returns the Combatant at index i.
//
// Precondition: 0 <= i < len(Members()).
func (t *Team) Member(i int) *Combatant { return t.members[i] }

// Switch makes member i active.
//
// Postcondition: returns an error (and changes nothing) unless i references
// a non-active member with HP > 0.
func (t *Team) Switch(i int) error {
	if i < 0 || i >= len(t.members) {
		return fmt.Errorf("battle: switch target %d out of range", i)
	}
	if i == t.active {
		return fmt.Errorf("battle: %s is already active", t.members[i].Species)
	}
	if t.members[i].Fainted() {
		return fmt.Errorf("battle: %s is unable to battle", t.members[i].Species)
	}
	t.active = i
	return nil
}

// HasAble reports whether any member can still battle.
func (t *Team) HasAble() bool {
	for _, m := range t.members {
		if !m.Fainted() {
			return true
		}
	}
	return false
}

// Defeated reports whether every member has fainted.
func (t *Team) Defeated() bool { return !t.HasAble() }

// LegalSwitches returns the indexes of non-active members with HP > 0, in
// team order.
func (t *Team) LegalSwitches() []int {
	var out []int
	for i, m := range t.members {
		if i != t.active && !m.Fainted() {
			out = append(out, i)
		}
	}
	return out
}
