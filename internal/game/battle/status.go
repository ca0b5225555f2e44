package battle

import "fmt"

// Status is the closed non-volatile status variant. The baseline ruleset
// treats these as mutually exclusive, so a Combatant carries exactly one.
// The infatuation flag is a full member of the variant and is not
// gender-gated in this ruleset.
type Status int

const (
	StatusNone Status = iota
	StatusParalysis
	StatusSleep
	StatusBurn
	StatusPoison
	StatusFreeze
	StatusInfatuated
)

// String returns the canonical identifier used in data files and log lines.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusParalysis:
		return "paralysis"
	case StatusSleep:
		return "sleep"
	case StatusBurn:
		return "burn"
	case StatusPoison:
		return "poison"
	case StatusFreeze:
		return "freeze"
	case StatusInfatuated:
		return "infatuation"
	default:
		return "unknown"
	}
}

// ParseStatus maps a data-file identifier to a Status.
//
// Postcondition: returns an error for any name outside the closed variant.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "", "none":
		return StatusNone, nil
	case "paralysis":
		return StatusParalysis, nil
	case "sleep":
		return StatusSleep, nil
	case "burn":
		return StatusBurn, nil
	case "poison":
		return StatusPoison, nil
	case "freeze":
		return StatusFreeze, nil
	case "infatuation":
		return StatusInfatuated, nil
	default:
		return StatusNone, fmt.Errorf("battle: unknown status %q", name)
	}
}

// Volatile flag identifiers. Volatiles are an open set: unlike non-volatile
// statuses they can co-occur freely.
const (
	VolatileConfusion = "confusion"
	VolatileFlinch    = "flinch"
	VolatileProtect   = "protect"
)

// Volatiles tracks the open set of volatile flags on one Combatant, each
// with an optional remaining-turns counter. It is not safe for concurrent
// use; the resolver serialises access.
type Volatiles struct {
	flags map[string]int
}

// NewVolatiles creates an empty flag set.
func NewVolatiles() *Volatiles {
	return &Volatiles{flags: make(map[string]int)}
}

// Apply sets flag with the given remaining-turns counter. A counter of -1
// means the flag persists until explicitly removed. Re-applying keeps the
// longer of the two counters.
//
// Postcondition: Has(flag) is true.
func (v *Volatiles) Apply(flag string, turns int) {
	if existing, ok := v.flags[flag]; ok {
		if turns == -1 || (existing != -1 && turns > existing) {
			v.flags[flag] = turns
		}
		return
	}
	v.flags[flag] = turns
}

// Remove deletes flag. No-op when absent.
//
// Postcondition: Has(flag) is false.
func (v *Volatiles) Remove(flag string) {
	delete(v.flags, flag)
}

// Has reports whether flag is active.
func (v *Volatiles) Has(flag string) bool {
	_, ok := v.flags[flag]
	return ok
}

// Turns returns the remaining-turns counter for flag, or 0 if absent.
func (v *Volatiles) Turns(flag string) int {
	return v.flags[flag]
}

// Decrement reduces flag's counter by one and removes it when the counter
// reaches zero. Flags with a -1 counter are untouched.
//
// Postcondition: returns true when the flag expired on this call.
func (v *Volatiles) Decrement(flag string) bool {
	turns, ok := v.flags[flag]
	if !ok || turns == -1 {
		return false
	}
	turns--
	if turns <= 0 {
		delete(v.flags, flag)
		return true
	}
	v.flags[flag] = turns
	return false
}

// Clear removes every flag, as happens when the bearer leaves the field.
func (v *Volatiles) Clear() {
	v.flags = make(map[string]int)
}
