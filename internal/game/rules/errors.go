package rules

import "fmt"

// UnknownIdentifierError reports a lookup of an identifier that is not in the
// rules table. Missing lookups are always surfaced this way rather than
// silently defaulting, so data-entry bugs fail at load time.
type UnknownIdentifierError struct {
	// Kind is the table the lookup hit: "move", "ability", "type", "override".
	Kind string
	// ID is the identifier that was not found.
	ID string
}

// Error implements the error interface.
func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("rules: unknown %s identifier %q", e.Kind, e.ID)
}
