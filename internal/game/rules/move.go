// Package rules holds the static battle data: move definitions, ability
// definitions, the type-effectiveness chart, and ruleset scalar overrides.
// Everything here is pure lookup; nothing in this package mutates battle
// state.
package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a move's damage category.
type Category string

const (
	Physical Category = "physical"
	Special  Category = "special"
	Status   Category = "status"
)

// SecondaryEffect describes a move's chance-based rider: a status infliction,
// stat-stage changes, or a flinch.
type SecondaryEffect struct {
	// Chance is the trigger percentage in [1, 100].
	Chance int `yaml:"chance"`
	// Status is the non-volatile status inflicted ("paralysis", "burn", ...);
	// empty for none.
	Status string `yaml:"status"`
	// Flinch marks a flinch rider.
	Flinch bool `yaml:"flinch"`
	// Stages maps stat name to stage delta.
	Stages map[string]int `yaml:"stages"`
	// SelfTarget applies Stages to the user instead of the target.
	SelfTarget bool `yaml:"self_target"`
	// Confuses inflicts the confusion volatile.
	Confuses bool `yaml:"confuses"`
}

// MoveDef is the static definition of one move, loaded from YAML.
//
// Power and Accuracy are pointers: nil Power marks a fixed/variable-power or
// non-damaging move, and nil Accuracy marks a move that cannot miss.
type MoveDef struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Category Category `yaml:"category"`
	Power    *int     `yaml:"power"`
	Accuracy *int     `yaml:"accuracy"`
	PP       int      `yaml:"pp"`
	Priority int      `yaml:"priority"`
	// Target is the target shape: "foe", "self", "field", "foe-side", "own-side".
	Target    string           `yaml:"target"`
	Secondary *SecondaryEffect `yaml:"secondary"`

	// Field behavior, mutually compatible with damage for riders like
	// weather-ball style moves but normally used by status moves.
	SetsWeather string `yaml:"sets_weather"`
	SetsTerrain string `yaml:"sets_terrain"`
	SetsScreen  string `yaml:"sets_screen"`
	SetsHazard  string `yaml:"sets_hazard"`
	// ClearsField marks the general clear-all category: removes screens,
	// hazards, and non-permanent weather/terrain.
	ClearsField bool `yaml:"clears_field"`
	// CountersPermanent marks the specific countermove that removes even
	// permanently-sourced weather and terrain.
	CountersPermanent bool `yaml:"counters_permanent"`
	// Protects marks the protect-style moves that block incoming moves for
	// the rest of the turn.
	Protects bool `yaml:"protects"`
}

// Validate checks the definition's internal invariants.
//
// Postcondition: returns nil iff the definition is usable by the resolver.
func (m *MoveDef) Validate() error {
	var errs []string
	if m.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if !KnownType(m.Type) {
		errs = append(errs, fmt.Sprintf("type %q is not a known type", m.Type))
	}
	switch m.Category {
	case Physical, Special, Status:
	default:
		errs = append(errs, fmt.Sprintf("category must be one of [physical, special, status], got %q", m.Category))
	}
	if m.PP < 1 {
		errs = append(errs, fmt.Sprintf("pp must be >= 1, got %d", m.PP))
	}
	if m.Power != nil && *m.Power < 0 {
		errs = append(errs, fmt.Sprintf("power must be >= 0, got %d", *m.Power))
	}
	if m.Accuracy != nil && (*m.Accuracy < 1 || *m.Accuracy > 100) {
		errs = append(errs, fmt.Sprintf("accuracy must be in [1, 100], got %d", *m.Accuracy))
	}
	if m.Secondary != nil && (m.Secondary.Chance < 1 || m.Secondary.Chance > 100) {
		errs = append(errs, fmt.Sprintf("secondary.chance must be in [1, 100], got %d", m.Secondary.Chance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("move %q: %s", m.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Moves holds all known MoveDefs keyed by ID.
type Moves struct {
	defs map[string]*MoveDef
}

// NewMoves creates an empty move table.
func NewMoves() *Moves {
	return &Moves{defs: make(map[string]*MoveDef)}
}

// Register adds def, overwriting any existing entry with the same ID.
//
// Precondition: def must not be nil and must pass Validate.
func (t *Moves) Register(def *MoveDef) error {
	if def == nil {
		return fmt.Errorf("rules: Register: def must not be nil")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	t.defs[def.ID] = def
	return nil
}

// Get returns the MoveDef for id.
//
// Postcondition: returns an UnknownIdentifierError when id is not registered.
func (t *Moves) Get(id string) (*MoveDef, error) {
	d, ok := t.defs[id]
	if !ok {
		return nil, &UnknownIdentifierError{Kind: "move", ID: id}
	}
	return d, nil
}

// Len returns the number of registered moves.
func (t *Moves) Len() int { return len(t.defs) }

// LoadMoves reads every *.yaml file in dir, parses each as one or more
// MoveDefs, and returns a populated table.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil table, or an error if any file fails to
// parse or any definition fails validation. Unknown YAML fields are errors.
func LoadMoves(dir string) (*Moves, error) {
	tbl := NewMoves()
	err := loadYAMLDir(dir, func(path string, data []byte) error {
		var defs []*MoveDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&defs); err != nil {
			return fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, def := range defs {
			if err := tbl.Register(def); err != nil {
				return fmt.Errorf("%q: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// loadYAMLDir calls fn for every *.yaml file in dir.
func loadYAMLDir(dir string, fn func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading rules dir %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		if err := fn(path, data); err != nil {
			return err
		}
	}
	return nil
}
