package rules

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AbilityDef is the static definition of an ability, loaded from YAML. The
// behavioral hooks live in the ability package's registry, keyed by the same
// ID; this table is the authoritative list of which identifiers exist.
type AbilityDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Abilities holds all known AbilityDefs keyed by ID.
type Abilities struct {
	defs map[string]*AbilityDef
}

// NewAbilities creates an empty ability table.
func NewAbilities() *Abilities {
	return &Abilities{defs: make(map[string]*AbilityDef)}
}

// Register adds def, overwriting any existing entry with the same ID.
//
// Precondition: def must not be nil and def.ID must not be empty.
func (t *Abilities) Register(def *AbilityDef) error {
	if def == nil || def.ID == "" {
		return fmt.Errorf("rules: Register: ability def must have a non-empty id")
	}
	t.defs[def.ID] = def
	return nil
}

// Get returns the AbilityDef for id.
//
// Postcondition: returns an UnknownIdentifierError when id is not registered.
func (t *Abilities) Get(id string) (*AbilityDef, error) {
	d, ok := t.defs[id]
	if !ok {
		return nil, &UnknownIdentifierError{Kind: "ability", ID: id}
	}
	return d, nil
}

// Len returns the number of registered abilities.
func (t *Abilities) Len() int { return len(t.defs) }

// LoadAbilities reads every *.yaml file in dir, parses each as one or more
// AbilityDefs, and returns a populated table.
//
// Postcondition: returns a non-nil table or an error. Unknown YAML fields
// are errors.
func LoadAbilities(dir string) (*Abilities, error) {
	tbl := NewAbilities()
	err := loadYAMLDir(dir, func(path string, data []byte) error {
		var defs []*AbilityDef
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
