// Package ability maps ability identifiers to typed hook implementations.
// The resolver stays free of per-ability conditionals: each hook point is a
// small pure function (or flag) over narrow views of the battle state, and
// adding an ability is a registry entry, not a resolver edit.
package ability

import (
	"github.com/cffield/pokesim/internal/game/rng"
	"github.com/cffield/pokesim/internal/game/rules"
)

// Field is the view of the field state hooks may observe and mutate.
// battle.FieldState satisfies it.
type Field interface {
	Weather() string
	Terrain() string
	SetWeather(kind string, permanent bool) bool
	SetTerrain(kind string, permanent bool) bool
}

// Bearer is the view of a Combatant hooks may observe and mutate.
// battle.Combatant satisfies it.
type Bearer interface {
	SpeciesName() string
	AbilityID() string
	StatusName() string
	RaiseStage(stat string, delta int) int
}

// Hooks is the full set of hook points one ability may implement. Every
// field is optional; the zero value is an ability with no battle effect.
type Hooks struct {
	// OnSwitchIn runs when the bearer enters battle, after hazards.
	// Returned strings are appended to the turn log.
	OnSwitchIn func(self, foe Bearer, field Field) []string

	// OnEndOfTurn runs during the end-of-turn pass, after residual damage.
	OnEndOfTurn func(self Bearer, field Field, src rng.Source, rs *rules.Ruleset) []string

	// PreventsCrit makes the bearer immune to critical hits entirely.
	PreventsCrit bool

	// BlocksResidual exempts the bearer from indirect damage: weather chip,
	// burn, and poison.
	BlocksResidual bool

	// PoisonHeals converts poison residual damage into healing.
	PoisonHeals bool

	// Disguise negates one incoming hit entirely, consuming the disguise.
	Disguise bool

	// StatusImmune reports whether the bearer cannot receive the named
	// non-volatile status.
	StatusImmune func(status string) bool

	// SpeedMultiplier scales effective Speed given the current field, or 0
	// when the ability never modifies Speed.
	SpeedMultiplier func(field Field) float64

	// PriorityTier returns an overriding priority tier for moves of
	// moveType, or false when the ability does not apply. Top-tier boosts
	// apply regardless of the bearer's current HP fraction.
	PriorityTier func(moveType string, rs *rules.Ruleset) (int, bool)
}

// Registry maps ability identifiers to their Hooks.
//
// Invariant: Hooks lookups never fail; an identifier with no registered
// hooks resolves to the inert zero Hooks. Whether an identifier exists at
// all is the rules table's concern.
type Registry struct {
	hooks map[string]*Hooks
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string]*Hooks)}
}

// Register stores h under id, overwriting any previous entry.
//
// Precondition: id must not be empty; h must not be nil.
func (r *Registry) Register(id string, h *Hooks) {
	if id == "" || h == nil {
		panic("ability: Register requires a non-empty id and non-nil hooks")
	}
	r.hooks[id] = h
}

var inert = &Hooks{}

// Hooks returns the hook set for id, or the inert set when none is
// registered.
//
// Postcondition: never returns nil.
func (r *Registry) Hooks(id string) *Hooks {
	if h, ok := r.hooks[id]; ok {
		return h
	}
	return inert
}
