// Package battle implements the runtime battle model and the action
// resolver: Combatants, Teams, the shared FieldState, and the turn-by-turn
// state machine that resolves moves and switches against the rules table.
package battle

import (
	"fmt"
	"strings"
)

// Stat identifiers. The first six are the computed stat block; accuracy and
// evasion exist only as stages.
const (
	StatHP        = "hp"
	StatAttack    = "attack"
	StatDefense   = "defense"
	StatSpAttack  = "special-attack"
	StatSpDefense = "special-defense"
	StatSpeed     = "speed"
	StatAccuracy  = "accuracy"
	StatEvasion   = "evasion"
)

// boostableStats are the stages a Combatant carries, in canonical order.
var boostableStats = []string{
	StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed,
	StatAccuracy, StatEvasion,
}

// StatBlock holds the six computed stat values for one Combatant. These are
// final battle values, not base-species values; the import collaborator has
// already folded in level, IVs, EVs, and nature.
type StatBlock struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// MoveSlot is one known move with its remaining uses.
type MoveSlot struct {
	ID string
	PP int
}

// Combatant is the mutable runtime state of one Pokémon in battle.
//
// Invariant: 0 <= hp <= Stats.HP at all times. A Combatant with hp == 0 is
// fainted, never acts, and never regains HP without an external reset.
type Combatant struct {
	Species string
	Types   []string
	Level   int
	Ability string
	Stats   StatBlock
	Status  Status
	// SleepTurns is the remaining sleep counter; meaningful only while
	// Status == StatusSleep. It is re-rolled whenever the Combatant enters
	// battle already asleep.
	SleepTurns int
	Volatiles  *Volatiles
	Moves      []MoveSlot
	// LockedMove is the index of a move the Combatant is forced into by a
	// prior multi-turn effect, or -1 when free.
	LockedMove int
	// DisguiseIntact is true while a disguise-type ability can still absorb
	// one hit.
	DisguiseIntact bool

	hp           int
	item         string
	itemConsumed bool
	stages       map[string]int
}

// NewCombatant constructs a battle-ready Combatant from validated inputs.
//
// Precondition: stats values must be positive, moves non-empty.
// Postcondition: HP() == Stats.HP, all stages at 0, no volatiles.
func NewCombatant(species string, types []string, level int, stats StatBlock, ability, item string, moves []MoveSlot) (*Combatant, error) {
	var errs []string
	if species == "" {
		errs = append(errs, "species must not be empty")
	}
	if len(types) == 0 {
		errs = append(errs, "at least one type is required")
	}
	if level < 1 || level > 100 {
		errs = append(errs, fmt.Sprintf("level must be in [1, 100], got %d", level))
	}
	if stats.HP < 1 || stats.Attack < 1 || stats.Defense < 1 || stats.SpAttack < 1 || stats.SpDefense < 1 || stats.Speed < 1 {
		errs = append(errs, "all stats must be >= 1")
	}
	if len(moves) == 0 || len(moves) > 4 {
		errs = append(errs, fmt.Sprintf("move count must be in [1, 4], got %d", len(moves)))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("combatant %q: %s", species, strings.Join(errs, "; "))
	}
	return &Combatant{
		Species:        species,
		Types:          types,
		Level:          level,
		Ability:        ability,
		Stats:          stats,
		Volatiles:      NewVolatiles(),
		Moves:          moves,
		LockedMove:     -1,
		DisguiseIntact: true,
		hp:             stats.HP,
		item:           item,
		stages:         make(map[string]int),
	}, nil
}

// SpeciesName returns the species identity.
func (c *Combatant) SpeciesName() string { return c.Species }

// AbilityID returns the ability identifier, fixed for the battle.
func (c *Combatant) AbilityID() string { return c.Ability }

// StatusName returns the current non-volatile status identifier.
func (c *Combatant) StatusName() string { return c.Status.String() }

// HP returns current HP.
//
// Postcondition: 0 <= HP() <= MaxHP().
func (c *Combatant) HP() int { return c.hp }

// MaxHP returns the HP ceiling.
func (c *Combatant) MaxHP() int { return c.Stats.HP }

// Fainted reports whether this Combatant is unable to battle.
func (c *Combatant) Fainted() bool { return c.hp <= 0 }

// ApplyDamage reduces HP by amount, flooring at zero, and returns the damage
// actually dealt.
//
// Precondition: amount >= 0.
// Postcondition: HP() >= 0; return value == old HP - new HP.
func (c *Combatant) ApplyDamage(amount int) int {
	if amount < 0 {
		panic("battle: ApplyDamage called with negative amount")
	}
	dealt := amount
	if dealt > c.hp {
		dealt = c.hp
	}
	c.hp -= dealt
	return dealt
}

// Heal restores HP by amount, capping at MaxHP, and returns the amount
// actually restored. Fainted Combatants never regain HP this way.
//
// Precondition: amount >= 0.
// Postcondition: HP() <= MaxHP(); fainted Combatants are unchanged.
func (c *Combatant) Heal(amount int) int {
	if amount < 0 {
		panic("battle: Heal called with negative amount")
	}
	if c.Fainted() {
		return 0
	}
	healed := amount
	if c.hp+healed > c.Stats.HP {
		healed = c.Stats.HP - c.hp
	}
	c.hp += healed
	return healed
}

// Stage returns the current stage for stat in [-6, +6].
func (c *Combatant) Stage(stat string) int { return c.stages[stat] }

// RaiseStage moves stat's stage by delta, clamping to [-6, +6], and returns
// the delta actually applied.
//
// Postcondition: Stage(stat) is in [-6, +6].
func (c *Combatant) RaiseStage(stat string, delta int) int {
	cur := c.stages[stat]
	next := cur + delta
	if next > 6 {
		next = 6
	}
	if next < -6 {
		next = -6
	}
	c.stages[stat] = next
	return next - cur
}

// ResetStages zeroes every stage, as happens when the bearer leaves the field.
func (c *Combatant) ResetStages() {
	c.stages = make(map[string]int)
}

// StageMultiplier converts a stage to its stat multiplier: (2+s)/2 for
// positive stages, 2/(2-s) for negative ones.
func StageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(stage+2) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// AccuracyStageMultiplier converts an accuracy/evasion stage difference to
// its multiplier: (3+s)/3 for positive, 3/(3-s) for negative.
func AccuracyStageMultiplier(stage int) float64 {
	if stage > 6 {
		stage = 6
	}
	if stage < -6 {
		stage = -6
	}
	if stage >= 0 {
		return float64(stage+3) / 3.0
	}
	return 3.0 / float64(3-stage)
}

// statValue returns the raw stat block value for stat.
func (c *Combatant) statValue(stat string) int {
	switch stat {
	case StatAttack:
		return c.Stats.Attack
	case StatDefense:
		return c.Stats.Defense
	case StatSpAttack:
		return c.Stats.SpAttack
	case StatSpDefense:
		return c.Stats.SpDefense
	case StatSpeed:
		return c.Stats.Speed
	default:
		panic("battle: statValue called with non-block stat " + stat)
	}
}

// EffectiveStat returns the stage-modified value for one of the five
// non-HP block stats. Status and ability modifiers (burn, paralysis) are
// applied by the caller, which knows the ruleset scalars.
func (c *Combatant) EffectiveStat(stat string) float64 {
	return float64(c.statValue(stat)) * StageMultiplier(c.stages[stat])
}

// HasType reports whether typ is one of the Combatant's types.
func (c *Combatant) HasType(typ string) bool {
	for _, t := range c.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// Item returns the held item identifier, or "" when none is held or it has
// been consumed.
func (c *Combatant) Item() string {
	if c.itemConsumed {
		return ""
	}
	return c.item
}

// ConsumeItem removes the held item for the remainder of the battle.
// Consumption is irreversible: switching out does not restore the item.
//
// Postcondition: Item() == "".
func (c *Combatant) ConsumeItem() {
	c.itemConsumed = true
}

// SetStatus applies a non-volatile status. It fails if a status is already
// present (statuses are mutually exclusive) or if the target is immune by
// type.
//
// Postcondition: on success, Status == s.
func (c *Combatant) SetStatus(s Status) bool {
	if c.Status != StatusNone || s == StatusNone {
		return false
	}
	if statusTypeImmune(c, s) {
		return false
	}
	c.Status = s
	return true
}

// CureStatus clears any non-volatile status and the sleep counter.
//
// Postcondition: Status == StatusNone.
func (c *Combatant) CureStatus() {
	c.Status = StatusNone
	c.SleepTurns = 0
}

// statusTypeImmune reports baseline type immunities to status infliction.
func statusTypeImmune(c *Combatant, s Status) bool {
	switch s {
	case StatusBurn:
		return c.HasType("Fire")
	case StatusPoison:
		return c.HasType("Poison") || c.HasType("Steel")
	case StatusParalysis:
		return c.HasType("Electric")
	case StatusFreeze:
		return c.HasType("Ice")
	default:
		return false
	}
}
