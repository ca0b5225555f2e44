package battle

import (
	"math"

	"github.com/cffield/pokesim/internal/game/rules"
)

// DamageContext carries the per-hit roll outcomes into the damage formula so
// the formula itself stays deterministic. The Strategy Selector reuses the
// formula with Crit false and the mean RandomPercent to compute expected
// damage.
type DamageContext struct {
	// Crit applies the ruleset critical multiplier.
	Crit bool
	// RandomPercent is the damage spread factor in [85, 100].
	RandomPercent int
}

// MeanRandomPercent is the expected value of the damage spread factor,
// used when computing expected rather than rolled damage.
const MeanRandomPercent = 92

// Damage computes the damage move deals from attacker to defender under the
// given field and ruleset, and returns the type-effectiveness multiplier
// alongside. It mutates nothing.
//
// Precondition: move has been validated by the rules table.
// Postcondition: returns (0, eff, nil) for non-damaging moves or immune
// targets; otherwise damage >= 1.
func Damage(attacker, defender *Combatant, move *rules.MoveDef, field *FieldState, rs *rules.Ruleset, defenderSide int, ctx DamageContext) (int, float64, error) {
	eff, err := rules.Effectiveness(move.Type, defender.Types)
	if err != nil {
		return 0, 0, err
	}
	if move.Power == nil || *move.Power == 0 || move.Category == rules.Status {
		return 0, eff, nil
	}
	if eff == 0 {
		return 0, 0, nil
	}

	atk, def := offenseDefense(attacker, defender, move)

	base := (2.0*float64(attacker.Level)/5.0 + 2.0) * float64(*move.Power) * atk / def / 50.0
	base += 2.0

	mods := 1.0
	if attacker.HasType(move.Type) {
		mods *= rs.StabMultiplier
	}
	mods *= eff
	if ctx.Crit {
		mods *= rs.CritMultiplier
	}
	if boosted, ok := weatherBoostType[field.Weather()]; ok && boosted == move.Type {
		mods *= rs.WeatherBoostMultiplier
	}
	if boosted, ok := terrainBoostType[field.Terrain()]; ok && boosted == move.Type && grounded(attacker) {
		mods *= rs.TerrainSameTypeMultiplier
	}
	if !ctx.Crit && screenBlocks(field.Side(defenderSide), move.Category) {
		mods *= 0.5
	}

	spread := float64(ctx.RandomPercent) / 100.0
	dmg := int(math.Floor(base * mods * spread))
	if dmg < 1 {
		dmg = 1
	}
	return dmg, eff, nil
}

// offenseDefense picks the attacking and defending stat values for move's
// category, applying stage multipliers, the burn physical penalty, and the
// Soul Dew special boost.
func offenseDefense(attacker, defender *Combatant, move *rules.MoveDef) (float64, float64) {
	if move.Category == rules.Physical {
		atk := attacker.EffectiveStat(StatAttack)
		if attacker.Status == StatusBurn {
			atk *= 0.5
		}
		return atk, defender.EffectiveStat(StatDefense)
	}

	atkStage := attacker.Stage(StatSpAttack)
	if SoulDewApplies(attacker) && atkStage < 6 {
		atkStage++
	}
	defStage := defender.Stage(StatSpDefense)
	if SoulDewApplies(defender) && defStage < 6 {
		defStage++
	}
	atk := float64(attacker.Stats.SpAttack) * StageMultiplier(atkStage)
	def := float64(defender.Stats.SpDefense) * StageMultiplier(defStage)
	return atk, def
}

// screenBlocks reports whether the defending side has the screen matching
// the move category. Critical hits go through screens.
func screenBlocks(side *SideConditions, cat rules.Category) bool {
	switch cat {
	case rules.Physical:
		return side.HasScreen(ScreenReflect)
	case rules.Special:
		return side.HasScreen(ScreenLightScreen)
	default:
		return false
	}
}

// grounded reports whether c is affected by terrain. Flying types float
// above it.
func grounded(c *Combatant) bool {
	return !c.HasType("Flying")
}

// EffectivenessMessage maps a multiplier to the log line that follows a
// damaging hit, or "" for neutral damage.
func EffectivenessMessage(eff float64, defender string) string {
	switch {
	case eff == 0:
		return "It doesn't affect " + defender + "..."
	case eff > 1:
		return "It's super effective!"
	case eff < 1:
		return "It's not very effective..."
	default:
		return ""
	}
}
