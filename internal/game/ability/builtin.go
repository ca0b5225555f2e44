package ability

import (
	"fmt"

	"github.com/cffield/pokesim/internal/game/rng"
	"github.com/cffield/pokesim/internal/game/rules"
)

// Builtin returns a Registry populated with every ability the variant
// ruleset models. Abilities listed in the rules table but absent here have
// no battle effect and resolve to the inert hook set.
func Builtin() *Registry {
	r := NewRegistry()

	// Top-tier priority for Flying moves, regardless of the bearer's HP.
	r.Register("gale-wings", &Hooks{
		PriorityTier: func(moveType string, rs *rules.Ruleset) (int, bool) {
			if moveType == "Flying" {
				return rs.TopPriorityTier, true
			}
			return 0, false
		},
	})

	// Armor abilities: full critical-hit immunity.
	r.Register("battle-armor", &Hooks{PreventsCrit: true})
	r.Register("shell-armor", &Hooks{PreventsCrit: true})

	// No indirect damage at all.
	r.Register("magic-guard", &Hooks{BlocksResidual: true})

	// Poison residual heals instead of damaging.
	r.Register("poison-heal", &Hooks{PoisonHeals: true})

	// One incoming hit is negated entirely, consuming the disguise.
	r.Register("disguise", &Hooks{Disguise: true})

	// Paralysis immunity.
	r.Register("limber", &Hooks{
		StatusImmune: func(status string) bool { return status == "paralysis" },
	})

	// Permanent-source weather setters: the weather they bring survives the
	// general clear-all move category and yields only to the countermove.
	r.Register("drizzle", permanentWeather("rain", "Rain began to fall!"))
	r.Register("drought", permanentWeather("sun", "The sunlight turned harsh!"))
	r.Register("sand-stream", permanentWeather("sand", "A sandstorm kicked up!"))

	// Permanent-source terrain setters.
	r.Register("electric-surge", permanentTerrain("electric", "An electric current ran across the battlefield!"))
	r.Register("grassy-surge", permanentTerrain("grassy", "Grass grew to cover the battlefield!"))
	r.Register("psychic-surge", permanentTerrain("psychic", "The battlefield got weird!"))

	// Lowers the foe's Attack on entry.
	r.Register("intimidate", &Hooks{
		OnSwitchIn: func(self, foe Bearer, field Field) []string {
			if foe == nil {
				return nil
			}
			if applied := foe.RaiseStage("attack", -1); applied != 0 {
				return []string{fmt.Sprintf("%s's Attack fell!", foe.SpeciesName())}
			}
			return nil
		},
	})

	// Speed doubled in the matching weather.
	r.Register("swift-swim", weatherSpeed("rain"))
	r.Register("chlorophyll", weatherSpeed("sun"))
	r.Register("sand-rush", weatherSpeed("sand"))

	// Raises one stat sharply and lowers another at end of turn. Accuracy
	// and evasion join the pool when the ruleset allows them; the regular
	// five stats are always eligible.
	r.Register("moody", &Hooks{
		OnEndOfTurn: func(self Bearer, field Field, src rng.Source, rs *rules.Ruleset) []string {
			pool := []string{"attack", "defense", "special-attack", "special-defense", "speed"}
			if rs.MoodyIncludesAccuracy {
				pool = append(pool, "accuracy", "evasion")
			}
			up := pool[src.Intn(len(pool))]
			down := pool[src.Intn(len(pool))]
			for down == up {
				down = pool[src.Intn(len(pool))]
			}
			var out []string
			if self.RaiseStage(up, 2) != 0 {
				out = append(out, fmt.Sprintf("%s's %s rose sharply!", self.SpeciesName(), statDisplay(up)))
			}
			if self.RaiseStage(down, -1) != 0 {
				out = append(out, fmt.Sprintf("%s's %s fell!", self.SpeciesName(), statDisplay(down)))
			}
			return out
		},
	})

	return r
}

// statDisplay renders a stat identifier the way battle text names it.
func statDisplay(id string) string {
	switch id {
	case "attack":
		return "Attack"
	case "defense":
		return "Defense"
	case "special-attack":
		return "Sp. Atk"
	case "special-defense":
		return "Sp. Def"
	case "speed":
		return "Speed"
	case "accuracy":
		return "accuracy"
	case "evasion":
		return "evasiveness"
	}
	return id
}

func permanentWeather(kind, message string) *Hooks {
	return &Hooks{
		OnSwitchIn: func(self, foe Bearer, field Field) []string {
			if field.SetWeather(kind, true) {
				return []string{message}
			}
			return nil
		},
	}
}

func permanentTerrain(kind, message string) *Hooks {
	return &Hooks{
		OnSwitchIn: func(self, foe Bearer, field Field) []string {
			if field.SetTerrain(kind, true) {
				return []string{message}
			}
			return nil
		},
	}
}

func weatherSpeed(kind string) *Hooks {
	return &Hooks{
		SpeedMultiplier: func(field Field) float64 {
			if field.Weather() == kind {
				return 2.0
			}
			return 0
		},
	}
}
