// Package strategy implements the deterministic action selector: it scores
// every legal action against the current battle state and picks the best
// one. Scoring uses expected damage (mean roll, no crit), so two selectors
// looking at the same state always agree.
package strategy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cffield/pokesim/internal/game/battle"
	"github.com/cffield/pokesim/internal/game/rules"
)

// Scoring weights. Damage contributes its fraction of the target's max HP
// scaled to [0, 100]; everything else is a flat or effectiveness-scaled
// bonus on top.
const (
	stabBonus           = 20.0
	superEffectiveBonus = 30.0
	priorityWhenSlower  = 25.0
	lethalBonus         = 50.0
	statusOnCleanFoe    = 40.0
	screenBonus         = 30.0
	hazardBonus         = 25.0
	fieldSetBonus       = 25.0
	protectBonus        = 10.0
	switchResistWeight  = 30.0
	switchMatchupWeight = 20.0
	switchThreshold     = 20.0
)

// Selector chooses actions for one side. It is stateless across turns and
// safe to share between battles.
type Selector struct {
	moves    *rules.Moves
	rules    rules.Ruleset
	resolver *battle.Resolver
	logger   *zap.Logger
}

// NewSelector constructs a Selector scoring with rs and the given tables.
// The resolver is consulted only for effective-speed math.
func NewSelector(moves *rules.Moves, rs rules.Ruleset, resolver *battle.Resolver, logger *zap.Logger) *Selector {
	if moves == nil || resolver == nil {
		panic("strategy: NewSelector requires moves and resolver")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{moves: moves, rules: rs, resolver: resolver, logger: logger}
}

// ChooseAction scores every action in legal and returns the highest-scoring
// one. Ties keep the first-listed action, so the choice is reproducible. A
// switch only displaces the best move when it beats it by the switch
// threshold; forced replacements (no moves in legal) skip the threshold.
//
// Precondition: legal is non-empty and every entry is legal for side.
func (s *Selector) ChooseAction(st *battle.State, side int, legal []battle.Action) (battle.Action, error) {
	if len(legal) == 0 {
		return battle.Action{}, fmt.Errorf("strategy: no legal actions for side %d", side)
	}

	bestMove, bestMoveScore, haveMove := battle.Action{}, 0.0, false
	bestSwitch, bestSwitchScore, haveSwitch := battle.Action{}, 0.0, false

	for _, a := range legal {
		var score float64
		var err error
		switch a.Kind {
		case battle.ActionMove:
			score, err = s.scoreMove(st, side, a.Index)
			if err != nil {
				return battle.Action{}, err
			}
			if !haveMove || score > bestMoveScore {
				bestMove, bestMoveScore, haveMove = a, score, true
			}
		case battle.ActionSwitch:
			score, err = s.scoreSwitch(st, side, a.Index)
			if err != nil {
				return battle.Action{}, err
			}
			if !haveSwitch || score > bestSwitchScore {
				bestSwitch, bestSwitchScore, haveSwitch = a, score, true
			}
		}
	}

	var chosen battle.Action
	var chosenScore float64
	switch {
	case !haveMove:
		chosen, chosenScore = bestSwitch, bestSwitchScore
	case haveSwitch && bestSwitchScore > bestMoveScore+switchThreshold:
		chosen, chosenScore = bestSwitch, bestSwitchScore
	default:
		chosen, chosenScore = bestMove, bestMoveScore
	}

	s.logger.Debug("action chosen",
		zap.Int("side", side),
		zap.Int("kind", int(chosen.Kind)),
		zap.Int("index", chosen.Index),
		zap.Float64("score", chosenScore),
	)
	return chosen, nil
}

// scoreMove estimates the value of using the active Combatant's move at idx.
func (s *Selector) scoreMove(st *battle.State, side, idx int) (float64, error) {
	actor := st.Team(side).Active()
	foe := st.Team(battle.Opponent(side)).Active()
	def, err := s.moves.Get(actor.Moves[idx].ID)
	if err != nil {
		return 0, err
	}

	if def.Category == rules.Status {
		return s.scoreStatusMove(st, side, foe, def), nil
	}

	ctx := battle.DamageContext{Crit: false, RandomPercent: battle.MeanRandomPercent}
	dmg, eff, err := battle.Damage(actor, foe, def, st.Field, &s.rules, battle.Opponent(side), ctx)
	if err != nil {
		return 0, err
	}
	if eff == 0 {
		return 0, nil
	}

	score := float64(dmg) / float64(foe.MaxHP()) * 100.0
	if dmg >= foe.HP() {
		score += lethalBonus
	}
	if actor.HasType(def.Type) {
		score += stabBonus
	}
	if eff > 1 {
		score += superEffectiveBonus * eff
	}
	if def.Priority > 0 && s.slowerThanFoe(st, side) {
		score += priorityWhenSlower
	}
	if sec := def.Secondary; sec != nil && sec.Status != "" && foe.Status == battle.StatusNone {
		score += statusOnCleanFoe * float64(sec.Chance) / 100.0
	}
	return score, nil
}

// scoreStatusMove values non-damaging moves by the state they would create.
func (s *Selector) scoreStatusMove(st *battle.State, side int, foe *battle.Combatant, def *rules.MoveDef) float64 {
	var score float64
	if sec := def.Secondary; sec != nil {
		if sec.Status != "" && foe.Status == battle.StatusNone {
			score += statusOnCleanFoe * float64(sec.Chance) / 100.0
		}
		for _, delta := range sec.Stages {
			if sec.SelfTarget && delta > 0 {
				score += 10.0 * float64(delta)
			}
			if !sec.SelfTarget && delta < 0 {
				score += 10.0 * float64(-delta)
			}
		}
	}
	if def.SetsScreen != "" && !st.Field.Side(side).HasScreen(def.SetsScreen) {
		score += screenBonus
	}
	if def.SetsHazard != "" && st.Field.Side(battle.Opponent(side)).HazardLayers(def.SetsHazard) == 0 {
		score += hazardBonus
	}
	if def.SetsWeather != "" && st.Field.Weather() != def.SetsWeather {
		score += fieldSetBonus
	}
	if def.SetsTerrain != "" && st.Field.Terrain() != def.SetsTerrain {
		score += fieldSetBonus
	}
	if def.Protects {
		score += protectBonus
	}
	return score
}

// scoreSwitch values bringing in team member idx: how well it resists the
// foe's strongest offensive typing, plus how hard its own strongest move
// would hit back.
func (s *Selector) scoreSwitch(st *battle.State, side, idx int) (float64, error) {
	candidate := st.Team(side).Member(idx)
	foe := st.Team(battle.Opponent(side)).Active()

	incoming, err := s.bestEffectiveness(foe, candidate.Types)
	if err != nil {
		return 0, err
	}
	outgoing, err := s.bestEffectiveness(candidate, foe.Types)
	if err != nil {
		return 0, err
	}

	score := switchResistWeight * (1.0 - incoming)
	score += switchMatchupWeight * outgoing
	return score, nil
}

// bestEffectiveness returns the highest type effectiveness attacker's
// damaging moves achieve against the given defending types.
func (s *Selector) bestEffectiveness(attacker *battle.Combatant, defenderTypes []string) (float64, error) {
	best := 0.0
	for _, slot := range attacker.Moves {
		def, err := s.moves.Get(slot.ID)
		if err != nil {
			return 0, err
		}
		if def.Category == rules.Status || slot.PP <= 0 {
			continue
		}
		eff, err := rules.Effectiveness(def.Type, defenderTypes)
		if err != nil {
			return 0, err
		}
		if eff > best {
			best = eff
		}
	}
	return best, nil
}

// slowerThanFoe reports whether side's active Combatant moves after the
// foe's at equal priority.
func (s *Selector) slowerThanFoe(st *battle.State, side int) bool {
	mine := s.resolver.EffectiveSpeed(st.Team(side).Active(), st.Field)
	theirs := s.resolver.EffectiveSpeed(st.Team(battle.Opponent(side)).Active(), st.Field)
	return mine < theirs
}
