// Package driver runs complete battles: it requests actions from both
// sides' providers, feeds them through the resolver, handles forced
// replacements, and produces the final result with the full battle log.
package driver

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cffield/pokesim/internal/game/battle"
)

// DefaultMaxTurns caps a battle's length; hitting the cap is a draw.
const DefaultMaxTurns = 50

// maxActionAttempts bounds how many times one side may submit an illegal
// action in a single decision before the battle aborts.
const maxActionAttempts = 3

// NoWinner is the Result.Winner value for a draw.
const NoWinner = -1

// ActionProvider supplies one side's decisions. Implementations must choose
// from legal; anything else is rejected and re-requested.
type ActionProvider interface {
	ChooseAction(st *battle.State, side int, legal []battle.Action) (battle.Action, error)
}

// Result is the outcome of a completed battle.
type Result struct {
	// ID identifies this battle run.
	ID uuid.UUID
	// Winner is the winning side index, or NoWinner for a draw. A turn in
	// which both last Combatants faint is a draw, as is reaching the turn
	// cap.
	Winner int
	// Turns is the number of turns fully resolved.
	Turns int
	// Log is the complete battle log in resolution order.
	Log []string
}

// Battle drives one battle from deployment to a Result. It is single-use:
// Run may be called once.
type Battle struct {
	id        uuid.UUID
	state     *battle.State
	resolver  *battle.Resolver
	providers [2]ActionProvider
	maxTurns  int
	logger    *zap.Logger
}

// New constructs a Battle. A maxTurns of zero or below selects
// DefaultMaxTurns; a nil logger is replaced with a no-op logger.
//
// Precondition: state, resolver, and both providers must be non-nil.
func New(state *battle.State, resolver *battle.Resolver, providers [2]ActionProvider, maxTurns int, logger *zap.Logger) *Battle {
	if state == nil || resolver == nil || providers[0] == nil || providers[1] == nil {
		panic("driver: New requires state, resolver, and both providers")
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Battle{
		id:        uuid.New(),
		state:     state,
		resolver:  resolver,
		providers: providers,
		maxTurns:  maxTurns,
		logger:    logger,
	}
}

// ID returns the battle's identifier.
func (b *Battle) ID() uuid.UUID { return b.id }

// Run plays the battle to completion.
//
// Postcondition: the returned Result's Log holds every entry from
// deployment through the final turn, in order.
func (b *Battle) Run() (*Result, error) {
	var log []string
	for side := 0; side <= 1; side++ {
		log = append(log, b.resolver.DeployActive(b.state, side)...)
	}
	if winner, done := b.handleFaints(&log); done {
		return &Result{ID: b.id, Winner: winner, Log: log}, nil
	}

	turns := 0
	for turns < b.maxTurns {
		var actions [2]battle.Action
		for side := 0; side <= 1; side++ {
			a, err := b.requestAction(side, false)
			if err != nil {
				return nil, err
			}
			actions[side] = a
		}

		entries, err := b.resolver.ResolveTurn(b.state, actions)
		log = append(log, entries...)
		if err != nil {
			return nil, fmt.Errorf("battle %s turn %d: %w", b.id, turns+1, err)
		}
		turns++
		b.logger.Debug("turn complete",
			zap.String("battle_id", b.id.String()),
			zap.Int("turn", turns),
		)

		if winner, done := b.handleFaints(&log); done {
			return &Result{ID: b.id, Winner: winner, Turns: turns, Log: log}, nil
		}
	}

	b.logger.Info("turn cap reached",
		zap.String("battle_id", b.id.String()),
		zap.Int("max_turns", b.maxTurns),
	)
	log = append(log, "The battle dragged on too long. It's a draw!")
	return &Result{ID: b.id, Winner: NoWinner, Turns: turns, Log: log}, nil
}

// handleFaints resolves the aftermath of any faints: it appends forced
// replacements to the log until both sides have an able active Combatant,
// or reports the battle finished with the winning side. Replacement
// send-ins can faint to hazards, so it loops.
func (b *Battle) handleFaints(log *[]string) (int, bool) {
	for {
		defeated0 := b.state.Team(0).Defeated()
		defeated1 := b.state.Team(1).Defeated()
		switch {
		case defeated0 && defeated1:
			*log = append(*log, b.victoryLog(NoWinner)...)
			return NoWinner, true
		case defeated0:
			*log = append(*log, b.victoryLog(1)...)
			return 1, true
		case defeated1:
			*log = append(*log, b.victoryLog(0)...)
			return 0, true
		}

		replaced := false
		for side := 0; side <= 1; side++ {
			if !b.state.Team(side).Active().Fainted() {
				continue
			}
			a, err := b.requestAction(side, true)
			if err != nil {
				// A provider with a defeated-free team always has a legal
				// switch; failure here is a provider bug.
				b.logger.Error("forced switch failed",
					zap.String("battle_id", b.id.String()),
					zap.Int("side", side),
					zap.Error(err),
				)
				*log = append(*log, b.victoryLog(battle.Opponent(side))...)
				return battle.Opponent(side), true
			}
			entries, err := b.resolver.ResolveForcedSwitch(b.state, side, a)
			*log = append(*log, entries...)
			if err != nil {
				*log = append(*log, b.victoryLog(battle.Opponent(side))...)
				return battle.Opponent(side), true
			}
			replaced = true
		}
		if !replaced {
			return NoWinner, false
		}
	}
}

// requestAction asks side's provider for a decision, re-requesting on
// illegal submissions up to maxActionAttempts.
func (b *Battle) requestAction(side int, forced bool) (battle.Action, error) {
	legal := b.resolver.LegalActions(b.state, side)
	if forced {
		legal = switchesOnly(legal)
	}
	if len(legal) == 0 {
		return battle.Action{}, fmt.Errorf("battle %s: side %d has no legal actions", b.id, side)
	}

	for attempt := 1; attempt <= maxActionAttempts; attempt++ {
		a, err := b.providers[side].ChooseAction(b.state, side, legal)
		if err != nil {
			return battle.Action{}, fmt.Errorf("battle %s: side %d provider: %w", b.id, side, err)
		}
		if err := b.resolver.ValidateAction(b.state, side, a); err == nil {
			if !forced || a.Kind == battle.ActionSwitch {
				return a, nil
			}
			err = &battle.IllegalActionError{Side: side, Action: a, Reason: "a replacement must be a switch"}
			b.logger.Warn("illegal action submitted",
				zap.String("battle_id", b.id.String()),
				zap.Int("side", side),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		} else {
			b.logger.Warn("illegal action submitted",
				zap.String("battle_id", b.id.String()),
				zap.Int("side", side),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}
	return battle.Action{}, fmt.Errorf("battle %s: side %d submitted %d illegal actions", b.id, side, maxActionAttempts)
}

func switchesOnly(legal []battle.Action) []battle.Action {
	out := legal[:0:0]
	for _, a := range legal {
		if a.Kind == battle.ActionSwitch {
			out = append(out, a)
		}
	}
	return out
}

// victoryLog produces the closing log entries for the given winner.
func (b *Battle) victoryLog(winner int) []string {
	if winner == NoWinner {
		return []string{"Both sides are out of usable Pokémon. It's a draw!"}
	}
	return []string{fmt.Sprintf("%s won the battle!", b.state.Team(winner).Name)}
}
