package battle

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cffield/pokesim/internal/game/ability"
	"github.com/cffield/pokesim/internal/game/rng"
	"github.com/cffield/pokesim/internal/game/rules"
)

// Resolver executes validated actions against a State, consulting the rules
// table and the ability hook registry. It owns no state of its own; every
// chance-based branch draws from the injected Source so a fixed source
// replays byte-identically.
type Resolver struct {
	moves  *rules.Moves
	hooks  *ability.Registry
	rules  rules.Ruleset
	src    rng.Source
	logger *zap.Logger
}

// NewResolver constructs a Resolver.
//
// Precondition: moves, hooks, and src must be non-nil. A nil logger is
// replaced with a no-op logger.
func NewResolver(moves *rules.Moves, hooks *ability.Registry, rs rules.Ruleset, src rng.Source, logger *zap.Logger) *Resolver {
	if moves == nil || hooks == nil || src == nil {
		panic("battle: NewResolver requires moves, hooks, and src")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{moves: moves, hooks: hooks, rules: rs, src: src, logger: logger}
}

// Ruleset returns the scalar table the resolver was built with.
func (r *Resolver) Ruleset() rules.Ruleset { return r.rules }

// LegalActions returns every action side may legally submit right now, in a
// deterministic order: moves in slot order, then switches in team order.
// When the active Combatant has fainted, only switches are legal.
func (r *Resolver) LegalActions(st *State, side int) []Action {
	team := st.Team(side)
	active := team.Active()

	var out []Action
	if !active.Fainted() {
		for i, slot := range active.Moves {
			if slot.PP <= 0 {
				continue
			}
			if active.LockedMove >= 0 && i != active.LockedMove {
				continue
			}
			out = append(out, MoveAction(i))
		}
	}
	for _, i := range team.LegalSwitches() {
		out = append(out, SwitchAction(i))
	}
	return out
}

// ValidateAction checks a's legality for side without mutating anything.
//
// Postcondition: returns nil or an *IllegalActionError.
func (r *Resolver) ValidateAction(st *State, side int, a Action) error {
	team := st.Team(side)
	active := team.Active()

	switch a.Kind {
	case ActionSwitch:
		if a.Index < 0 || a.Index >= len(team.Members()) {
			return &IllegalActionError{Side: side, Action: a, Reason: "switch target out of range"}
		}
		if a.Index == team.ActiveIndex() {
			return &IllegalActionError{Side: side, Action: a, Reason: "switch target is already active"}
		}
		if team.Member(a.Index).Fainted() {
			return &IllegalActionError{Side: side, Action: a, Reason: "switch target has fainted"}
		}
		return nil

	case ActionMove:
		if active.Fainted() {
			return &IllegalActionError{Side: side, Action: a, Reason: "active combatant has fainted"}
		}
		if a.Index < 0 || a.Index >= len(active.Moves) {
			return &IllegalActionError{Side: side, Action: a, Reason: "move index out of range"}
		}
		if active.Moves[a.Index].PP <= 0 {
			return &IllegalActionError{Side: side, Action: a, Reason: "move has no PP remaining"}
		}
		if active.LockedMove >= 0 && a.Index != active.LockedMove {
			return &IllegalActionError{Side: side, Action: a, Reason: "combatant is locked into another move"}
		}
		return nil

	default:
		return &IllegalActionError{Side: side, Action: a, Reason: "unknown action kind"}
	}
}

// orderedAction pairs a side's action with its ordering keys.
type orderedAction struct {
	side     int
	action   Action
	priority int
	speed    float64
}

// ResolveTurn resolves one full turn: both submitted actions in determined
// order, then the end-of-turn pass. It returns the turn's log entries in
// true chronological resolution order.
//
// Precondition: both active Combatants are able to battle (the driver has
// handled forced switches).
// Postcondition: on an *IllegalActionError nothing has been mutated. On
// success the turn counter has advanced.
func (r *Resolver) ResolveTurn(st *State, actions [2]Action) ([]string, error) {
	for side := 0; side <= 1; side++ {
		if err := r.ValidateAction(st, side, actions[side]); err != nil {
			return nil, err
		}
	}

	ordered, err := r.orderActions(st, actions)
	if err != nil {
		return nil, err
	}

	var log []string
	for _, oa := range ordered {
		if st.Team(oa.side).Active().Fainted() {
			// Fainted earlier this turn; the action is forfeit.
			continue
		}
		var entries []string
		switch oa.action.Kind {
		case ActionSwitch:
			entries, err = r.executeSwitch(st, oa.side, oa.action.Index)
		case ActionMove:
			entries, err = r.executeMove(st, oa.side, oa.action.Index)
		}
		if err != nil {
			return log, err
		}
		log = append(log, entries...)
	}

	endLog, err := r.endOfTurn(st)
	if err != nil {
		return log, err
	}
	log = append(log, endLog...)

	for side := 0; side <= 1; side++ {
		v := st.Team(side).Active().Volatiles
		v.Remove(VolatileProtect)
		v.Remove(VolatileFlinch)
	}
	st.Field.Turn++

	r.logger.Debug("turn resolved",
		zap.Int("turn", st.Field.Turn),
		zap.Int("entries", len(log)),
	)
	return log, nil
}

// orderActions determines execution order: switches always resolve before
// moves; within a category, higher priority tier first, then higher
// effective Speed. Remaining ties break by side order (side 0 before side
// 1), never randomly.
func (r *Resolver) orderActions(st *State, actions [2]Action) ([]orderedAction, error) {
	ordered := make([]orderedAction, 0, 2)
	for side := 0; side <= 1; side++ {
		a := actions[side]
		oa := orderedAction{side: side, action: a}
		actor := st.Team(side).Active()
		oa.speed = r.EffectiveSpeed(actor, st.Field)
		if a.Kind == ActionMove {
			def, err := r.moves.Get(actor.Moves[a.Index].ID)
			if err != nil {
				return nil, err
			}
			oa.priority = r.movePriority(actor, def)
		}
		ordered = append(ordered, oa)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if (a.action.Kind == ActionSwitch) != (b.action.Kind == ActionSwitch) {
			return a.action.Kind == ActionSwitch
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		return a.speed > b.speed
	})
	return ordered, nil
}

// EffectiveSpeed returns current effective Speed: the stage-modified stat,
// scaled by the paralysis multiplier and any ability Speed modifier.
func (r *Resolver) EffectiveSpeed(c *Combatant, field *FieldState) float64 {
	sp := c.EffectiveStat(StatSpeed)
	if c.Status == StatusParalysis {
		sp *= r.rules.ParalysisSpeedMultiplier
	}
	if mult := r.hooks.Hooks(c.Ability).SpeedMultiplier; mult != nil {
		if m := mult(field); m > 0 {
			sp *= m
		}
	}
	return sp
}

// movePriority returns def's priority tier for c, after ability overrides.
func (r *Resolver) movePriority(c *Combatant, def *rules.MoveDef) int {
	p := def.Priority
	if tierFn := r.hooks.Hooks(c.Ability).PriorityTier; tierFn != nil {
		if tier, ok := tierFn(def.Type, &r.rules); ok && tier > p {
			p = tier
		}
	}
	return p
}

// DeployActive announces side's active Combatant at the start of a battle:
// a fresh sleep counter is rolled and switch-in ability hooks fire. No
// hazards can exist yet, so none apply.
func (r *Resolver) DeployActive(st *State, side int) []string {
	in := st.Team(side).Active()
	log := []string{fmt.Sprintf("Go! %s!", in.Species)}
	if in.Status == StatusSleep {
		in.SleepTurns = rng.Between(r.src, r.rules.SleepTurnsMin, r.rules.SleepTurnsMax)
	}
	if hook := r.hooks.Hooks(in.Ability).OnSwitchIn; hook != nil {
		foe := st.Team(Opponent(side)).Active()
		log = append(log, hook(in, foe, st.Field)...)
	}
	return log
}

// ResolveForcedSwitch performs the between-turns replacement of a fainted
// active Combatant.
//
// Precondition: the active Combatant of side has fainted.
func (r *Resolver) ResolveForcedSwitch(st *State, side int, a Action) ([]string, error) {
	if a.Kind != ActionSwitch {
		return nil, &IllegalActionError{Side: side, Action: a, Reason: "a forced replacement must be a switch"}
	}
	if err := r.ValidateAction(st, side, a); err != nil {
		return nil, err
	}
	return r.executeSwitch(st, side, a.Index)
}

// executeSwitch withdraws the active Combatant and sends in member idx:
// volatiles and stages reset on the way out, the sleep counter is freshly
// rolled on the way in, entry hazards bite, then on-switch-in ability hooks
// fire.
func (r *Resolver) executeSwitch(st *State, side, idx int) ([]string, error) {
	team := st.Team(side)
	out := team.Active()

	var log []string
	if !out.Fainted() {
		out.Volatiles.Clear()
		out.ResetStages()
		out.LockedMove = -1
		log = append(log, fmt.Sprintf("%s was withdrawn!", out.Species))
	}
	if err := team.Switch(idx); err != nil {
		return nil, &IllegalActionError{Side: side, Action: SwitchAction(idx), Reason: err.Error()}
	}
	in := team.Active()
	log = append(log, fmt.Sprintf("Go! %s!", in.Species))

	// Entering battle while already asleep re-rolls the counter; a stale
	// counter from an earlier stay on the field is never reused.
	if in.Status == StatusSleep {
		in.SleepTurns = rng.Between(r.src, r.rules.SleepTurnsMin, r.rules.SleepTurnsMax)
	}

	log = append(log, r.applyEntryHazards(st, side, in)...)
	if in.Fainted() {
		return log, nil
	}

	if hook := r.hooks.Hooks(in.Ability).OnSwitchIn; hook != nil {
		foe := st.Team(Opponent(side)).Active()
		log = append(log, hook(in, foe, st.Field)...)
	}
	return log, nil
}

// applyEntryHazards damages in with side's hazards: stealth rock scaled by
// Rock-type effectiveness, spikes scaled by layer count (grounded targets
// only).
func (r *Resolver) applyEntryHazards(st *State, side int, in *Combatant) []string {
	var log []string
	conds := st.Field.Side(side)

	if conds.HazardLayers(HazardStealthRock) > 0 {
		eff, err := rules.Effectiveness("Rock", in.Types)
		if err == nil && eff > 0 {
			dmg := int(math.Floor(float64(in.MaxHP()) * eff / 8.0))
			if dmg < 1 {
				dmg = 1
			}
			in.ApplyDamage(dmg)
			log = append(log, fmt.Sprintf("Pointed stones dug into %s!", in.Species))
			if in.Fainted() {
				log = append(log, fmt.Sprintf("%s fainted!", in.Species))
				return log
			}
		}
	}

	if layers := conds.HazardLayers(HazardSpikes); layers > 0 && grounded(in) {
		denom := []int{8, 6, 4}[layers-1]
		dmg := in.MaxHP() / denom
		if dmg < 1 {
			dmg = 1
		}
		in.ApplyDamage(dmg)
		log = append(log, fmt.Sprintf("%s was hurt by the spikes!", in.Species))
		if in.Fainted() {
			log = append(log, fmt.Sprintf("%s fainted!", in.Species))
		}
	}
	return log
}

// executeMove runs side's active Combatant's move at moveIdx through the
// full pipeline: pre-execution status checks, PP decrement, protection and
// accuracy, disguise negation, the critical roll, damage, and secondary
// effects.
func (r *Resolver) executeMove(st *State, side, moveIdx int) ([]string, error) {
	actor := st.Team(side).Active()
	foe := st.Team(Opponent(side)).Active()

	ok, log := r.preExecutionCheck(actor)
	if !ok {
		return log, nil
	}

	def, err := r.moves.Get(actor.Moves[moveIdx].ID)
	if err != nil {
		return log, err
	}
	actor.Moves[moveIdx].PP--
	log = append(log, fmt.Sprintf("%s used %s!", actor.Species, def.Name))

	targetsFoe := def.Target == "" || def.Target == "foe"
	// A foe that went down earlier in the turn (hazards on a switch-in) is
	// not a target; the move stops here, with no damage or secondary.
	if targetsFoe && foe.Fainted() {
		log = append(log, "But there was no target...")
		return log, nil
	}
	if targetsFoe && foe.Volatiles.Has(VolatileProtect) {
		log = append(log, fmt.Sprintf("%s protected itself!", foe.Species))
		return log, nil
	}

	if !r.accuracyCheck(actor, foe, def) {
		log = append(log, fmt.Sprintf("%s's attack missed!", actor.Species))
		return log, nil
	}

	if def.Category != rules.Status {
		entries, err := r.applyDamagingHit(st, side, actor, foe, def)
		if err != nil {
			return log, err
		}
		return append(log, entries...), nil
	}

	entries, err := r.applyStatusMove(st, side, actor, foe, def)
	if err != nil {
		return log, err
	}
	return append(log, entries...), nil
}

// preExecutionCheck runs the status gauntlet that can forfeit the action:
// flinch, sleep, freeze, paralysis, infatuation, confusion, in that order.
//
// Postcondition: returns (true, logs) when the actor may proceed.
func (r *Resolver) preExecutionCheck(actor *Combatant) (bool, []string) {
	var log []string

	if actor.Volatiles.Has(VolatileFlinch) {
		actor.Volatiles.Remove(VolatileFlinch)
		return false, append(log, fmt.Sprintf("%s flinched and couldn't move!", actor.Species))
	}

	if actor.Status == StatusSleep {
		if actor.SleepTurns > 0 {
			actor.SleepTurns--
			return false, append(log, fmt.Sprintf("%s is fast asleep.", actor.Species))
		}
		actor.CureStatus()
		log = append(log, fmt.Sprintf("%s woke up!", actor.Species))
	}

	if actor.Status == StatusFreeze {
		if !rng.Percent(r.src, r.rules.FreezeThawPercent) {
			return false, append(log, fmt.Sprintf("%s is frozen solid!", actor.Species))
		}
		actor.CureStatus()
		log = append(log, fmt.Sprintf("%s thawed out!", actor.Species))
	}

	if actor.Status == StatusParalysis && rng.Percent(r.src, r.rules.ParalysisStopPercent) {
		return false, append(log, fmt.Sprintf("%s is paralyzed! It can't move!", actor.Species))
	}

	if actor.Status == StatusInfatuated && rng.Percent(r.src, r.rules.InfatuationStopPercent) {
		return false, append(log, fmt.Sprintf("%s is immobilized by love!", actor.Species))
	}

	if actor.Volatiles.Has(VolatileConfusion) {
		if actor.Volatiles.Decrement(VolatileConfusion) {
			log = append(log, fmt.Sprintf("%s snapped out of its confusion!", actor.Species))
		} else {
			log = append(log, fmt.Sprintf("%s is confused!", actor.Species))
			if rng.Percent(r.src, r.rules.ConfusionSelfHitPercent) {
				dmg := r.confusionSelfHit(actor)
				actor.ApplyDamage(dmg)
				log = append(log, "It hurt itself in its confusion!")
				if actor.Fainted() {
					log = append(log, fmt.Sprintf("%s fainted!", actor.Species))
				}
				return false, log
			}
		}
	}

	return true, log
}

// confusionSelfHit computes the typeless 40-power physical self-hit.
func (r *Resolver) confusionSelfHit(c *Combatant) int {
	atk := c.EffectiveStat(StatAttack)
	def := c.EffectiveStat(StatDefense)
	base := (2.0*float64(c.Level)/5.0+2.0)*40.0*atk/def/50.0 + 2.0
	dmg := int(math.Floor(base))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// accuracyCheck rolls the move's accuracy against the stage-adjusted
// threshold. A nil Accuracy means the move cannot miss, regardless of the
// defender's evasion stage.
func (r *Resolver) accuracyCheck(actor, foe *Combatant, def *rules.MoveDef) bool {
	if def.Accuracy == nil {
		return true
	}
	stage := actor.Stage(StatAccuracy) - foe.Stage(StatEvasion)
	threshold := float64(*def.Accuracy) * AccuracyStageMultiplier(stage)
	if threshold >= 100 {
		return true
	}
	return rng.Percent(r.src, int(threshold))
}

// applyDamagingHit resolves the damaging portion of a move: disguise
// negation, the critical roll, damage application, effectiveness and faint
// messages, then the secondary effect.
func (r *Resolver) applyDamagingHit(st *State, side int, actor, foe *Combatant, def *rules.MoveDef) ([]string, error) {
	var log []string

	foeHooks := r.hooks.Hooks(foe.Ability)
	if foeHooks.Disguise && foe.DisguiseIntact {
		// The hit is negated entirely; no damage leaks through.
		foe.DisguiseIntact = false
		log = append(log, fmt.Sprintf("%s's disguise served it as a decoy!", foe.Species))
		log = append(log, fmt.Sprintf("%s's disguise was busted!", foe.Species))
		return log, nil
	}

	crit := !foeHooks.PreventsCrit && rng.Chance(r.src, 1, r.rules.CritDenominator)
	ctx := DamageContext{Crit: crit, RandomPercent: rng.Between(r.src, 85, 100)}
	dmg, eff, err := Damage(actor, foe, def, st.Field, &r.rules, Opponent(side), ctx)
	if err != nil {
		return log, err
	}

	if eff == 0 {
		log = append(log, EffectivenessMessage(0, foe.Species))
		return log, nil
	}
	if crit {
		log = append(log, "A critical hit!")
	}
	if msg := EffectivenessMessage(eff, foe.Species); msg != "" {
		log = append(log, msg)
	}
	dealt := foe.ApplyDamage(dmg)
	log = append(log, fmt.Sprintf("Dealt %d damage!", dealt))
	if foe.Fainted() {
		log = append(log, fmt.Sprintf("%s fainted!", foe.Species))
		return log, nil
	}

	if def.Secondary != nil {
		log = append(log, r.applySecondary(actor, foe, def.Secondary)...)
	}
	return log, nil
}

// applyStatusMove resolves a non-damaging move: field effects, screens,
// hazards, protection, and any stat/status payload.
func (r *Resolver) applyStatusMove(st *State, side int, actor, foe *Combatant, def *rules.MoveDef) ([]string, error) {
	var log []string
	acted := false

	if def.Protects {
		actor.Volatiles.Apply(VolatileProtect, -1)
		log = append(log, fmt.Sprintf("%s protected itself!", actor.Species))
		acted = true
	}
	if def.SetsWeather != "" {
		if st.Field.SetWeather(def.SetsWeather, false) {
			log = append(log, weatherStartMessage(def.SetsWeather))
		} else {
			log = append(log, "But it failed!")
		}
		acted = true
	}
	if def.SetsTerrain != "" {
		if st.Field.SetTerrain(def.SetsTerrain, false) {
			log = append(log, terrainStartMessage(def.SetsTerrain))
		} else {
			log = append(log, "But it failed!")
		}
		acted = true
	}
	if def.SetsScreen != "" {
		if st.Field.SetScreen(side, def.SetsScreen) {
			log = append(log, fmt.Sprintf("%s went up for %s's side!", def.Name, st.Team(side).Name))
		} else {
			log = append(log, "But it failed!")
		}
		acted = true
	}
	if def.SetsHazard != "" {
		if st.Field.AddHazard(Opponent(side), def.SetsHazard) {
			log = append(log, fmt.Sprintf("%s was scattered around %s's side!", def.Name, st.Team(Opponent(side)).Name))
		} else {
			log = append(log, "But it failed!")
		}
		acted = true
	}
	if def.ClearsField {
		st.Field.ClearTransient()
		log = append(log, "The battlefield was swept clear!")
		acted = true
	}
	if def.CountersPermanent {
		st.Field.BreakPermanent()
		log = append(log, "The skies and field returned to normal!")
		acted = true
	}
	if def.Secondary != nil {
		log = append(log, r.applySecondary(actor, foe, def.Secondary)...)
		acted = true
	}

	if !acted {
		log = append(log, "But nothing happened!")
	}
	return log, nil
}

// applySecondary rolls and applies a move's secondary effect against its
// target (the user, for self-targeted riders).
func (r *Resolver) applySecondary(actor, foe *Combatant, sec *rules.SecondaryEffect) []string {
	if !rng.Percent(r.src, sec.Chance) {
		return nil
	}

	target := foe
	if sec.SelfTarget {
		target = actor
	}
	if target.Fainted() {
		return nil
	}

	var log []string
	// Stages apply in canonical stat order so logs replay identically.
	for _, stat := range boostableStats {
		delta, ok := sec.Stages[stat]
		if !ok || delta == 0 {
			continue
		}
		applied := target.RaiseStage(stat, delta)
		log = append(log, stageMessage(target.Species, stat, applied, delta))
	}

	if sec.Status != "" {
		log = append(log, r.inflictStatus(target, sec.Status)...)
	}
	if sec.Confuses && !target.Volatiles.Has(VolatileConfusion) {
		target.Volatiles.Apply(VolatileConfusion, rng.Between(r.src, 2, 5))
		log = append(log, fmt.Sprintf("%s became confused!", target.Species))
	}
	if sec.Flinch {
		target.Volatiles.Apply(VolatileFlinch, -1)
	}
	return log
}

// inflictStatus applies a named non-volatile status, honoring type and
// ability immunities and the one-status rule.
func (r *Resolver) inflictStatus(target *Combatant, name string) []string {
	status, err := ParseStatus(name)
	if err != nil || status == StatusNone {
		return nil
	}
	if immune := r.hooks.Hooks(target.Ability).StatusImmune; immune != nil && immune(name) {
		return nil
	}
	if !target.SetStatus(status) {
		return nil
	}
	if status == StatusSleep {
		target.SleepTurns = rng.Between(r.src, r.rules.SleepTurnsMin, r.rules.SleepTurnsMax)
	}
	return []string{statusMessage(target.Species, status)}
}

// endOfTurn runs the fixed-order end-of-turn pass: weather chip, status
// residuals, berry triggers, screen countdown, then end-of-turn ability
// hooks. Sides process in side order within each category.
func (r *Resolver) endOfTurn(st *State) ([]string, error) {
	var log []string

	// Weather chip.
	if st.Field.Weather() == WeatherSand {
		for side := 0; side <= 1; side++ {
			c := st.Team(side).Active()
			if c.Fainted() || sandImmune(c) || r.hooks.Hooks(c.Ability).BlocksResidual {
				continue
			}
			dmg := c.MaxHP() / r.rules.SandstormDenominator
			if dmg < 1 {
				dmg = 1
			}
			c.ApplyDamage(dmg)
			log = append(log, fmt.Sprintf("%s is buffeted by the sandstorm!", c.Species))
			if c.Fainted() {
				log = append(log, fmt.Sprintf("%s fainted!", c.Species))
			}
		}
	}

	// Status residuals.
	for side := 0; side <= 1; side++ {
		c := st.Team(side).Active()
		if c.Fainted() {
			continue
		}
		hooks := r.hooks.Hooks(c.Ability)
		switch c.Status {
		case StatusBurn:
			if hooks.BlocksResidual {
				continue
			}
			dmg := c.MaxHP() / r.rules.BurnDenominator
			if dmg < 1 {
				dmg = 1
			}
			c.ApplyDamage(dmg)
			log = append(log, fmt.Sprintf("%s was hurt by its burn!", c.Species))
		case StatusPoison:
			if hooks.PoisonHeals {
				if healed := c.Heal(c.MaxHP() / 8); healed > 0 {
					log = append(log, fmt.Sprintf("%s restored HP using its Poison Heal!", c.Species))
				}
				continue
			}
			if hooks.BlocksResidual {
				continue
			}
			dmg := c.MaxHP() / r.rules.PoisonDenominator
			if dmg < 1 {
				dmg = 1
			}
			c.ApplyDamage(dmg)
			log = append(log, fmt.Sprintf("%s was hurt by poison!", c.Species))
		}
		if c.Fainted() {
			log = append(log, fmt.Sprintf("%s fainted!", c.Species))
		}
	}

	// Pinch berry triggers, after residual damage has landed.
	for side := 0; side <= 1; side++ {
		c := st.Team(side).Active()
		if c.Fainted() || !HoldsConfusionBerry(c) {
			continue
		}
		threshold := float64(c.MaxHP()) * r.rules.BerryTriggerFraction
		if float64(c.HP()) > threshold {
			continue
		}
		c.ConsumeItem()
		// The berry restores the holder to the heal fraction of max HP, not
		// by it.
		target := int(math.Floor(float64(c.MaxHP()) * r.rules.BerryHealFraction))
		if heal := target - c.HP(); heal > 0 {
			c.Heal(heal)
		}
		log = append(log, fmt.Sprintf("%s ate its berry and restored HP!", c.Species))
		if !c.Volatiles.Has(VolatileConfusion) {
			c.Volatiles.Apply(VolatileConfusion, rng.Between(r.src, 2, 5))
			log = append(log, fmt.Sprintf("%s became confused!", c.Species))
		}
	}

	// Screen countdown. Permanent field sources never tick; screens always
	// do.
	for _, exp := range st.Field.TickScreens() {
		log = append(log, fmt.Sprintf("%s's %s wore off!", st.Team(exp.Side).Name, screenName(exp.Screen)))
	}

	// End-of-turn ability hooks.
	for side := 0; side <= 1; side++ {
		c := st.Team(side).Active()
		if c.Fainted() {
			continue
		}
		if hook := r.hooks.Hooks(c.Ability).OnEndOfTurn; hook != nil {
			log = append(log, hook(c, st.Field, r.src, &r.rules)...)
		}
	}

	return log, nil
}

// sandImmune reports sandstorm chip immunity by type.
func sandImmune(c *Combatant) bool {
	return c.HasType("Rock") || c.HasType("Ground") || c.HasType("Steel")
}

func weatherStartMessage(kind string) string {
	switch kind {
	case WeatherRain:
		return "It started to rain!"
	case WeatherSun:
		return "The sunlight turned harsh!"
	case WeatherSand:
		return "A sandstorm kicked up!"
	default:
		return "The weather changed!"
	}
}

func terrainStartMessage(kind string) string {
	switch kind {
	case TerrainElectric:
		return "An electric current ran across the battlefield!"
	case TerrainGrassy:
		return "Grass grew to cover the battlefield!"
	case TerrainPsychic:
		return "The battlefield got weird!"
	case TerrainMisty:
		return "Mist swirled around the battlefield!"
	default:
		return "The terrain changed!"
	}
}

func screenName(id string) string {
	switch id {
	case ScreenReflect:
		return "Reflect"
	case ScreenLightScreen:
		return "Light Screen"
	default:
		return id
	}
}

func statusMessage(species string, s Status) string {
	switch s {
	case StatusParalysis:
		return fmt.Sprintf("%s was paralyzed! It may be unable to move!", species)
	case StatusSleep:
		return fmt.Sprintf("%s fell asleep!", species)
	case StatusBurn:
		return fmt.Sprintf("%s was burned!", species)
	case StatusPoison:
		return fmt.Sprintf("%s was poisoned!", species)
	case StatusFreeze:
		return fmt.Sprintf("%s was frozen solid!", species)
	case StatusInfatuated:
		return fmt.Sprintf("%s fell in love!", species)
	default:
		return ""
	}
}

func stageMessage(species, stat string, applied, wanted int) string {
	name := statDisplayName(stat)
	switch {
	case applied == 0 && wanted > 0:
		return fmt.Sprintf("%s's %s won't go any higher!", species, name)
	case applied == 0 && wanted < 0:
		return fmt.Sprintf("%s's %s won't go any lower!", species, name)
	case applied >= 2:
		return fmt.Sprintf("%s's %s rose sharply!", species, name)
	case applied > 0:
		return fmt.Sprintf("%s's %s rose!", species, name)
	case applied <= -2:
		return fmt.Sprintf("%s's %s harshly fell!", species, name)
	default:
		return fmt.Sprintf("%s's %s fell!", species, name)
	}
}

func statDisplayName(stat string) string {
	switch stat {
	case StatAttack:
		return "Attack"
	case StatDefense:
		return "Defense"
	case StatSpAttack:
		return "Sp. Atk"
	case StatSpDefense:
		return "Sp. Def"
	case StatSpeed:
		return "Speed"
	case StatAccuracy:
		return "accuracy"
	case StatEvasion:
		return "evasiveness"
	default:
		return stat
	}
}
