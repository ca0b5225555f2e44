package driver_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cffield/pokesim/internal/game/ability"
	"github.com/cffield/pokesim/internal/game/battle"
	"github.com/cffield/pokesim/internal/game/driver"
	"github.com/cffield/pokesim/internal/game/rng"
	"github.com/cffield/pokesim/internal/game/rules"
)

func intPtr(v int) *int { return &v }

// firstLegal always submits the first legal action; it is fully
// deterministic.
type firstLegal struct{}

func (firstLegal) ChooseAction(_ *battle.State, _ int, legal []battle.Action) (battle.Action, error) {
	return legal[0], nil
}

// stubborn always submits the same action, legal or not.
type stubborn struct{ action battle.Action }

func (s stubborn) ChooseAction(*battle.State, int, []battle.Action) (battle.Action, error) {
	return s.action, nil
}

// failing always errors.
type failing struct{}

func (failing) ChooseAction(*battle.State, int, []battle.Action) (battle.Action, error) {
	return battle.Action{}, fmt.Errorf("no decision available")
}

func driverMoves(t *testing.T) *rules.Moves {
	t.Helper()
	tbl := rules.NewMoves()
	defs := []*rules.MoveDef{
		{ID: "tackle", Name: "Tackle", Type: "Normal", Category: rules.Physical, Power: intPtr(40), Accuracy: intPtr(100), PP: 99},
		{ID: "spark", Name: "Spark", Type: "Electric", Category: rules.Physical, Power: intPtr(40), Accuracy: intPtr(100), PP: 99},
		{ID: "swords-dance", Name: "Swords Dance", Type: "Normal", Category: rules.Status, PP: 99, Target: "self",
			Secondary: &rules.SecondaryEffect{Chance: 100, SelfTarget: true, Stages: map[string]int{"attack": 2}}},
	}
	for _, def := range defs {
		require.NoError(t, tbl.Register(def))
	}
	return tbl
}

func pokemon(t *testing.T, species string, hp, attack, speed int, moveID string) *battle.Combatant {
	t.Helper()
	stats := battle.StatBlock{HP: hp, Attack: attack, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: speed}
	c, err := battle.NewCombatant(species, []string{"Normal"}, 50, stats, "", "", []battle.MoveSlot{{ID: moveID, PP: 99}})
	require.NoError(t, err)
	return c
}

func newDriverBattle(t *testing.T, src rng.Source, providers [2]driver.ActionProvider, maxTurns int, field *battle.FieldState, mine, theirs []*battle.Combatant) *driver.Battle {
	t.Helper()
	ta, err := battle.NewTeam("Mine", mine)
	require.NoError(t, err)
	tb, err := battle.NewTeam("Theirs", theirs)
	require.NoError(t, err)
	if field == nil {
		field = battle.NewFieldState()
	}
	st, err := battle.NewState(ta, tb, field)
	require.NoError(t, err)
	resolver := battle.NewResolver(driverMoves(t), ability.Builtin(), rules.Baseline(), src, nil)
	return driver.New(st, resolver, providers, maxTurns, nil)
}

func noLuck() rng.Source { return &rng.Fixed{Default: 1 << 20} }

func TestRunProducesWinner(t *testing.T) {
	strong := pokemon(t, "Strong", 160, 200, 200, "tackle")
	weak := pokemon(t, "Weak", 10, 100, 100, "tackle")
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, nil,
		[]*battle.Combatant{strong}, []*battle.Combatant{weak})

	res, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Winner)
	assert.Equal(t, 1, res.Turns)
	assert.Contains(t, res.Log, "Weak fainted!")
	assert.Equal(t, "Mine won the battle!", res.Log[len(res.Log)-1])
	assert.Equal(t, "Go! Strong!", res.Log[0], "deployment opens the log")
}

func TestRunTurnCapDraw(t *testing.T) {
	a := pokemon(t, "A", 160, 100, 100, "swords-dance")
	c := pokemon(t, "C", 160, 100, 100, "swords-dance")
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 3, nil,
		[]*battle.Combatant{a}, []*battle.Combatant{c})

	res, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, driver.NoWinner, res.Winner)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, "The battle dragged on too long. It's a draw!", res.Log[len(res.Log)-1])
}

func TestSimultaneousLastFaintIsADraw(t *testing.T) {
	// Permanent sandstorm chips both sides at end of turn; with both last
	// Combatants at 1 HP and only self-targeted moves, they faint together.
	a := pokemon(t, "A", 160, 100, 100, "swords-dance")
	a.ApplyDamage(a.MaxHP() - 1)
	c := pokemon(t, "C", 160, 100, 100, "swords-dance")
	c.ApplyDamage(c.MaxHP() - 1)
	field := battle.NewFieldState(battle.WithWeather(battle.WeatherSand, true))
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, field,
		[]*battle.Combatant{a}, []*battle.Combatant{c})

	res, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, driver.NoWinner, res.Winner)
	assert.Equal(t, "Both sides are out of usable Pokémon. It's a draw!", res.Log[len(res.Log)-1])
}

func TestTerrainBoostedSweep(t *testing.T) {
	// A grounded Electric attacker on permanent electric terrain deals 38
	// per Spark (19.6 base, 1.5 type bonus, 1.3 terrain) and drops a
	// 160-HP foe on turn five. Without the terrain boost it would take six.
	sweeper, err := battle.NewCombatant("Sweeper", []string{"Electric"}, 50,
		battle.StatBlock{HP: 160, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: 200},
		"", "", []battle.MoveSlot{{ID: "spark", PP: 99}})
	require.NoError(t, err)
	foe := pokemon(t, "Foe", 160, 100, 100, "tackle")
	field := battle.NewFieldState(battle.WithTerrain(battle.TerrainElectric, true))
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, field,
		[]*battle.Combatant{sweeper}, []*battle.Combatant{foe})

	res, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Winner)
	assert.Equal(t, 5, res.Turns, "the terrain multiplier shortens the sweep by a turn")
	assert.Equal(t, "Sweeper used Spark!", res.Log[2], "the faster side moves first")
	assert.Contains(t, res.Log, "Foe fainted!")
	assert.Equal(t, "Mine won the battle!", res.Log[len(res.Log)-1])
}

func TestForcedReplacementMidBattle(t *testing.T) {
	lead := pokemon(t, "Lead", 10, 100, 100, "tackle")
	bench := pokemon(t, "Bench", 300, 200, 200, "tackle")
	foe := pokemon(t, "Foe", 160, 200, 150, "tackle")
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, nil,
		[]*battle.Combatant{lead, bench}, []*battle.Combatant{foe})

	res, err := b.Run()
	require.NoError(t, err)
	assert.Contains(t, res.Log, "Lead fainted!")
	assert.Contains(t, res.Log, "Go! Bench!")
	assert.Equal(t, 0, res.Winner, "the replacement outlasts the foe")
}

func TestRunReplaysIdenticallyFromSameSeed(t *testing.T) {
	run := func() *driver.Result {
		mine := pokemon(t, "Mine", 220, 120, 110, "tackle")
		theirs := pokemon(t, "Theirs", 220, 120, 100, "tackle")
		b := newDriverBattle(t, rng.NewSeeded(7), [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, nil,
			[]*battle.Combatant{mine}, []*battle.Combatant{theirs})
		res, err := b.Run()
		require.NoError(t, err)
		return res
	}

	first := run()
	second := run()
	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Turns, second.Turns)
	assert.Equal(t, first.Log, second.Log)
	assert.NotEqual(t, first.ID, second.ID, "each run gets its own identity")
}

func TestProviderErrorAbortsBattle(t *testing.T) {
	a := pokemon(t, "A", 160, 100, 100, "tackle")
	c := pokemon(t, "C", 160, 100, 100, "tackle")
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{failing{}, firstLegal{}}, 0, nil,
		[]*battle.Combatant{a}, []*battle.Combatant{c})

	_, err := b.Run()
	assert.Error(t, err)
}

func TestPersistentIllegalSubmissionsAbort(t *testing.T) {
	a := pokemon(t, "A", 160, 100, 100, "tackle")
	c := pokemon(t, "C", 160, 100, 100, "tackle")
	b := newDriverBattle(t, noLuck(), [2]driver.ActionProvider{stubborn{battle.MoveAction(5)}, firstLegal{}}, 0, nil,
		[]*battle.Combatant{a}, []*battle.Combatant{c})

	_, err := b.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal actions")
}

func TestNewPanicsOnMissingCollaborators(t *testing.T) {
	assert.Panics(t, func() {
		driver.New(nil, nil, [2]driver.ActionProvider{firstLegal{}, firstLegal{}}, 0, nil)
	})
}
