package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cffield/pokesim/internal/game/battle"
)

func newCombatant(t *testing.T, species string, types []string, stats battle.StatBlock) *battle.Combatant {
	t.Helper()
	c, err := battle.NewCombatant(species, types, 50, stats, "", "", []battle.MoveSlot{{ID: "tackle", PP: 35}})
	require.NoError(t, err)
	return c
}

func defaultStats() battle.StatBlock {
	return battle.StatBlock{HP: 160, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: 100}
}

func TestNewCombatantValidation(t *testing.T) {
	stats := defaultStats()
	moves := []battle.MoveSlot{{ID: "tackle", PP: 35}}

	_, err := battle.NewCombatant("", []string{"Normal"}, 50, stats, "", "", moves)
	assert.Error(t, err)

	_, err = battle.NewCombatant("Rattata", nil, 50, stats, "", "", moves)
	assert.Error(t, err)

	_, err = battle.NewCombatant("Rattata", []string{"Normal"}, 0, stats, "", "", moves)
	assert.Error(t, err)

	_, err = battle.NewCombatant("Rattata", []string{"Normal"}, 50, battle.StatBlock{}, "", "", moves)
	assert.Error(t, err)

	_, err = battle.NewCombatant("Rattata", []string{"Normal"}, 50, stats, "", "", nil)
	assert.Error(t, err)

	five := make([]battle.MoveSlot, 5)
	for i := range five {
		five[i] = battle.MoveSlot{ID: "tackle", PP: 35}
	}
	_, err = battle.NewCombatant("Rattata", []string{"Normal"}, 50, stats, "", "", five)
	assert.Error(t, err)
}

func TestApplyDamageFloorsAtZero(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	dealt := c.ApplyDamage(9999)
	assert.Equal(t, 160, dealt, "overkill reports only the HP actually removed")
	assert.Equal(t, 0, c.HP())
	assert.True(t, c.Fainted())
}

func TestHealCapsAtMax(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	c.ApplyDamage(10)
	healed := c.Heal(9999)
	assert.Equal(t, 10, healed)
	assert.Equal(t, c.MaxHP(), c.HP())
}

func TestHealFaintedIsNoop(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	c.ApplyDamage(c.MaxHP())
	assert.Equal(t, 0, c.Heal(50))
	assert.True(t, c.Fainted())
}

func TestStageClamping(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	assert.Equal(t, 2, c.RaiseStage(battle.StatAttack, 2))
	assert.Equal(t, 4, c.RaiseStage(battle.StatAttack, 4))
	assert.Equal(t, 0, c.RaiseStage(battle.StatAttack, 1), "already at +6")
	assert.Equal(t, 6, c.Stage(battle.StatAttack))

	assert.Equal(t, -12, c.RaiseStage(battle.StatAttack, -20))
	assert.Equal(t, -6, c.Stage(battle.StatAttack))
}

func TestResetStages(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	c.RaiseStage(battle.StatSpeed, 2)
	c.RaiseStage(battle.StatEvasion, -1)
	c.ResetStages()
	assert.Equal(t, 0, c.Stage(battle.StatSpeed))
	assert.Equal(t, 0, c.Stage(battle.StatEvasion))
}

func TestStageMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, battle.StageMultiplier(0))
	assert.Equal(t, 2.0, battle.StageMultiplier(2))
	assert.Equal(t, 4.0, battle.StageMultiplier(6))
	assert.Equal(t, 0.5, battle.StageMultiplier(-2))
	assert.Equal(t, 0.25, battle.StageMultiplier(-6))
}

func TestEffectiveStatUsesStages(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	c.RaiseStage(battle.StatAttack, 2)
	assert.Equal(t, 200.0, c.EffectiveStat(battle.StatAttack))
}

func TestStatusMutuallyExclusive(t *testing.T) {
	c := newCombatant(t, "Rattata", []string{"Normal"}, defaultStats())
	assert.True(t, c.SetStatus(battle.StatusBurn))
	assert.False(t, c.SetStatus(battle.StatusParalysis), "a second status must not displace the first")
	assert.Equal(t, battle.StatusBurn, c.Status)

	c.CureStatus()
	assert.True(t, c.SetStatus(battle.StatusParalysis))
}

func TestStatusTypeImmunities(t *testing.T) {
	fire := newCombatant(t, "Charmander", []string{"Fire"}, defaultStats())
	assert.False(t, fire.SetStatus(battle.StatusBurn))

	steel := newCombatant(t, "Aron", []string{"Steel", "Rock"}, defaultStats())
	assert.False(t, steel.SetStatus(battle.StatusPoison))

	electric := newCombatant(t, "Pikachu", []string{"Electric"}, defaultStats())
	assert.False(t, electric.SetStatus(battle.StatusParalysis))

	ice := newCombatant(t, "Snorunt", []string{"Ice"}, defaultStats())
	assert.False(t, ice.SetStatus(battle.StatusFreeze))

	// Infatuation has no type immunity in this ruleset.
	assert.True(t, ice.SetStatus(battle.StatusInfatuated))
}

func TestConsumeItemIrreversible(t *testing.T) {
	c, err := battle.NewCombatant("Gardevoir", []string{"Psychic", "Fairy"}, 50, defaultStats(), "", battle.ItemFigyBerry, []battle.MoveSlot{{ID: "psychic", PP: 10}})
	require.NoError(t, err)
	assert.Equal(t, battle.ItemFigyBerry, c.Item())
	c.ConsumeItem()
	assert.Equal(t, "", c.Item())
}

func TestSoulDewApplies(t *testing.T) {
	latios, err := battle.NewCombatant("Latios", []string{"Dragon", "Psychic"}, 50, defaultStats(), "", battle.ItemSoulDew, []battle.MoveSlot{{ID: "dragon-pulse", PP: 10}})
	require.NoError(t, err)
	assert.True(t, battle.SoulDewApplies(latios))

	other, err := battle.NewCombatant("Rattata", []string{"Normal"}, 50, defaultStats(), "", battle.ItemSoulDew, []battle.MoveSlot{{ID: "tackle", PP: 35}})
	require.NoError(t, err)
	assert.False(t, battle.SoulDewApplies(other), "the boost is exclusive to the eon species")
}

func TestPropertyHPStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxHP := rapid.IntRange(1, 500).Draw(t, "max_hp")
		stats := defaultStats()
		stats.HP = maxHP
		c, err := battle.NewCombatant("Subject", []string{"Normal"}, 50, stats, "", "", []battle.MoveSlot{{ID: "tackle", PP: 35}})
		if err != nil {
			t.Fatalf("building combatant: %v", err)
		}

		n := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < n; i++ {
			amount := rapid.IntRange(0, 2*maxHP).Draw(t, "amount")
			if rapid.Bool().Draw(t, "heal") {
				c.Heal(amount)
			} else {
				c.ApplyDamage(amount)
			}
			if c.HP() < 0 || c.HP() > maxHP {
				t.Fatalf("HP %d escaped [0, %d]", c.HP(), maxHP)
			}
		}
	})
}

func TestPropertyStagesStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c, err := battle.NewCombatant("Subject", []string{"Normal"}, 50, defaultStats(), "", "", []battle.MoveSlot{{ID: "tackle", PP: 35}})
		if err != nil {
			t.Fatalf("building combatant: %v", err)
		}
		n := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < n; i++ {
			delta := rapid.IntRange(-12, 12).Draw(t, "delta")
			c.RaiseStage(battle.StatSpeed, delta)
			if s := c.Stage(battle.StatSpeed); s < -6 || s > 6 {
				t.Fatalf("stage %d escaped [-6, 6]", s)
			}
		}
	})
}
