package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cffield/pokesim/internal/game/battle"
)

func threeMemberTeam(t *testing.T) *battle.Team {
	t.Helper()
	members := []*battle.Combatant{
		newCombatant(t, "One", []string{"Normal"}, defaultStats()),
		newCombatant(t, "Two", []string{"Normal"}, defaultStats()),
		newCombatant(t, "Three", []string{"Normal"}, defaultStats()),
	}
	team, err := battle.NewTeam("Player", members)
	require.NoError(t, err)
	return team
}

func TestNewTeamSizeBounds(t *testing.T) {
	_, err := battle.NewTeam("Empty", nil)
	assert.Error(t, err)

	members := make([]*battle.Combatant, battle.MaxTeamSize+1)
	for i := range members {
		members[i] = newCombatant(t, "Filler", []string{"Normal"}, defaultStats())
	}
	_, err = battle.NewTeam("Crowded", members)
	assert.Error(t, err)

	_, err = battle.NewTeam("Full", members[:battle.MaxTeamSize])
	assert.NoError(t, err)
}

func TestNewTeamRejectsNilMember(t *testing.T) {
	_, err := battle.NewTeam("Player", []*battle.Combatant{
		newCombatant(t, "One", []string{"Normal"}, defaultStats()),
		nil,
	})
	assert.Error(t, err)
}

func TestSwitchValidation(t *testing.T) {
	team := threeMemberTeam(t)

	assert.Error(t, team.Switch(-1))
	assert.Error(t, team.Switch(3))
	assert.Error(t, team.Switch(0), "cannot switch to the active member")

	team.Member(1).ApplyDamage(team.Member(1).MaxHP())
	assert.Error(t, team.Switch(1), "cannot switch to a fainted member")
	assert.Equal(t, 0, team.ActiveIndex(), "a rejected switch changes nothing")

	require.NoError(t, team.Switch(2))
	assert.Equal(t, "Three", team.Active().Species)
}

func TestLegalSwitchesSkipActiveAndFainted(t *testing.T) {
	team := threeMemberTeam(t)
	assert.Equal(t, []int{1, 2}, team.LegalSwitches())

	team.Member(2).ApplyDamage(team.Member(2).MaxHP())
	assert.Equal(t, []int{1}, team.LegalSwitches())

	require.NoError(t, team.Switch(1))
	assert.Equal(t, []int{0}, team.LegalSwitches())
}

func TestDefeated(t *testing.T) {
	team := threeMemberTeam(t)
	assert.False(t, team.Defeated())

	for _, m := range team.Members() {
		m.ApplyDamage(m.MaxHP())
	}
	assert.True(t, team.Defeated())
	assert.Empty(t, team.LegalSwitches())
}
