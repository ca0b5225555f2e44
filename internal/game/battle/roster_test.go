package battle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cffield/pokesim/internal/game/battle"
	"github.com/cffield/pokesim/internal/game/rules"
)

func rosterTables(t *testing.T) (*rules.Moves, *rules.Abilities) {
	t.Helper()
	moves := rules.NewMoves()
	require.NoError(t, moves.Register(&rules.MoveDef{
		ID: "tackle", Name: "Tackle", Type: "Normal", Category: rules.Physical,
		Power: intPtr(40), Accuracy: intPtr(100), PP: 35,
	}))
	require.NoError(t, moves.Register(&rules.MoveDef{
		ID: "surf", Name: "Surf", Type: "Water", Category: rules.Special,
		Power: intPtr(90), Accuracy: intPtr(100), PP: 15,
	}))
	abilities := rules.NewAbilities()
	require.NoError(t, abilities.Register(&rules.AbilityDef{ID: "torrent", Name: "Torrent"}))
	return moves, abilities
}

func validRecord() *battle.TeamRecord {
	rec := &battle.TeamRecord{Name: "Player"}
	member := battle.CombatantRecord{
		Species: "Mudkip",
		Types:   []string{"Water"},
		Level:   50,
		Ability: "torrent",
		Moves:   []battle.MoveRecord{{ID: "tackle"}, {ID: "surf", PP: 5}},
	}
	member.Stats.HP = 160
	member.Stats.Attack = 100
	member.Stats.Defense = 100
	member.Stats.SpAttack = 100
	member.Stats.SpDefense = 100
	member.Stats.Speed = 100
	rec.Members = append(rec.Members, member)
	return rec
}

func TestBuildTeamDefaultsAndClampsPP(t *testing.T) {
	moves, abilities := rosterTables(t)
	team, err := battle.BuildTeam(validRecord(), moves, abilities)
	require.NoError(t, err)

	c := team.Active()
	assert.Equal(t, "Mudkip", c.Species)
	assert.Equal(t, c.MaxHP(), c.HP(), "members start at full HP")
	// An omitted pp falls back to the move's maximum.
	assert.Equal(t, 35, c.Moves[0].PP)
	assert.Equal(t, 5, c.Moves[1].PP)
}

func TestBuildTeamAppliesRecordedStatus(t *testing.T) {
	moves, abilities := rosterTables(t)
	rec := validRecord()
	rec.Members[0].Status = "paralysis"

	team, err := battle.BuildTeam(rec, moves, abilities)
	require.NoError(t, err)
	assert.Equal(t, battle.StatusParalysis, team.Active().Status)
}

func TestBuildTeamCollectsAllResolutionErrors(t *testing.T) {
	moves, abilities := rosterTables(t)
	rec := validRecord()
	rec.Members[0].Types = []string{"Wibble"}
	rec.Members[0].Ability = "levitate"
	rec.Members[0].Moves = []battle.MoveRecord{{ID: "splash"}}
	rec.Members[0].Status = "grumpy"

	_, err := battle.BuildTeam(rec, moves, abilities)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "Wibble"`)
	assert.Contains(t, err.Error(), "levitate")
	assert.Contains(t, err.Error(), "splash")
	assert.Contains(t, err.Error(), "grumpy")
}

func TestBuildTeamRejectsExcessPP(t *testing.T) {
	moves, abilities := rosterTables(t)
	rec := validRecord()
	rec.Members[0].Moves[1].PP = 99

	_, err := battle.BuildTeam(rec, moves, abilities)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pp 99 outside [0, 15]")
}

func TestBuildTeamNilRecord(t *testing.T) {
	moves, abilities := rosterTables(t)
	_, err := battle.BuildTeam(nil, moves, abilities)
	assert.Error(t, err)
}

func TestLoadTeamRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Player
members:
  - species: Mudkip
    types: [Water]
    level: 50
    ability: torrent
    stats:
      hp: 160
      attack: 100
      defense: 100
      special_attack: 100
      special_defense: 100
      speed: 100
    moves:
      - id: tackle
      - id: surf
        pp: 5
`), 0o644))

	rec, err := battle.LoadTeamRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "Player", rec.Name)
	require.Len(t, rec.Members, 1)
	assert.Equal(t, 160, rec.Members[0].Stats.HP)
	assert.Equal(t, 5, rec.Members[0].Moves[1].PP)
}

func TestLoadTeamRecordRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Player
held_items: []
members: []
`), 0o644))

	_, err := battle.LoadTeamRecord(path)
	assert.Error(t, err)
}

func TestLoadTeamRecordMissingFile(t *testing.T) {
	_, err := battle.LoadTeamRecord(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
