package battle

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cffield/pokesim/internal/game/rules"
)

// MoveRecord is one move slot as it appears in a team file.
type MoveRecord struct {
	ID string `yaml:"id"`
	PP int    `yaml:"pp"`
}

// CombatantRecord is the on-disk shape of one team member. Stats are final
// battle values; whatever produced the file has already folded in the
// species' growth math.
type CombatantRecord struct {
	Species string   `yaml:"species"`
	Types   []string `yaml:"types"`
	Level   int      `yaml:"level"`
	Ability string   `yaml:"ability"`
	Item    string   `yaml:"item"`
	Status  string   `yaml:"status"`
	Stats   struct {
		HP        int `yaml:"hp"`
		Attack    int `yaml:"attack"`
		Defense   int `yaml:"defense"`
		SpAttack  int `yaml:"special_attack"`
		SpDefense int `yaml:"special_defense"`
		Speed     int `yaml:"speed"`
	} `yaml:"stats"`
	Moves []MoveRecord `yaml:"moves"`
}

// TeamRecord is the on-disk shape of one team file.
type TeamRecord struct {
	Name    string            `yaml:"name"`
	Members []CombatantRecord `yaml:"members"`
}

// LoadTeamRecord reads and decodes one team file. Unknown keys are a
// configuration error, not a warning.
func LoadTeamRecord(path string) (*TeamRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team file %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var rec TeamRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding team file %s: %w", path, err)
	}
	return &rec, nil
}

// BuildTeam validates rec against the rules tables and constructs a
// battle-ready Team. Every referenced identifier must resolve: an unknown
// move, ability, type, or status anywhere in the record fails the whole
// build.
//
// Postcondition: on success every member is at full HP with the recorded
// status applied.
func BuildTeam(rec *TeamRecord, moves *rules.Moves, abilities *rules.Abilities) (*Team, error) {
	if rec == nil {
		return nil, fmt.Errorf("team record is nil")
	}

	var errs []string
	members := make([]*Combatant, 0, len(rec.Members))
	for i, mr := range rec.Members {
		c, err := buildCombatant(&mr, moves, abilities)
		if err != nil {
			errs = append(errs, fmt.Sprintf("member %d: %v", i, err))
			continue
		}
		members = append(members, c)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("team %q: %s", rec.Name, strings.Join(errs, "; "))
	}

	team, err := NewTeam(rec.Name, members)
	if err != nil {
		return nil, fmt.Errorf("team %q: %w", rec.Name, err)
	}
	return team, nil
}

func buildCombatant(rec *CombatantRecord, moves *rules.Moves, abilities *rules.Abilities) (*Combatant, error) {
	var errs []string

	for _, typ := range rec.Types {
		if !rules.KnownType(typ) {
			errs = append(errs, fmt.Sprintf("unknown type %q", typ))
		}
	}
	if rec.Ability != "" {
		if _, err := abilities.Get(rec.Ability); err != nil {
			errs = append(errs, err.Error())
		}
	}

	slots := make([]MoveSlot, 0, len(rec.Moves))
	for _, mr := range rec.Moves {
		def, err := moves.Get(mr.ID)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		pp := mr.PP
		if pp == 0 {
			pp = def.PP
		}
		if pp < 0 || pp > def.PP {
			errs = append(errs, fmt.Sprintf("move %q: pp %d outside [0, %d]", mr.ID, mr.PP, def.PP))
			continue
		}
		slots = append(slots, MoveSlot{ID: mr.ID, PP: pp})
	}

	status := StatusNone
	if rec.Status != "" {
		s, err := ParseStatus(rec.Status)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			status = s
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	stats := StatBlock{
		HP:        rec.Stats.HP,
		Attack:    rec.Stats.Attack,
		Defense:   rec.Stats.Defense,
		SpAttack:  rec.Stats.SpAttack,
		SpDefense: rec.Stats.SpDefense,
		Speed:     rec.Stats.Speed,
	}
	c, err := NewCombatant(rec.Species, rec.Types, rec.Level, stats, rec.Ability, rec.Item, slots)
	if err != nil {
		return nil, err
	}
	if status != StatusNone && !c.SetStatus(status) {
		return nil, fmt.Errorf("combatant %q: status %q cannot apply", rec.Species, rec.Status)
	}
	return c, nil
}
