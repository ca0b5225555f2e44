package rules

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ruleset is the resolved set of scalar mechanics values the resolver
// consults. It starts from the baseline generation values and applies a
// variant's overrides on top. The resolver never hard-codes any of these.
type Ruleset struct {
	Name string

	// CritDenominator is the critical-hit chance denominator: a crit is a
	// 1-in-CritDenominator roll.
	CritDenominator int
	// CritMultiplier is the damage multiplier applied on a critical hit.
	CritMultiplier float64
	// StabMultiplier is the same-type attack bonus.
	StabMultiplier float64
	// ParalysisSpeedMultiplier scales effective Speed while paralyzed.
	ParalysisSpeedMultiplier float64
	// ParalysisStopPercent is the full-paralysis move-prevention chance.
	ParalysisStopPercent int
	// FreezeThawPercent is the per-turn chance a frozen combatant thaws.
	FreezeThawPercent int
	// ConfusionSelfHitPercent is the chance a confused combatant hits itself.
	ConfusionSelfHitPercent int
	// InfatuationStopPercent is the chance an infatuated combatant is unable
	// to move.
	InfatuationStopPercent int
	// SleepTurnsMin and SleepTurnsMax bound the freshly rolled sleep counter.
	SleepTurnsMin int
	SleepTurnsMax int
	// BerryTriggerFraction is the max-HP fraction at or below which a
	// confusion berry triggers.
	BerryTriggerFraction float64
	// BerryHealFraction is the max-HP fraction a confusion berry restores.
	BerryHealFraction float64
	// TerrainSameTypeMultiplier boosts grounded moves matching the active
	// terrain.
	TerrainSameTypeMultiplier float64
	// WeatherBoostMultiplier boosts Fire moves in sun and Water moves in rain.
	WeatherBoostMultiplier float64
	// BurnDenominator and PoisonDenominator are the end-of-turn residual
	// fractions (max HP / denominator).
	BurnDenominator   int
	PoisonDenominator int
	// SandstormDenominator is the per-turn sandstorm chip fraction.
	SandstormDenominator int
	// TopPriorityTier is the tier assigned by top-tier priority abilities.
	TopPriorityTier int
	// MoodyIncludesAccuracy controls whether accuracy and evasion are in the
	// Moody stat pool. They stay eligible even when other stats are excluded.
	MoodyIncludesAccuracy bool
	// SafariCatchRate is the flat Safari-ball catch rate. Battle resolution
	// never consults it; it is carried for the overworld collaborators that
	// read the same ruleset file.
	SafariCatchRate float64
}

// Baseline returns the baseline generation values that a variant overrides.
//
// Postcondition: the returned Ruleset passes Validate.
func Baseline() Ruleset {
	return Ruleset{
		Name:                      "baseline",
		CritDenominator:           24,
		CritMultiplier:            1.5,
		StabMultiplier:            1.5,
		ParalysisSpeedMultiplier:  0.5,
		ParalysisStopPercent:      25,
		FreezeThawPercent:         20,
		ConfusionSelfHitPercent:   33,
		InfatuationStopPercent:    50,
		SleepTurnsMin:             1,
		SleepTurnsMax:             3,
		BerryTriggerFraction:      0.25,
		BerryHealFraction:         1.0 / 3.0,
		TerrainSameTypeMultiplier: 1.3,
		WeatherBoostMultiplier:    1.5,
		BurnDenominator:           16,
		PoisonDenominator:         8,
		SandstormDenominator:      16,
		TopPriorityTier:           5,
		MoodyIncludesAccuracy:     false,
		SafariCatchRate:           0.0,
	}
}

// rulesetFile is the YAML shape of a variant: a name plus optional overrides.
// Pointer fields distinguish "absent, keep baseline" from explicit zeroes.
type rulesetFile struct {
	Name                      string   `yaml:"name"`
	CritDenominator           *int     `yaml:"crit_denominator"`
	CritMultiplier            *float64 `yaml:"crit_multiplier"`
	StabMultiplier            *float64 `yaml:"stab_multiplier"`
	ParalysisSpeedMultiplier  *float64 `yaml:"paralysis_speed_multiplier"`
	ParalysisStopPercent      *int     `yaml:"paralysis_stop_percent"`
	FreezeThawPercent         *int     `yaml:"freeze_thaw_percent"`
	ConfusionSelfHitPercent   *int     `yaml:"confusion_self_hit_percent"`
	InfatuationStopPercent    *int     `yaml:"infatuation_stop_percent"`
	SleepTurnsMin             *int     `yaml:"sleep_turns_min"`
	SleepTurnsMax             *int     `yaml:"sleep_turns_max"`
	BerryTriggerFraction      *float64 `yaml:"berry_trigger_fraction"`
	BerryHealFraction         *float64 `yaml:"berry_heal_fraction"`
	TerrainSameTypeMultiplier *float64 `yaml:"terrain_same_type_multiplier"`
	WeatherBoostMultiplier    *float64 `yaml:"weather_boost_multiplier"`
	BurnDenominator           *int     `yaml:"burn_denominator"`
	PoisonDenominator         *int     `yaml:"poison_denominator"`
	SandstormDenominator      *int     `yaml:"sandstorm_denominator"`
	TopPriorityTier           *int     `yaml:"top_priority_tier"`
	MoodyIncludesAccuracy     *bool    `yaml:"moody_includes_accuracy"`
	SafariCatchRate           *float64 `yaml:"safari_catch_rate"`
}

// LoadRuleset reads a variant file and applies its overrides to Baseline.
//
// Precondition: path must reference a readable YAML file.
// Postcondition: returns a validated Ruleset. An unknown override key in the
// file is a configuration error, not silently ignored.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("reading ruleset %q: %w", path, err)
	}
	var file rulesetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Ruleset{}, fmt.Errorf("parsing ruleset %q: %w", path, err)
	}

	rs := Baseline()
	if file.Name != "" {
		rs.Name = file.Name
	}
	applyOverrides(&rs, file)

	if err := rs.Validate(); err != nil {
		return Ruleset{}, fmt.Errorf("ruleset %q: %w", path, err)
	}
	return rs, nil
}

func applyOverrides(rs *Ruleset, f rulesetFile) {
	if f.CritDenominator != nil {
		rs.CritDenominator = *f.CritDenominator
	}
	if f.CritMultiplier != nil {
		rs.CritMultiplier = *f.CritMultiplier
	}
	if f.StabMultiplier != nil {
		rs.StabMultiplier = *f.StabMultiplier
	}
	if f.ParalysisSpeedMultiplier != nil {
		rs.ParalysisSpeedMultiplier = *f.ParalysisSpeedMultiplier
	}
	if f.ParalysisStopPercent != nil {
		rs.ParalysisStopPercent = *f.ParalysisStopPercent
	}
	if f.FreezeThawPercent != nil {
		rs.FreezeThawPercent = *f.FreezeThawPercent
	}
	if f.ConfusionSelfHitPercent != nil {
		rs.ConfusionSelfHitPercent = *f.ConfusionSelfHitPercent
	}
	if f.InfatuationStopPercent != nil {
		rs.InfatuationStopPercent = *f.InfatuationStopPercent
	}
	if f.SleepTurnsMin != nil {
		rs.SleepTurnsMin = *f.SleepTurnsMin
	}
	if f.SleepTurnsMax != nil {
		rs.SleepTurnsMax = *f.SleepTurnsMax
	}
	if f.BerryTriggerFraction != nil {
		rs.BerryTriggerFraction = *f.BerryTriggerFraction
	}
	if f.BerryHealFraction != nil {
		rs.BerryHealFraction = *f.BerryHealFraction
	}
	if f.TerrainSameTypeMultiplier != nil {
		rs.TerrainSameTypeMultiplier = *f.TerrainSameTypeMultiplier
	}
	if f.WeatherBoostMultiplier != nil {
		rs.WeatherBoostMultiplier = *f.WeatherBoostMultiplier
	}
	if f.BurnDenominator != nil {
		rs.BurnDenominator = *f.BurnDenominator
	}
	if f.PoisonDenominator != nil {
		rs.PoisonDenominator = *f.PoisonDenominator
	}
	if f.SandstormDenominator != nil {
		rs.SandstormDenominator = *f.SandstormDenominator
	}
	if f.TopPriorityTier != nil {
		rs.TopPriorityTier = *f.TopPriorityTier
	}
	if f.MoodyIncludesAccuracy != nil {
		rs.MoodyIncludesAccuracy = *f.MoodyIncludesAccuracy
	}
	if f.SafariCatchRate != nil {
		rs.SafariCatchRate = *f.SafariCatchRate
	}
}

// Validate checks all ruleset invariants, collecting every violation.
//
// Postcondition: returns nil iff every scalar is in its legal range.
func (r Ruleset) Validate() error {
	var errs []string
	if r.CritDenominator < 1 {
		errs = append(errs, fmt.Sprintf("crit_denominator must be >= 1, got %d", r.CritDenominator))
	}
	if r.CritMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("crit_multiplier must be >= 1, got %g", r.CritMultiplier))
	}
	if r.StabMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("stab_multiplier must be >= 1, got %g", r.StabMultiplier))
	}
	if r.ParalysisSpeedMultiplier <= 0 || r.ParalysisSpeedMultiplier > 1 {
		errs = append(errs, fmt.Sprintf("paralysis_speed_multiplier must be in (0, 1], got %g", r.ParalysisSpeedMultiplier))
	}
	if r.ParalysisStopPercent < 0 || r.ParalysisStopPercent > 100 {
		errs = append(errs, fmt.Sprintf("paralysis_stop_percent must be in [0, 100], got %d", r.ParalysisStopPercent))
	}
	if r.FreezeThawPercent < 0 || r.FreezeThawPercent > 100 {
		errs = append(errs, fmt.Sprintf("freeze_thaw_percent must be in [0, 100], got %d", r.FreezeThawPercent))
	}
	if r.ConfusionSelfHitPercent < 0 || r.ConfusionSelfHitPercent > 100 {
		errs = append(errs, fmt.Sprintf("confusion_self_hit_percent must be in [0, 100], got %d", r.ConfusionSelfHitPercent))
	}
	if r.InfatuationStopPercent < 0 || r.InfatuationStopPercent > 100 {
		errs = append(errs, fmt.Sprintf("infatuation_stop_percent must be in [0, 100], got %d", r.InfatuationStopPercent))
	}
	if r.SleepTurnsMin < 1 || r.SleepTurnsMax < r.SleepTurnsMin {
		errs = append(errs, fmt.Sprintf("sleep turns must satisfy 1 <= min <= max, got [%d, %d]", r.SleepTurnsMin, r.SleepTurnsMax))
	}
	if r.BerryTriggerFraction <= 0 || r.BerryTriggerFraction > 1 {
		errs = append(errs, fmt.Sprintf("berry_trigger_fraction must be in (0, 1], got %g", r.BerryTriggerFraction))
	}
	if r.BerryHealFraction <= 0 || r.BerryHealFraction > 1 {
		errs = append(errs, fmt.Sprintf("berry_heal_fraction must be in (0, 1], got %g", r.BerryHealFraction))
	}
	if r.TerrainSameTypeMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("terrain_same_type_multiplier must be >= 1, got %g", r.TerrainSameTypeMultiplier))
	}
	if r.WeatherBoostMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("weather_boost_multiplier must be >= 1, got %g", r.WeatherBoostMultiplier))
	}
	if r.BurnDenominator < 1 || r.PoisonDenominator < 1 || r.SandstormDenominator < 1 {
		errs = append(errs, "residual damage denominators must be >= 1")
	}
	if r.TopPriorityTier < 1 {
		errs = append(errs, fmt.Sprintf("top_priority_tier must be >= 1, got %d", r.TopPriorityTier))
	}
	if r.SafariCatchRate < 0 || r.SafariCatchRate > 1 {
		errs = append(errs, fmt.Sprintf("safari_catch_rate must be in [0, 1], got %g", r.SafariCatchRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ruleset validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
