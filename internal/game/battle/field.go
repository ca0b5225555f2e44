package battle

// Weather kinds. Empty string means clear skies.
const (
	WeatherSun  = "sun"
	WeatherRain = "rain"
	WeatherSand = "sand"
)

// Terrain kinds. Empty string means no terrain.
const (
	TerrainElectric = "electric"
	TerrainGrassy   = "grassy"
	TerrainPsychic  = "psychic"
	TerrainMisty    = "misty"
)

// Screen identifiers, per side.
const (
	ScreenReflect     = "reflect"
	ScreenLightScreen = "light-screen"
)

// Hazard identifiers, per side.
const (
	HazardStealthRock = "stealth-rock"
	HazardSpikes      = "spikes"
)

// screenDuration is the remaining-turns counter a freshly set screen gets.
const screenDuration = 5

// maxSpikesLayers caps spikes stacking.
const maxSpikesLayers = 3

// terrainBoostType maps a terrain kind to the move type it boosts for
// grounded attackers. Misty terrain boosts nothing.
var terrainBoostType = map[string]string{
	TerrainElectric: "Electric",
	TerrainGrassy:   "Grass",
	TerrainPsychic:  "Psychic",
}

// weatherBoostType maps a weather kind to the move type it boosts.
var weatherBoostType = map[string]string{
	WeatherSun:  "Fire",
	WeatherRain: "Water",
}

// SideConditions holds one side's screens and entry hazards.
type SideConditions struct {
	screens map[string]int // remaining turns
	hazards map[string]int // layers (stealth rock is presence-only: 1)
}

// newSideConditions creates empty side conditions.
func newSideConditions() SideConditions {
	return SideConditions{screens: make(map[string]int), hazards: make(map[string]int)}
}

// HasScreen reports whether the named screen is up.
func (s *SideConditions) HasScreen(id string) bool {
	return s.screens[id] > 0
}

// HazardLayers returns the number of layers for the named hazard.
func (s *SideConditions) HazardLayers(id string) int {
	return s.hazards[id]
}

// FieldState is the battle-wide shared mutable state: weather, terrain,
// per-side screens and hazards, and the turn counter.
//
// Weather and terrain each carry a permanence flag. A permanent source (an
// overworld effect or a permanence-granting ability) survives the general
// clear-all move category and is removed only by the specific countermove.
type FieldState struct {
	// Turn counts completed turns, starting at 0.
	Turn int

	weather          string
	weatherPermanent bool
	terrain          string
	terrainPermanent bool
	sides            [2]SideConditions
}

// FieldOption seeds scenario-specific state at battle start.
type FieldOption func(*FieldState)

// WithWeather pre-seeds weather, optionally permanent (overworld-forced).
func WithWeather(kind string, permanent bool) FieldOption {
	return func(f *FieldState) {
		f.weather = kind
		f.weatherPermanent = permanent
	}
}

// WithTerrain pre-seeds terrain, optionally permanent.
func WithTerrain(kind string, permanent bool) FieldOption {
	return func(f *FieldState) {
		f.terrain = kind
		f.terrainPermanent = permanent
	}
}

// NewFieldState creates a FieldState with all conditions cleared, then
// applies any scenario options.
func NewFieldState(opts ...FieldOption) *FieldState {
	f := &FieldState{
		sides: [2]SideConditions{newSideConditions(), newSideConditions()},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Weather returns the active weather kind, or "".
func (f *FieldState) Weather() string { return f.weather }

// WeatherPermanent reports whether the active weather is permanently forced.
func (f *FieldState) WeatherPermanent() bool { return f.weather != "" && f.weatherPermanent }

// Terrain returns the active terrain kind, or "".
func (f *FieldState) Terrain() string { return f.terrain }

// TerrainPermanent reports whether the active terrain is permanently forced.
func (f *FieldState) TerrainPermanent() bool { return f.terrain != "" && f.terrainPermanent }

// SetWeather replaces the active weather. A non-permanent source cannot
// displace a permanent one.
//
// Postcondition: returns true iff the weather changed.
func (f *FieldState) SetWeather(kind string, permanent bool) bool {
	if f.weatherPermanent && !permanent {
		return false
	}
	if f.weather == kind && f.weatherPermanent == permanent {
		return false
	}
	f.weather = kind
	f.weatherPermanent = permanent && kind != ""
	return true
}

// SetTerrain replaces the active terrain. A non-permanent source cannot
// displace a permanent one.
//
// Postcondition: returns true iff the terrain changed.
func (f *FieldState) SetTerrain(kind string, permanent bool) bool {
	if f.terrainPermanent && !permanent {
		return false
	}
	if f.terrain == kind && f.terrainPermanent == permanent {
		return false
	}
	f.terrain = kind
	f.terrainPermanent = permanent && kind != ""
	return true
}

// ClearTransient removes non-permanent weather and terrain, every screen,
// and every hazard on both sides. Permanent weather/terrain survive: only
// BreakPermanent removes those.
func (f *FieldState) ClearTransient() {
	if !f.weatherPermanent {
		f.weather = ""
	}
	if !f.terrainPermanent {
		f.terrain = ""
	}
	for i := range f.sides {
		f.sides[i] = newSideConditions()
	}
}

// BreakPermanent removes weather and terrain regardless of permanence. This
// is the specifically-tagged countermove's effect.
//
// Postcondition: Weather() == "" and Terrain() == "".
func (f *FieldState) BreakPermanent() {
	f.weather = ""
	f.weatherPermanent = false
	f.terrain = ""
	f.terrainPermanent = false
}

// Side returns the conditions for side i.
//
// Precondition: i is 0 or 1.
func (f *FieldState) Side(i int) *SideConditions { return &f.sides[i] }

// SetScreen raises the named screen on side i with a fresh duration.
//
// Postcondition: returns false if the screen was already up.
func (f *FieldState) SetScreen(side int, id string) bool {
	if f.sides[side].screens[id] > 0 {
		return false
	}
	f.sides[side].screens[id] = screenDuration
	return true
}

// AddHazard lays one layer of the named hazard on side i.
//
// Postcondition: returns false when the hazard is already at its cap
// (stealth rock caps at one layer, spikes at maxSpikesLayers).
func (f *FieldState) AddHazard(side int, id string) bool {
	limit := 1
	if id == HazardSpikes {
		limit = maxSpikesLayers
	}
	if f.sides[side].hazards[id] >= limit {
		return false
	}
	f.sides[side].hazards[id]++
	return true
}

// ExpiredScreen records one screen that ran out during TickScreens.
type ExpiredScreen struct {
	Side   int
	Screen string
}

// TickScreens decrements every screen counter on both sides and returns the
// screens that expired this turn, side-0 entries first.
func (f *FieldState) TickScreens() []ExpiredScreen {
	var expired []ExpiredScreen
	for side := range f.sides {
		for _, id := range []string{ScreenReflect, ScreenLightScreen} {
			turns, ok := f.sides[side].screens[id]
			if !ok || turns <= 0 {
				continue
			}
			turns--
			if turns <= 0 {
				delete(f.sides[side].screens, id)
				expired = append(expired, ExpiredScreen{Side: side, Screen: id})
			} else {
				f.sides[side].screens[id] = turns
			}
		}
	}
	return expired
}
