package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cffield/pokesim/internal/game/battle"
)

func TestTransientWeatherCleared(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.SetWeather(battle.WeatherRain, false))
	assert.Equal(t, battle.WeatherRain, f.Weather())

	f.ClearTransient()
	assert.Equal(t, "", f.Weather())
}

func TestPermanentWeatherSurvivesClearAll(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.SetWeather(battle.WeatherRain, true))
	assert.True(t, f.WeatherPermanent())

	f.ClearTransient()
	assert.Equal(t, battle.WeatherRain, f.Weather(), "permanent weather must survive the clear-all category")
	assert.True(t, f.WeatherPermanent())

	f.BreakPermanent()
	assert.Equal(t, "", f.Weather(), "only the countermove removes permanent weather")
	assert.False(t, f.WeatherPermanent())
}

func TestTransientCannotDisplacePermanent(t *testing.T) {
	f := battle.NewFieldState()
	f.SetWeather(battle.WeatherSun, true)
	assert.False(t, f.SetWeather(battle.WeatherRain, false))
	assert.Equal(t, battle.WeatherSun, f.Weather())

	// A permanent source can displace another permanent source.
	assert.True(t, f.SetWeather(battle.WeatherRain, true))
	assert.Equal(t, battle.WeatherRain, f.Weather())
}

func TestSettingSameWeatherFails(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.SetWeather(battle.WeatherSand, false))
	assert.False(t, f.SetWeather(battle.WeatherSand, false), "re-setting the active weather is a failed move")
}

func TestPermanentTerrainMirrorsWeather(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.SetTerrain(battle.TerrainElectric, true))
	assert.False(t, f.SetTerrain(battle.TerrainGrassy, false))

	f.ClearTransient()
	assert.Equal(t, battle.TerrainElectric, f.Terrain())

	f.BreakPermanent()
	assert.Equal(t, "", f.Terrain())
}

func TestSeededFieldOptions(t *testing.T) {
	f := battle.NewFieldState(
		battle.WithWeather(battle.WeatherSand, true),
		battle.WithTerrain(battle.TerrainPsychic, false),
	)
	assert.Equal(t, battle.WeatherSand, f.Weather())
	assert.True(t, f.WeatherPermanent())
	assert.Equal(t, battle.TerrainPsychic, f.Terrain())
	assert.False(t, f.TerrainPermanent())
}

func TestScreensExpireAfterFiveTicks(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.SetScreen(0, battle.ScreenReflect))
	assert.False(t, f.SetScreen(0, battle.ScreenReflect), "an active screen cannot be refreshed")

	for i := 0; i < 4; i++ {
		assert.Empty(t, f.TickScreens(), "tick %d should expire nothing", i)
		assert.True(t, f.Side(0).HasScreen(battle.ScreenReflect))
	}
	expired := f.TickScreens()
	assert.Equal(t, []battle.ExpiredScreen{{Side: 0, Screen: battle.ScreenReflect}}, expired)
	assert.False(t, f.Side(0).HasScreen(battle.ScreenReflect))
}

func TestScreensArePerSide(t *testing.T) {
	f := battle.NewFieldState()
	f.SetScreen(0, battle.ScreenLightScreen)
	assert.True(t, f.Side(0).HasScreen(battle.ScreenLightScreen))
	assert.False(t, f.Side(1).HasScreen(battle.ScreenLightScreen))
	assert.True(t, f.SetScreen(1, battle.ScreenLightScreen))
}

func TestHazardCaps(t *testing.T) {
	f := battle.NewFieldState()
	assert.True(t, f.AddHazard(1, battle.HazardStealthRock))
	assert.False(t, f.AddHazard(1, battle.HazardStealthRock), "stealth rock caps at one layer")
	assert.Equal(t, 1, f.Side(1).HazardLayers(battle.HazardStealthRock))

	for i := 0; i < 3; i++ {
		assert.True(t, f.AddHazard(1, battle.HazardSpikes))
	}
	assert.False(t, f.AddHazard(1, battle.HazardSpikes), "spikes cap at three layers")
	assert.Equal(t, 3, f.Side(1).HazardLayers(battle.HazardSpikes))
}

func TestClearTransientRemovesScreensAndHazards(t *testing.T) {
	f := battle.NewFieldState()
	f.SetScreen(0, battle.ScreenReflect)
	f.AddHazard(1, battle.HazardSpikes)
	f.ClearTransient()
	assert.False(t, f.Side(0).HasScreen(battle.ScreenReflect))
	assert.Equal(t, 0, f.Side(1).HazardLayers(battle.HazardSpikes))
}
