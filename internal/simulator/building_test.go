package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_telemetry/internal/model"
)

func TestBuilding_InvariantsAcrossScenarios(t *testing.T) {
	g := newTestGenerator(11)

	for _, sc := range model.AllScenarios {
		for i := 0; i < 500; i++ {
			b := g.Building(testTime, sc)

			assert.GreaterOrEqual(t, b.Occupancy, 10, "occupancy under %s", sc)
			assert.GreaterOrEqual(t, b.AirQuality, 0, "air quality under %s", sc)
			assert.LessOrEqual(t, b.AirQuality, 500, "air quality under %s", sc)

			if sc == model.ScenarioExtremeHumidity {
				assert.GreaterOrEqual(t, b.Humidity, 25.0, "humidity under %s", sc)
				assert.LessOrEqual(t, b.Humidity, 90.0, "humidity under %s", sc)
			} else {
				assert.GreaterOrEqual(t, b.Humidity, 30.0, "humidity under %s", sc)
				assert.LessOrEqual(t, b.Humidity, 70.0, "humidity under %s", sc)
			}
		}
	}
}

func TestBuilding_HighOccupancyCapped(t *testing.T) {
	g := newTestGenerator(5)

	for i := 0; i < 500; i++ {
		b := g.Building(testTime, model.ScenarioHighOccupancy)
		assert.LessOrEqual(t, b.Occupancy, 100)
	}
}

func TestBuilding_ExtremeTempRanges(t *testing.T) {
	g := newTestGenerator(6)

	for i := 0; i < 200; i++ {
		high := g.Building(testTime, model.ScenarioExtremeTempHigh)
		assert.GreaterOrEqual(t, high.Temperature, 28.0)
		assert.LessOrEqual(t, high.Temperature, 32.0)
		assert.Equal(t, model.HVACActive, high.HVACStatus)

		low := g.Building(testTime, model.ScenarioExtremeTempLow)
		assert.GreaterOrEqual(t, low.Temperature, 14.0)
		assert.LessOrEqual(t, low.Temperature, 18.0)
		assert.Equal(t, model.HVACActive, low.HVACStatus)
	}
}

func TestBuilding_AirQualityAlertRange(t *testing.T) {
	g := newTestGenerator(7)

	for i := 0; i < 200; i++ {
		b := g.Building(testTime, model.ScenarioAirQualityAlert)
		assert.GreaterOrEqual(t, b.AirQuality, 120)
		assert.LessOrEqual(t, b.AirQuality, 200)
	}
}

// The extreme air-quality scenario splits 50/50 between a pollution event
// (AQI 250-400 with extra occupants) and unusually clean air (AQI 20-40).
func TestExtremeAirQualityModifier_Branches(t *testing.T) {
	g := newTestGenerator(8)
	mod := buildingModifiers[model.ScenarioExtremeAirQuality]
	require.NotNil(t, mod)

	highBranch, lowBranch := 0, 0
	for i := 0; i < 500; i++ {
		v := buildingValues{temperature: 22, occupancy: 50, airQuality: 60, humidity: 50}
		mod(g, &v)

		if v.airQuality >= 250 {
			highBranch++
			assert.LessOrEqual(t, v.airQuality, 400.0)
			assert.Greater(t, v.occupancy, 50.0, "pollution branch must add occupants")
		} else {
			lowBranch++
			assert.GreaterOrEqual(t, v.airQuality, 20.0)
			assert.LessOrEqual(t, v.airQuality, 40.0)
			assert.Equal(t, 50.0, v.occupancy)
		}
	}

	assert.Greater(t, highBranch, 150, "high branch should fire about half the time")
	assert.Greater(t, lowBranch, 150, "low branch should fire about half the time")
}

func TestExtremeHumidityModifier_Branches(t *testing.T) {
	g := newTestGenerator(9)
	mod := buildingModifiers[model.ScenarioExtremeHumidity]
	require.NotNil(t, mod)

	for i := 0; i < 500; i++ {
		v := buildingValues{temperature: 22, occupancy: 50, airQuality: 60, humidity: 50}
		mod(g, &v)

		if v.humidity >= 75 {
			assert.LessOrEqual(t, v.humidity, 90.0)
			assert.Less(t, v.temperature, 22.0, "humid branch cools")
		} else {
			assert.GreaterOrEqual(t, v.humidity, 25.0)
			assert.LessOrEqual(t, v.humidity, 35.0)
			assert.Greater(t, v.temperature, 22.0, "dry branch warms")
		}
	}
}

func TestHVACStatus_MaintenanceChanceUnderIssue(t *testing.T) {
	g := newTestGenerator(10)

	maintenance := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		if g.hvacStatus(model.ScenarioHVACIssue, 22) == model.HVACMaintenance {
			maintenance++
		}
	}

	// 30% issue roll plus the residual 5% baseline roll ≈ 0.335.
	assert.InDelta(t, 0.335, float64(maintenance)/trials, 0.03)
}

func TestHVACStatus_SetpointBand(t *testing.T) {
	g := newTestGenerator(12)

	active, idle := 0, 0
	for i := 0; i < 2000; i++ {
		switch g.hvacStatus(model.ScenarioNormal, 26) {
		case model.HVACActive:
			active++
		case model.HVACIdle:
			idle++
		}
	}
	assert.Zero(t, idle, "4°C above setpoint must never idle")
	assert.Greater(t, active, 1800)

	for i := 0; i < 2000; i++ {
		status := g.hvacStatus(model.ScenarioNormal, 22.5)
		assert.NotEqual(t, model.HVACActive, status, "within the setpoint band")
	}
}
