package simulator

import (
	"math"
	"time"

	"building_telemetry/internal/model"
)

// buildingValues carries the raw channel values while modifiers run.
// Clamping and rounding happen once, after the scenario modifier.
type buildingValues struct {
	temperature float64
	occupancy   float64
	airQuality  float64
	humidity    float64
}

type buildingModifier func(g *Generator, v *buildingValues)

// buildingModifiers maps every scenario to its building-side transform.
// Scenarios without a building effect carry an explicit no-op so the table
// stays exhaustive.
var buildingModifiers = map[model.Scenario]buildingModifier{
	model.ScenarioNormal:         func(*Generator, *buildingValues) {},
	model.ScenarioEnergySpike:    func(*Generator, *buildingValues) {},
	model.ScenarioEfficiencyDrop: func(*Generator, *buildingValues) {},

	model.ScenarioHighOccupancy: func(g *Generator, v *buildingValues) {
		v.occupancy = math.Min(100, v.occupancy*1.8+g.uniform(0, 20))
		v.airQuality += g.uniform(40, 70)
		v.temperature += g.uniform(1.5, 3)
	},

	model.ScenarioHVACIssue: func(g *Generator, v *buildingValues) {
		// A failing unit can drift either direction on each channel.
		v.temperature += g.sign()*4 + g.noise(1)
		v.humidity += g.sign() * 7.5
	},

	model.ScenarioAirQualityAlert: func(g *Generator, v *buildingValues) {
		v.airQuality = g.uniform(120, 200)
		v.occupancy += float64(g.rng.IntN(16))
	},

	model.ScenarioExtremeTempHigh: func(g *Generator, v *buildingValues) {
		v.temperature = g.uniform(28, 32)
		v.humidity = math.Max(30, v.humidity-g.uniform(5, 10))
		v.airQuality += g.uniform(20, 40)
	},

	model.ScenarioExtremeTempLow: func(g *Generator, v *buildingValues) {
		v.temperature = g.uniform(14, 18)
		v.humidity = math.Min(70, v.humidity+g.uniform(5, 10))
	},

	model.ScenarioExtremeAirQuality: func(g *Generator, v *buildingValues) {
		if g.rng.Float64() < 0.5 {
			v.airQuality = g.uniform(250, 400)
			v.occupancy += g.uniform(10, 20)
		} else {
			v.airQuality = g.uniform(20, 40)
		}
	},

	model.ScenarioExtremeHumidity: func(g *Generator, v *buildingValues) {
		if g.rng.Float64() < 0.5 {
			v.humidity = g.uniform(75, 90)
			v.temperature -= g.uniform(1, 2)
		} else {
			v.humidity = g.uniform(25, 35)
			v.temperature += g.uniform(1, 2)
		}
	},
}

// Building generates a building snapshot at t under scenario sc.
func (g *Generator) Building(t time.Time, sc model.Scenario) model.BuildingSnapshot {
	factor := TimeOfDayFactor(t.Hour())

	v := buildingValues{
		temperature: 22 + (factor-0.7)*8 + g.noise(1.5),
		humidity:    40 + g.uniform(0, 20),
	}
	v.occupancy = math.Max(10, math.Floor(50*factor+g.noise(10)))
	v.airQuality = clamp(50+v.occupancy/10+g.noise(15), 0, 500)

	if mod := buildingModifiers[sc]; mod != nil {
		mod(g, &v)
	}

	if sc == model.ScenarioExtremeHumidity {
		v.humidity = clamp(v.humidity, 25, 90)
	} else {
		v.humidity = clamp(v.humidity, 30, 70)
	}
	v.airQuality = clamp(v.airQuality, 0, 500)

	return model.BuildingSnapshot{
		Temperature: round1(v.temperature),
		Occupancy:   int(v.occupancy),
		HVACStatus:  g.hvacStatus(sc, v.temperature),
		AirQuality:  int(math.Round(v.airQuality)),
		Humidity:    round1(v.humidity),
		Timestamp:   t,
	}
}

// hvacStatus derives the HVAC state. Extreme temperature scenarios always
// report active; hvac_issue has a 30% maintenance chance on top of the 5%
// baseline; otherwise active only when more than 2°C off the 22°C setpoint.
func (g *Generator) hvacStatus(sc model.Scenario, temperature float64) model.HVACStatus {
	switch sc {
	case model.ScenarioExtremeTempHigh, model.ScenarioExtremeTempLow:
		return model.HVACActive
	}
	if sc == model.ScenarioHVACIssue && g.rng.Float64() < 0.30 {
		return model.HVACMaintenance
	}
	if g.rng.Float64() < 0.05 {
		return model.HVACMaintenance
	}
	if math.Abs(temperature-22) > 2 {
		return model.HVACActive
	}
	return model.HVACIdle
}
