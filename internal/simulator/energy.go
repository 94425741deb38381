package simulator

import (
	"math"
	"time"

	"building_telemetry/internal/model"
)

// energyValues carries the raw energy channel values while modifiers run.
type energyValues struct {
	power      float64
	efficiency float64
	renewable  float64
}

type energyModifier func(g *Generator, v *energyValues)

// energyModifiers maps every scenario to its energy-side transform.
var energyModifiers = map[model.Scenario]energyModifier{
	model.ScenarioNormal: func(*Generator, *energyValues) {},

	model.ScenarioEnergySpike: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.4, 1.7)
		v.efficiency -= g.uniform(5, 10)
	},

	model.ScenarioEfficiencyDrop: func(g *Generator, v *energyValues) {
		v.efficiency = math.Max(70, v.efficiency-g.uniform(15, 25))
		v.power *= g.uniform(1.1, 1.2)
	},

	model.ScenarioHighOccupancy: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.2, 1.35)
	},

	model.ScenarioHVACIssue: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.15, 1.35)
		v.efficiency -= g.uniform(3, 7)
	},

	model.ScenarioAirQualityAlert: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.1, 1.2)
	},

	model.ScenarioExtremeTempHigh: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.5, 1.8)
		v.efficiency -= g.uniform(8, 15)
	},

	model.ScenarioExtremeTempLow: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.5, 1.8)
		v.efficiency -= g.uniform(8, 15)
	},

	model.ScenarioExtremeAirQuality: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.3, 1.5)
	},

	model.ScenarioExtremeHumidity: func(g *Generator, v *energyValues) {
		v.power *= g.uniform(1.2, 1.35)
	},
}

// Energy generates an energy snapshot at t under scenario sc.
func (g *Generator) Energy(t time.Time, sc model.Scenario) model.EnergySnapshot {
	factor := TimeOfDayFactor(t.Hour())

	v := energyValues{
		power:      150*factor + g.noise(15),
		efficiency: g.uniform(80, 95),
		renewable:  g.uniform(30, 50),
	}

	if mod := energyModifiers[sc]; mod != nil {
		mod(g, &v)
	}

	if v.power < 0 {
		v.power = 0
	}
	v.efficiency = clamp(v.efficiency, 70, 100)

	// Peak-hours tariff kicks in above a 0.8 activity factor.
	rate := 0.10
	if factor > 0.8 {
		rate = 0.15
	}

	return model.EnergySnapshot{
		PowerConsumption:    round2(v.power),
		Efficiency:          round1(v.efficiency),
		Cost:                round2(v.power * rate),
		PeakUsage:           round2(v.power * (1 + g.uniform(0, 0.2))),
		RenewablePercentage: round1(v.renewable),
		CarbonFootprint:     round2(v.power * 0.5 * (1 - v.renewable/100)),
		Timestamp:           t,
	}
}
