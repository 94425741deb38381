// Package insights derives free-text observations and recommendations from
// telemetry snapshots. It is the rule-based fallback path: it re-applies
// the same thresholds as the alert rules so downstream consumers get a
// consistent narrative without any external analysis service.
package insights

import (
	"fmt"
	"time"

	"building_telemetry/internal/analytics"
	"building_telemetry/internal/model"
)

// Report bundles the derived narrative for one snapshot.
type Report struct {
	Observations    []string  `json:"observations"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Analyze inspects a snapshot and optional history bundle and produces a
// narrative report. history may be nil.
func Analyze(b model.BuildingSnapshot, e model.EnergySnapshot, history model.HistoryBundle, now time.Time) Report {
	r := Report{GeneratedAt: now}

	if b.Temperature > analytics.HighTemperatureC {
		r.Observations = append(r.Observations, fmt.Sprintf("Building temperature of %.1f°C is above the comfort range.", b.Temperature))
		r.Recommendations = append(r.Recommendations, "Increase cooling output or verify HVAC setpoints.")
	} else if b.Temperature < analytics.LowTemperatureC {
		r.Observations = append(r.Observations, fmt.Sprintf("Building temperature of %.1f°C is below the comfort range.", b.Temperature))
		r.Recommendations = append(r.Recommendations, "Increase heating output or verify HVAC setpoints.")
	}

	if e.Efficiency < analytics.LowEfficiencyPct {
		r.Observations = append(r.Observations, fmt.Sprintf("Energy efficiency is at %.1f%%, below the %.0f%% floor.", e.Efficiency, analytics.LowEfficiencyPct))
		r.Recommendations = append(r.Recommendations, "Schedule an equipment inspection; sustained low efficiency usually indicates degraded HVAC or distribution losses.")
	}

	if b.AirQuality > analytics.HighAirQualityAQI {
		r.Observations = append(r.Observations, fmt.Sprintf("Air quality index of %d exceeds the %d alert level.", b.AirQuality, analytics.HighAirQualityAQI))
		r.Recommendations = append(r.Recommendations, "Boost ventilation rates and check filtration.")
	}

	if b.HVACStatus == model.HVACMaintenance {
		r.Observations = append(r.Observations, "HVAC system is currently flagged for maintenance.")
	}

	if trend, ok := powerTrend(history); ok {
		r.Observations = append(r.Observations, trend)
	}

	if e.RenewablePercentage >= 45 {
		r.Observations = append(r.Observations, fmt.Sprintf("Renewable sources are covering %.1f%% of consumption.", e.RenewablePercentage))
	}

	if len(r.Observations) == 0 {
		r.Observations = append(r.Observations, "All monitored channels are within normal operating ranges.")
	}
	if len(r.Recommendations) == 0 {
		r.Recommendations = append(r.Recommendations, "No action required.")
	}

	return r
}

// powerTrend summarizes the direction of the power series, when one exists.
func powerTrend(history model.HistoryBundle) (string, bool) {
	series := history[model.ChannelPower]
	if len(series) < 2 {
		return "", false
	}

	first := series[0].Value
	last := series[len(series)-1].Value
	hours := len(series) - 1

	switch {
	case first <= 0:
		return "", false
	case last > first*1.1:
		return fmt.Sprintf("Power consumption has risen %.0f%% over the past %d hours.", (last/first-1)*100, hours), true
	case last < first*0.9:
		return fmt.Sprintf("Power consumption has fallen %.0f%% over the past %d hours.", (1-last/first)*100, hours), true
	default:
		return fmt.Sprintf("Power consumption has been stable over the past %d hours.", hours), true
	}
}
