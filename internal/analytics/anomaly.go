package analytics

import (
	"fmt"
	"math"

	"building_telemetry/internal/model"
)

const sigmaBound = 2.0

// seriesStats returns the population mean and standard deviation of a
// channel series.
func seriesStats(series model.TimeSeries) (mean, stdDev float64) {
	if len(series) == 0 {
		return 0, 0
	}

	var sum float64
	for _, p := range series {
		sum += p.Value
	}
	mean = sum / float64(len(series))

	var variance float64
	for _, p := range series {
		d := p.Value - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(series)))
}

// DetectAnomalies compares a current snapshot against two-sigma bands
// derived from history. Temperature and power are checked two-sided,
// efficiency one-sided below, air quality one-sided above. A zero-spread
// history collapses the band to the mean itself, so any deviation flags;
// only channels with no history at all are skipped.
func DetectAnomalies(b model.BuildingSnapshot, e model.EnergySnapshot, history model.HistoryBundle) []string {
	var anomalies []string

	if series := history[model.ChannelTemperature]; len(series) > 0 {
		if mean, std := seriesStats(series); math.Abs(b.Temperature-mean) > sigmaBound*std {
			anomalies = append(anomalies, fmt.Sprintf(
				"Temperature %.1f°C deviates from historical average %.1f°C", b.Temperature, mean))
		}
	}

	if series := history[model.ChannelPower]; len(series) > 0 {
		if mean, std := seriesStats(series); math.Abs(e.PowerConsumption-mean) > sigmaBound*std {
			anomalies = append(anomalies, fmt.Sprintf(
				"Power consumption %.2f kW deviates from historical average %.2f kW", e.PowerConsumption, mean))
		}
	}

	if series := history[model.ChannelEfficiency]; len(series) > 0 {
		if mean, std := seriesStats(series); e.Efficiency < mean-sigmaBound*std {
			anomalies = append(anomalies, fmt.Sprintf(
				"Efficiency %.1f%% is below historical average %.1f%%", e.Efficiency, mean))
		}
	}

	if series := history[model.ChannelAirQuality]; len(series) > 0 {
		if mean, std := seriesStats(series); float64(b.AirQuality) > mean+sigmaBound*std {
			anomalies = append(anomalies, fmt.Sprintf(
				"Air quality index %d is above historical average %.0f", b.AirQuality, mean))
		}
	}

	return anomalies
}
