package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"building_telemetry/internal/model"
)

// Threshold constants, shared with the insights fallback.
const (
	HighTemperatureC  = 26.0
	LowTemperatureC   = 18.0
	LowEfficiencyPct  = 80.0
	HighAirQualityAQI = 150

	forecastPowerRatio = 1.2
	forecastCostRatio  = 1.15
)

// GenerateAlerts applies the fixed-threshold rules to the current snapshot
// and the forecast list. Rules are independent; several may fire at once.
func GenerateAlerts(b model.BuildingSnapshot, e model.EnergySnapshot, predictions []model.PredictionPoint, now time.Time) []model.Alert {
	var alerts []model.Alert
	add := func(kind model.AlertKind, msg string) {
		alerts = append(alerts, model.Alert{
			ID:        uuid.NewString(),
			Kind:      kind,
			Message:   msg,
			Timestamp: now,
		})
	}

	if b.Temperature > HighTemperatureC {
		add(model.AlertWarning, fmt.Sprintf("Temperature %.1f°C is above the %.0f°C comfort threshold", b.Temperature, HighTemperatureC))
	}
	if b.Temperature < LowTemperatureC {
		add(model.AlertWarning, fmt.Sprintf("Temperature %.1f°C is below the %.0f°C comfort threshold", b.Temperature, LowTemperatureC))
	}
	if e.Efficiency < LowEfficiencyPct {
		add(model.AlertCritical, fmt.Sprintf("Energy efficiency %.1f%% dropped below %.0f%%", e.Efficiency, LowEfficiencyPct))
	}
	if b.AirQuality > HighAirQualityAQI {
		add(model.AlertCritical, fmt.Sprintf("Air quality index %d exceeds %d", b.AirQuality, HighAirQualityAQI))
	}

	if len(predictions) > 0 {
		var powerSum, costSum float64
		for _, p := range predictions {
			powerSum += p.PowerConsumption
			costSum += p.Cost
		}
		meanPower := powerSum / float64(len(predictions))

		if meanPower > forecastPowerRatio*e.PowerConsumption {
			add(model.AlertWarning, fmt.Sprintf("Forecasted power %.2f kW exceeds current consumption %.2f kW by more than 20%%", meanPower, e.PowerConsumption))
		}
		if costSum > forecastCostRatio*(e.Cost*24) {
			add(model.AlertInfo, fmt.Sprintf("Forecasted cost $%.2f is trending above the current daily rate of $%.2f", costSum, e.Cost*24))
		}
	}

	return alerts
}

// MergeAnomalies appends detector output to an alert list, tagging each
// anomaly as a warning.
func MergeAnomalies(alerts []model.Alert, anomalies []string, now time.Time) []model.Alert {
	for _, msg := range anomalies {
		alerts = append(alerts, model.Alert{
			ID:        uuid.NewString(),
			Kind:      model.AlertWarning,
			Message:   msg,
			Timestamp: now,
		})
	}
	return alerts
}
