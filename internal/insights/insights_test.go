package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_telemetry/internal/model"
)

var insightsNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func quietSnapshots() (model.BuildingSnapshot, model.EnergySnapshot) {
	b := model.BuildingSnapshot{
		Temperature: 22,
		Occupancy:   40,
		HVACStatus:  model.HVACIdle,
		AirQuality:  55,
		Humidity:    45,
		Timestamp:   insightsNow,
	}
	e := model.EnergySnapshot{
		PowerConsumption:    100,
		Efficiency:          90,
		Cost:                10,
		RenewablePercentage: 35,
		Timestamp:           insightsNow,
	}
	return b, e
}

func powerHistory(values ...float64) model.HistoryBundle {
	series := make(model.TimeSeries, len(values))
	for i, v := range values {
		series[i] = model.TimeSeriesPoint{
			Timestamp: insightsNow.Add(time.Duration(i) * time.Hour),
			Value:     v,
		}
	}
	return model.HistoryBundle{model.ChannelPower: series}
}

func TestAnalyze_QuietSnapshot(t *testing.T) {
	b, e := quietSnapshots()
	r := Analyze(b, e, nil, insightsNow)

	require.Len(t, r.Observations, 1)
	assert.Contains(t, r.Observations[0], "normal operating ranges")
	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, "No action required.", r.Recommendations[0])
	assert.Equal(t, insightsNow, r.GeneratedAt)
}

func TestAnalyze_HotBuilding(t *testing.T) {
	b, e := quietSnapshots()
	b.Temperature = 28.3

	r := Analyze(b, e, nil, insightsNow)
	require.NotEmpty(t, r.Observations)
	assert.Contains(t, r.Observations[0], "28.3")
	assert.Contains(t, r.Recommendations[0], "cooling")
}

func TestAnalyze_ReusesAlertThresholds(t *testing.T) {
	b, e := quietSnapshots()
	b.AirQuality = 151
	e.Efficiency = 79.9

	r := Analyze(b, e, nil, insightsNow)
	assert.Len(t, r.Observations, 2)
	assert.Len(t, r.Recommendations, 2)
}

func TestAnalyze_MaintenanceFlag(t *testing.T) {
	b, e := quietSnapshots()
	b.HVACStatus = model.HVACMaintenance

	r := Analyze(b, e, nil, insightsNow)
	require.Len(t, r.Observations, 1)
	assert.Contains(t, r.Observations[0], "maintenance")
}

func TestPowerTrend(t *testing.T) {
	msg, ok := powerTrend(powerHistory(100, 105, 120))
	require.True(t, ok)
	assert.Contains(t, msg, "risen")

	msg, ok = powerTrend(powerHistory(120, 110, 80))
	require.True(t, ok)
	assert.Contains(t, msg, "fallen")

	msg, ok = powerTrend(powerHistory(100, 102, 101))
	require.True(t, ok)
	assert.Contains(t, msg, "stable")

	_, ok = powerTrend(powerHistory(100))
	assert.False(t, ok)

	_, ok = powerTrend(nil)
	assert.False(t, ok)
}

func TestAnalyze_HighRenewableShare(t *testing.T) {
	b, e := quietSnapshots()
	e.RenewablePercentage = 48.5

	r := Analyze(b, e, nil, insightsNow)
	require.NotEmpty(t, r.Observations)
	assert.Contains(t, r.Observations[0], "48.5")
}
