package forecast

import (
	"math"
	"time"

	"building_telemetry/internal/model"
)

// CostRate is the flat tariff applied to forecasted power. The generator
// prices live consumption with a time-of-day rate; the forecast keeps a
// single flat rate.
const CostRate = 0.12

// PredictValue fits an ordinary-least-squares line over the series indices
// and extrapolates hoursAhead past the final point. An empty series
// predicts 0 and a single point predicts itself; results are clamped to be
// non-negative and rounded to 2 decimals.
func PredictValue(series model.TimeSeries, hoursAhead int) float64 {
	switch len(series) {
	case 0:
		return 0
	case 1:
		return series[0].Value
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	predicted := slope*(n-1+float64(hoursAhead)) + intercept
	if predicted < 0 {
		predicted = 0
	}
	return math.Round(predicted*100) / 100
}

// PredictSeries produces one PredictionPoint per hour from 1 to hoursAhead,
// timestamped now+1h through now+hoursAhead·1h. Each channel is fitted
// independently. A non-positive hoursAhead yields an empty list.
func PredictSeries(history model.HistoryBundle, now time.Time, hoursAhead int) []model.PredictionPoint {
	if hoursAhead < 0 {
		hoursAhead = 0
	}

	points := make([]model.PredictionPoint, 0, hoursAhead)
	for i := 1; i <= hoursAhead; i++ {
		power := PredictValue(history[model.ChannelPower], i)
		points = append(points, model.PredictionPoint{
			Timestamp:        now.Add(time.Duration(i) * time.Hour),
			PowerConsumption: power,
			Efficiency:       PredictValue(history[model.ChannelEfficiency], i),
			Cost:             math.Round(power*CostRate*100) / 100,
			Temperature:      PredictValue(history[model.ChannelTemperature], i),
			Occupancy:        PredictValue(history[model.ChannelOccupancy], i),
			AirQuality:       PredictValue(history[model.ChannelAirQuality], i),
		})
	}
	return points
}
