package simulator

import (
	"time"

	"building_telemetry/internal/model"
)

// MaxHistoryHours bounds how far back a history request may reach.
const MaxHistoryHours = 168

// History builds hourly series for all nine channels, stepping backward
// from now so that timestamps increase strictly by one hour and the final
// point lands on now. It returns hours+1 points per channel.
//
// Every sample is generated under the normal scenario regardless of the
// live machine state; only the current snapshot reflects scenario effects.
func (g *Generator) History(now time.Time, hours int) model.HistoryBundle {
	if hours < 0 {
		hours = 0
	}
	if hours > MaxHistoryHours {
		hours = MaxHistoryHours
	}

	bundle := make(model.HistoryBundle, len(model.EnergyChannels)+len(model.BuildingChannels))
	for i := hours; i >= 0; i-- {
		t := now.Add(-time.Duration(i) * time.Hour)
		b, e := g.Snapshot(t, model.ScenarioNormal)

		bundle[model.ChannelPower] = append(bundle[model.ChannelPower], model.TimeSeriesPoint{Timestamp: t, Value: e.PowerConsumption})
		bundle[model.ChannelEfficiency] = append(bundle[model.ChannelEfficiency], model.TimeSeriesPoint{Timestamp: t, Value: e.Efficiency})
		bundle[model.ChannelCost] = append(bundle[model.ChannelCost], model.TimeSeriesPoint{Timestamp: t, Value: e.Cost})
		bundle[model.ChannelRenewable] = append(bundle[model.ChannelRenewable], model.TimeSeriesPoint{Timestamp: t, Value: e.RenewablePercentage})
		bundle[model.ChannelCarbon] = append(bundle[model.ChannelCarbon], model.TimeSeriesPoint{Timestamp: t, Value: e.CarbonFootprint})

		bundle[model.ChannelTemperature] = append(bundle[model.ChannelTemperature], model.TimeSeriesPoint{Timestamp: t, Value: b.Temperature})
		bundle[model.ChannelOccupancy] = append(bundle[model.ChannelOccupancy], model.TimeSeriesPoint{Timestamp: t, Value: float64(b.Occupancy)})
		bundle[model.ChannelAirQuality] = append(bundle[model.ChannelAirQuality], model.TimeSeriesPoint{Timestamp: t, Value: float64(b.AirQuality)})
		bundle[model.ChannelHumidity] = append(bundle[model.ChannelHumidity], model.TimeSeriesPoint{Timestamp: t, Value: b.Humidity})
	}
	return bundle
}
