package model

import "time"

// Scenario is an operating-condition bias applied to the baseline formulas
// to simulate realistic fault and peak conditions.
type Scenario string

const (
	ScenarioNormal            Scenario = "normal"
	ScenarioHighOccupancy     Scenario = "high_occupancy"
	ScenarioEnergySpike       Scenario = "energy_spike"
	ScenarioHVACIssue         Scenario = "hvac_issue"
	ScenarioAirQualityAlert   Scenario = "air_quality_alert"
	ScenarioEfficiencyDrop    Scenario = "efficiency_drop"
	ScenarioExtremeTempHigh   Scenario = "extreme_temp_high"
	ScenarioExtremeTempLow    Scenario = "extreme_temp_low"
	ScenarioExtremeAirQuality Scenario = "extreme_air_quality"
	ScenarioExtremeHumidity   Scenario = "extreme_humidity"
)

// RegularScenarios are the everyday operational anomalies.
var RegularScenarios = []Scenario{
	ScenarioHighOccupancy,
	ScenarioEnergySpike,
	ScenarioHVACIssue,
	ScenarioAirQualityAlert,
	ScenarioEfficiencyDrop,
}

// ExtremeScenarios are the rarer, out-of-band conditions.
var ExtremeScenarios = []Scenario{
	ScenarioExtremeTempHigh,
	ScenarioExtremeTempLow,
	ScenarioExtremeAirQuality,
	ScenarioExtremeHumidity,
}

// AllScenarios lists every valid scenario, normal first.
var AllScenarios = func() []Scenario {
	all := []Scenario{ScenarioNormal}
	all = append(all, RegularScenarios...)
	all = append(all, ExtremeScenarios...)
	return all
}()

var scenarioSet = func() map[Scenario]bool {
	m := make(map[Scenario]bool, len(AllScenarios))
	for _, s := range AllScenarios {
		m[s] = true
	}
	return m
}()

// ParseScenario maps a raw string to a Scenario. Unknown values return
// ok=false; callers fall back to the machine's own rotation.
func ParseScenario(s string) (Scenario, bool) {
	sc := Scenario(s)
	return sc, scenarioSet[sc]
}

// HVACStatus is the reported state of the HVAC system.
type HVACStatus string

const (
	HVACActive      HVACStatus = "active"
	HVACIdle        HVACStatus = "idle"
	HVACMaintenance HVACStatus = "maintenance"
)

// BuildingSnapshot is a point-in-time reading of the building channels.
type BuildingSnapshot struct {
	Temperature float64    `json:"temperature"` // °C, 1 decimal
	Occupancy   int        `json:"occupancy"`   // people, >= 10
	HVACStatus  HVACStatus `json:"hvac_status"`
	AirQuality  int        `json:"air_quality"` // AQI, 0-500
	Humidity    float64    `json:"humidity"`    // %, 1 decimal
	Timestamp   time.Time  `json:"timestamp"`
}

// EnergySnapshot is a point-in-time reading of the energy channels.
type EnergySnapshot struct {
	PowerConsumption    float64   `json:"power_consumption"` // kW, >= 0
	Efficiency          float64   `json:"efficiency"`        // %, 70-100
	Cost                float64   `json:"cost"`              // USD/hr
	PeakUsage           float64   `json:"peak_usage"`        // kW
	RenewablePercentage float64   `json:"renewable_percentage"`
	CarbonFootprint     float64   `json:"carbon_footprint"` // kg CO2
	Timestamp           time.Time `json:"timestamp"`
}

// TimeSeriesPoint is a single timestamped value in a channel series.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries is a chronologically ordered sequence of points, spaced
// exactly one hour apart.
type TimeSeries []TimeSeriesPoint

// Channel names one tracked numeric metric.
type Channel string

const (
	ChannelPower       Channel = "power_consumption"
	ChannelEfficiency  Channel = "efficiency"
	ChannelCost        Channel = "cost"
	ChannelRenewable   Channel = "renewable_percentage"
	ChannelCarbon      Channel = "carbon_footprint"
	ChannelTemperature Channel = "temperature"
	ChannelOccupancy   Channel = "occupancy"
	ChannelAirQuality  Channel = "air_quality"
	ChannelHumidity    Channel = "humidity"
)

// EnergyChannels are the energy-side history channels.
var EnergyChannels = []Channel{
	ChannelPower,
	ChannelEfficiency,
	ChannelCost,
	ChannelRenewable,
	ChannelCarbon,
}

// BuildingChannels are the building-side history channels.
var BuildingChannels = []Channel{
	ChannelTemperature,
	ChannelOccupancy,
	ChannelAirQuality,
	ChannelHumidity,
}

// HistoryBundle holds one series per channel.
type HistoryBundle map[Channel]TimeSeries

// PredictionPoint is a forecasted reading for one future hour.
type PredictionPoint struct {
	Timestamp        time.Time `json:"timestamp"`
	PowerConsumption float64   `json:"power_consumption"`
	Efficiency       float64   `json:"efficiency"`
	Cost             float64   `json:"cost"`
	Temperature      float64   `json:"temperature"`
	Occupancy        float64   `json:"occupancy"`
	AirQuality       float64   `json:"air_quality"`
}

// AlertKind classifies alert severity.
type AlertKind string

const (
	AlertWarning  AlertKind = "warning"
	AlertCritical AlertKind = "critical"
	AlertInfo     AlertKind = "info"
)

// Alert is a single triggered alert rule.
type Alert struct {
	ID        string    `json:"id"`
	Kind      AlertKind `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
