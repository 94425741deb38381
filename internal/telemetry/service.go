// Package telemetry wires the scenario machine, generator and analytics
// into the operations the HTTP and WebSocket surfaces expose.
package telemetry

import (
	"sync"
	"time"

	"building_telemetry/internal/analytics"
	"building_telemetry/internal/forecast"
	"building_telemetry/internal/insights"
	"building_telemetry/internal/model"
	"building_telemetry/internal/scenario"
	"building_telemetry/internal/simulator"
)

// Service serializes access to the shared generator so concurrent HTTP and
// WebSocket callers can share one randomness source. The scenario machine
// carries its own lock.
type Service struct {
	mu      sync.Mutex
	machine *scenario.Machine
	gen     *simulator.Generator
	now     func() time.Time
}

// NewService creates a service. now may be nil, in which case time.Now is
// used.
func NewService(machine *scenario.Machine, gen *simulator.Generator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{machine: machine, gen: gen, now: now}
}

// CurrentSnapshot generates a live snapshot pair. A non-empty forced
// scenario bypasses the machine's rotation for this call only.
func (s *Service) CurrentSnapshot(forced model.Scenario) (model.BuildingSnapshot, model.EnergySnapshot) {
	sc := s.machine.Resolve(forced)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Snapshot(s.now(), sc)
}

// History builds the hourly series bundle for the past hours hours.
func (s *Service) History(hours int) model.HistoryBundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.History(s.now(), hours)
}

// Forecast fits per-channel trends over fresh history and extrapolates
// hoursAhead hours. historyHours controls the regression window.
func (s *Service) Forecast(historyHours, hoursAhead int) []model.PredictionPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	history := s.gen.History(now, historyHours)
	return forecast.PredictSeries(history, now, hoursAhead)
}

// Alerts generates the merged alert view: threshold alerts over a live
// snapshot plus anomaly detector output tagged as warnings.
func (s *Service) Alerts(historyHours, forecastHours int) []model.Alert {
	sc := s.machine.Current()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, e := s.gen.Snapshot(now, sc)
	history := s.gen.History(now, historyHours)
	predictions := forecast.PredictSeries(history, now, forecastHours)

	alerts := analytics.GenerateAlerts(b, e, predictions, now)
	anomalies := analytics.DetectAnomalies(b, e, history)
	return analytics.MergeAnomalies(alerts, anomalies, now)
}

// Insights produces the rule-based narrative report for a live snapshot.
func (s *Service) Insights(historyHours int) insights.Report {
	sc := s.machine.Current()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, e := s.gen.Snapshot(now, sc)
	history := s.gen.History(now, historyHours)
	return insights.Analyze(b, e, history, now)
}
