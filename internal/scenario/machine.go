package scenario

import (
	"math/rand/v2"
	"sync"
	"time"

	"building_telemetry/internal/model"
)

const (
	minDuration = 30 * time.Second
	maxDuration = 90 * time.Second

	// earlyRerollChance lets a scenario end before its timer expires.
	earlyRerollChance = 0.20

	normalWeight  = 0.35
	regularWeight = 0.20
)

// Machine owns the current operating scenario and rotates it over time.
// All state lives behind a single mutex so a transition decision and its
// state update are atomic.
type Machine struct {
	mu        sync.Mutex
	rng       *rand.Rand
	now       func() time.Time
	active    model.Scenario
	startedAt time.Time
}

// New creates a machine starting in the normal scenario. now may be nil,
// in which case time.Now is used.
func New(rng *rand.Rand, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{
		rng:       rng,
		now:       now,
		active:    model.ScenarioNormal,
		startedAt: now(),
	}
}

// Current evaluates a transition and returns the active scenario. A
// transition fires when the scenario has outlived a randomly drawn
// duration in [30s, 90s), or on a 20% early reroll.
func (m *Machine) Current() model.Scenario {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	elapsed := now.Sub(m.startedAt)
	duration := minDuration + time.Duration(m.rng.Float64()*float64(maxDuration-minDuration))
	if elapsed > duration || m.rng.Float64() < earlyRerollChance {
		m.active = m.roll()
		m.startedAt = now
	}
	return m.active
}

// roll draws the next scenario: 35% normal, 20% spread over the regular
// anomalies, the rest over the extreme scenarios. Must be called with mu
// held.
func (m *Machine) roll() model.Scenario {
	r := m.rng.Float64()
	switch {
	case r < normalWeight:
		return model.ScenarioNormal
	case r < normalWeight+regularWeight:
		return model.RegularScenarios[m.rng.IntN(len(model.RegularScenarios))]
	default:
		return model.ExtremeScenarios[m.rng.IntN(len(model.ExtremeScenarios))]
	}
}

// Resolve returns forced when non-empty, bypassing the rotation for this
// call without touching the persisted state or timer. An empty value
// delegates to Current.
func (m *Machine) Resolve(forced model.Scenario) model.Scenario {
	if forced != "" {
		return forced
	}
	return m.Current()
}

// Active returns the stored scenario without evaluating a transition.
func (m *Machine) Active() model.Scenario {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
