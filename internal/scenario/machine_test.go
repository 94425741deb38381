package scenario

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_telemetry/internal/model"
)

// fakeClock advances a fixed step on every call, so elapsed time is fully
// under test control.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestMachine(seed uint64, step time.Duration) *Machine {
	clock := &fakeClock{
		t:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		step: step,
	}
	return New(rand.New(rand.NewPCG(seed, 0)), clock.now)
}

func TestMachine_StartsNormal(t *testing.T) {
	m := newTestMachine(1, 0)
	assert.Equal(t, model.ScenarioNormal, m.Active())
}

func TestMachine_ResolveForcedDoesNotMutateState(t *testing.T) {
	m := newTestMachine(1, 0)

	got := m.Resolve(model.ScenarioEnergySpike)
	assert.Equal(t, model.ScenarioEnergySpike, got)

	// The persisted state is untouched by the override.
	assert.Equal(t, model.ScenarioNormal, m.Active())
}

func TestMachine_HoldsWithinMinDuration(t *testing.T) {
	// Zero elapsed time: only the 20% early reroll can transition, so over
	// many fresh machines roughly 80% must still be in normal after one
	// query. With per-seed machines the draw sequences differ.
	held := 0
	const trials = 2000
	for seed := uint64(0); seed < trials; seed++ {
		m := newTestMachine(seed, 0)
		if m.Current() == model.ScenarioNormal && m.Active() == model.ScenarioNormal {
			held++
		}
	}
	// Holding requires no early reroll (0.8) or rerolling back into normal
	// (0.2*0.35), ≈ 0.87 of trials.
	assert.InDelta(t, 0.87, float64(held)/trials, 0.03)
}

func TestMachine_TransitionsAfterMaxDuration(t *testing.T) {
	// A 2-minute step always exceeds the [30s, 90s) duration window, so
	// every query evaluates a transition.
	m := newTestMachine(7, 2*time.Minute)

	changed := false
	for i := 0; i < 100; i++ {
		if m.Current() != model.ScenarioNormal {
			changed = true
			break
		}
	}
	assert.True(t, changed, "machine never left normal across 100 forced evaluations")
}

func TestMachine_RotationDistribution(t *testing.T) {
	m := newTestMachine(42, 2*time.Minute)

	const trials = 50000
	counts := make(map[model.Scenario]int)
	for i := 0; i < trials; i++ {
		counts[m.Current()]++
	}

	require.NotEmpty(t, counts)

	// Long-run fractions: normal 0.35, each regular anomaly 0.20/5 = 0.04,
	// each extreme 0.45/4 = 0.1125.
	assert.InDelta(t, 0.35, float64(counts[model.ScenarioNormal])/trials, 0.02)
	for _, sc := range model.RegularScenarios {
		assert.InDelta(t, 0.04, float64(counts[sc])/trials, 0.01, "regular scenario %s", sc)
	}
	for _, sc := range model.ExtremeScenarios {
		assert.InDelta(t, 0.1125, float64(counts[sc])/trials, 0.015, "extreme scenario %s", sc)
	}
}

func TestMachine_ConcurrentAccess(t *testing.T) {
	m := New(rand.New(rand.NewPCG(3, 0)), nil)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 500; j++ {
				sc := m.Current()
				_, ok := model.ParseScenario(string(sc))
				assert.True(t, ok, "observed invalid scenario %q", sc)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
