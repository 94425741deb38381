package simulator

import (
	"math"
	"math/rand/v2"
	"time"

	"building_telemetry/internal/model"
)

// Generator produces synthetic building and energy snapshots. It is a pure
// function of the clock, the scenario and the injected randomness source;
// callers that share one Generator across goroutines must serialize access
// because *rand.Rand is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// TimeOfDayFactor maps an hour [0,23] onto a daily activity curve in
// roughly [0.4, 1.0], peaking mid-afternoon.
func TimeOfDayFactor(hour int) float64 {
	return math.Sin(float64(hour-6)*math.Pi/12)*0.3 + 0.7
}

// Snapshot generates both subsystem snapshots at t under scenario sc.
func (g *Generator) Snapshot(t time.Time, sc model.Scenario) (model.BuildingSnapshot, model.EnergySnapshot) {
	return g.Building(t, sc), g.Energy(t, sc)
}

// noise returns a uniform value in [-amp, amp).
func (g *Generator) noise(amp float64) float64 {
	return (g.rng.Float64()*2 - 1) * amp
}

// uniform returns a uniform value in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// sign returns -1 or +1 with equal probability.
func (g *Generator) sign() float64 {
	if g.rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
