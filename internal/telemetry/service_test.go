package telemetry

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_telemetry/internal/model"
	"building_telemetry/internal/scenario"
	"building_telemetry/internal/simulator"
)

var serviceNow = time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

func newTestService(seed uint64) *Service {
	clock := func() time.Time { return serviceNow }
	machine := scenario.New(rand.New(rand.NewPCG(seed, 0)), clock)
	gen := simulator.New(rand.New(rand.NewPCG(seed, 1)))
	return NewService(machine, gen, clock)
}

func TestService_CurrentSnapshot(t *testing.T) {
	svc := newTestService(1)

	b, e := svc.CurrentSnapshot("")
	assert.Equal(t, serviceNow, b.Timestamp)
	assert.Equal(t, serviceNow, e.Timestamp)
	assert.GreaterOrEqual(t, b.Occupancy, 10)
}

func TestService_CurrentSnapshotForced(t *testing.T) {
	svc := newTestService(2)

	for i := 0; i < 100; i++ {
		b, _ := svc.CurrentSnapshot(model.ScenarioExtremeTempHigh)
		assert.GreaterOrEqual(t, b.Temperature, 28.0)
		assert.LessOrEqual(t, b.Temperature, 32.0)
	}
}

func TestService_History(t *testing.T) {
	svc := newTestService(3)

	bundle := svc.History(24)
	require.Len(t, bundle, 9)
	assert.Len(t, bundle[model.ChannelPower], 25)
}

func TestService_Forecast(t *testing.T) {
	svc := newTestService(4)

	points := svc.Forecast(24, 6)
	require.Len(t, points, 6)
	for i, p := range points {
		assert.Equal(t, serviceNow.Add(time.Duration(i+1)*time.Hour), p.Timestamp)
	}
}

func TestService_AlertsWellFormed(t *testing.T) {
	svc := newTestService(5)

	for _, a := range svc.Alerts(24, 6) {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Message)
		assert.Equal(t, serviceNow, a.Timestamp)
	}
}

func TestService_Insights(t *testing.T) {
	svc := newTestService(6)

	r := svc.Insights(24)
	assert.NotEmpty(t, r.Observations)
	assert.Equal(t, serviceNow, r.GeneratedAt)
}

func TestService_ConcurrentCallers(t *testing.T) {
	svc := newTestService(7)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b, e := svc.CurrentSnapshot("")
				assert.GreaterOrEqual(t, b.Occupancy, 10)
				assert.GreaterOrEqual(t, e.Efficiency, 70.0)
				svc.History(4)
			}
		}()
	}
	wg.Wait()
}
