package ws

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"building_telemetry/internal/model"
	"building_telemetry/internal/telemetry"
)

// Broadcaster periodically generates a live snapshot plus alerts and pushes
// them to all connected clients.
type Broadcaster struct {
	hub      *Hub
	svc      *telemetry.Service
	log      *logrus.Logger
	interval time.Duration

	historyHours  int
	forecastHours int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

func NewBroadcaster(hub *Hub, svc *telemetry.Service, log *logrus.Logger, interval time.Duration, historyHours, forecastHours int) *Broadcaster {
	return &Broadcaster{
		hub:           hub,
		svc:           svc,
		log:           log,
		interval:      interval,
		historyHours:  historyHours,
		forecastHours: forecastHours,
	}
}

// Start launches the broadcast loop. Calling Start on a running
// broadcaster is a no-op.
func (b *Broadcaster) Start() {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.stopCh = make(chan struct{})
	stopCh := b.stopCh
	b.mu.Unlock()

	go b.loop(stopCh)
}

// Stop halts the broadcast loop.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	b.running = false
	close(b.stopCh)
}

func (b *Broadcaster) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if b.hub.ClientCount() == 0 {
				continue
			}
			b.BroadcastOnce()
		}
	}
}

// BroadcastOnce generates and broadcasts one snapshot and any fired alerts.
func (b *Broadcaster) BroadcastOnce() {
	building, energy := b.svc.CurrentSnapshot("")

	msg, err := NewEnvelope(TypeTelemetrySnapshot, SnapshotPayload{
		Building: building,
		Energy:   energy,
	})
	if err != nil {
		b.log.WithError(err).Error("marshaling snapshot")
		return
	}
	b.hub.Broadcast(msg)

	for _, alert := range b.svc.Alerts(b.historyHours, b.forecastHours) {
		msg, err := NewEnvelope(TypeAlertFired, AlertPayload{Alert: alert})
		if err != nil {
			b.log.WithError(err).Error("marshaling alert")
			continue
		}
		b.hub.Broadcast(msg)
	}
}

// SnapshotMessage renders a single snapshot envelope, optionally under a
// forced scenario. Used for per-client replies.
func (b *Broadcaster) SnapshotMessage(forced model.Scenario) ([]byte, error) {
	building, energy := b.svc.CurrentSnapshot(forced)
	return NewEnvelope(TypeTelemetrySnapshot, SnapshotPayload{
		Scenario: forced,
		Building: building,
		Energy:   energy,
	})
}
