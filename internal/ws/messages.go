package ws

import (
	"encoding/json"

	"building_telemetry/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeScenarioForce = "scenario:force"

	// Server -> Client
	TypeTelemetrySnapshot = "telemetry:snapshot"
	TypeAlertFired        = "alert:fired"
)

// ScenarioForcePayload requests one immediate snapshot under a forced
// scenario. The override applies to that snapshot only.
type ScenarioForcePayload struct {
	Scenario string `json:"scenario"`
}

// SnapshotPayload carries a live snapshot pair.
type SnapshotPayload struct {
	Scenario model.Scenario         `json:"scenario,omitempty"`
	Building model.BuildingSnapshot `json:"building"`
	Energy   model.EnergySnapshot   `json:"energy"`
}

// AlertPayload carries one fired alert.
type AlertPayload struct {
	Alert model.Alert `json:"alert"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
