package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"building_telemetry/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes client messages.
type Handler struct {
	hub         *Hub
	broadcaster *Broadcaster
	log         *logrus.Logger
}

func NewHandler(hub *Hub, broadcaster *Broadcaster, log *logrus.Logger) *Handler {
	return &Handler{hub: hub, broadcaster: broadcaster, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("websocket upgrade")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Greet the new client with an immediate snapshot.
	if msg, err := h.broadcaster.SnapshotMessage(""); err == nil {
		client.Send(msg)
	}

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("websocket read")
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.WithError(err).Warn("invalid message")
		return
	}

	switch env.Type {
	case TypeScenarioForce:
		var p ScenarioForcePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.WithError(err).Warn("invalid scenario:force payload")
			return
		}

		// Unknown scenario names fall back to the machine's own rotation.
		forced, ok := model.ParseScenario(p.Scenario)
		if !ok {
			forced = ""
		}
		reply, err := h.broadcaster.SnapshotMessage(forced)
		if err != nil {
			h.log.WithError(err).Error("marshaling forced snapshot")
			return
		}
		c.Send(reply)

	default:
		h.log.WithField("type", env.Type).Warn("unknown message type")
	}
}
