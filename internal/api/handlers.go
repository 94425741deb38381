package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"building_telemetry/internal/model"
	"building_telemetry/internal/simulator"
	"building_telemetry/internal/telemetry"
)

// MaxForecastHours bounds how far ahead a forecast request may reach.
const MaxForecastHours = 48

// Handler serves the telemetry API.
type Handler struct {
	svc   *telemetry.Service
	cache *Cache
	log   *logrus.Logger

	defaultHistoryHours  int
	defaultForecastHours int
}

func NewHandler(svc *telemetry.Service, cache *Cache, log *logrus.Logger, defaultHistoryHours, defaultForecastHours int) *Handler {
	return &Handler{
		svc:                  svc,
		cache:                cache,
		log:                  log,
		defaultHistoryHours:  defaultHistoryHours,
		defaultForecastHours: defaultForecastHours,
	}
}

// snapshotResponse bundles both subsystem snapshots.
type snapshotResponse struct {
	Building model.BuildingSnapshot `json:"building"`
	Energy   model.EnergySnapshot   `json:"energy"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// current serves a live snapshot pair. scenario=<name> forces a scenario
// for this call; unknown names are ignored. fresh=1 bypasses the cache.
func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	var forced model.Scenario
	if raw := r.URL.Query().Get("scenario"); raw != "" {
		if sc, ok := model.ParseScenario(raw); ok {
			forced = sc
		} else {
			h.log.WithField("scenario", raw).Debug("ignoring unknown forced scenario")
		}
	}

	key := r.URL.Path + "?scenario=" + string(forced)
	if r.URL.Query().Get("fresh") != "1" {
		if body, ok := h.cache.Get(key); ok {
			writeCached(w, body)
			return
		}
	}

	b, e := h.svc.CurrentSnapshot(forced)
	h.writeAndCache(w, key, snapshotResponse{Building: b, Energy: e})
}

// history serves the hourly series bundle. hours defaults to the configured
// window. Clamping happens before the cache key is built so out-of-range
// requests share one entry with the clamped window.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	hours := h.queryInt(r, "hours", h.defaultHistoryHours)
	if hours < 0 {
		hours = 0
	}
	if hours > simulator.MaxHistoryHours {
		hours = simulator.MaxHistoryHours
	}

	key := r.URL.Path + "?hours=" + strconv.Itoa(hours)
	if r.URL.Query().Get("fresh") != "1" {
		if body, ok := h.cache.Get(key); ok {
			writeCached(w, body)
			return
		}
	}

	h.writeAndCache(w, key, h.svc.History(hours))
}

// forecast serves per-channel trend extrapolations for the next N hours.
func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	hours := h.queryInt(r, "hours", h.defaultForecastHours)
	if hours > MaxForecastHours {
		hours = MaxForecastHours
	}
	h.writeJSON(w, h.svc.Forecast(h.defaultHistoryHours, hours))
}

// alerts serves the merged threshold + anomaly alert view.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.svc.Alerts(h.defaultHistoryHours, h.defaultForecastHours)
	if alerts == nil {
		alerts = []model.Alert{}
	}
	h.writeJSON(w, alerts)
}

// insights serves the rule-based narrative report.
func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Insights(h.defaultHistoryHours))
}

// queryInt parses an integer query parameter, falling back to def on
// missing or malformed values.
func (h *Handler) queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		h.log.WithFields(logrus.Fields{"param": name, "value": raw}).Debug("ignoring malformed query parameter")
		return def
	}
	return v
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.WithError(err).Error("encoding response")
	}
}

// writeAndCache renders payload to JSON, stores it under key and writes it.
func (h *Handler) writeAndCache(w http.ResponseWriter, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.WithError(err).Error("encoding response")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	h.cache.Set(key, body)
	writeCached(w, body)
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	w.Write([]byte("\n"))
}
