package main

import (
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"

	"building_telemetry/internal/api"
	"building_telemetry/internal/config"
	"building_telemetry/internal/scenario"
	"building_telemetry/internal/simulator"
	"building_telemetry/internal/telemetry"
	"building_telemetry/internal/ws"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	seed := cfg.Telemetry.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Info("seeding randomness sources")

	// The machine and generator each get their own stream so scenario
	// rotation draws never interleave with metric draws.
	machine := scenario.New(rand.New(rand.NewPCG(seed, 0)), nil)
	gen := simulator.New(rand.New(rand.NewPCG(seed, 1)))
	svc := telemetry.NewService(machine, gen, nil)

	cache := api.NewCache(time.Duration(cfg.Cache.TTLSeconds)*time.Second, nil)
	limiter := api.NewLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, nil)
	handler := api.NewHandler(svc, cache, log, cfg.Telemetry.DefaultHistoryHours, cfg.Telemetry.DefaultForecastHours)

	hub := ws.NewHub(log)
	broadcaster := ws.NewBroadcaster(hub, svc, log,
		time.Duration(cfg.Telemetry.BroadcastIntervalSec)*time.Second,
		cfg.Telemetry.DefaultHistoryHours, cfg.Telemetry.DefaultForecastHours)
	broadcaster.Start()
	defer broadcaster.Stop()

	router := api.NewRouter(handler, limiter)
	router.Handle("/ws", ws.NewHandler(hub, broadcaster, log))

	chain := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, router))

	log.WithField("addr", cfg.Server.Addr).Info("starting server")
	if err := http.ListenAndServe(cfg.Server.Addr, chain); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
