package main

import (
	"context"

	"catalog/gateway/internal/config"
	"catalog/gateway/internal/container"

	log "github.com/sirupsen/logrus"
)

// The gateway is a library consumed by a presentation layer; this entry point
// only wires it up, warms the reference data, and reports readiness.
func main() {
	log.Info("Starting catalog gateway...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	if err := app.Warm(context.Background()); err != nil {
		log.Fatalf("Warm-up failed: %v", err)
	}

	log.Info("Catalog gateway ready")
}
