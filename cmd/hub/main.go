package main

import (
	"context"
	"log"
	"os"

	"glances-hub/internal/config"
	"glances-hub/internal/hub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := hub.BuildLogger(cfg)
	h, err := hub.New(cfg, logger)
	if err != nil {
		logger.Error("hub initialization failed", "error", err)
		os.Exit(1)
	}

	if err := h.Run(context.Background()); err != nil {
		logger.Error("hub runtime failed", "error", err)
		os.Exit(1)
	}
}
