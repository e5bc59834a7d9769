package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/acuity-lab/acuity/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	sweeper, err := NewSweeper(cfg)
	if err != nil {
		log.Fatal("sweeper init failed:", err)
	}

	if err := sweeper.Start(); err != nil {
		log.Fatal("sweeper start failed:", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := sweeper.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}
}
