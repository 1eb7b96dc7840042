package main

import (
	"github.com/sirupsen/logrus"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/logger"
	"kennelhub-session-svc/src/internal/server"
)

var log = logrus.StandardLogger()

func main() {
	cfg := config.Load()
	logger.Init(cfg)

	log.Infof("Application %s is starting....", cfg.App.Name)

	if err := cfg.Validate(); err != nil {
		// Keep serving; the session endpoint reports the missing settings.
		log.WithError(err).Warn("Configuration incomplete, session acquisition will fail")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.WithError(err).Fatalf("Error initializing server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.WithError(err).Fatalf("Error starting server: %v", err)
	}
}
