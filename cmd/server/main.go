package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemini-research-go/internal/config"
	"gemini-research-go/internal/logging"
	tracing "gemini-research-go/internal/monitoring/tracing"
	srv "gemini-research-go/internal/server"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	listen := flag.String("listen", "", "Listen address, overrides config")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if *debug {
		cfg.Logging.Debug = true
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}
	logHub := logging.InstallStreamHook()

	traceShutdown, err := tracing.Init(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}
	defer func() {
		if err := traceShutdown(context.Background()); err != nil {
			log.WithError(err).Warn("failed to shutdown tracing")
		}
	}()

	// Hot-reload applies logging settings only; listener and upstream
	// changes need a restart.
	stopWatch, err := config.Watch(*configPath, func(next *config.Config) {
		if *debug {
			next.Logging.Debug = true
		}
		if err := logging.Setup(next); err != nil {
			log.WithError(err).Warn("failed to re-apply logging settings")
		}
	})
	if err != nil {
		log.WithError(err).Warn("config watcher unavailable")
	} else {
		defer stopWatch()
	}

	engine := srv.BuildEngine(cfg, logHub)
	httpSrv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: engine,
	}

	go func() {
		log.WithField("listen", cfg.Server.Listen).Info("Starting Gemini Research Assistant")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}
	log.Info("Server stopped")
}
