package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rslog "github.com/thebartekbanach/rstream/pkg/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rslog.Configure(rslog.Config{Service: "rstream-server"})
	log := rslog.WithComponent("server")
	config := InitializeServerConfig()

	// storage and audit outlive the http drain
	servicesCtx, cancelServices := context.WithCancel(context.Background())
	defer cancelServices()

	log.Info().Msg("initializing ingest service")
	ingestService, cleanup := InitializeIngest(servicesCtx, prometheus.DefaultRegisterer)

	log.Info().Msg("registering http handlers")
	mux := http.NewServeMux()
	mux.Handle(objectsPathPrefix, handleObjectUpload(servicesCtx, ingestService, config.UploadTimeout, log))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              config.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", config.ListenAddr).Msg("listening")
	serveErr := runServer(signalCtx, server, shutdownTimeout)

	log.Info().Msg("stopping storage and audit")
	cancelServices()
	cleanup()

	if serveErr != nil {
		log.Fatal().Err(serveErr).Msg("http server failed")
	}

	log.Info().Msg("stopped")
}
