//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/thebartekbanach/rstream/pkg/ingest"
)

// InitializeIngest builds the service on ctx. Cancel ctx before calling
// the returned cleanup.
func InitializeIngest(ctx context.Context, reg prometheus.Registerer) (ingest.IngestService, func()) {
	wire.Build(
		InitializeRemoteClient,
		InitializeFetcher,
		InitializeAuditLogger,
		InitializeLogger,

		InitializeIngestConfig,
		ingest.NewIngestService,
	)

	return nil, nil
}
