package main

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/thebartekbanach/rstream/pkg/audit"
	dbconnections "github.com/thebartekbanach/rstream/pkg/connections"
	"github.com/thebartekbanach/rstream/pkg/filefetcher"
	"github.com/thebartekbanach/rstream/pkg/ingest"
	rslog "github.com/thebartekbanach/rstream/pkg/log"
	"github.com/thebartekbanach/rstream/pkg/remote"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

type ServerConfig struct {
	ListenAddr    string
	UploadTimeout time.Duration
}

func InitializeServerConfig() ServerConfig {
	config := ServerConfig{
		ListenAddr:    os.Getenv("RSTREAM_LISTEN_ADDR"),
		UploadTimeout: parseDurationEnv("RSTREAM_UPLOAD_TIMEOUT", 10*time.Minute),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	return config
}

func InitializeLogger() zerolog.Logger {
	return rslog.WithComponent("ingest")
}

func InitializeMongoConnectionConfig() dbconnections.AuditDBConfig {
	config := dbconnections.AuditDBConfig{
		ConnectionString: os.Getenv("RSTREAM_MONGO_CONNECTION_STRING"),
		Database:         os.Getenv("RSTREAM_MONGO_DATABASE"),
	}

	if _, err := url.Parse(config.ConnectionString); err != nil {
		configLog().Panic().Err(err).Msg("error ocurred when parsing RSTREAM_MONGO_CONNECTION_STRING")
	}

	return config
}

func InitializeMongoConnection(ctx context.Context, mongoConfig dbconnections.AuditDBConfig) dbconnections.AuditDBConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := dbconnections.NewAuditDBProductionConnection(ctx, mongoConfig)
	if err != nil {
		configLog().Panic().Err(err).Msg("error ocurred when initializing MongoDB connection")
	}

	return conn
}

func InitializeMinioConnectionConfig() dbconnections.MinioBlockStorageProductionConnectionConfig {
	config := dbconnections.MinioBlockStorageProductionConnectionConfig{
		Endpoint:  os.Getenv("RSTREAM_MINIO_ENDPOINT"),
		AccessKey: os.Getenv("RSTREAM_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("RSTREAM_MINIO_SECRET_KEY"),
		Location:  os.Getenv("RSTREAM_MINIO_LOCATION"),
		Bucket:    os.Getenv("RSTREAM_MINIO_BUCKET"),
		UseSSL:    os.Getenv("RSTREAM_MINIO_SSL") == "true",
	}

	for name, value := range map[string]string{
		"RSTREAM_MINIO_ENDPOINT":   config.Endpoint,
		"RSTREAM_MINIO_ACCESS_KEY": config.AccessKey,
		"RSTREAM_MINIO_SECRET_KEY": config.SecretKey,
		"RSTREAM_MINIO_BUCKET":     config.Bucket,
	} {
		if value == "" {
			configLog().Panic().Msgf("%s is required environment variable", name)
		}
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	if rawPartSize := os.Getenv("RSTREAM_MINIO_PART_SIZE"); rawPartSize != "" {
		partSize, err := strconv.ParseUint(rawPartSize, 10, 64)
		if err != nil {
			configLog().Panic().Err(err).Msg("error ocurred when parsing RSTREAM_MINIO_PART_SIZE")
		}
		config.PartSize = partSize
	}

	return config
}

func InitializeMinioConnection(ctx context.Context, minioConfig dbconnections.MinioBlockStorageProductionConnectionConfig) dbconnections.MinioBlockStorageConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := dbconnections.NewMinioBlockStorageProductionConnection(ctx, minioConfig)
	if err != nil {
		configLog().Panic().Err(err).Msg("error ocurred when initializing Minio connection")
	}

	return &conn
}

// InitializeRemoteClient picks storage backend with RSTREAM_BACKEND,
// "minio" by default, and starts its monitors.
func InitializeRemoteClient(ctx context.Context) remote.Client {
	var client remote.Client

	switch backend := os.Getenv("RSTREAM_BACKEND"); backend {
	case "memory":
		client = remote.NewMemoryClient(rslog.WithComponent("memory-client"))

	case "", "minio":
		conn := InitializeMinioConnection(ctx, InitializeMinioConnectionConfig())
		client = remote.NewMinioClient(conn, remote.MinioClientConfig{
			ContentType:         os.Getenv("RSTREAM_CONTENT_TYPE"),
			HealthCheckInterval: parseDurationEnv("RSTREAM_HEALTH_CHECK_INTERVAL", 30*time.Second),
		}, rslog.WithComponent("minio-client"))

	default:
		configLog().Panic().Str("backend", backend).Msg("RSTREAM_BACKEND must be either memory or minio")
	}

	client.StartMonitors(ctx)
	return client
}

// InitializeAuditLogger always exports metrics. File and mongo records are
// enabled by RSTREAM_AUDIT_LOG_FILE and RSTREAM_MONGO_CONNECTION_STRING.
// The cleanup waits for queued mongo records, so it must run after ctx is
// cancelled.
func InitializeAuditLogger(ctx context.Context, reg prometheus.Registerer) (stream.AuditLogger, func()) {
	loggers := audit.NewMultiLogger(audit.NewMetricsLogger(reg))
	var cleanups []func()

	if os.Getenv("RSTREAM_MONGO_CONNECTION_STRING") != "" {
		conn := InitializeMongoConnection(ctx, InitializeMongoConnectionConfig())
		repositoryLogger := audit.NewRepositoryLogger(conn, rslog.WithComponent("audit"))
		repositoryLogger.StartMonitors(ctx)

		loggers = append(loggers, repositoryLogger)
		cleanups = append(cleanups, func() {
			<-repositoryLogger.Stopped()
		})
	}

	if path := os.Getenv("RSTREAM_AUDIT_LOG_FILE"); path != "" {
		fileLogger, err := audit.OpenFileLogger(path)
		if err != nil {
			configLog().Panic().Err(err).Str("path", path).Msg("cannot open audit log file")
		}

		loggers = append(loggers, fileLogger)
		cleanups = append(cleanups, func() {
			if err := fileLogger.Close(); err != nil {
				configLog().Error().Err(err).Str("path", path).Msg("cannot close audit log file")
			}
		})
	}

	cleanup := func() {
		for _, c := range cleanups {
			c()
		}
	}

	return loggers, cleanup
}

func InitializeFetcher() filefetcher.Fetcher {
	return filefetcher.NewHttpFetcher(splitListEnv("RSTREAM_ALLOWED_DOMAINS"))
}

func InitializeIngestConfig() ingest.IngestServiceConfig {
	return ingest.IngestServiceConfig{
		AllowedOrigins: splitListEnv("RSTREAM_ALLOWED_ORIGINS"),
	}
}

// splitListEnv returns nil for unset variable, which allows everything.
func splitListEnv(name string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}

	var values []string
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	return values
}

func parseDurationEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	duration, err := time.ParseDuration(raw)
	if err != nil {
		configLog().Panic().Err(err).Msgf("error ocurred when parsing %s", name)
	}

	return duration
}

func configLog() *zerolog.Logger {
	log := rslog.WithComponent("config")
	return &log
}
