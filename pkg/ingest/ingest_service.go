package ingest

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ryanuber/go-glob"
	"github.com/thebartekbanach/rstream/pkg/filefetcher"
	"github.com/thebartekbanach/rstream/pkg/remote"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

type IngestServiceConfig struct {
	AllowedOrigins []string
}

type ingestService struct {
	config   IngestServiceConfig
	client   remote.Client
	fetcher  filefetcher.Fetcher
	auditLog stream.AuditLogger
	log      zerolog.Logger
}

var _ IngestService = (*ingestService)(nil)

func NewIngestService(config IngestServiceConfig, client remote.Client, fetcher filefetcher.Fetcher, auditLog stream.AuditLogger, log zerolog.Logger) IngestService {
	return &ingestService{
		config:   config,
		client:   client,
		fetcher:  fetcher,
		auditLog: auditLog,
		log:      log,
	}
}

func (s *ingestService) Upload(ctx context.Context, path string, r io.Reader) (UploadResult, error) {
	return s.upload(ctx, path, func(out io.Writer) error {
		_, err := io.Copy(out, contextReader{ctx, r})
		return err
	})
}

func (s *ingestService) UploadFromURL(ctx context.Context, path, sourceURL string) (UploadResult, error) {
	return s.upload(ctx, path, func(out io.Writer) error {
		_, err := s.fetcher.Fetch(ctx, sourceURL, out)
		return err
	})
}

func (s *ingestService) IsAllowedOrigin(origin string) bool {
	if len(s.config.AllowedOrigins) == 0 {
		return true
	}

	for _, allowedOrigin := range s.config.AllowedOrigins {
		if glob.Glob(allowedOrigin, origin) {
			return true
		}
	}

	return false
}

// upload closes the stream only after a complete copy. A failed copy aborts
// the stream, so a truncated object never replaces the stored one.
func (s *ingestService) upload(ctx context.Context, path string, copyData func(out io.Writer) error) (UploadResult, error) {
	streamID, err := s.client.Open(ctx, path)
	if err != nil {
		return UploadResult{}, errors.Wrapf(err, "cannot open stream for %s", path)
	}

	logStreamID := stream.LogStreamID(uuid.NewString())
	log := s.log.With().Str("path", path).Str("logStreamId", string(logStreamID)).Logger()
	out := stream.NewManagedOutputStream(s.client, streamID, log, s.auditLog, logStreamID)

	if copyErr := copyData(out); copyErr != nil {
		abortErr := s.client.AbortStream(streamID, copyErr)
		log.Warn().Err(copyErr).AnErr("abortError", abortErr).Msg("upload interrupted")
		return UploadResult{path, logStreamID, out.Stats().BytesWritten}, copyErr
	}

	closeErr := out.Close()
	result := UploadResult{path, logStreamID, out.Stats().BytesWritten}
	if closeErr != nil {
		return result, closeErr
	}

	log.Info().Int64("bytesWritten", result.BytesWritten).Msg("upload finished")
	return result, nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	return r.r.Read(p)
}
