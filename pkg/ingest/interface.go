package ingest

import (
	"context"
	"io"

	"github.com/thebartekbanach/rstream/pkg/stream"
)

type UploadResult struct {
	Path         string             `json:"path"`
	LogStreamID  stream.LogStreamID `json:"logStreamId"`
	BytesWritten int64              `json:"bytesWritten"`
}

type IngestService interface {
	// Upload streams r into object at path.
	Upload(ctx context.Context, path string, r io.Reader) (UploadResult, error)

	// UploadFromURL streams body of sourceURL into object at path.
	UploadFromURL(ctx context.Context, path, sourceURL string) (UploadResult, error)

	IsAllowedOrigin(origin string) bool
}
