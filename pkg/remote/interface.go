package remote

import (
	"context"
	"errors"

	"github.com/thebartekbanach/rstream/pkg/stream"
)

// Client is a remote stream client able to open streams by path.
type Client interface {
	stream.RemoteStreamClient

	Open(ctx context.Context, path string) (stream.StreamID, error)

	// AbortStream drops the stream without storing the object and breaks
	// its listener. An object stored earlier under the same path is kept.
	AbortStream(streamID stream.StreamID, cause error) error

	// start background tasks
	StartMonitors(ctx context.Context)
}

var (
	ErrUnknownStream          = errors.New("unknown stream")
	ErrStreamClosedForWriting = errors.New("stream closed for writing")
	ErrInvalidPath            = errors.New("invalid object path")
	ErrObjectNotFound         = errors.New("object not found")
	ErrConnectionLost         = errors.New("connection to storage service lost")
	ErrStreamAborted          = errors.New("stream aborted")
)
