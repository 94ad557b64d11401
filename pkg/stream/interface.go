package stream

import (
	"io"
	"time"
)

type (
	// StreamID addresses a stream on the remote client.
	StreamID int64

	// LogStreamID identifies a stream in the audit log only.
	LogStreamID string

	StreamEventListener interface {
		OnRemoteClose()
		OnRemoteError(message string)
	}

	// RemoteStreamClient is shared by many streams and outlives each of them.
	// CloseStream delivers exactly one value on the returned channel.
	RemoteStreamClient interface {
		AddListener(streamID StreamID, listener StreamEventListener)
		RemoveListener(streamID StreamID)

		WriteData(streamID StreamID, p []byte) error
		CloseStream(streamID StreamID) <-chan error
	}

	AuditLogger interface {
		IsLogEnabled() bool
		LogCloseOut(logStreamID LogStreamID, userTime, ioTime time.Duration, bytesWritten int64)
	}

	OutputStream interface {
		io.WriteCloser
		io.ByteWriter

		WriteRange(b []byte, off, length int) error
		State() State
		Stats() Stats
	}
)

type Stats struct {
	BytesWritten int64
	UserElapsed  time.Duration
	IOElapsed    time.Duration
}
