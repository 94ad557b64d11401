package stream

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// ManagedOutputStream writes to one already opened remote stream.
//
// Write, WriteByte and Close belong to a single owning caller. OnRemoteClose
// and OnRemoteError may be called by the remote client from any goroutine at
// any time.
type ManagedOutputStream struct {
	client      RemoteStreamClient
	streamID    StreamID
	logStreamID LogStreamID
	log         zerolog.Logger
	auditLog    AuditLogger
	clock       clock.Clock

	lifecycle lifecycle
	errMsg    pendingError

	// owned by the writing caller
	userTime time.Duration
	ioTime   time.Duration
	lastTs   time.Time
	total    int64
}

var (
	_ OutputStream        = (*ManagedOutputStream)(nil)
	_ StreamEventListener = (*ManagedOutputStream)(nil)
)

type Option func(stream *ManagedOutputStream)

// WithClock replaces the clock used for user and I/O time accounting.
func WithClock(c clock.Clock) Option {
	return func(stream *ManagedOutputStream) {
		stream.clock = c
	}
}

func NewManagedOutputStream(
	client RemoteStreamClient,
	streamID StreamID,
	log zerolog.Logger,
	auditLog AuditLogger,
	logStreamID LogStreamID,
	opts ...Option,
) *ManagedOutputStream {
	if auditLog == nil {
		auditLog = nopAuditLogger{}
	}

	stream := &ManagedOutputStream{
		client:      client,
		streamID:    streamID,
		logStreamID: logStreamID,
		log:         log,
		auditLog:    auditLog,
		clock:       clock.New(),
	}

	for _, opt := range opts {
		opt(stream)
	}

	stream.lastTs = stream.clock.Now()
	client.AddListener(streamID, stream)

	stream.log.Debug().Int64("streamId", int64(streamID)).Msg("opened output stream")
	return stream
}

func (stream *ManagedOutputStream) ID() StreamID {
	return stream.streamID
}

func (stream *ManagedOutputStream) LogStreamID() LogStreamID {
	return stream.logStreamID
}

func (stream *ManagedOutputStream) State() State {
	return stream.lifecycle.Load()
}

// Stats is meant to be read by the owning caller, after its writes.
func (stream *ManagedOutputStream) Stats() Stats {
	return Stats{
		BytesWritten: stream.total,
		UserElapsed:  stream.userTime,
		IOElapsed:    stream.ioTime,
	}
}

func (stream *ManagedOutputStream) Write(p []byte) (n int, err error) {
	if err = stream.WriteRange(p, 0, len(p)); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (stream *ManagedOutputStream) WriteByte(c byte) error {
	return stream.WriteRange([]byte{c}, 0, 1)
}

func (stream *ManagedOutputStream) WriteRange(b []byte, off, length int) error {
	if off < 0 || length < 0 || off > len(b) || length > len(b)-off {
		return ErrInvalidRange
	}

	if err := stream.check(); err != nil {
		return err
	}

	stream.userPhaseEnd()
	defer stream.ioPhaseEnd()

	if err := stream.client.WriteData(stream.streamID, b[off:off+length]); err != nil {
		return stream.transportError("failed to write data", err)
	}

	stream.total += int64(length)
	return nil
}

func (stream *ManagedOutputStream) Close() error {
	switch stream.lifecycle.Load() {
	case StateClosedClean:
		return nil

	case StateClosedBroken:
		return &StreamError{
			Kind:     KindConnectionLost,
			StreamID: stream.streamID,
			Message:  "failed to close stream, because connection was broken (data could have been lost)",
		}
	}

	stream.log.Debug().Int64("streamId", int64(stream.streamID)).Msg("closing output stream")

	stream.userPhaseEnd()

	if err := <-stream.client.CloseStream(stream.streamID); err != nil {
		stream.ioPhaseEnd()
		return stream.transportError("failed to close stream", err)
	}

	// A broken-connection notice may have won while we waited. The remote
	// side already dropped our listener in that case.
	if stream.lifecycle.close(StateClosedClean) {
		stream.client.RemoveListener(stream.streamID)
	}

	stream.ioPhaseEnd()

	if stream.auditLog.IsLogEnabled() {
		stream.auditLog.LogCloseOut(stream.logStreamID, stream.userTime, stream.ioTime, stream.total)
	}

	stream.log.Debug().
		Int64("streamId", int64(stream.streamID)).
		Dur("ioTime", stream.ioTime).
		Dur("userTime", stream.userTime).
		Int64("bytesWritten", stream.total).
		Msg("closed output stream")

	return nil
}

func (stream *ManagedOutputStream) OnRemoteClose() {
	if stream.lifecycle.close(StateClosedBroken) {
		stream.log.Debug().Int64("streamId", int64(stream.streamID)).Msg("output stream closed by remote side")
	}
}

func (stream *ManagedOutputStream) OnRemoteError(message string) {
	if stream.errMsg.Set(message) {
		stream.log.Debug().Int64("streamId", int64(stream.streamID)).Str("error", message).Msg("remote error reported for output stream")
	}
}

func (stream *ManagedOutputStream) check() error {
	if message, failed := stream.errMsg.Load(); failed {
		return &StreamError{
			Kind:     KindRemoteFault,
			StreamID: stream.streamID,
			Message:  message,
		}
	}

	switch stream.lifecycle.Load() {
	case StateClosedBroken:
		return &StreamError{
			Kind:     KindAlreadyClosed,
			StreamID: stream.streamID,
			Message:  "server connection was lost",
			Err:      ErrConnectionLost,
		}

	case StateClosedClean:
		return &StreamError{
			Kind:     KindAlreadyClosed,
			StreamID: stream.streamID,
			Message:  "stream is closed",
		}
	}

	return nil
}

func (stream *ManagedOutputStream) transportError(message string, err error) error {
	return &StreamError{
		Kind:     KindTransport,
		StreamID: stream.streamID,
		Message:  message,
		Err:      err,
	}
}

// userPhaseEnd and ioPhaseEnd share lastTs so the two totals partition the
// time since construction.
func (stream *ManagedOutputStream) userPhaseEnd() {
	now := stream.clock.Now()
	stream.userTime += now.Sub(stream.lastTs)
	stream.lastTs = now
}

func (stream *ManagedOutputStream) ioPhaseEnd() {
	now := stream.clock.Now()
	stream.ioTime += now.Sub(stream.lastTs)
	stream.lastTs = now
}

type nopAuditLogger struct{}

func (nopAuditLogger) IsLogEnabled() bool { return false }

func (nopAuditLogger) LogCloseOut(LogStreamID, time.Duration, time.Duration, int64) {}
