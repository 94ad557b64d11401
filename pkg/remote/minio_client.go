package remote

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	dbconnections "github.com/thebartekbanach/rstream/pkg/connections"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

type MinioClientConfig struct {
	ContentType string

	// zero disables the connection health check
	HealthCheckInterval time.Duration
}

type upload struct {
	path   string
	writer *io.PipeWriter
	done   chan error
}

// MinioClient uploads every stream as one object. Data written to a stream
// is piped straight into a PutObject call of unknown size, so the object
// appears only when the stream is closed.
type MinioClient struct {
	conn   dbconnections.MinioBlockStorageConnection
	config MinioClientConfig
	hub    *listenerHub
	log    zerolog.Logger

	ctx          context.Context
	lastStreamID atomic.Int64
	uploads      map[stream.StreamID]*upload
	lock         sync.Mutex
}

var _ Client = (*MinioClient)(nil)

func NewMinioClient(conn dbconnections.MinioBlockStorageConnection, config MinioClientConfig, log zerolog.Logger) *MinioClient {
	if config.ContentType == "" {
		config.ContentType = "application/octet-stream"
	}

	return &MinioClient{
		conn:    conn,
		config:  config,
		hub:     newListenerHub(),
		log:     log,
		ctx:     context.Background(),
		uploads: make(map[stream.StreamID]*upload),
	}
}

// StartMonitors must be called before any stream is opened. Uploads in
// progress are cancelled together with ctx.
func (client *MinioClient) StartMonitors(ctx context.Context) {
	client.ctx = ctx

	go client.hub.StartMonitor(ctx)

	if client.config.HealthCheckInterval > 0 {
		go client.monitorConnection(ctx)
	}
}

func (client *MinioClient) Open(_ context.Context, path string) (stream.StreamID, error) {
	if path == "" {
		return 0, ErrInvalidPath
	}

	reader, writer := io.Pipe()
	streamID := stream.StreamID(client.lastStreamID.Add(1))
	up := &upload{path, writer, make(chan error, 1)}

	client.lock.Lock()
	client.uploads[streamID] = up
	client.lock.Unlock()

	go client.runUpload(streamID, up, reader)

	client.log.Debug().Int64("streamId", int64(streamID)).Str("path", path).Msg("upload started")
	return streamID, nil
}

func (client *MinioClient) AddListener(streamID stream.StreamID, listener stream.StreamEventListener) {
	if err := <-client.hub.AddListener(streamID, listener); err != nil {
		client.log.Warn().Err(err).Int64("streamId", int64(streamID)).Msg("cannot add stream listener")
	}
}

func (client *MinioClient) RemoveListener(streamID stream.StreamID) {
	if err := <-client.hub.RemoveListener(streamID); err != nil {
		client.log.Warn().Err(err).Int64("streamId", int64(streamID)).Msg("cannot remove stream listener")
	}
}

func (client *MinioClient) WriteData(streamID stream.StreamID, p []byte) error {
	up, exists := client.getUpload(streamID)
	if !exists {
		return ErrUnknownStream
	}

	if _, err := up.writer.Write(p); err != nil {
		return errors.Wrapf(err, "cannot write to %s", up.path)
	}

	return nil
}

func (client *MinioClient) CloseStream(streamID stream.StreamID) <-chan error {
	result := make(chan error, 1)

	go func() {
		defer close(result)

		client.lock.Lock()
		up, exists := client.uploads[streamID]
		delete(client.uploads, streamID)
		client.lock.Unlock()

		if !exists {
			result <- ErrUnknownStream
			return
		}

		up.writer.Close()
		if err := <-up.done; err != nil {
			result <- errors.Wrapf(err, "cannot upload %s", up.path)
			return
		}

		result <- nil
	}()

	return result
}

// AbortStream fails the running upload with cause, so the multipart upload
// is abandoned and nothing is stored under the stream path.
func (client *MinioClient) AbortStream(streamID stream.StreamID, cause error) error {
	client.lock.Lock()
	up, exists := client.uploads[streamID]
	delete(client.uploads, streamID)
	client.lock.Unlock()

	if !exists {
		return ErrUnknownStream
	}

	if cause == nil {
		cause = ErrStreamAborted
	}

	err := <-client.hub.NotifyClose(streamID)
	up.writer.CloseWithError(cause)
	<-up.done

	client.log.Debug().Err(cause).Int64("streamId", int64(streamID)).Str("path", up.path).Msg("upload aborted")
	return err
}

func (client *MinioClient) getUpload(streamID stream.StreamID) (*upload, bool) {
	client.lock.Lock()
	defer client.lock.Unlock()

	up, exists := client.uploads[streamID]
	return up, exists
}

func (client *MinioClient) runUpload(streamID stream.StreamID, up *upload, reader *io.PipeReader) {
	err := client.conn.PutObject(client.ctx, up.path, -1, client.config.ContentType, reader)
	if err != nil {
		reader.CloseWithError(err)

		client.log.Error().Err(err).Int64("streamId", int64(streamID)).Str("path", up.path).Msg("upload failed")
		<-client.hub.NotifyError(streamID, err.Error())
	}

	up.done <- err
}

func (client *MinioClient) monitorConnection(ctx context.Context) {
	ticker := time.NewTicker(client.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, client.config.HealthCheckInterval)
			err := client.conn.Ping(pingCtx)
			cancel()

			if err != nil && ctx.Err() == nil {
				client.connectionLost(err)
			}
		}
	}
}

// connectionLost breaks every open stream before aborting its upload, so
// listeners learn about the lost connection first.
func (client *MinioClient) connectionLost(cause error) {
	client.lock.Lock()
	uploads := client.uploads
	client.uploads = make(map[stream.StreamID]*upload)
	client.lock.Unlock()

	<-client.hub.CloseAll()

	for _, up := range uploads {
		up.writer.CloseWithError(ErrConnectionLost)
	}

	client.log.Error().Err(cause).Int("openStreams", len(uploads)).Msg("storage connection lost")
}
