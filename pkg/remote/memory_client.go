package remote

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

// MemoryClient keeps objects in process. Writes become visible under the
// object path once the stream is closed. Disconnect, AbortStream and Fault let
// callers play the server side of a connection.
type MemoryClient struct {
	lastStreamID atomic.Int64
	resources    resourceList
	hub          *listenerHub
	log          zerolog.Logger

	objects     map[string][]byte
	objectsLock sync.RWMutex
}

var _ Client = (*MemoryClient)(nil)

func NewMemoryClient(log zerolog.Logger) *MemoryClient {
	return &MemoryClient{
		resources: newResourceList(),
		hub:       newListenerHub(),
		log:       log,
		objects:   make(map[string][]byte),
	}
}

func (client *MemoryClient) StartMonitors(ctx context.Context) {
	go client.hub.StartMonitor(ctx)
}

func (client *MemoryClient) Open(_ context.Context, path string) (stream.StreamID, error) {
	if path == "" {
		return 0, ErrInvalidPath
	}

	streamID := stream.StreamID(client.lastStreamID.Add(1))
	if err := client.resources.Create(streamID, path); err != nil {
		return 0, err
	}

	return streamID, nil
}

func (client *MemoryClient) AddListener(streamID stream.StreamID, listener stream.StreamEventListener) {
	if err := <-client.hub.AddListener(streamID, listener); err != nil {
		client.log.Warn().Err(err).Int64("streamId", int64(streamID)).Msg("cannot add stream listener")
	}
}

func (client *MemoryClient) RemoveListener(streamID stream.StreamID) {
	if err := <-client.hub.RemoveListener(streamID); err != nil {
		client.log.Warn().Err(err).Int64("streamId", int64(streamID)).Msg("cannot remove stream listener")
	}
}

func (client *MemoryClient) WriteData(streamID stream.StreamID, p []byte) error {
	_, err := client.resources.Write(streamID, p)
	switch err {
	case errResourceClosedForWriting:
		return ErrStreamClosedForWriting

	case errUnknownResource:
		return ErrUnknownStream

	default:
		return err
	}
}

func (client *MemoryClient) CloseStream(streamID stream.StreamID) <-chan error {
	result := make(chan error, 1)

	go func() {
		defer close(result)

		path, data, err := client.resources.Close(streamID)
		switch err {
		case nil:
		case errUnknownResource:
			result <- ErrUnknownStream
			return
		default:
			result <- err
			return
		}

		client.objectsLock.Lock()
		client.objects[path] = data
		client.objectsLock.Unlock()

		result <- nil
	}()

	return result
}

// ReadAll returns the contents of a closed object.
func (client *MemoryClient) ReadAll(path string) ([]byte, error) {
	client.objectsLock.RLock()
	defer client.objectsLock.RUnlock()

	data, exists := client.objects[path]
	if !exists {
		return nil, ErrObjectNotFound
	}

	return append([]byte(nil), data...), nil
}

// Disconnect drops every open stream as if the connection was torn down.
func (client *MemoryClient) Disconnect() {
	disposed := client.resources.DisposeAll()
	<-client.hub.CloseAll()

	client.log.Info().Int("openStreams", len(disposed)).Msg("storage connection dropped")
}

func (client *MemoryClient) AbortStream(streamID stream.StreamID, cause error) error {
	if _, _, err := client.resources.Close(streamID); err == errUnknownResource {
		return ErrUnknownStream
	}

	client.log.Debug().Err(cause).Int64("streamId", int64(streamID)).Msg("stream aborted")
	return <-client.hub.NotifyClose(streamID)
}

// Fault reports a server side error for the stream.
func (client *MemoryClient) Fault(streamID stream.StreamID, message string) error {
	return <-client.hub.NotifyError(streamID, message)
}
