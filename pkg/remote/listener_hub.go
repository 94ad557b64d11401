package remote

import (
	"context"
	"errors"

	"github.com/thebartekbanach/rstream/pkg/stream"
)

type hubRequest struct {
	response chan error
}

func newHubRequest() hubRequest {
	return hubRequest{make(chan error, 1)}
}

type streamRequest struct {
	hubRequest
	streamID stream.StreamID
}

func newStreamRequest(streamID stream.StreamID) streamRequest {
	return streamRequest{
		newHubRequest(),
		streamID,
	}
}

type addListenerRequest struct {
	streamRequest
	listener stream.StreamEventListener
}

type remoteErrorRequest struct {
	streamRequest
	message string
}

// listenerHub delivers connection events to stream listeners. All listener
// callbacks run on the monitor goroutine, so a callback must not call back
// into the hub.
type listenerHub struct {
	listeners map[stream.StreamID]stream.StreamEventListener

	addListener    chan addListenerRequest
	removeListener chan streamRequest
	notifyClose    chan streamRequest
	notifyError    chan remoteErrorRequest
	closeAll       chan hubRequest

	stopped chan struct{}
}

func newListenerHub() *listenerHub {
	return &listenerHub{
		make(map[stream.StreamID]stream.StreamEventListener),
		make(chan addListenerRequest),
		make(chan streamRequest),
		make(chan streamRequest),
		make(chan remoteErrorRequest),
		make(chan hubRequest),
		make(chan struct{}),
	}
}

// AddListener registers listener for streamID. Once the hub is stopped the
// listener is told right away that its connection is gone.
func (hub *listenerHub) AddListener(streamID stream.StreamID, listener stream.StreamEventListener) <-chan error {
	request := addListenerRequest{newStreamRequest(streamID), listener}

	select {
	case hub.addListener <- request:
	case <-hub.stopped:
		listener.OnRemoteClose()
		hub.sendResponseOnChan(request.response, errHubStopped)
	}

	return request.response
}

func (hub *listenerHub) RemoveListener(streamID stream.StreamID) <-chan error {
	request := newStreamRequest(streamID)

	select {
	case hub.removeListener <- request:
	case <-hub.stopped:
		hub.sendResponseOnChan(request.response, errHubStopped)
	}

	return request.response
}

// NotifyClose tells the listener of streamID that the server closed the
// stream and forgets the listener.
func (hub *listenerHub) NotifyClose(streamID stream.StreamID) <-chan error {
	request := newStreamRequest(streamID)

	select {
	case hub.notifyClose <- request:
	case <-hub.stopped:
		hub.sendResponseOnChan(request.response, errHubStopped)
	}

	return request.response
}

func (hub *listenerHub) NotifyError(streamID stream.StreamID, message string) <-chan error {
	request := remoteErrorRequest{newStreamRequest(streamID), message}

	select {
	case hub.notifyError <- request:
	case <-hub.stopped:
		hub.sendResponseOnChan(request.response, errHubStopped)
	}

	return request.response
}

// CloseAll is used when the whole connection is lost.
func (hub *listenerHub) CloseAll() <-chan error {
	request := newHubRequest()

	select {
	case hub.closeAll <- request:
	case <-hub.stopped:
		hub.sendResponseOnChan(request.response, errHubStopped)
	}

	return request.response
}

func (hub *listenerHub) StartMonitor(ctx context.Context) {
	defer close(hub.stopped)

	for {
		select {
		case <-ctx.Done():
			hub.closeAllListeners()
			return

		case request := <-hub.addListener:
			if _, exists := hub.listeners[request.streamID]; exists {
				hub.sendResponseOnChan(request.response, errListenerAlreadyRegistered)
				continue
			}

			hub.listeners[request.streamID] = request.listener
			hub.sendResponseOnChan(request.response, nil)

		case request := <-hub.removeListener:
			if _, exists := hub.listeners[request.streamID]; !exists {
				hub.sendResponseOnChan(request.response, errListenerNotFound)
				continue
			}

			delete(hub.listeners, request.streamID)
			hub.sendResponseOnChan(request.response, nil)

		case request := <-hub.notifyClose:
			listener, exists := hub.listeners[request.streamID]
			if !exists {
				hub.sendResponseOnChan(request.response, errListenerNotFound)
				continue
			}

			delete(hub.listeners, request.streamID)
			listener.OnRemoteClose()
			hub.sendResponseOnChan(request.response, nil)

		case request := <-hub.notifyError:
			listener, exists := hub.listeners[request.streamID]
			if !exists {
				hub.sendResponseOnChan(request.response, errListenerNotFound)
				continue
			}

			listener.OnRemoteError(request.message)
			hub.sendResponseOnChan(request.response, nil)

		case request := <-hub.closeAll:
			hub.closeAllListeners()
			hub.sendResponseOnChan(request.response, nil)
		}
	}
}

func (hub *listenerHub) closeAllListeners() {
	for streamID, listener := range hub.listeners {
		delete(hub.listeners, streamID)
		listener.OnRemoteClose()
	}
}

func (hub *listenerHub) sendResponseOnChan(responseChan chan error, err error) {
	responseChan <- err
	close(responseChan)
}

var (
	errHubStopped                = errors.New("listener hub stopped")
	errListenerAlreadyRegistered = errors.New("listener already registered")
	errListenerNotFound          = errors.New("listener not found")
)
