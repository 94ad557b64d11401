package remote

import (
	"context"
	"testing"
	"time"

	. "github.com/franela/goblin"
	"github.com/golang/mock/gomock"
	"github.com/thebartekbanach/rstream/pkg/stream"
	mock_stream "github.com/thebartekbanach/rstream/pkg/stream/mocks"
	"go.uber.org/goleak"
)

func newRunningHub() (*listenerHub, context.CancelFunc, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := newListenerHub()

	go hub.StartMonitor(ctx)

	return hub, cancel, ctx
}

func getErrorSafely(ctx context.Context, response <-chan error) error {
	timeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	select {
	case <-timeout.Done():
		return context.DeadlineExceeded
	case err := <-response:
		return err
	}
}

func TestListenerHub(t *testing.T) {
	g := Goblin(t)

	g.Describe("listenerHub", func() {
		g.Describe("AddListener", func() {
			g.It("Should register listener without error", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().AnyTimes()
				err := getErrorSafely(ctx, hub.AddListener(1, listener))

				g.Assert(err).IsNil("expected to not get error, but got", err)
			})

			g.It("Should return error if stream already has a listener", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().AnyTimes()
				<-hub.AddListener(1, listener)
				err := getErrorSafely(ctx, hub.AddListener(1, listener))

				g.Assert(err).Equal(errListenerAlreadyRegistered)
			})

			g.It("Should close listener added after hub stopped", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, _ := newRunningHub()
				cancel()
				<-hub.stopped

				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().Times(1)
				err := getErrorSafely(context.Background(), hub.AddListener(1, listener))

				g.Assert(err).Equal(errHubStopped)
			})
		})

		g.Describe("RemoveListener", func() {
			g.It("Should stop delivering events to removed listener", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().Times(0)
				listener.EXPECT().OnRemoteError(gomock.Any()).Times(0)

				<-hub.AddListener(1, listener)
				g.Assert(getErrorSafely(ctx, hub.RemoveListener(1))).IsNil()
				g.Assert(getErrorSafely(ctx, hub.NotifyClose(1))).Equal(errListenerNotFound)
				g.Assert(getErrorSafely(ctx, hub.NotifyError(1, "disk full"))).Equal(errListenerNotFound)
			})

			g.It("Should return error if listener is not registered", func() {
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				err := getErrorSafely(ctx, hub.RemoveListener(7))

				g.Assert(err).Equal(errListenerNotFound)
			})
		})

		g.Describe("NotifyClose", func() {
			g.It("Should close only listener of given stream and forget it", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				closed := mock_stream.NewMockStreamEventListener(mockCtrl)
				closed.EXPECT().OnRemoteClose().Times(1)
				other := mock_stream.NewMockStreamEventListener(mockCtrl)
				other.EXPECT().OnRemoteClose().Times(0)

				<-hub.AddListener(1, closed)
				<-hub.AddListener(2, other)

				g.Assert(getErrorSafely(ctx, hub.NotifyClose(1))).IsNil()
				g.Assert(getErrorSafely(ctx, hub.RemoveListener(1))).Equal(errListenerNotFound)
				g.Assert(getErrorSafely(ctx, hub.RemoveListener(2))).IsNil()
			})
		})

		g.Describe("NotifyError", func() {
			g.It("Should forward error message to listener", func() {
				mockCtrl := gomock.NewController(g)
				defer mockCtrl.Finish()
				hub, cancel, ctx := newRunningHub()
				defer cancel()

				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteError("disk full").Times(1)
				listener.EXPECT().OnRemoteClose().AnyTimes()

				<-hub.AddListener(1, listener)
				err := getErrorSafely(ctx, hub.NotifyError(1, "disk full"))

				g.Assert(err).IsNil()
			})
		})

		g.It("Should close every listener when connection is lost", func() {
			mockCtrl := gomock.NewController(g)
			defer mockCtrl.Finish()
			hub, cancel, ctx := newRunningHub()
			defer cancel()

			for _, streamID := range []stream.StreamID{1, 2, 3} {
				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().Times(1)
				<-hub.AddListener(streamID, listener)
			}

			g.Assert(getErrorSafely(ctx, hub.CloseAll())).IsNil()
			g.Assert(getErrorSafely(ctx, hub.RemoveListener(2))).Equal(errListenerNotFound)
		})

		g.It("Should close every listener when context is cancelled", func() {
			mockCtrl := gomock.NewController(g)
			defer mockCtrl.Finish()
			hub, cancel, _ := newRunningHub()

			for _, streamID := range []stream.StreamID{1, 2} {
				listener := mock_stream.NewMockStreamEventListener(mockCtrl)
				listener.EXPECT().OnRemoteClose().Times(1)
				<-hub.AddListener(streamID, listener)
			}

			cancel()
			<-hub.stopped

			g.Assert(getErrorSafely(context.Background(), hub.NotifyClose(1))).Equal(errHubStopped)
		})
	})
}

func TestListenerHub_MonitorExitsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub, cancel, _ := newRunningHub()
	<-hub.CloseAll()
	cancel()
	<-hub.stopped
}
