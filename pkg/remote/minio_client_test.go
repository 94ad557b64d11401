package remote_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/franela/goblin"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	dbconnections "github.com/thebartekbanach/rstream/pkg/connections"
	mock_dbconnections "github.com/thebartekbanach/rstream/pkg/connections/mocks"
	"github.com/thebartekbanach/rstream/pkg/remote"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

func newRunningMinioClient(g *G, config remote.MinioClientConfig) (*remote.MinioClient, *mock_dbconnections.MockMinioBlockStorageConnection, func()) {
	mockCtrl := gomock.NewController(g)
	ctx, cancel := context.WithCancel(context.Background())

	mockConn := mock_dbconnections.NewMockMinioBlockStorageConnection(mockCtrl)
	client := remote.NewMinioClient(mockConn, config, zerolog.Nop())
	client.StartMonitors(ctx)

	finish := func() {
		cancel()
		mockCtrl.Finish()
	}

	return client, mockConn, finish
}

func openMinioStream(g *G, client *remote.MinioClient, path string) *stream.ManagedOutputStream {
	streamID, err := client.Open(context.Background(), path)
	g.Assert(err).IsNil("cannot open stream", err)

	return stream.NewManagedOutputStream(client, streamID, zerolog.Nop(), nil, stream.LogStreamID(path))
}

func TestMinioClient(t *testing.T) {
	g := Goblin(t)

	g.Describe("MinioClient", func() {
		g.It("Should stream written data into a single object upload", func() {
			client, mockConn, finish := newRunningMinioClient(g, remote.MinioClientConfig{})
			defer finish()

			uploaded := make(chan []byte, 1)
			mockConn.EXPECT().
				PutObject(gomock.Any(), "bucket/data.bin", int64(-1), "application/octet-stream", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, reader io.Reader) error {
					data, err := io.ReadAll(reader)
					uploaded <- data
					return err
				}).Times(1)

			out := openMinioStream(g, client, "bucket/data.bin")
			out.Write([]byte("hello "))
			out.Write([]byte("world"))

			g.Assert(out.Close()).IsNil()
			g.Assert(string(<-uploaded)).Equal("hello world")
			g.Assert(out.Stats().BytesWritten).Equal(int64(11))
		})

		g.It("Should use configured content type", func() {
			client, mockConn, finish := newRunningMinioClient(g, remote.MinioClientConfig{ContentType: "text/csv"})
			defer finish()

			mockConn.EXPECT().
				PutObject(gomock.Any(), "report.csv", int64(-1), "text/csv", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, reader io.Reader) error {
					_, err := io.Copy(io.Discard, reader)
					return err
				})

			out := openMinioStream(g, client, "report.csv")
			g.Assert(out.Close()).IsNil()
		})

		g.It("Should report failed upload on close and on next write", func() {
			client, mockConn, finish := newRunningMinioClient(g, remote.MinioClientConfig{})
			defer finish()

			uploadErr := errors.New("access denied")
			mockConn.EXPECT().PutObject(gomock.Any(), "denied.bin", gomock.Any(), gomock.Any(), gomock.Any()).Return(uploadErr)

			out := openMinioStream(g, client, "denied.bin")
			err := out.Close()

			g.Assert(stream.KindOf(err)).Equal(stream.KindTransport)
			g.Assert(errors.Is(err, uploadErr)).IsTrue("expected upload error, got", err)
			g.Assert(out.State()).Equal(stream.StateOpen)

			_, err = out.Write([]byte{0x1})
			g.Assert(stream.KindOf(err)).Equal(stream.KindRemoteFault)
			g.Assert(strings.Contains(err.Error(), "access denied")).IsTrue(err.Error())
		})

		g.It("Should break open streams when health check fails", func() {
			client, mockConn, finish := newRunningMinioClient(g, remote.MinioClientConfig{HealthCheckInterval: 10 * time.Millisecond})
			defer finish()

			mockConn.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")).MinTimes(1)
			mockConn.EXPECT().
				PutObject(gomock.Any(), "lost.bin", gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, reader io.Reader) error {
					_, err := io.Copy(io.Discard, reader)
					return err
				})

			out := openMinioStream(g, client, "lost.bin")
			waitForState(g, out, stream.StateClosedBroken)

			_, err := out.Write([]byte{0x1})
			g.Assert(errors.Is(err, stream.ErrConnectionLost)).IsTrue("expected lost connection, got", err)
			g.Assert(stream.KindOf(out.Close())).Equal(stream.KindConnectionLost)
		})

		g.It("Should fail upload with abort cause instead of storing object", func() {
			client, mockConn, finish := newRunningMinioClient(g, remote.MinioClientConfig{})
			defer finish()

			readErr := make(chan error, 1)
			mockConn.EXPECT().
				PutObject(gomock.Any(), "aborted.bin", gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ int64, _ string, reader io.Reader) error {
					_, err := io.Copy(io.Discard, reader)
					readErr <- err
					return err
				})

			out := openMinioStream(g, client, "aborted.bin")
			out.Write([]byte("partial"))
			cause := errors.New("client went away")

			g.Assert(client.AbortStream(out.ID(), cause)).IsNil()
			g.Assert(<-readErr).Equal(cause)
			g.Assert(out.State()).Equal(stream.StateClosedBroken)
			g.Assert(client.WriteData(out.ID(), []byte{0x1})).Equal(remote.ErrUnknownStream)
			g.Assert(stream.KindOf(out.Close())).Equal(stream.KindConnectionLost)
		})

		g.It("Should return unknown stream error for not opened streams", func() {
			client, _, finish := newRunningMinioClient(g, remote.MinioClientConfig{})
			defer finish()

			g.Assert(client.WriteData(5, []byte{0x1})).Equal(remote.ErrUnknownStream)
			g.Assert(<-client.CloseStream(5)).Equal(remote.ErrUnknownStream)
			g.Assert(client.AbortStream(5, nil)).Equal(remote.ErrUnknownStream)
		})

		g.It("Should reject empty object path", func() {
			client, _, finish := newRunningMinioClient(g, remote.MinioClientConfig{})
			defer finish()

			_, err := client.Open(context.Background(), "")

			g.Assert(err).Equal(remote.ErrInvalidPath)
		})
	})
}

func TestMinioClientIntegration_ShouldUploadStreamedObject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MinioClient integration tests")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconnections.NewMinioBlockStorageTestingConnection(t)
	client := remote.NewMinioClient(conn, remote.MinioClientConfig{HealthCheckInterval: time.Second}, zerolog.Nop())
	client.StartMonitors(ctx)

	streamID, err := client.Open(ctx, "integration/data.txt")
	if err != nil {
		t.Fatalf("Error ocurred while opening stream: %s", err)
	}

	out := stream.NewManagedOutputStream(client, streamID, zerolog.Nop(), nil, "integration")
	testData := []byte(strings.Repeat("rstream ", 1024))
	if _, err := out.Write(testData); err != nil {
		t.Fatalf("Error ocurred while writing stream: %s", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Error ocurred while closing stream: %s", err)
	}

	object, err := conn.GetObject(ctx, "integration/data.txt")
	if err != nil {
		t.Fatalf("Error ocurred while getting uploaded object: %s", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		t.Fatalf("Error ocurred while reading uploaded object: %s", err)
	}

	if string(data) != string(testData) {
		t.Errorf("Uploaded object differs from written data, got %d bytes, expected %d", len(data), len(testData))
	}
}
