package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/franela/goblin"
	"github.com/rs/zerolog"
	"github.com/thebartekbanach/rstream/pkg/audit"
	"github.com/thebartekbanach/rstream/pkg/filefetcher"
	"github.com/thebartekbanach/rstream/pkg/ingest"
	"github.com/thebartekbanach/rstream/pkg/remote"
	"github.com/thebartekbanach/rstream/pkg/stream"
	testutils "github.com/thebartekbanach/rstream/test/utils"
)

func newTestHandler(ctx context.Context, config ingest.IngestServiceConfig, allowedDomains []string) (http.HandlerFunc, *remote.MemoryClient) {
	client := remote.NewMemoryClient(zerolog.Nop())
	client.StartMonitors(ctx)

	service := ingest.NewIngestService(config, client, filefetcher.NewHttpFetcher(allowedDomains), audit.Nop(), zerolog.Nop())
	return handleObjectUpload(ctx, service, time.Minute, zerolog.Nop()), client
}

func decodeUploadResponse(g *G, recorder *httptest.ResponseRecorder) uploadResponse {
	var response uploadResponse
	g.Assert(json.Unmarshal(recorder.Body.Bytes(), &response)).IsNil()
	return response
}

func TestHandleObjectUpload(t *testing.T) {
	g := Goblin(t)

	g.Describe("handleObjectUpload", func() {
		g.It("Should store request body on PUT", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, client := newTestHandler(ctx, ingest.IngestServiceConfig{}, nil)

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodPut, "/objects/dir/file.txt", strings.NewReader("content")))

			g.Assert(recorder.Code).Equal(http.StatusCreated)
			response := decodeUploadResponse(g, recorder)
			g.Assert(response.Path).Equal("dir/file.txt")
			g.Assert(response.BytesWritten).Equal(int64(7))

			data, err := client.ReadAll("dir/file.txt")
			g.Assert(err).IsNil()
			g.Assert(string(data)).Equal("content")
		})

		g.It("Should store fetched source on POST", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			server := testutils.NewTestHttpServer()
			server.HandleFunc("/source.bin", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("remote data"))
			})
			server.Start(t)

			handler, client := newTestHandler(ctx, ingest.IngestServiceConfig{}, []string{"localhost"})

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodPost, "/objects/copy.bin?source="+server.URL("/source.bin"), nil))

			g.Assert(recorder.Code).Equal(http.StatusCreated)
			data, _ := client.ReadAll("copy.bin")
			g.Assert(string(data)).Equal("remote data")
		})

		g.It("Should return 403 when source domain is not allowed", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, _ := newTestHandler(ctx, ingest.IngestServiceConfig{}, []string{"*.example.com"})

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodPost, "/objects/copy.bin?source=http://evil.org/a.bin", nil))

			g.Assert(recorder.Code).Equal(http.StatusForbidden)
			g.Assert(decodeUploadResponse(g, recorder).Error).Equal(filefetcher.ErrDomainNotAllowed.Error())
		})

		g.It("Should require source on POST", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, _ := newTestHandler(ctx, ingest.IngestServiceConfig{}, nil)

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodPost, "/objects/copy.bin", nil))

			g.Assert(recorder.Code).Equal(http.StatusBadRequest)
		})

		g.It("Should require object path", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, _ := newTestHandler(ctx, ingest.IngestServiceConfig{}, nil)

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodPut, "/objects/", strings.NewReader("x")))

			g.Assert(recorder.Code).Equal(http.StatusBadRequest)
		})

		g.It("Should reject other methods", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, _ := newTestHandler(ctx, ingest.IngestServiceConfig{}, nil)

			recorder := httptest.NewRecorder()
			handler(recorder, httptest.NewRequest(http.MethodDelete, "/objects/a", nil))

			g.Assert(recorder.Code).Equal(http.StatusMethodNotAllowed)
		})

		g.It("Should reject not allowed origin", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler, _ := newTestHandler(ctx, ingest.IngestServiceConfig{AllowedOrigins: []string{"https://app.example.com"}}, nil)

			request := httptest.NewRequest(http.MethodPut, "/objects/a", strings.NewReader("x"))
			request.Header.Set("Origin", "https://evil.org")
			recorder := httptest.NewRecorder()
			handler(recorder, request)

			g.Assert(recorder.Code).Equal(http.StatusForbidden)
		})
	})

	g.Describe("uploadErrorStatus", func() {
		g.It("Should map stream errors to status codes", func() {
			g.Assert(uploadErrorStatus(&stream.StreamError{Kind: stream.KindConnectionLost})).Equal(http.StatusServiceUnavailable)
			g.Assert(uploadErrorStatus(&stream.StreamError{Kind: stream.KindRemoteFault})).Equal(http.StatusBadGateway)
			g.Assert(uploadErrorStatus(filefetcher.ErrResponseStatus404)).Equal(http.StatusNotFound)
			g.Assert(uploadErrorStatus(remote.ErrInvalidPath)).Equal(http.StatusBadRequest)
			g.Assert(uploadErrorStatus(errors.New("boom"))).Equal(http.StatusInternalServerError)
		})
	})
}
