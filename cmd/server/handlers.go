package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebartekbanach/rstream/pkg/filefetcher"
	"github.com/thebartekbanach/rstream/pkg/ingest"
	"github.com/thebartekbanach/rstream/pkg/remote"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

const objectsPathPrefix = "/objects/"

type uploadResponse struct {
	ingest.UploadResult
	Error string `json:"error,omitempty"`
}

func handleObjectUpload(ctx context.Context, ingestService ingest.IngestService, uploadTimeout time.Duration, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		response := &jsonResponseWriter{w, log}

		if !ingestService.IsAllowedOrigin(r.Header.Get("Origin")) {
			response.WriteError(http.StatusForbidden, "request origin not allowed")
			return
		}

		path := strings.TrimPrefix(r.URL.Path, objectsPathPrefix)
		if path == "" {
			response.WriteError(http.StatusBadRequest, "object path is required")
			return
		}

		uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
		defer cancel()

		var (
			result ingest.UploadResult
			err    error
		)

		switch r.Method {
		case http.MethodPut:
			log.Debug().Str("path", path).Msg("processing upload")
			result, err = ingestService.Upload(uploadCtx, path, r.Body)

		case http.MethodPost:
			sourceURL := r.URL.Query().Get("source")
			if sourceURL == "" {
				response.WriteError(http.StatusBadRequest, "source query parameter is required")
				return
			}

			log.Debug().Str("path", path).Str("source", sourceURL).Msg("processing upload from url")
			result, err = ingestService.UploadFromURL(uploadCtx, path, sourceURL)

		default:
			response.WriteError(http.StatusMethodNotAllowed, "only PUT and POST methods are allowed")
			return
		}

		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("upload failed")
			response.WriteResult(uploadErrorStatus(err), uploadResponse{result, err.Error()})
			return
		}

		response.WriteResult(http.StatusCreated, uploadResponse{UploadResult: result})
	}
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, remote.ErrInvalidPath):
		return http.StatusBadRequest

	case errors.Is(err, filefetcher.ErrDomainNotAllowed):
		return http.StatusForbidden

	case errors.Is(err, filefetcher.ErrResponseStatus404):
		return http.StatusNotFound

	case errors.Is(err, filefetcher.ErrResponseStatusNotOK):
		return http.StatusBadGateway

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	switch stream.KindOf(err) {
	case stream.KindConnectionLost, stream.KindAlreadyClosed:
		return http.StatusServiceUnavailable

	case stream.KindRemoteFault, stream.KindTransport:
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
