package main

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type jsonResponseWriter struct {
	w   http.ResponseWriter
	log zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (w *jsonResponseWriter) WriteResult(code int, result interface{}) {
	body, err := json.Marshal(result)
	if err != nil {
		w.log.Error().Err(err).Msg("error ocurred when marshalling response")
		w.WriteError(http.StatusInternalServerError, "error ocurred when marshalling response")
		return
	}

	w.w.Header().Set("Content-Type", "application/json")
	w.w.WriteHeader(code)
	w.w.Write(body)
}

func (w *jsonResponseWriter) WriteError(code int, message string) {
	body, _ := json.Marshal(errorResponse{message})

	w.w.Header().Set("Content-Type", "application/json")
	w.w.WriteHeader(code)
	w.w.Write(body)
}
