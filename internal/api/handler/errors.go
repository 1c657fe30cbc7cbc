package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/brewduel/internal/api/apierr"
	"github.com/mcoot/brewduel/internal/api/response"
)

// maxBodyBytes caps request bodies; every request here is a handful of fields
const maxBodyBytes = 1 << 20

// writeError writes the mapped error response, logging anything the client did not cause
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	apierr.WriteError(w, err)
}

// writeOK writes a 200 JSON body, or a logged 500 if it cannot be encoded
func writeOK(logger *slog.Logger, w http.ResponseWriter, r *http.Request, data any) {
	if err := response.OK(w, data); err != nil {
		writeError(logger, w, r, err)
	}
}

// decodeJSON reads a JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.NewInvalidRequestError("Request body is required")
		}
		return apierr.NewInvalidRequestError("Invalid JSON body")
	}
	return nil
}
