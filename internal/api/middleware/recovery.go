package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/brewduel/internal/api/apierr"
	"github.com/mcoot/brewduel/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics are answered with a JSON INTERNAL_ERROR body.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
