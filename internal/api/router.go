package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/brewduel/internal/api/apierr"
	"github.com/mcoot/brewduel/internal/api/handler"
	"github.com/mcoot/brewduel/internal/api/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Matchmaker      handler.Matchmaker
	ResultSubmitter handler.ResultSubmitter
	Rooms           handler.RoomQuerier
	Snapshotter     handler.Snapshotter

	// DebugEndpoints mounts /debug/storage; Snapshotter must be set
	DebugEndpoints bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)

	roomHandler := handler.NewRoomHandler(cfg.Matchmaker, cfg.Rooms, cfg.Logger)
	resultHandler := handler.NewResultHandler(cfg.ResultSubmitter, cfg.Rooms, cfg.Logger)

	// Logging wraps recovery so recovered panics are logged with their 500
	api := r.PathPrefix("/api/v1").Subrouter()
	api.NotFoundHandler = http.HandlerFunc(notFound)
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", roomHandler.Get).Methods(http.MethodGet)

	// Result routes
	api.HandleFunc("/results", resultHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/results", resultHandler.Query).Methods(http.MethodGet)
	api.HandleFunc("/results/{roomId}", resultHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	if cfg.DebugEndpoints && cfg.Snapshotter != nil {
		debugHandler := handler.NewDebugHandler(cfg.Snapshotter, cfg.Logger)
		api.HandleFunc("/debug/storage", debugHandler.Storage).Methods(http.MethodGet)
	}

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
