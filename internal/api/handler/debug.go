package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/brewduel/internal/api/response"
	"github.com/mcoot/brewduel/internal/storage"
)

// Snapshotter dumps the store
type Snapshotter interface {
	Snapshot(ctx context.Context) (*storage.Snapshot, error)
}

// DebugHandler exposes store internals for local debugging
type DebugHandler struct {
	store  Snapshotter
	logger *slog.Logger
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(store Snapshotter, logger *slog.Logger) *DebugHandler {
	return &DebugHandler{store: store, logger: logger}
}

// Storage handles GET /api/v1/debug/storage
func (h *DebugHandler) Storage(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.Snapshot(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.StorageSnapshotFromModel(snapshot))
}
