package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/brewduel/internal/api/apierr"
	"github.com/mcoot/brewduel/internal/api/request"
	"github.com/mcoot/brewduel/internal/api/response"
	"github.com/mcoot/brewduel/internal/model"
)

// Matchmaker places wallets into rooms
type Matchmaker interface {
	Join(ctx context.Context, walletID string) (*model.JoinResult, error)
}

// RoomQuerier reads rooms and their outcomes
type RoomQuerier interface {
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	ListActiveRooms(ctx context.Context) ([]*model.Room, error)
	GetResults(ctx context.Context, id model.RoomID) (*model.ArbitrationOutcome, error)
}

// RoomHandler handles room endpoints
type RoomHandler struct {
	matchmaker Matchmaker
	rooms      RoomQuerier
	logger     *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(matchmaker Matchmaker, rooms RoomQuerier, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		matchmaker: matchmaker,
		rooms:      rooms,
		logger:     logger,
	}
}

// Join handles POST /api/v1/rooms
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	if req.WalletID == "" {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("Wallet ID required"))
		return
	}

	result, err := h.matchmaker.Join(r.Context(), req.WalletID)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.JoinFromModel(result))
}

// List handles GET /api/v1/rooms.
// With a roomId query parameter it returns that room, otherwise every active room.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("roomId") {
		h.writeRoom(w, r, model.RoomID(r.URL.Query().Get("roomId")))
		return
	}

	rooms, err := h.rooms.ListActiveRooms(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.RoomsFromModel(rooms))
}

// Get handles GET /api/v1/rooms/{roomId}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeRoom(w, r, model.RoomID(mux.Vars(r)["roomId"]))
}

func (h *RoomHandler) writeRoom(w http.ResponseWriter, r *http.Request, id model.RoomID) {
	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.RoomFromModel(room))
}
