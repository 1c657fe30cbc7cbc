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
	"github.com/mcoot/brewduel/internal/services/results"
)

// ResultSubmitter records player results
type ResultSubmitter interface {
	Submit(ctx context.Context, req results.SubmitRequest) (*model.SubmissionOutcome, error)
}

// ResultHandler handles result endpoints
type ResultHandler struct {
	submitter ResultSubmitter
	rooms     RoomQuerier
	logger    *slog.Logger
}

// NewResultHandler creates a new result handler
func NewResultHandler(submitter ResultSubmitter, rooms RoomQuerier, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{
		submitter: submitter,
		rooms:     rooms,
		logger:    logger,
	}
}

// Submit handles POST /api/v1/results
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	if req.RoomID == "" || req.WalletID == "" || req.Resource() == nil || req.Duration == nil {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("Missing required fields"))
		return
	}

	outcome, err := h.submitter.Submit(r.Context(), results.SubmitRequest{
		RoomID:       model.RoomID(req.RoomID),
		WalletID:     req.WalletID,
		ResourceUsed: req.Resource(),
		Duration:     req.Duration,
	})
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.SubmissionFromModel(outcome))
}

// Query handles GET /api/v1/results?roomId=
func (h *ResultHandler) Query(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("roomId")
	if id == "" {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("Room ID required"))
		return
	}
	h.writeOutcome(w, r, model.RoomID(id))
}

// Get handles GET /api/v1/results/{roomId}
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeOutcome(w, r, model.RoomID(mux.Vars(r)["roomId"]))
}

func (h *ResultHandler) writeOutcome(w http.ResponseWriter, r *http.Request, id model.RoomID) {
	outcome, err := h.rooms.GetResults(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeOK(h.logger, w, r, response.OutcomeFromModel(outcome))
}
