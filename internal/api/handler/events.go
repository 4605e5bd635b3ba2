package handler

import (
	"log/slog"
	"net/http"

	"github.com/cardtable/eights/internal/services/directory"
	"github.com/cardtable/eights/internal/session"
	"github.com/cardtable/eights/internal/web/sse"
	"github.com/cardtable/eights/internal/web/ws"
)

// EventsHandler handles the push subscription endpoints
type EventsHandler struct {
	directory directory.ControllerInterface
	registry  *session.Registry
	logger    *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(
	directory directory.ControllerInterface,
	registry *session.Registry,
	logger *slog.Logger,
) *EventsHandler {
	return &EventsHandler{
		directory: directory,
		registry:  registry,
		logger:    logger.With(slog.String("component", "events_handler")),
	}
}

// SSE handles GET /api/v1/games/{id}/events
func (h *EventsHandler) SSE(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id := gameID(r)

	// Validate the subscription and grab the view for the connected push
	view, err := h.directory.GetPlayerState(r.Context(), id, pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn := sse.NewConn()
	h.registry.Register(id, pid, conn, view)
	defer h.registry.Unregister(id, pid, conn)

	conn.Serve(w, r)
}

// WS handles GET /api/v1/games/{id}/ws
func (h *EventsHandler) WS(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	id := gameID(r)

	view, err := h.directory.GetPlayerState(r.Context(), id, pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := ws.Accept(w, r)
	if err != nil {
		h.logger.Warn("websocket accept failed",
			slog.String("game_id", string(id)),
			slog.String("player_id", string(pid)),
			slog.String("error", err.Error()),
		)
		return
	}

	h.registry.Register(id, pid, conn, view)
	defer h.registry.Unregister(id, pid, conn)

	conn.Serve(r.Context())
}
