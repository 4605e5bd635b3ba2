package session

import (
	"log/slog"
	"sync"

	"github.com/cardtable/eights/internal/model"
)

// Registry tracks which connection, if any, each player of each game is
// subscribed on. A player has at most one connection; registering again
// replaces and closes the previous one.
type Registry struct {
	mu    sync.Mutex
	games map[model.GameID]map[model.PlayerID]Conn

	logger *slog.Logger
}

// NewRegistry creates an empty Registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		games:  make(map[model.GameID]map[model.PlayerID]Conn),
		logger: logger.With(slog.String("component", "session_registry")),
	}
}

// Register subscribes a connection and immediately pushes the given view
// as a connected event. Any previous connection for the player is closed.
func (r *Registry) Register(gameID model.GameID, playerID model.PlayerID, conn Conn, initialView model.PlayerView) {
	r.mu.Lock()
	conns, ok := r.games[gameID]
	if !ok {
		conns = make(map[model.PlayerID]Conn)
		r.games[gameID] = conns
	}
	old := conns[playerID]
	conns[playerID] = conn
	r.mu.Unlock()

	if old != nil {
		old.Close()
		r.logger.Debug("replaced existing connection",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
		)
	}

	msg := model.UpdateMessage{
		Type: model.EventConnected,
		View: model.PlayerPayload(initialView),
	}
	if err := conn.Send(msg); err != nil {
		r.logger.Warn("initial send failed",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		r.Unregister(gameID, playerID, conn)
	}
}

// Unregister removes a connection if it is still the player's current
// one, and closes it. Stale or unknown conns are ignored.
func (r *Registry) Unregister(gameID model.GameID, playerID model.PlayerID, conn Conn) {
	r.mu.Lock()
	conns, ok := r.games[gameID]
	if !ok || conns[playerID] != conn {
		r.mu.Unlock()
		return
	}
	delete(conns, playerID)
	if len(conns) == 0 {
		delete(r.games, gameID)
	}
	r.mu.Unlock()

	conn.Close()
}

// Connections returns the current conn per subscribed player of a game
func (r *Registry) Connections(gameID model.GameID) map[model.PlayerID]Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := make(map[model.PlayerID]Conn, len(r.games[gameID]))
	for playerID, conn := range r.games[gameID] {
		conns[playerID] = conn
	}
	return conns
}

// DropGame closes and removes every connection for a game
func (r *Registry) DropGame(gameID model.GameID) {
	r.mu.Lock()
	conns := r.games[gameID]
	delete(r.games, gameID)
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
