package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/eights/internal/api/handler"
	"github.com/cardtable/eights/internal/api/middleware"
	"github.com/cardtable/eights/internal/services/autoplay"
	"github.com/cardtable/eights/internal/services/directory"
	"github.com/cardtable/eights/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Directory directory.ControllerInterface
	Autoplay  *autoplay.Service
	Registry  *session.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.Directory)
	autoHandler := handler.NewAutoHandler(cfg.Autoplay)
	eventsHandler := handler.NewEventsHandler(cfg.Directory, cfg.Registry, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.GetPublic).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}/state", gameHandler.GetState).Methods(http.MethodGet)
	games.HandleFunc("/{id}/play", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/{id}/draw", gameHandler.Draw).Methods(http.MethodPost)
	games.HandleFunc("/{id}/auto", autoHandler.Auto).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", gameHandler.Moves).Methods(http.MethodGet)

	// Push subscription routes
	games.HandleFunc("/{id}/events", eventsHandler.SSE).Methods(http.MethodGet)
	games.HandleFunc("/{id}/ws", eventsHandler.WS).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", gameHandler.Health).Methods(http.MethodGet)

	return r
}
