package directory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/cardtable/eights/internal/dependencies/clock"
	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/services/engine"
	"github.com/cardtable/eights/internal/services/projection"
	"github.com/cardtable/eights/internal/storage"
)

// Broadcaster receives the views computed after each successful mutation
type Broadcaster interface {
	Deliver(gameID model.GameID, eventType model.EventType, public model.PublicView, players map[model.PlayerID]model.PlayerView)
	DropGame(gameID model.GameID)
}

// entry pairs a live game with the mutex that serializes access to it
type entry struct {
	mu   sync.RWMutex
	game *model.Game
}

// Controller owns every live game and serializes all access per game.
// Mutations run under the entry's write lock; snapshots and views are
// computed before the lock is released, and archival plus broadcast
// delivery happen after.
type Controller struct {
	mu      sync.RWMutex
	entries map[model.GameID]*entry

	engine      *engine.Service
	storage     storage.Storage
	broadcaster Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new game directory
func NewController(
	engine *engine.Service,
	storage storage.Storage,
	broadcaster Broadcaster,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		entries:     make(map[model.GameID]*entry),
		engine:      engine,
		storage:     storage,
		broadcaster: broadcaster,
		clock:       clock,
		logger:      logger.With(slog.String("component", "directory")),
	}
}

// mutationResult carries everything computed inside the critical section
type mutationResult struct {
	snapshot model.GameSnapshot
	public   model.PublicView
	players  map[model.PlayerID]model.PlayerView
}

// CreateGame creates and registers a fresh waiting game
func (c *Controller) CreateGame(ctx context.Context) (model.GameID, error) {
	game := c.engine.NewGame()

	c.mu.Lock()
	c.entries[game.ID] = &entry{game: game}
	c.mu.Unlock()

	c.archive(ctx, model.SnapshotOf(game))

	c.logger.Info("game created", slog.String("game_id", string(game.ID)))
	return game.ID, nil
}

// Join seats a player and broadcasts the new roster
func (c *Controller) Join(ctx context.Context, gameID model.GameID, name string) (model.PlayerID, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	player, err := c.engine.Join(e.game, name)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	result := c.collect(e.game)
	e.mu.Unlock()

	c.archive(ctx, result.snapshot)
	c.broadcaster.Deliver(gameID, model.EventPlayerJoined, result.public, result.players)
	return player.ID, nil
}

// Start activates the game and broadcasts the opening position
func (c *Controller) Start(ctx context.Context, gameID model.GameID) (model.PublicView, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return model.PublicView{}, err
	}

	e.mu.Lock()
	if err := c.engine.Start(e.game); err != nil {
		e.mu.Unlock()
		return model.PublicView{}, err
	}
	result := c.collect(e.game)
	e.mu.Unlock()

	c.archive(ctx, result.snapshot)
	c.broadcaster.Deliver(gameID, model.EventGameStarted, result.public, result.players)
	return result.public, nil
}

// PlayCard plays a card for a player and broadcasts the outcome
func (c *Controller) PlayCard(ctx context.Context, gameID model.GameID, playerID model.PlayerID, card model.Card, declaredSuit *model.Suit) (model.PlayerView, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return model.PlayerView{}, err
	}

	e.mu.Lock()
	if err := c.engine.Play(e.game, playerID, card, declaredSuit); err != nil {
		e.mu.Unlock()
		return model.PlayerView{}, err
	}
	finished := e.game.State == model.GameStateFinished
	result := c.collect(e.game)
	e.mu.Unlock()

	c.archive(ctx, result.snapshot)
	c.recordMove(ctx, model.MoveRecord{
		ID:           uuid.NewString(),
		GameID:       gameID,
		PlayerID:     playerID,
		Type:         model.MovePlay,
		Card:         &card,
		DeclaredSuit: declaredSuit,
		PlayedAt:     c.clock.Now(),
	})

	eventType := model.EventCardPlayed
	if finished {
		eventType = model.EventGameFinished
	}
	c.broadcaster.Deliver(gameID, eventType, result.public, result.players)

	return result.players[playerID], nil
}

// DrawCard draws one card for a player and broadcasts the outcome
func (c *Controller) DrawCard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.Card, model.PlayerView, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return model.Card{}, model.PlayerView{}, err
	}

	e.mu.Lock()
	card, err := c.engine.Draw(e.game, playerID)
	if err != nil {
		e.mu.Unlock()
		return model.Card{}, model.PlayerView{}, err
	}
	result := c.collect(e.game)
	e.mu.Unlock()

	c.archive(ctx, result.snapshot)
	c.recordMove(ctx, model.MoveRecord{
		ID:       uuid.NewString(),
		GameID:   gameID,
		PlayerID: playerID,
		Type:     model.MoveDraw,
		PlayedAt: c.clock.Now(),
	})
	c.broadcaster.Deliver(gameID, model.EventCardDrawn, result.public, result.players)

	return card, result.players[playerID], nil
}

// DeleteGame removes a game entirely: the live entry, every
// subscription, and the archived snapshot and move history
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	c.mu.Lock()
	if _, ok := c.entries[gameID]; !ok {
		c.mu.Unlock()
		return model.ErrGameNotFound
	}
	delete(c.entries, gameID)
	c.mu.Unlock()

	c.broadcaster.DropGame(gameID)

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// GetPublicState returns the view of a game any observer may see
func (c *Controller) GetPublicState(ctx context.Context, gameID model.GameID) (model.PublicView, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return model.PublicView{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return projection.Public(e.game), nil
}

// GetPlayerState returns one player's view of a game
func (c *Controller) GetPlayerState(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.PlayerView, error) {
	e, err := c.entry(gameID)
	if err != nil {
		return model.PlayerView{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return projection.ForPlayer(e.game, playerID)
}

// GetMoves returns a game's archived move history
func (c *Controller) GetMoves(ctx context.Context, gameID model.GameID) ([]model.MoveRecord, error) {
	if _, err := c.entry(gameID); err != nil {
		return nil, err
	}
	return c.storage.GetMoves(ctx, gameID)
}

// LoadGames rehydrates live games from archived snapshots. Call once at
// startup before serving traffic.
func (c *Controller) LoadGames(ctx context.Context) error {
	snapshots, err := c.storage.ListSnapshots(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, snapshot := range snapshots {
		if _, ok := c.entries[snapshot.ID]; ok {
			continue
		}
		c.entries[snapshot.ID] = &entry{game: snapshot.ToGame()}
	}

	c.logger.Info("games loaded from storage", slog.Int("count", len(snapshots)))
	return nil
}

// entry looks up the live entry for a game id
func (c *Controller) entry(gameID model.GameID) (*entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[gameID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return e, nil
}

// collect snapshots the game and projects every view while the caller
// still holds the entry's write lock
func (c *Controller) collect(g *model.Game) mutationResult {
	return mutationResult{
		snapshot: model.SnapshotOf(g),
		public:   projection.Public(g),
		players:  projection.ForAllPlayers(g),
	}
}

// archive persists a snapshot. Archival is best-effort: failures are
// logged and do not fail the mutation that produced the snapshot.
func (c *Controller) archive(ctx context.Context, snapshot model.GameSnapshot) {
	if err := c.storage.SaveSnapshot(ctx, snapshot); err != nil {
		c.logger.Error("failed to archive snapshot",
			slog.String("game_id", string(snapshot.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// recordMove appends to the move history, best-effort like archive
func (c *Controller) recordMove(ctx context.Context, move model.MoveRecord) {
	if err := c.storage.AppendMove(ctx, move); err != nil {
		c.logger.Error("failed to record move",
			slog.String("game_id", string(move.GameID)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context) (model.GameID, error)
	Join(ctx context.Context, gameID model.GameID, name string) (model.PlayerID, error)
	Start(ctx context.Context, gameID model.GameID) (model.PublicView, error)
	PlayCard(ctx context.Context, gameID model.GameID, playerID model.PlayerID, card model.Card, declaredSuit *model.Suit) (model.PlayerView, error)
	DrawCard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.Card, model.PlayerView, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
	GetPublicState(ctx context.Context, gameID model.GameID) (model.PublicView, error)
	GetPlayerState(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (model.PlayerView, error)
	GetMoves(ctx context.Context, gameID model.GameID) ([]model.MoveRecord, error)
	LoadGames(ctx context.Context) error
}

var _ ControllerInterface = (*Controller)(nil)
