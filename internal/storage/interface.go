package storage

import (
	"context"

	"github.com/cardtable/eights/internal/model"
)

// Storage defines the interface for game archival
type Storage interface {
	// Snapshot operations
	SaveSnapshot(ctx context.Context, snapshot model.GameSnapshot) error
	GetSnapshot(ctx context.Context, id model.GameID) (model.GameSnapshot, error)
	ListSnapshots(ctx context.Context) ([]model.GameSnapshot, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Move history operations
	AppendMove(ctx context.Context, move model.MoveRecord) error
	GetMoves(ctx context.Context, id model.GameID) ([]model.MoveRecord, error)
}
