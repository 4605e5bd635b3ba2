package memory

import (
	"context"
	"sync"

	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	snapshots map[model.GameID]model.GameSnapshot
	moves     map[model.GameID][]model.MoveRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		snapshots: make(map[model.GameID]model.GameSnapshot),
		moves:     make(map[model.GameID][]model.MoveRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot model.GameSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = snapshot
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.GameID) (model.GameSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return model.GameSnapshot{}, model.ErrGameNotFound
	}
	return snapshot, nil
}

func (s *Storage) ListSnapshots(ctx context.Context) ([]model.GameSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshots := make([]model.GameSnapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	delete(s.moves, id)
	return nil
}

// Move history operations

func (s *Storage) AppendMove(ctx context.Context, move model.MoveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves[move.GameID] = append(s.moves[move.GameID], move)
	return nil
}

func (s *Storage) GetMoves(ctx context.Context, id model.GameID) ([]model.MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moves := make([]model.MoveRecord, len(s.moves[id]))
	copy(moves, s.moves[id])
	return moves, nil
}
