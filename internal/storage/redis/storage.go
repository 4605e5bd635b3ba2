package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot model.GameSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	key := snapshotKey(snapshot.ID)
	indexKey := gameIndexKey()

	// Pipeline keeps the snapshot and the game index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SnapshotTTL)
	pipe.SAdd(ctx, indexKey, string(snapshot.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.GameID) (model.GameSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.GameSnapshot{}, model.ErrGameNotFound
		}
		return model.GameSnapshot{}, err
	}

	var snapshot model.GameSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.GameSnapshot{}, err
	}
	return snapshot, nil
}

func (s *Storage) ListSnapshots(ctx context.Context) ([]model.GameSnapshot, error) {
	ids, err := s.client.SMembers(ctx, gameIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []model.GameSnapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make([]model.GameSnapshot, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Snapshot may have expired
		}
		var snapshot model.GameSnapshot
		if err := json.Unmarshal([]byte(val.(string)), &snapshot); err != nil {
			continue // Skip invalid data
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, snapshotKey(id))
	pipe.Del(ctx, movesKey(id))
	pipe.SRem(ctx, gameIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Move history operations

func (s *Storage) AppendMove(ctx context.Context, move model.MoveRecord) error {
	data, err := json.Marshal(move)
	if err != nil {
		return err
	}

	key := movesKey(move.GameID)

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.cfg.MovesTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMoves(ctx context.Context, id model.GameID) ([]model.MoveRecord, error) {
	values, err := s.client.LRange(ctx, movesKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]model.MoveRecord, 0, len(values))
	for _, val := range values {
		var move model.MoveRecord
		if err := json.Unmarshal([]byte(val), &move); err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}
