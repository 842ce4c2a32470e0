package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/prysmhq/prysm_backend/internal/models"
)

const (
	rotationKeyPrefix = "refresh:rotation:"
	recordKeyPrefix   = "refresh:record:"
)

// RedisTokenStore keeps refresh records in Redis, keyed by rotation id, with a
// TTL matching the record expiry so stale rows age out on their own. Users stay
// in the relational store; only TokenStore is implemented here.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) CreateRefreshRecord(ctx context.Context, userID, tokenHash, rotationID string, expiresAt time.Time) (*models.RefreshTokenRecord, error) {
	rec := models.RefreshTokenRecord{
		ID:         uuid.NewString(),
		RotationID: rotationID,
		TokenHash:  tokenHash,
		UserID:     userID,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, rotationKeyPrefix+rotationID, payload, ttl)
	pipe.Set(ctx, recordKeyPrefix+rec.ID, rotationID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisTokenStore) FindRefreshRecordByRotationID(ctx context.Context, rotationID string) (*models.RefreshTokenRecord, error) {
	payload, err := s.client.Get(ctx, rotationKeyPrefix+rotationID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec models.RefreshTokenRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisTokenStore) DeleteRefreshRecord(ctx context.Context, id string) error {
	rotationID, err := s.client.Get(ctx, recordKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return s.client.Del(ctx, rotationKeyPrefix+rotationID, recordKeyPrefix+id).Err()
}

// ConsumeRefreshRecords leans on DEL being atomic: for two concurrent calls on
// the same rotation id Redis serializes the deletes and only one returns 1.
func (s *RedisTokenStore) ConsumeRefreshRecords(ctx context.Context, rotationID string) (int64, error) {
	rec, err := s.FindRefreshRecordByRotationID(ctx, rotationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	n, err := s.client.Del(ctx, rotationKeyPrefix+rotationID).Result()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		_ = s.client.Del(ctx, recordKeyPrefix+rec.ID).Err()
	}
	return n, nil
}
