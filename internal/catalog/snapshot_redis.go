package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps the catalog under a single Redis key, shared by
// every instance pointed at the same server. No TTL, the slot lives until
// overwritten.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotStore(client *redis.Client, key string) *RedisSnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSnapshotStore{client: client, key: key}
}

func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSnapshotStore) Save(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context) ([]Product, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, nil
	}
	return products, true, nil
}
