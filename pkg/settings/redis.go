package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/resumo-news/resumo/pkg/domain"
)

// RedisStore keeps settings in a redis string key
type RedisStore struct {
	rdb redis.Cmdable
	key string
}

// NewRedisStore makes a store on top of a redis client
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb, key: domain.SettingsKey}
}

// Load reads and decodes the blob, a missing key means no saved settings
func (r *RedisStore) Load(ctx context.Context) (domain.UserSettings, bool, error) {
	blob, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.UserSettings{}, false, nil
	}
	if err != nil {
		return domain.UserSettings{}, false, fmt.Errorf("load settings from redis: %w", err)
	}
	us, err := Decode(blob)
	if err != nil {
		return domain.UserSettings{}, true, err
	}
	return us, true, nil
}

// Save writes the full settings blob without expiration
func (r *RedisStore) Save(ctx context.Context, us domain.UserSettings) error {
	blob, err := Encode(us)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("save settings to redis: %w", err)
	}
	return nil
}
