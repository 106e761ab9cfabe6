// Package cache хранит сырые ответы модели в Redis, чтобы повторная загрузка
// той же афиши не вызывала модель ещё раз.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "poster_model_"

// ModelResponses — кэш ответов модели поверх Redis.
type ModelResponses struct {
	client *redis.Client
	ttl    time.Duration
}

func NewModelResponses(client *redis.Client, ttl time.Duration) *ModelResponses {
	return &ModelResponses{client: client, ttl: ttl}
}

// Get возвращает закэшированный ответ. ok == false, если ключа нет.
func (c *ModelResponses) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *ModelResponses) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}
