package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend хранит каждую коллекцию отдельным ключом <prefix>:<collection>
type RedisBackend struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBackend создает backend поверх клиента Redis
func NewRedisBackend(client redis.Cmdable, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// Load читает документ коллекции
func (b *RedisBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	payload, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Save перезаписывает документ коллекции без срока жизни
func (b *RedisBackend) Save(ctx context.Context, collection string, payload []byte) error {
	return b.client.Set(ctx, b.key(collection), payload, 0).Err()
}

func (b *RedisBackend) key(collection string) string {
	if b.prefix == "" {
		return collection
	}
	return b.prefix + ":" + collection
}
