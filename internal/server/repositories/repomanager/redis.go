package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/redis/go-redis/v9"
)

var newRedisClient = func(opt *redis.Options) redis.UniversalClient {
	return redis.NewClient(opt)
}

type RedisRepositoryManager struct {
	client redis.UniversalClient
	users  *users.Store
}

func NewRedisRepositoryManager(ctx context.Context, addr, password string, db int) (*RedisRepositoryManager, error) {
	client := newRedisClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &RedisRepositoryManager{
		client: client,
		users:  users.NewStore(users.NewRedisRepository(client)),
	}, nil
}

func (m *RedisRepositoryManager) Users() *users.Store { return m.users }

func (m *RedisRepositoryManager) Close() error { return m.client.Close() }
