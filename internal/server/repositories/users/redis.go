package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gophauth:user:"

// RedisRepository stores each user as a JSON string under gophauth:user:<email>.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

// Save uses SETNX so concurrent writers for one email cannot both succeed.
func (r *RedisRepository) Save(ctx context.Context, user *models.User) error {
	b, err := json.Marshal(newRecord(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	ok, err := r.client.SetNX(ctx, redisKeyPrefix+user.Email, b, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: redis setnx: %w", common.ErrStoreUnavailable, err)
	}
	if !ok {
		return common.ErrEmailAlreadyInUse
	}
	return nil
}

func (r *RedisRepository) FindByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: redis get: %w", common.ErrStoreUnavailable, err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal user: %w", err)
	}

	u, err := rec.user()
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

var _ Repository = (*RedisRepository)(nil)
