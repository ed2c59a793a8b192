package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"campustrade/internal/domain/entity"
	domainrepo "campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

const guestCartKeyPrefix = "guest_cart:"

// redisGuestCartRepository keeps each guest cart as a single JSON blob under
// the guest's cart token, mirroring the shape a browser would keep in local
// storage. Entries expire after the configured TTL.
type redisGuestCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuestCartRepository(client *redis.Client, ttl time.Duration) domainrepo.GuestCartRepository {
	return &redisGuestCartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisGuestCartRepository) Get(ctx context.Context, token string) ([]entity.GuestCartItem, error) {
	raw, err := r.client.Get(ctx, guestCartKeyPrefix+token).Result()
	if err == redis.Nil {
		return []entity.GuestCartItem{}, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to read guest cart", err)
	}

	var items []entity.GuestCartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// A malformed blob is treated as an empty cart rather than trusted.
		return []entity.GuestCartItem{}, nil
	}

	return items, nil
}

func (r *redisGuestCartRepository) Save(ctx context.Context, token string, items []entity.GuestCartItem) error {
	if len(items) == 0 {
		return r.Delete(ctx, token)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Internal("Failed to encode guest cart", err)
	}

	if err := r.client.Set(ctx, guestCartKeyPrefix+token, raw, r.ttl).Err(); err != nil {
		return errors.Internal("Failed to save guest cart", err)
	}

	return nil
}

func (r *redisGuestCartRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, guestCartKeyPrefix+token).Err(); err != nil {
		return errors.Internal("Failed to delete guest cart", err)
	}
	return nil
}
