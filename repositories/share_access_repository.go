package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisShareAccessRepository struct {
	client *redis.Client
}

func NewRedisShareAccessRepository(client *redis.Client) ShareAccessRepository {
	return &redisShareAccessRepository{client: client}
}

func verifiedKey(viewerToken string) string {
	return "share:verified:" + viewerToken
}

func (r *redisShareAccessRepository) MarkVerified(ctx context.Context, viewerToken string, shareID string, ttl time.Duration) error {
	key := verifiedKey(viewerToken)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, shareID)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisShareAccessRepository) IsVerified(ctx context.Context, viewerToken string, shareID string) (bool, error) {
	return r.client.SIsMember(ctx, verifiedKey(viewerToken), shareID).Result()
}

func (r *redisShareAccessRepository) Clear(ctx context.Context, viewerToken string) error {
	return r.client.Del(ctx, verifiedKey(viewerToken)).Err()
}
