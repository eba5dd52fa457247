package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevokedTokenStore 基于 Redis 的令牌注销记录，过期由 Redis TTL 处理
type RedisRevokedTokenStore struct {
	client *redis.Client
}

func NewRedisRevokedTokenStore(client *redis.Client) *RedisRevokedTokenStore {
	return &RedisRevokedTokenStore{client: client}
}

// OpenRedis 解析 REDIS_URL 并检查连通性
func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("解析 REDIS_URL 失败: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping 失败: %w", err)
	}
	return client, nil
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}

// Revoke 记录已注销的令牌，保留到令牌过期
func (s *RedisRevokedTokenStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", jti, err)
	}
	return nil
}

// IsRevoked 检查令牌是否已注销
func (s *RedisRevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", jti, err)
	}
	return n > 0, nil
}
