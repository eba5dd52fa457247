package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// RevocationStore 刷新令牌注销记录的持久化
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RevocationList 带本地缓存的注销名单，只缓存命中结果
type RevocationList struct {
	store RevocationStore
	local *cache.Cache
}

// NewRevocationList 创建注销名单
func NewRevocationList(store RevocationStore) *RevocationList {
	return &RevocationList{
		store: store,
		local: cache.New(10*time.Minute, 20*time.Minute),
	}
}

// Revoke 注销令牌直到 expiresAt
func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := l.store.Revoke(ctx, jti, expiresAt); err != nil {
		return err
	}
	if ttl := time.Until(expiresAt); ttl > 0 {
		l.local.Set(jti, true, ttl)
	}
	return nil
}

// IsRevoked 检查令牌是否已注销
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if _, ok := l.local.Get(jti); ok {
		return true, nil
	}
	revoked, err := l.store.IsRevoked(ctx, jti)
	if err != nil {
		return false, err
	}
	if revoked {
		l.local.SetDefault(jti, true)
	}
	return revoked, nil
}
