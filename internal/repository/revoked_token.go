package repository

import (
	"context"
	"time"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

// Revoke 记录已注销的令牌，重复注销不报错
func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}

// IsRevoked 检查令牌是否已注销
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// DeleteExpired 清理已过期的注销记录
func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.RevokedToken{})
	return res.RowsAffected, res.Error
}
