package service

import (
	"context"
	"time"

	"github.com/user/cinestream/internal/logging"
)

// ExpiredTokenPurger 清理过期的注销记录
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CleanupService 清理服务
type CleanupService struct {
	tokens   ExpiredTokenPurger
	interval time.Duration
}

// NewCleanupService 创建清理服务
func NewCleanupService(tokens ExpiredTokenPurger) *CleanupService {
	return &CleanupService{tokens: tokens, interval: 24 * time.Hour}
}

// Start 启动定时清理任务，ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	go func() {
		// 启动时先运行一次
		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce 执行一次清理
func (s *CleanupService) RunOnce(ctx context.Context) {
	affected, err := s.tokens.DeleteExpired(ctx, time.Now())
	if err != nil {
		logging.Error().Err(err).Msg("[CleanupService] 清理过期令牌失败")
		return
	}
	if affected > 0 {
		logging.Info().Int64("deleted", affected).Msg("[CleanupService] 已清理过期令牌")
	}
}
