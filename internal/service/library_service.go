package service

import (
	"context"
	"time"

	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
)

// MinRating MaxRating 评分范围（含两端）
const (
	MinRating = 1
	MaxRating = 5
)

// LibraryService 用户片单与评分
type LibraryService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewLibraryService 创建片单与评分服务
func NewLibraryService(repos *repository.Repositories) *LibraryService {
	return &LibraryService{repos: repos, now: time.Now}
}

// ContentRefFrom 由 movie_id/tv_show_id 构造内容引用，必须且只能提供一个
func ContentRefFrom(movieID, tvShowID *uint) (model.ContentRef, error) {
	switch {
	case movieID != nil && tvShowID != nil:
		return model.ContentRef{}, &ValidationError{Fields: map[string]string{
			"non_field_errors": "Cannot provide both movie_id and tv_show_id",
		}}
	case movieID != nil:
		return model.MovieRef(*movieID), nil
	case tvShowID != nil:
		return model.TVShowRef(*tvShowID), nil
	default:
		return model.ContentRef{}, &ValidationError{Fields: map[string]string{
			"non_field_errors": "Either movie_id or tv_show_id must be provided",
		}}
	}
}

// ensureContent 检查引用的内容是否存在
func (s *LibraryService) ensureContent(ctx context.Context, ref model.ContentRef) error {
	var (
		exists bool
		err    error
	)
	switch ref.Kind {
	case model.KindMovie:
		exists, err = s.repos.Movie.Exists(ctx, ref.ID)
	case model.KindTVShow:
		exists, err = s.repos.TVShow.Exists(ctx, ref.ID)
	default:
		return invalid("content_type", "unknown content type")
	}
	if err != nil {
		return storeError("check content", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

// ListWatchlist 获取用户片单
func (s *LibraryService) ListWatchlist(ctx context.Context, userID uint) ([]model.UserWatchlist, error) {
	items, err := s.repos.Watchlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list watchlist", err)
	}
	return nonNil(items), nil
}

// GetWatchlistEntry 获取片单条目，其他用户的条目视为不存在
func (s *LibraryService) GetWatchlistEntry(ctx context.Context, userID, id uint) (*model.UserWatchlist, error) {
	item, err := s.repos.Watchlist.FindByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get watchlist entry", err)
	}
	return item, nil
}

// AddToWatchlist 加入片单
func (s *LibraryService) AddToWatchlist(ctx context.Context, userID uint, ref model.ContentRef, isWatched bool) (*model.UserWatchlist, error) {
	if err := s.ensureContent(ctx, ref); err != nil {
		return nil, err
	}

	item := &model.UserWatchlist{UserID: userID, IsWatched: isWatched}
	item.SetContent(ref)
	if isWatched {
		now := s.now()
		item.WatchedAt = &now
	}
	if err := s.repos.Watchlist.Create(ctx, item); err != nil {
		return nil, storeError("add to watchlist", err)
	}
	return s.GetWatchlistEntry(ctx, userID, item.ID)
}

// UpdateWatchlistEntry 更新观看状态，标记为已看时记录时间，取消时清空
func (s *LibraryService) UpdateWatchlistEntry(ctx context.Context, userID, id uint, isWatched bool) (*model.UserWatchlist, error) {
	item, err := s.GetWatchlistEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch {
	case isWatched && !item.IsWatched:
		now := s.now()
		item.WatchedAt = &now
	case !isWatched:
		item.WatchedAt = nil
	}
	item.IsWatched = isWatched

	if err := s.repos.Watchlist.UpdateWatched(ctx, item); err != nil {
		return nil, storeError("update watchlist entry", err)
	}
	return item, nil
}

// RemoveFromWatchlist 移出片单
func (s *LibraryService) RemoveFromWatchlist(ctx context.Context, userID, id uint) error {
	return storeError("remove from watchlist", s.repos.Watchlist.Delete(ctx, userID, id))
}

// ListRatings 获取用户评分
func (s *LibraryService) ListRatings(ctx context.Context, userID uint) ([]model.UserRating, error) {
	ratings, err := s.repos.Rating.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list ratings", err)
	}
	return nonNil(ratings), nil
}

// GetRating 获取评分，其他用户的评分视为不存在
func (s *LibraryService) GetRating(ctx context.Context, userID, id uint) (*model.UserRating, error) {
	rating, err := s.repos.Rating.FindByID(ctx, userID, id)
	if err != nil {
		return nil, storeError("get rating", err)
	}
	return rating, nil
}

// RateContent 对内容评分，同一内容只能评一次
func (s *LibraryService) RateContent(ctx context.Context, userID uint, ref model.ContentRef, score int, review string) (*model.UserRating, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if err := s.ensureContent(ctx, ref); err != nil {
		return nil, err
	}

	rating := &model.UserRating{UserID: userID, Rating: score, Review: review}
	rating.SetContent(ref)
	if err := s.repos.Rating.Create(ctx, rating); err != nil {
		return nil, storeError("rate content", err)
	}
	return s.GetRating(ctx, userID, rating.ID)
}

// UpdateRating 修改评分或短评，nil 表示不修改
func (s *LibraryService) UpdateRating(ctx context.Context, userID, id uint, score *int, review *string) (*model.UserRating, error) {
	if score != nil {
		if err := validateScore(*score); err != nil {
			return nil, err
		}
	}

	rating, err := s.GetRating(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if score != nil {
		rating.Rating = *score
	}
	if review != nil {
		rating.Review = *review
	}

	if err := s.repos.Rating.Update(ctx, rating); err != nil {
		return nil, storeError("update rating", err)
	}
	return rating, nil
}

// DeleteRating 删除评分
func (s *LibraryService) DeleteRating(ctx context.Context, userID, id uint) error {
	return storeError("delete rating", s.repos.Rating.Delete(ctx, userID, id))
}

func validateScore(score int) error {
	if score < MinRating || score > MaxRating {
		return invalid("rating", "Rating must be between 1 and 5")
	}
	return nil
}
