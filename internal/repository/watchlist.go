package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create 加入片单，同一内容重复加入返回 ErrDuplicateEntry
func (r *WatchlistRepository) Create(ctx context.Context, item *model.UserWatchlist) error {
	exists, err := contentEntryExists(r.db.WithContext(ctx).Model(&model.UserWatchlist{}), item.UserID, item.Content())
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEntry
	}
	return translate(r.db.WithContext(ctx).Omit("User", "Movie", "TVShow").Create(item).Error)
}

// ListByUser 获取用户片单，按加入时间倒序
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserWatchlist, error) {
	var items []model.UserWatchlist
	err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Preload("TVShow.Genres").
		Where("user_id = ?", userID).
		Order("added_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

// FindByID 获取用户的某条片单条目
func (r *WatchlistRepository) FindByID(ctx context.Context, userID, id uint) (*model.UserWatchlist, error) {
	var item model.UserWatchlist
	err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Preload("TVShow.Genres").
		Where("user_id = ?", userID).
		First(&item, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// UpdateWatched 更新观看状态
func (r *WatchlistRepository) UpdateWatched(ctx context.Context, item *model.UserWatchlist) error {
	return r.db.WithContext(ctx).
		Model(&model.UserWatchlist{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]any{
			"is_watched": item.IsWatched,
			"watched_at": item.WatchedAt,
		}).Error
}

// Delete 移出片单
func (r *WatchlistRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.UserWatchlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ContentIDs 用户片单中某类内容的 ID
func (r *WatchlistRepository) ContentIDs(ctx context.Context, userID uint, kind model.ContentKind) ([]uint, error) {
	column := contentColumn(kind)
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.UserWatchlist{}).
		Where("user_id = ? AND "+column+" IS NOT NULL", userID).
		Distinct().
		Pluck(column, &ids).Error
	return ids, err
}

// GenreIDs 用户片单中某类内容涉及的类型 ID（去重）
func (r *WatchlistRepository) GenreIDs(ctx context.Context, userID uint, kind model.ContentKind) ([]uint, error) {
	column := contentColumn(kind)
	joinTable := movieTable.joinTable
	if kind == model.KindTVShow {
		joinTable = tvShowTable.joinTable
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Table(joinTable+" AS j").
		Joins("JOIN user_watchlist w ON w."+column+" = j."+column).
		Where("w.user_id = ?", userID).
		Distinct().
		Order("j.genre_id").
		Pluck("j.genre_id", &ids).Error
	return ids, err
}

// contentColumn 内容类型对应的外键列
func contentColumn(kind model.ContentKind) string {
	if kind == model.KindTVShow {
		return "tv_show_id"
	}
	return "movie_id"
}

// contentEntryExists 检查用户是否已有指向该内容的记录
func contentEntryExists(db *gorm.DB, userID uint, ref model.ContentRef) (bool, error) {
	var count int64
	err := db.Where("user_id = ? AND "+contentColumn(ref.Kind)+" = ?", userID, ref.ID).Count(&count).Error
	return count > 0, err
}
