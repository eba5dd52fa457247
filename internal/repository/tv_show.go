package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TVShowRepository struct {
	db *gorm.DB
}

func NewTVShowRepository(db *gorm.DB) *TVShowRepository {
	return &TVShowRepository{db: db}
}

// Find 按条件分页查询剧集，limit <= 0 表示不限制
func (r *TVShowRepository) Find(ctx context.Context, q CatalogQuery, offset, limit int) ([]model.TVShow, error) {
	var shows []model.TVShow
	db := r.db.WithContext(ctx).
		Model(&model.TVShow{}).
		Scopes(tvShowTable.filter(q)).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name ASC") }).
		Order(tvShowTable.order(q.Ordering))
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&shows).Error
	return shows, err
}

// Count 统计满足条件的剧集数量
func (r *TVShowRepository) Count(ctx context.Context, q CatalogQuery) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TVShow{}).Scopes(tvShowTable.filter(q)).Count(&count).Error
	return count, err
}

// FindByID 根据 ID 获取剧集详情
func (r *TVShowRepository) FindByID(ctx context.Context, id uint) (*model.TVShow, error) {
	var show model.TVShow
	err := r.db.WithContext(ctx).Preload("Genres").First(&show, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &show, nil
}

// Exists 检查剧集是否存在
func (r *TVShowRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TVShow{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Upsert 按 TMDB ID 创建或更新剧集（无 TMDB ID 时按标题），并替换其类型
func (r *TVShowRepository) Upsert(ctx context.Context, show *model.TVShow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := show.Genres
		show.Genres = nil

		var existing model.TVShow
		lookup := tx.Where("title = ?", show.Title)
		if show.TMDBID != nil {
			lookup = tx.Where("tmdb_id = ?", *show.TMDBID)
		}
		err := lookup.First(&existing).Error
		switch {
		case err == nil:
			show.ID = existing.ID
			show.CreatedAt = existing.CreatedAt
			if err := tx.Omit(clause.Associations).Save(show).Error; err != nil {
				return translate(err)
			}
		case translate(err) == ErrRecordNotFound:
			if err := tx.Omit(clause.Associations).Create(show).Error; err != nil {
				return translate(err)
			}
		default:
			return err
		}

		show.Genres = genres
		return tx.Model(show).Association("Genres").Replace(genres)
	})
}
