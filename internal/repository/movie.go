package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Find 按条件分页查询电影，limit <= 0 表示不限制
func (r *MovieRepository) Find(ctx context.Context, q CatalogQuery, offset, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	db := r.db.WithContext(ctx).
		Model(&model.Movie{}).
		Scopes(movieTable.filter(q)).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name ASC") }).
		Order(movieTable.order(q.Ordering))
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&movies).Error
	return movies, err
}

// Count 统计满足条件的电影数量
func (r *MovieRepository) Count(ctx context.Context, q CatalogQuery) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Scopes(movieTable.filter(q)).Count(&count).Error
	return count, err
}

// FindByID 根据 ID 获取电影详情
func (r *MovieRepository) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Preload("Genres").First(&movie, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

// Exists 检查电影是否存在
func (r *MovieRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Upsert 按 TMDB ID 创建或更新电影（无 TMDB ID 时按标题），并替换其类型
func (r *MovieRepository) Upsert(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := movie.Genres
		movie.Genres = nil

		var existing model.Movie
		lookup := tx.Where("title = ?", movie.Title)
		if movie.TMDBID != nil {
			lookup = tx.Where("tmdb_id = ?", *movie.TMDBID)
		}
		err := lookup.First(&existing).Error
		switch {
		case err == nil:
			movie.ID = existing.ID
			movie.CreatedAt = existing.CreatedAt
			if err := tx.Omit(clause.Associations).Save(movie).Error; err != nil {
				return translate(err)
			}
		case translate(err) == ErrRecordNotFound:
			if err := tx.Omit(clause.Associations).Create(movie).Error; err != nil {
				return translate(err)
			}
		default:
			return err
		}

		movie.Genres = genres
		return tx.Model(movie).Association("Genres").Replace(genres)
	})
}
