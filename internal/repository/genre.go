package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// ListAll 获取全部类型，按名称排序
func (r *GenreRepository) ListAll(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// FirstOrCreate 按名称获取类型，不存在则创建
func (r *GenreRepository) FirstOrCreate(ctx context.Context, name, description string) (*model.Genre, error) {
	genre := &model.Genre{Name: name}
	err := r.db.WithContext(ctx).
		Where(model.Genre{Name: name}).
		Attrs(model.Genre{Description: description}).
		FirstOrCreate(genre).Error
	if err != nil {
		return nil, translate(err)
	}
	return genre, nil
}
