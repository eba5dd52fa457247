package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create 新增评分，同一内容重复评分返回 ErrDuplicateEntry
func (r *RatingRepository) Create(ctx context.Context, rating *model.UserRating) error {
	exists, err := contentEntryExists(r.db.WithContext(ctx).Model(&model.UserRating{}), rating.UserID, rating.Content())
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEntry
	}
	return translate(r.db.WithContext(ctx).Omit("User", "Movie", "TVShow").Create(rating).Error)
}

// ListByUser 获取用户评分，按创建时间倒序
func (r *RatingRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserRating, error) {
	var ratings []model.UserRating
	err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Preload("TVShow.Genres").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error
	return ratings, err
}

// FindByID 获取用户的某条评分
func (r *RatingRepository) FindByID(ctx context.Context, userID, id uint) (*model.UserRating, error) {
	var rating model.UserRating
	err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Preload("TVShow.Genres").
		Where("user_id = ?", userID).
		First(&rating, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

// Update 修改评分与短评
func (r *RatingRepository) Update(ctx context.Context, rating *model.UserRating) error {
	return r.db.WithContext(ctx).
		Model(rating).
		Where("user_id = ?", rating.UserID).
		Updates(map[string]any{
			"rating": rating.Rating,
			"review": rating.Review,
		}).Error
}

// Delete 删除评分
func (r *RatingRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.UserRating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
