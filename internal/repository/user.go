package repository

import (
	"context"

	"github.com/user/cinestream/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，password 为空时不设置密码（第三方登录）
func (r *UserRepository) Create(ctx context.Context, user *model.User, password string) error {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	if user.SubscriptionPlan == "" {
		user.SubscriptionPlan = model.PlanBasic
	}
	user.IsActive = true
	user.IsActiveSubscription = true

	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// FindByUsername 根据用户名查找用户
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByGoogleID 根据 Google 账号 ID 查找用户
func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// CheckPassword 验证密码
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	if user.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdatePassword 更新密码
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password_hash", string(hash)).Error
}

// UpdateProfile 更新资料字段，fields 的键为列名
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error)
}

// UpdateProfilePicture 更新头像地址
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, userID uint, picture string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("profile_picture", picture).Error
}
