package model

import (
	"time"
)

// UserWatchlist 用户片单条目，MovieID 与 TVShowID 有且仅有一个非空
type UserWatchlist struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user" gorm:"not null;uniqueIndex:idx_watchlist_user_movie;uniqueIndex:idx_watchlist_user_tv_show"`
	User      *User      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	MovieID   *uint      `json:"-" gorm:"uniqueIndex:idx_watchlist_user_movie"`
	Movie     *Movie     `json:"movie" gorm:"constraint:OnDelete:CASCADE;"`
	TVShowID  *uint      `json:"-" gorm:"column:tv_show_id;uniqueIndex:idx_watchlist_user_tv_show"`
	TVShow    *TVShow    `json:"tv_show" gorm:"foreignKey:TVShowID;constraint:OnDelete:CASCADE;"`
	AddedAt   time.Time  `json:"added_at" gorm:"autoCreateTime"`
	IsWatched bool       `json:"is_watched"`
	WatchedAt *time.Time `json:"watched_at"`
}

func (UserWatchlist) TableName() string {
	return "user_watchlist"
}

// Content 条目指向的内容
func (w *UserWatchlist) Content() ContentRef {
	return refOf(w.MovieID, w.TVShowID)
}

// SetContent 设置条目指向的内容
func (w *UserWatchlist) SetContent(ref ContentRef) {
	w.MovieID, w.TVShowID = columnsOf(ref)
}

// UserRating 用户评分，MovieID 与 TVShowID 有且仅有一个非空
type UserRating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user" gorm:"not null;uniqueIndex:idx_rating_user_movie;uniqueIndex:idx_rating_user_tv_show"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	MovieID   *uint     `json:"-" gorm:"uniqueIndex:idx_rating_user_movie"`
	Movie     *Movie    `json:"movie" gorm:"constraint:OnDelete:CASCADE;"`
	TVShowID  *uint     `json:"-" gorm:"column:tv_show_id;uniqueIndex:idx_rating_user_tv_show"`
	TVShow    *TVShow   `json:"tv_show" gorm:"foreignKey:TVShowID;constraint:OnDelete:CASCADE;"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Review    string    `json:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserRating) TableName() string {
	return "user_ratings"
}

// Content 评分指向的内容
func (r *UserRating) Content() ContentRef {
	return refOf(r.MovieID, r.TVShowID)
}

// SetContent 设置评分指向的内容
func (r *UserRating) SetContent(ref ContentRef) {
	r.MovieID, r.TVShowID = columnsOf(ref)
}

func refOf(movieID, tvShowID *uint) ContentRef {
	if movieID != nil {
		return MovieRef(*movieID)
	}
	if tvShowID != nil {
		return TVShowRef(*tvShowID)
	}
	return ContentRef{}
}

func columnsOf(ref ContentRef) (movieID, tvShowID *uint) {
	id := ref.ID
	if ref.Kind == KindTVShow {
		return nil, &id
	}
	return &id, nil
}

// RevokedToken 已注销的刷新令牌
type RevokedToken struct {
	JTI       string    `json:"jti" gorm:"primaryKey;size:36"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
