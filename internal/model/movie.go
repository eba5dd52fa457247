package model

import (
	"time"
)

// Genre 类型
type Genre struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (Genre) TableName() string {
	return "genres"
}

// Movie 电影
type Movie struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	ReleaseDate Date      `json:"release_date" gorm:"not null;index"`
	Duration    int       `json:"duration"` // 分钟
	Rating      string    `json:"rating" gorm:"size:10"`
	PosterURL   string    `json:"poster_url" gorm:"size:500"`
	BackdropURL string    `json:"backdrop_url" gorm:"size:500"`
	TrailerURL  string    `json:"trailer_url" gorm:"size:500"`
	Genres      []Genre   `json:"genres" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Director    string    `json:"director" gorm:"size:100"`
	Cast        CastList  `json:"cast"`
	TMDBID      *int      `json:"tmdb_id" gorm:"column:tmdb_id;uniqueIndex"`
	IsFeatured  bool      `json:"is_featured" gorm:"index"`
	IsTrending  bool      `json:"is_trending" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// TVShow 剧集
type TVShow struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Title            string    `json:"title" gorm:"size:200;not null;index"`
	Description      string    `json:"description" gorm:"type:text"`
	FirstAirDate     Date      `json:"first_air_date" gorm:"not null;index"`
	LastAirDate      *Date     `json:"last_air_date"`
	NumberOfSeasons  int       `json:"number_of_seasons"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	Rating           string    `json:"rating" gorm:"size:10"`
	PosterURL        string    `json:"poster_url" gorm:"size:500"`
	BackdropURL      string    `json:"backdrop_url" gorm:"size:500"`
	TrailerURL       string    `json:"trailer_url" gorm:"size:500"`
	Genres           []Genre   `json:"genres" gorm:"many2many:tv_show_genres;joinForeignKey:TVShowID;joinReferences:GenreID;constraint:OnDelete:CASCADE;"`
	Creator          string    `json:"creator" gorm:"size:100"`
	Cast             CastList  `json:"cast"`
	TMDBID           *int      `json:"tmdb_id" gorm:"column:tmdb_id;uniqueIndex"`
	IsFeatured       bool      `json:"is_featured" gorm:"index"`
	IsTrending       bool      `json:"is_trending" gorm:"index"`
	Status           string    `json:"status" gorm:"size:20;not null;default:ongoing"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (TVShow) TableName() string {
	return "tv_shows"
}
