// Package testutil 测试用的内存数据库与片库数据
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 创建迁移完成的内存 SQLite 数据库，测试结束后关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// Catalog 测试片库，按名称索引
type Catalog struct {
	Genres  map[string]model.Genre
	Movies  map[string]model.Movie
	TVShows map[string]model.TVShow
}

type fixture struct {
	title  string
	date   model.Date
	people string
	desc   string
	genres []string
	flags  [2]bool // featured, trending
}

var genreNames = []string{"Action", "Comedy", "Drama", "Sci-Fi", "Thriller"}

var movieFixtures = []fixture{
	{"The Dark Knight", model.NewDate(2008, time.July, 18), "Christopher Nolan",
		"When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest tests.",
		[]string{"Action", "Drama", "Thriller"}, [2]bool{true, true}},
	{"Inception", model.NewDate(2010, time.July, 16), "Christopher Nolan",
		"A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.",
		[]string{"Action", "Sci-Fi", "Thriller"}, [2]bool{true, false}},
	{"Interstellar", model.NewDate(2014, time.November, 7), "Christopher Nolan",
		"A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		[]string{"Drama", "Sci-Fi"}, [2]bool{false, true}},
	{"The Shawshank Redemption", model.NewDate(1994, time.September, 23), "Frank Darabont",
		"Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		[]string{"Drama"}, [2]bool{false, false}},
	{"The Hangover", model.NewDate(2009, time.June, 5), "Todd Phillips",
		"Three buddies wake up from a bachelor party in Las Vegas with no memory of the previous night.",
		[]string{"Comedy"}, [2]bool{false, false}},
	{"Iron Man", model.NewDate(2008, time.May, 2), "Jon Favreau",
		"After being held captive in an Afghan cave, billionaire engineer Tony Stark creates a unique weaponized suit of armor.",
		[]string{"Action", "Sci-Fi"}, [2]bool{false, false}},
}

var tvShowFixtures = []fixture{
	{"Breaking Bad", model.NewDate(2008, time.January, 20), "Vince Gilligan",
		"A high school chemistry teacher turned manufacturer partners with a former student.",
		[]string{"Drama", "Thriller"}, [2]bool{true, true}},
	{"Stranger Things", model.NewDate(2016, time.July, 15), "The Duffer Brothers",
		"When a young boy disappears, his friends must confront terrifying supernatural forces.",
		[]string{"Drama", "Sci-Fi"}, [2]bool{true, false}},
	{"Dark", model.NewDate(2017, time.December, 1), "Baran bo Odar",
		"A family saga with a supernatural twist, set in a German town where the disappearance of two young children exposes relationships among four families.",
		[]string{"Drama", "Sci-Fi", "Thriller"}, [2]bool{false, true}},
	{"The Office", model.NewDate(2005, time.March, 24), "Greg Daniels",
		"A mockumentary on a group of typical office workers.",
		[]string{"Comedy"}, [2]bool{false, false}},
}

// SeedCatalog 写入测试片库
func SeedCatalog(t testing.TB, repos *repository.Repositories) *Catalog {
	t.Helper()
	ctx := context.Background()

	cat := &Catalog{
		Genres:  map[string]model.Genre{},
		Movies:  map[string]model.Movie{},
		TVShows: map[string]model.TVShow{},
	}
	for _, name := range genreNames {
		g, err := repos.Genre.FirstOrCreate(ctx, name, name+" content")
		require.NoError(t, err)
		cat.Genres[name] = *g
	}
	pick := func(names []string) []model.Genre {
		out := make([]model.Genre, 0, len(names))
		for _, n := range names {
			out = append(out, cat.Genres[n])
		}
		return out
	}

	for _, f := range movieFixtures {
		m := model.Movie{
			Title:       f.title,
			Description: f.desc,
			ReleaseDate: f.date,
			Duration:    120,
			Rating:      model.RatingPG13,
			Director:    f.people,
			Cast:        model.CastList{"Lead Actor", "Supporting Actor"},
			Genres:      pick(f.genres),
			IsFeatured:  f.flags[0],
			IsTrending:  f.flags[1],
		}
		require.NoError(t, repos.Movie.Upsert(ctx, &m))
		cat.Movies[f.title] = m
	}
	for _, f := range tvShowFixtures {
		s := model.TVShow{
			Title:            f.title,
			Description:      f.desc,
			FirstAirDate:     f.date,
			NumberOfSeasons:  3,
			NumberOfEpisodes: 30,
			Rating:           "TV-14",
			Creator:          f.people,
			Cast:             model.CastList{"Lead Actor"},
			Genres:           pick(f.genres),
			IsFeatured:       f.flags[0],
			IsTrending:       f.flags[1],
			Status:           model.ShowOngoing,
		}
		require.NoError(t, repos.TVShow.Upsert(ctx, &s))
		cat.TVShows[f.title] = s
	}
	return cat
}

// CreateUser 创建测试用户
func CreateUser(t testing.TB, repos *repository.Repositories, username, password string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, repos.User.Create(context.Background(), u, password))
	return u
}
