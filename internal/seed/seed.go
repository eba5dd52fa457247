// Package seed 写入示例类型、电影与剧集
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/user/cinestream/internal/logging"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
)

type genreSeed struct {
	name        string
	description string
}

var genres = []genreSeed{
	{"Action", "High-energy action films"},
	{"Comedy", "Humorous and entertaining content"},
	{"Drama", "Serious and emotional storytelling"},
	{"Horror", "Scary and suspenseful content"},
	{"Romance", "Love stories and romantic content"},
	{"Sci-Fi", "Science fiction and futuristic content"},
	{"Thriller", "Suspenseful and exciting content"},
}

type movieSeed struct {
	movie  model.Movie
	genres []string
}

type tvShowSeed struct {
	show   model.TVShow
	genres []string
}

func movies() []movieSeed {
	return []movieSeed{
		{
			movie: model.Movie{
				Title:       "The Dark Knight",
				Description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
				ReleaseDate: model.NewDate(2008, time.July, 18),
				Duration:    152,
				Rating:      model.RatingPG13,
				PosterURL:   "https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
				BackdropURL: "https://image.tmdb.org/t/p/original/hkBaDkMWbLaf8B1lsWsKX7Ew3Xq.jpg",
				Director:    "Christopher Nolan",
				Cast:        model.CastList{"Christian Bale", "Heath Ledger", "Aaron Eckhart"},
				IsFeatured:  true,
				IsTrending:  true,
			},
			genres: []string{"Action", "Drama", "Thriller"},
		},
		{
			movie: model.Movie{
				Title:       "Inception",
				Description: "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
				ReleaseDate: model.NewDate(2010, time.July, 16),
				Duration:    148,
				Rating:      model.RatingPG13,
				PosterURL:   "https://image.tmdb.org/t/p/w500/edv5CZvWj09upOsy2Y6IwDhK8bt.jpg",
				BackdropURL: "https://image.tmdb.org/t/p/original/s3TBrRGB1iav7gFOCNx3H31MoES.jpg",
				Director:    "Christopher Nolan",
				Cast:        model.CastList{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Ellen Page"},
				IsFeatured:  true,
			},
			genres: []string{"Action", "Sci-Fi", "Thriller"},
		},
	}
}

func tvShows() []tvShowSeed {
	lastAir := model.NewDate(2013, time.September, 29)
	return []tvShowSeed{
		{
			show: model.TVShow{
				Title:            "Breaking Bad",
				Description:      "A high school chemistry teacher turned methamphetamine manufacturer partners with a former student to secure his family's financial future.",
				FirstAirDate:     model.NewDate(2008, time.January, 20),
				LastAirDate:      &lastAir,
				NumberOfSeasons:  5,
				NumberOfEpisodes: 62,
				Rating:           "TV-MA",
				PosterURL:        "https://image.tmdb.org/t/p/w500/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
				BackdropURL:      "https://image.tmdb.org/t/p/original/tsRy63Mu5cu8etL1X7ZLyf7UP1M.jpg",
				Creator:          "Vince Gilligan",
				Cast:             model.CastList{"Bryan Cranston", "Aaron Paul", "Anna Gunn"},
				IsFeatured:       true,
				IsTrending:       true,
				Status:           model.ShowEnded,
			},
			genres: []string{"Drama", "Thriller"},
		},
		{
			show: model.TVShow{
				Title:            "Stranger Things",
				Description:      "When a young boy disappears, his mother, a police chief and his friends must confront terrifying supernatural forces.",
				FirstAirDate:     model.NewDate(2016, time.July, 15),
				NumberOfSeasons:  4,
				NumberOfEpisodes: 34,
				Rating:           "TV-14",
				PosterURL:        "https://image.tmdb.org/t/p/w500/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
				BackdropURL:      "https://image.tmdb.org/t/p/original/56v2KjBlU4XaOv9rVYEQypROD7P.jpg",
				Creator:          "The Duffer Brothers",
				Cast:             model.CastList{"Millie Bobby Brown", "Finn Wolfhard", "Winona Ryder"},
				IsFeatured:       true,
				Status:           model.ShowOngoing,
			},
			genres: []string{"Drama", "Horror", "Sci-Fi"},
		},
	}
}

// Run 写入示例数据，可重复执行
func Run(ctx context.Context, repos *repository.Repositories) error {
	byName := make(map[string]model.Genre, len(genres))
	for _, g := range genres {
		genre, err := repos.Genre.FirstOrCreate(ctx, g.name, g.description)
		if err != nil {
			return fmt.Errorf("seed genre %s: %w", g.name, err)
		}
		byName[genre.Name] = *genre
	}
	logging.Info().Int("count", len(byName)).Msg("[seed] 类型已写入")

	pick := func(names []string) []model.Genre {
		out := make([]model.Genre, 0, len(names))
		for _, name := range names {
			if g, ok := byName[name]; ok {
				out = append(out, g)
			}
		}
		return out
	}

	for _, s := range movies() {
		movie := s.movie
		movie.Genres = pick(s.genres)
		if err := repos.Movie.Upsert(ctx, &movie); err != nil {
			return fmt.Errorf("seed movie %s: %w", movie.Title, err)
		}
		logging.Info().Uint("id", movie.ID).Str("title", movie.Title).Msg("[seed] 电影已写入")
	}

	for _, s := range tvShows() {
		show := s.show
		show.Genres = pick(s.genres)
		if err := repos.TVShow.Upsert(ctx, &show); err != nil {
			return fmt.Errorf("seed tv show %s: %w", show.Title, err)
		}
		logging.Info().Uint("id", show.ID).Str("title", show.Title).Msg("[seed] 剧集已写入")
	}

	return nil
}
