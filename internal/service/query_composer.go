package service

import (
	"context"
	"encoding/json"

	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
)

// MovieStore 电影查询
type MovieStore interface {
	Find(ctx context.Context, q repository.CatalogQuery, offset, limit int) ([]model.Movie, error)
	Count(ctx context.Context, q repository.CatalogQuery) (int64, error)
}

// TVShowStore 剧集查询
type TVShowStore interface {
	Find(ctx context.Context, q repository.CatalogQuery, offset, limit int) ([]model.TVShow, error)
	Count(ctx context.Context, q repository.CatalogQuery) (int64, error)
}

// HistoryStore 用户片单历史
type HistoryStore interface {
	ContentIDs(ctx context.Context, userID uint, kind model.ContentKind) ([]uint, error)
	GenreIDs(ctx context.Context, userID uint, kind model.ContentKind) ([]uint, error)
}

// SearchParams 搜索参数，由接口层校验
type SearchParams struct {
	Query       string
	ContentType model.ContentKind // 为空表示两类都查
	Genre       string
	Year        int
	Page        int
	PageSize    int
}

// RecommendParams 推荐参数，由接口层校验
type RecommendParams struct {
	ContentType model.ContentKind
	Genre       string
	Limit       int
}

// ResultPage 一类内容的分页结果，Count 为分页前总数
type ResultPage[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

// SearchResult 搜索结果，未请求的类型不输出
type SearchResult struct {
	Movies  *ResultPage[model.Movie]  `json:"movies,omitempty"`
	TVShows *ResultPage[model.TVShow] `json:"tv_shows,omitempty"`
}

// Recommendations 推荐结果，未请求的类型为 nil 且不输出
type Recommendations struct {
	Movies  []model.Movie
	TVShows []model.TVShow
}

// MarshalJSON 已请求但为空的类型输出为 []
func (r Recommendations) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)
	if r.Movies != nil {
		out["movies"] = r.Movies
	}
	if r.TVShows != nil {
		out["tv_shows"] = r.TVShows
	}
	return json.Marshal(out)
}

// QueryComposer 搜索与推荐
type QueryComposer struct {
	movies  MovieStore
	tvShows TVShowStore
	history HistoryStore
}

// NewQueryComposer 创建搜索与推荐服务
func NewQueryComposer(movies MovieStore, tvShows TVShowStore, history HistoryStore) *QueryComposer {
	return &QueryComposer{movies: movies, tvShows: tvShows, history: history}
}

func wants(requested, kind model.ContentKind) bool {
	return requested == "" || requested == kind
}

// Search 按标题/简介、类型名、年份搜索
func (s *QueryComposer) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	q := repository.CatalogQuery{
		Text:      p.Query,
		GenreName: p.Genre,
		Year:      p.Year,
	}
	offset := (p.Page - 1) * p.PageSize
	result := &SearchResult{}

	if wants(p.ContentType, model.KindMovie) {
		count, err := s.movies.Count(ctx, q)
		if err != nil {
			return nil, storeError("count movies", err)
		}
		movies, err := s.movies.Find(ctx, q, offset, p.PageSize)
		if err != nil {
			return nil, storeError("search movies", err)
		}
		result.Movies = &ResultPage[model.Movie]{Count: count, Results: nonNil(movies)}
	}

	if wants(p.ContentType, model.KindTVShow) {
		count, err := s.tvShows.Count(ctx, q)
		if err != nil {
			return nil, storeError("count tv shows", err)
		}
		shows, err := s.tvShows.Find(ctx, q, offset, p.PageSize)
		if err != nil {
			return nil, storeError("search tv shows", err)
		}
		result.TVShows = &ResultPage[model.TVShow]{Count: count, Results: nonNil(shows)}
	}

	return result, nil
}

// Recommend 为用户推荐片单外的内容
// 1. 排除片单中已有的内容
// 2. 指定类型名时按类型名过滤，忽略历史
// 3. 否则按片单中内容的类型过滤；片单为空时不过滤
func (s *QueryComposer) Recommend(ctx context.Context, userID uint, p RecommendParams) (*Recommendations, error) {
	result := &Recommendations{}

	if wants(p.ContentType, model.KindMovie) {
		q, ok, err := s.recommendQuery(ctx, userID, model.KindMovie, p.Genre)
		if err != nil {
			return nil, err
		}
		result.Movies = []model.Movie{}
		if ok {
			movies, err := s.movies.Find(ctx, q, 0, p.Limit)
			if err != nil {
				return nil, storeError("recommend movies", err)
			}
			result.Movies = nonNil(movies)
		}
	}

	if wants(p.ContentType, model.KindTVShow) {
		q, ok, err := s.recommendQuery(ctx, userID, model.KindTVShow, p.Genre)
		if err != nil {
			return nil, err
		}
		result.TVShows = []model.TVShow{}
		if ok {
			shows, err := s.tvShows.Find(ctx, q, 0, p.Limit)
			if err != nil {
				return nil, storeError("recommend tv shows", err)
			}
			result.TVShows = nonNil(shows)
		}
	}

	return result, nil
}

// recommendQuery 构造某类内容的推荐条件，ok 为 false 表示结果必为空
func (s *QueryComposer) recommendQuery(ctx context.Context, userID uint, kind model.ContentKind, genre string) (repository.CatalogQuery, bool, error) {
	var q repository.CatalogQuery

	watched, err := s.history.ContentIDs(ctx, userID, kind)
	if err != nil {
		return q, false, storeError("load watchlist", err)
	}
	q.ExcludeIDs = watched

	switch {
	case genre != "":
		q.GenreName = genre
	case len(watched) > 0:
		genreIDs, err := s.history.GenreIDs(ctx, userID, kind)
		if err != nil {
			return q, false, storeError("load watchlist genres", err)
		}
		if len(genreIDs) == 0 {
			return q, false, nil
		}
		q.GenreIDs = genreIDs
	}
	return q, true, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
