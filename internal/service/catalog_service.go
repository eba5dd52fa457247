package service

import (
	"context"
	"time"

	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
	"github.com/user/cinestream/internal/utils"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultPageSize 默认每页条数
	DefaultPageSize = 20
	// MaxPageSize 每页条数上限
	MaxPageSize = 50

	featuredLimit    = 5
	trendingLimit    = 10
	newReleaseLimit  = 10
	newReleaseWindow = 30 * 24 * time.Hour
)

// CatalogFilter 电影/剧集列表的过滤条件
type CatalogFilter struct {
	Search     string
	GenreID    uint
	GenreName  string
	Year       int
	Rating     string
	Status     string
	IsFeatured *bool
	IsTrending *bool
	Ordering   string
	Page       int
	PageSize   int
}

func (f CatalogFilter) query() repository.CatalogQuery {
	return repository.CatalogQuery{
		Text:       f.Search,
		TextPeople: true,
		GenreID:    f.GenreID,
		GenreName:  f.GenreName,
		Year:       f.Year,
		Rating:     f.Rating,
		Status:     f.Status,
		IsFeatured: f.IsFeatured,
		IsTrending: f.IsTrending,
		Ordering:   f.Ordering,
	}
}

func (f *CatalogFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// ListPage 列表分页结果
type ListPage[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

// FeaturedContent 首页推荐位
type FeaturedContent struct {
	FeaturedMovies  []model.Movie  `json:"featured_movies"`
	FeaturedTVShows []model.TVShow `json:"featured_tv_shows"`
	TrendingMovies  []model.Movie  `json:"trending_movies"`
	TrendingTVShows []model.TVShow `json:"trending_tv_shows"`
}

// NewReleases 近期上映
type NewReleases struct {
	NewMovies  []model.Movie  `json:"new_movies"`
	NewTVShows []model.TVShow `json:"new_tv_shows"`
}

// TrendingContent 热门内容
type TrendingContent struct {
	TrendingMovies  []model.Movie  `json:"trending_movies"`
	TrendingTVShows []model.TVShow `json:"trending_tv_shows"`
}

// CatalogService 片库浏览
type CatalogService struct {
	repos    *repository.Repositories
	genres   *utils.TTLCache[[]model.Genre]
	featured *utils.TTLCache[*FeaturedContent]
	trending *utils.TTLCache[*TrendingContent]
	sf       singleflight.Group
	now      func() time.Time
}

// NewCatalogService 创建片库浏览服务，cacheTTL 为推荐位缓存有效期
func NewCatalogService(repos *repository.Repositories, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		repos:    repos,
		genres:   utils.NewTTLCache[[]model.Genre](1, cacheTTL),
		featured: utils.NewTTLCache[*FeaturedContent](1, cacheTTL),
		trending: utils.NewTTLCache[*TrendingContent](1, cacheTTL),
		now:      time.Now,
	}
}

// cached 读取缓存，未命中时合并并发请求后加载
func cached[T any](s *CatalogService, c *utils.TTLCache[T], key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// ListGenres 获取全部类型
func (s *CatalogService) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return cached(s, s.genres, "genres", func() ([]model.Genre, error) {
		genres, err := s.repos.Genre.ListAll(ctx)
		if err != nil {
			return nil, storeError("list genres", err)
		}
		return nonNil(genres), nil
	})
}

// ListMovies 分页查询电影
func (s *CatalogService) ListMovies(ctx context.Context, f CatalogFilter) (*ListPage[model.Movie], error) {
	f.normalize()
	f.Status = ""
	q := f.query()

	count, err := s.repos.Movie.Count(ctx, q)
	if err != nil {
		return nil, storeError("count movies", err)
	}
	movies, err := s.repos.Movie.Find(ctx, q, (f.Page-1)*f.PageSize, f.PageSize)
	if err != nil {
		return nil, storeError("list movies", err)
	}
	return &ListPage[model.Movie]{Count: count, Page: f.Page, PageSize: f.PageSize, Results: nonNil(movies)}, nil
}

// ListTVShows 分页查询剧集
func (s *CatalogService) ListTVShows(ctx context.Context, f CatalogFilter) (*ListPage[model.TVShow], error) {
	f.normalize()
	q := f.query()

	count, err := s.repos.TVShow.Count(ctx, q)
	if err != nil {
		return nil, storeError("count tv shows", err)
	}
	shows, err := s.repos.TVShow.Find(ctx, q, (f.Page-1)*f.PageSize, f.PageSize)
	if err != nil {
		return nil, storeError("list tv shows", err)
	}
	return &ListPage[model.TVShow]{Count: count, Page: f.Page, PageSize: f.PageSize, Results: nonNil(shows)}, nil
}

// GetMovie 电影详情
func (s *CatalogService) GetMovie(ctx context.Context, id uint) (*model.Movie, error) {
	movie, err := s.repos.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get movie", err)
	}
	return movie, nil
}

// GetTVShow 剧集详情
func (s *CatalogService) GetTVShow(ctx context.Context, id uint) (*model.TVShow, error) {
	show, err := s.repos.TVShow.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get tv show", err)
	}
	return show, nil
}

// Featured 精选与热门各取 5 条
func (s *CatalogService) Featured(ctx context.Context) (*FeaturedContent, error) {
	return cached(s, s.featured, "featured", func() (*FeaturedContent, error) {
		yes := true
		featured := repository.CatalogQuery{IsFeatured: &yes}
		trending := repository.CatalogQuery{IsTrending: &yes}

		out := &FeaturedContent{}
		var err error
		if out.FeaturedMovies, err = s.repos.Movie.Find(ctx, featured, 0, featuredLimit); err != nil {
			return nil, storeError("featured movies", err)
		}
		if out.FeaturedTVShows, err = s.repos.TVShow.Find(ctx, featured, 0, featuredLimit); err != nil {
			return nil, storeError("featured tv shows", err)
		}
		if out.TrendingMovies, err = s.repos.Movie.Find(ctx, trending, 0, featuredLimit); err != nil {
			return nil, storeError("trending movies", err)
		}
		if out.TrendingTVShows, err = s.repos.TVShow.Find(ctx, trending, 0, featuredLimit); err != nil {
			return nil, storeError("trending tv shows", err)
		}
		out.FeaturedMovies = nonNil(out.FeaturedMovies)
		out.FeaturedTVShows = nonNil(out.FeaturedTVShows)
		out.TrendingMovies = nonNil(out.TrendingMovies)
		out.TrendingTVShows = nonNil(out.TrendingTVShows)
		return out, nil
	})
}

// NewReleases 最近 30 天上映/首播的内容
func (s *CatalogService) NewReleases(ctx context.Context) (*NewReleases, error) {
	since := model.DateOf(s.now().Add(-newReleaseWindow)).Time
	q := repository.CatalogQuery{ReleasedSince: &since}

	movies, err := s.repos.Movie.Find(ctx, q, 0, newReleaseLimit)
	if err != nil {
		return nil, storeError("new movies", err)
	}
	shows, err := s.repos.TVShow.Find(ctx, q, 0, newReleaseLimit)
	if err != nil {
		return nil, storeError("new tv shows", err)
	}
	return &NewReleases{NewMovies: nonNil(movies), NewTVShows: nonNil(shows)}, nil
}

// Trending 热门内容各取 10 条
func (s *CatalogService) Trending(ctx context.Context) (*TrendingContent, error) {
	return cached(s, s.trending, "trending", func() (*TrendingContent, error) {
		yes := true
		q := repository.CatalogQuery{IsTrending: &yes}

		movies, err := s.repos.Movie.Find(ctx, q, 0, trendingLimit)
		if err != nil {
			return nil, storeError("trending movies", err)
		}
		shows, err := s.repos.TVShow.Find(ctx, q, 0, trendingLimit)
		if err != nil {
			return nil, storeError("trending tv shows", err)
		}
		return &TrendingContent{TrendingMovies: nonNil(movies), TrendingTVShows: nonNil(shows)}, nil
	})
}
