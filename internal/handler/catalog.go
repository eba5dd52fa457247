package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

// CatalogListReq 列表查询参数
type CatalogListReq struct {
	Search     string `form:"search" binding:"max=200"`
	Genres     uint   `form:"genres"`
	GenreName  string `form:"genre_name" binding:"max=50"`
	Year       int    `form:"year" binding:"omitempty,min=1,max=9999"`
	Rating     string `form:"rating" binding:"max=10"`
	Status     string `form:"status" binding:"omitempty,oneof=ongoing ended cancelled"`
	IsFeatured *bool  `form:"is_featured"`
	IsTrending *bool  `form:"is_trending"`
	Ordering   string `form:"ordering"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1"`
}

func (r CatalogListReq) filter() service.CatalogFilter {
	return service.CatalogFilter{
		Search:     r.Search,
		GenreID:    r.Genres,
		GenreName:  r.GenreName,
		Year:       r.Year,
		Rating:     r.Rating,
		Status:     r.Status,
		IsFeatured: r.IsFeatured,
		IsTrending: r.IsTrending,
		Ordering:   r.Ordering,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
}

// ListGenres 类型列表
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.Catalog.ListGenres(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, genres)
}

// ListMovies 电影列表
func (h *Handler) ListMovies(c *gin.Context) {
	var req CatalogListReq
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.Catalog.ListMovies(c.Request.Context(), req.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, page)
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	movie, err := h.Catalog.GetMovie(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, movie)
}

// ListTVShows 剧集列表
func (h *Handler) ListTVShows(c *gin.Context) {
	var req CatalogListReq
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.Catalog.ListTVShows(c.Request.Context(), req.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, page)
}

// GetTVShow 剧集详情
func (h *Handler) GetTVShow(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	show, err := h.Catalog.GetTVShow(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, show)
}

// Featured 首页精选
func (h *Handler) Featured(c *gin.Context) {
	content, err := h.Catalog.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, content)
}

// NewReleases 近期上映
func (h *Handler) NewReleases(c *gin.Context) {
	content, err := h.Catalog.NewReleases(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, content)
}

// Trending 热门内容
func (h *Handler) Trending(c *gin.Context) {
	content, err := h.Catalog.Trending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, content)
}
