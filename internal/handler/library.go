package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/middleware"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

// WatchlistAddReq 加入片单请求
type WatchlistAddReq struct {
	MovieID   *uint `json:"movie_id" binding:"omitempty,min=1"`
	TVShowID  *uint `json:"tv_show_id" binding:"omitempty,min=1"`
	IsWatched bool  `json:"is_watched"`
}

// WatchlistUpdateReq 更新片单条目请求
type WatchlistUpdateReq struct {
	IsWatched *bool `json:"is_watched" binding:"required"`
}

// RatingCreateReq 评分请求
type RatingCreateReq struct {
	MovieID  *uint  `json:"movie_id" binding:"omitempty,min=1"`
	TVShowID *uint  `json:"tv_show_id" binding:"omitempty,min=1"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Review   string `json:"review"`
}

// RatingUpdateReq 修改评分请求
type RatingUpdateReq struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Review *string `json:"review"`
}

// ListWatchlist 我的片单
func (h *Handler) ListWatchlist(c *gin.Context) {
	items, err := h.Library.ListWatchlist(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, items)
}

// AddToWatchlist 加入片单
func (h *Handler) AddToWatchlist(c *gin.Context) {
	var req WatchlistAddReq
	if !bindJSON(c, &req) {
		return
	}
	ref, err := service.ContentRefFrom(req.MovieID, req.TVShowID)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.Library.AddToWatchlist(c.Request.Context(), middleware.GetUserID(c), ref, req.IsWatched)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, item)
}

// GetWatchlistEntry 片单条目详情
func (h *Handler) GetWatchlistEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := h.Library.GetWatchlistEntry(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, item)
}

// UpdateWatchlistEntry 更新观看状态
func (h *Handler) UpdateWatchlistEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req WatchlistUpdateReq
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.Library.UpdateWatchlistEntry(c.Request.Context(), middleware.GetUserID(c), id, *req.IsWatched)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, item)
}

// RemoveFromWatchlist 移出片单
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Library.RemoveFromWatchlist(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "deleted", nil)
}

// ListRatings 我的评分
func (h *Handler) ListRatings(c *gin.Context) {
	ratings, err := h.Library.ListRatings(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, ratings)
}

// RateContent 评分
func (h *Handler) RateContent(c *gin.Context) {
	var req RatingCreateReq
	if !bindJSON(c, &req) {
		return
	}
	ref, err := service.ContentRefFrom(req.MovieID, req.TVShowID)
	if err != nil {
		respondError(c, err)
		return
	}

	rating, err := h.Library.RateContent(c.Request.Context(), middleware.GetUserID(c), ref, req.Rating, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, rating)
}

// GetRating 评分详情
func (h *Handler) GetRating(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	rating, err := h.Library.GetRating(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, rating)
}

// UpdateRating 修改评分
func (h *Handler) UpdateRating(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RatingUpdateReq
	if !bindJSON(c, &req) {
		return
	}

	rating, err := h.Library.UpdateRating(c.Request.Context(), middleware.GetUserID(c), id, req.Rating, req.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, rating)
}

// DeleteRating 删除评分
func (h *Handler) DeleteRating(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Library.DeleteRating(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "deleted", nil)
}
