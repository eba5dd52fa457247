package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/middleware"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

const defaultRecommendLimit = 10

// SearchReq 搜索请求
type SearchReq struct {
	Query       string `json:"query" binding:"max=200"`
	ContentType string `json:"content_type" binding:"omitempty,content_type"`
	Genre       string `json:"genre" binding:"max=50"`
	Year        int    `json:"year" binding:"omitempty,min=1,max=9999"`
	Page        *int   `json:"page" binding:"omitempty,min=1"`
	PageSize    *int   `json:"page_size" binding:"omitempty,min=1,max=50"`
}

// RecommendReq 推荐请求
type RecommendReq struct {
	ContentType string `json:"content_type" binding:"omitempty,content_type"`
	Genre       string `json:"genre" binding:"max=50"`
	Limit       *int   `json:"limit" binding:"omitempty,min=1,max=50"`
}

// Search 搜索电影与剧集
func (h *Handler) Search(c *gin.Context) {
	var req SearchReq
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.Composer.Search(c.Request.Context(), service.SearchParams{
		Query:       req.Query,
		ContentType: model.ContentKind(req.ContentType),
		Genre:       req.Genre,
		Year:        req.Year,
		Page:        intOr(req.Page, 1),
		PageSize:    intOr(req.PageSize, service.DefaultPageSize),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// Recommend 为当前用户推荐内容
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.Composer.Recommend(c.Request.Context(), middleware.GetUserID(c), service.RecommendParams{
		ContentType: model.ContentKind(req.ContentType),
		Genre:       req.Genre,
		Limit:       intOr(req.Limit, defaultRecommendLimit),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}
