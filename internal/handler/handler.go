package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/config"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Config   *config.Config
	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Composer *service.QueryComposer
	Library  *service.LibraryService
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, auth *service.AuthService, catalog *service.CatalogService, composer *service.QueryComposer, library *service.LibraryService) *Handler {
	return &Handler{
		Config:   cfg,
		Auth:     auth,
		Catalog:  catalog,
		Composer: composer,
		Library:  library,
	}
}

// respondError 将服务层错误映射为 HTTP 响应
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, verr.Fields)
	case errors.Is(err, service.ErrUnauthorized):
		utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, "Not found.")
	case errors.Is(err, service.ErrConflict):
		utils.Conflict(c, "This content already exists for the user.")
	default:
		utils.InternalServerError(c, "")
	}
}

// bindJSON 绑定请求体，失败时直接返回 400
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		utils.ValidationFailed(c, bindingErrors(err))
		return false
	}
	return true
}

// bindOptionalJSON 绑定可选的请求体，空请求体时保留默认值
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		utils.ValidationFailed(c, bindingErrors(err))
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时直接返回 400
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		utils.ValidationFailed(c, bindingErrors(err))
		return false
	}
	return true
}

// paramID 解析路径中的 id
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.NotFound(c, "Not found.")
		return 0, false
	}
	return uint(id), true
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
