package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/handler"
	"github.com/user/cinestream/internal/middleware"
)

// New 创建 gin 引擎并挂载中间件与路由
func New(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(h.Config.CORSOrigins))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(h.Auth)
	v1 := r.Group("/api/v1")

	// ==================== 账号 ====================
	accounts := v1.Group("/accounts")
	{
		accounts.POST("/register", h.Register)
		accounts.POST("/login", h.Login)
		accounts.POST("/google-oauth", h.GoogleLogin)
		accounts.POST("/token/refresh", h.RefreshToken)
	}
	me := accounts.Group("", requireAuth)
	{
		me.POST("/logout", h.Logout)
		me.GET("/profile", h.Profile)
		me.PUT("/profile", h.UpdateProfile)
		me.PATCH("/profile", h.UpdateProfile)
		me.POST("/change-password", h.ChangePassword)
		me.GET("/user-info", h.UserInfo)
	}

	// ==================== 片库 ====================
	content := v1.Group("/content")
	{
		content.GET("/genres", h.ListGenres)
		content.GET("/movies", h.ListMovies)
		content.GET("/movies/:id", h.GetMovie)
		content.GET("/tv-shows", h.ListTVShows)
		content.GET("/tv-shows/:id", h.GetTVShow)
		content.GET("/featured", h.Featured)
		content.GET("/new-releases", h.NewReleases)
		content.GET("/trending", h.Trending)
		content.POST("/search", h.Search)
	}

	// ==================== 用户片单与评分（需要登录）====================
	library := content.Group("", requireAuth)
	{
		library.POST("/recommendations", h.Recommend)

		library.GET("/watchlist", h.ListWatchlist)
		library.POST("/watchlist", h.AddToWatchlist)
		library.GET("/watchlist/:id", h.GetWatchlistEntry)
		library.PUT("/watchlist/:id", h.UpdateWatchlistEntry)
		library.PATCH("/watchlist/:id", h.UpdateWatchlistEntry)
		library.DELETE("/watchlist/:id", h.RemoveFromWatchlist)

		library.GET("/ratings", h.ListRatings)
		library.POST("/ratings", h.RateContent)
		library.GET("/ratings/:id", h.GetRating)
		library.PUT("/ratings/:id", h.UpdateRating)
		library.PATCH("/ratings/:id", h.UpdateRating)
		library.DELETE("/ratings/:id", h.DeleteRating)
	}
}
