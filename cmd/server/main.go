package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/cinestream/internal/config"
	"github.com/user/cinestream/internal/handler"
	"github.com/user/cinestream/internal/logging"
	"github.com/user/cinestream/internal/repository"
	"github.com/user/cinestream/internal/router"
	"github.com/user/cinestream/internal/seed"
	"github.com/user/cinestream/internal/service"
)

func main() {
	// 加载环境变量
	envErr := godotenv.Load()

	// 加载配置
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if envErr != nil {
		logging.Info().Msg("未找到 .env 文件，使用系统环境变量")
	}
	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		logging.Warn().Msg("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("数据库连接失败")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logging.Fatal().Err(err).Msg("获取数据库连接池失败")
	}
	defer sqlDB.Close()

	if err := repository.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("数据库迁移失败")
	}

	// 初始化仓库
	repos := repository.NewRepositories(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// seed 子命令：写入示例数据后退出
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seed.Run(ctx, repos); err != nil {
			logging.Fatal().Err(err).Msg("写入示例数据失败")
		}
		logging.Info().Msg("示例数据写入完成")
		return
	}

	// 令牌注销名单：配置了 Redis 时使用 Redis，否则使用数据库
	var revokedStore service.RevocationStore = repos.RevokedToken
	if cfg.RedisURL != "" {
		client, err := repository.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("Redis 连接失败")
		}
		defer client.Close()
		revokedStore = repository.NewRedisRevokedTokenStore(client)
		logging.Info().Msg("令牌注销名单使用 Redis")
	}

	// 初始化服务
	tokens := service.NewTokenIssuer(cfg.AppSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authSvc := service.NewAuthService(repos.User, tokens, service.NewRevocationList(revokedStore), service.NewGoogleVerifier(cfg.GoogleClientID))
	catalogSvc := service.NewCatalogService(repos, cfg.CacheTTL)
	composer := service.NewQueryComposer(repos.Movie, repos.TVShow, repos.Watchlist)
	librarySvc := service.NewLibraryService(repos)

	// 启动定时清理任务
	service.NewCleanupService(repos.RevokedToken).Start(ctx)

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		logging.Fatal().Err(err).Msg("注册校验规则失败")
	}
	h := handler.NewHandler(cfg, authSvc, catalogSvc, composer, librarySvc)
	r := router.New(h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("服务器启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	<-ctx.Done()
	logging.Info().Msg("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("服务器强制关闭")
	}

	logging.Info().Msg("服务器已退出")
}
