package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicshare-backend/config"
	"musicshare-backend/internal/api/interaction"
	"musicshare-backend/internal/api/post"
	"musicshare-backend/internal/api/user"
	"musicshare-backend/internal/common"
	"musicshare-backend/internal/middleware"
	"musicshare-backend/internal/repository/postgres"
	"musicshare-backend/internal/service"
	"musicshare-backend/internal/storage"
	"musicshare-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接数据库（显式构造、显式关闭，不使用全局单例）
	db, err := sql.Open("postgres", config.AppConfig.DatabaseDSN())
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 启动阶段允许重试，请求路径上不做任何重试
	if err := common.WithRetry(db.Ping, 5); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("imagetype", util.ValidateImageType)
		v.RegisterValidation("audiotype", util.ValidateAudioType)
	}

	// 初始化对象存储
	store, err := newObjectStorage()
	if err != nil {
		util.Logger.Fatal("初始化对象存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	followRepo := postgres.NewFollowRepository(db)

	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, postRepo, interactionRepo, emailService)
	postService := service.NewPostService(postRepo, userRepo, store)
	interactionService := service.NewInteractionService(interactionRepo, postRepo, userRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	authHandler := user.NewAuthHandler(userService)
	userHandler := user.NewUserHandler(userService)
	followHandler := user.NewFollowHandler(followService)
	postHandler := post.NewPostHandler(postService)
	interactionHandler := interaction.NewInteractionHandler(interactionService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 本地存储模式下直接伺服上传目录
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 定义 API 路由
	api := r.Group("/api/v1")
	{
		// 无需认证的路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/music-posts", postHandler.GetFeedPosts)
		api.GET("/music-posts/search", postHandler.SearchPosts)
		api.GET("/music-posts/:postId", postHandler.GetPostByID)
		api.GET("/music-posts/:postId/comments", interactionHandler.GetComments)
		api.GET("/users/:userId/profile", userHandler.GetUserProfile)
		api.GET("/users/:userId/followers", followHandler.GetFollowers)

		// 可选认证：匿名也可访问，带有效令牌时解析身份
		optional := api.Group("")
		optional.Use(middleware.AuthOptional(userService))
		{
			optional.GET("/users/:userId/likes", userHandler.GetUserLikes)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthRequired(userService))
		{
			authorized.POST("/logout", authHandler.Logout)
			authorized.POST("/refresh-token", authHandler.RefreshToken)
			authorized.POST("/music-posts", postHandler.CreatePost)
			authorized.POST("/music-posts/:postId/like", interactionHandler.LikePost)
			authorized.DELETE("/music-posts/:postId/unlike", interactionHandler.UnlikePost)
			authorized.POST("/music-posts/:postId/comments", interactionHandler.CreateComment)
			authorized.POST("/users/:userId/follow", followHandler.FollowUser)
			authorized.DELETE("/users/:userId/follow", followHandler.UnfollowUser)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	go func() {
		util.Logger.Info("HTTP 服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("收到退出信号，开始关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Error("服务关闭失败", zap.Error(err))
	}
	util.Logger.Info("应用程序已退出")
}

// newObjectStorage 根据配置选择对象存储后端
func newObjectStorage() (storage.ObjectStorage, error) {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return storage.NewGCSClient(cfg.GCSProjectID, cfg.GCSBucketName, cfg.GCSCredentials)
	default:
		return storage.NewLocalStorage(cfg.LocalStoragePath, cfg.BackendURL)
	}
}
