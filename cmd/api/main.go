package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/bookreview/internal/application/book"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/mq"
	"github.com/xiebiao/bookreview/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire配置，可用wire gen生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化事件发布器（可选，禁用时为Noop）
	var publisher mq.Publisher = mq.NoopPublisher{}
	if cfg.MQ.Enabled {
		p, err := mq.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer p.Close()
		publisher = p
		fmt.Printf("  - RabbitMQ: %s (exchange=%s)\n", cfg.MQ.URL, cfg.MQ.Exchange)
	}

	// 5. 依赖注入（手动组装）
	// 依赖注入链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	aggregator := review.NewAggregator(reviewRepo, bookRepo)
	reviewService := review.NewService(reviewRepo, bookRepo, aggregator)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService, publisher)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	addBookUseCase := appbook.NewAddBookUseCase(bookService, publisher)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, userRepo)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, publisher)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, reviewRepo, txManager, publisher)
	createReviewUseCase := appreview.NewCreateReviewUseCase(reviewService, publisher)
	getReviewUseCase := appreview.NewGetReviewUseCase(reviewService)
	updateReviewUseCase := appreview.NewUpdateReviewUseCase(reviewService, publisher)
	deleteReviewUseCase := appreview.NewDeleteReviewUseCase(reviewService, publisher)
	listBookReviewsUseCase := appreview.NewListBookReviewsUseCase(reviewService, userRepo)
	listUserReviewsUseCase := appreview.NewListUserReviewsUseCase(reviewService, bookRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(
		addBookUseCase, getBookUseCase, listBooksUseCase, updateBookUseCase, deleteBookUseCase,
	)
	reviewHandler := handler.NewReviewHandler(
		createReviewUseCase, getReviewUseCase, updateReviewUseCase, deleteReviewUseCase,
		listBookReviewsUseCase, listUserReviewsUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 自定义验证器（bookgenre）
	dto.RegisterValidators()

	// 7. 注册路由
	registerRoutes(r, userHandler, bookHandler, reviewHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 浏览是公开接口,不需要登录
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)

			// 写操作需要登录
			books.POST("", authMiddleware.RequireAuth(), bookHandler.AddBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		}

		// 书评模块
		reviews := v1.Group("/reviews")
		{
			// 读接口公开
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.GET("/book/:bookId", reviewHandler.ListBookReviews)
			reviews.GET("/user/:userId", reviewHandler.ListUserReviews)

			// 写操作需要登录
			reviews.POST("", authMiddleware.RequireAuth(), reviewHandler.CreateReview)
			reviews.PUT("/:id", authMiddleware.RequireAuth(), reviewHandler.UpdateReview)
			reviews.DELETE("/:id", authMiddleware.RequireAuth(), reviewHandler.DeleteReview)
		}
	}
}
