package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ruangpendapat.com/forum/internal/config"
	"ruangpendapat.com/forum/internal/handler"
	"ruangpendapat.com/forum/internal/middleware"
	"ruangpendapat.com/forum/internal/repository"
	"ruangpendapat.com/forum/internal/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, meiliClient meilisearch.ServiceManager) *Server {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reputationRepo := repository.NewReputationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	reputationSvc := service.NewReputationService(reputationRepo, userRepo, notificationSvc)
	reputationHandler := handler.NewReputationHandler(reputationSvc)

	rankingSvc := service.NewRankingService(postRepo, redisClient)
	if err := rankingSvc.StartScheduler(); err != nil {
		log.Printf("failed to start ranking scheduler: %v", err)
	}

	var searchSvc service.SearchService
	if meiliClient != nil {
		searchSvc = service.NewSearchService(meiliClient)
	}

	authSvc := service.NewAuthService(userRepo, reputationSvc, cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(authSvc)

	postSvc := service.NewPostService(postRepo, categoryRepo, reputationSvc, rankingSvc, searchSvc)
	postHandler := handler.NewPostHandler(postSvc)

	voteSvc := service.NewVoteService(voteRepo, reputationSvc, rankingSvc, notificationSvc)
	voteHandler := handler.NewVoteHandler(voteSvc)

	commentSvc := service.NewCommentService(commentRepo, reputationSvc, rankingSvc, notificationSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)

	categoryHandler := handler.NewCategoryHandler(categoryRepo)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/categories", categoryHandler.GetAllCategories)
	api.GET("/posts/hot", postHandler.HotFeed)
	api.GET("/posts/search", postHandler.Search)
	api.GET("/posts/:post_id", postHandler.GetPost)
	api.GET("/posts/:post_id/comments", commentHandler.GetThread)
	api.GET("/leaderboard", reputationHandler.GetLeaderboard)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/categories", categoryHandler.CreateCategory)

		protected.POST("/posts", postHandler.CreatePost)
		protected.POST("/posts/:post_id/votes", voteHandler.CastVote)
		protected.POST("/posts/:post_id/comments", commentHandler.CreateComment)

		protected.GET("/badges/me", reputationHandler.GetMyBadges)
		protected.PUT("/badges/equip/:category_id", reputationHandler.EquipBadge)
		protected.GET("/points/history", reputationHandler.GetPointHistory)

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
