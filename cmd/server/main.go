package main

import (
	"log"
	"strings"
	"time"

	"campusshare/internal/config"
	"campusshare/internal/handler"
	"campusshare/internal/middleware"
	"campusshare/internal/model"
	"campusshare/internal/repository"
	"campusshare/internal/service"
	"campusshare/pkg/database"
	"campusshare/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedDev(db); err != nil {
			log.Fatalf("failed to seed development data: %v", err)
		}
	}

	redisClient := newRedisClient(cfg.RedisURL)

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchService := service.NewSearchService(meiliClient)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	store := repository.NewStore(db)

	authService := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authService)

	resourceService := service.NewResourceService(store, searchService, redisClient, cfg.DownloadCooldown, cfg.RatingCooldown)
	resourceHandler := handler.NewResourceHandler(resourceService)

	userService := service.NewUserService(store, redisClient)
	userHandler := handler.NewUserHandler(userService)

	uploadHandler := handler.NewUploadHandler(fileStorage, cfg.CloudinaryUploadFolder, cfg.MaxUploadSizeMB)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public reads plus the event-tracking routes; identity arrives as
	// an opaque userId in the body, issued by the auth endpoints above.
	api.GET("/resources", resourceHandler.ListResources)
	api.GET("/resources/:id", resourceHandler.GetResource)
	api.POST("/resources", resourceHandler.CreateResource)
	api.POST("/resources/:id/download", resourceHandler.RecordDownload)
	api.POST("/resources/:id/rate", resourceHandler.RateResource)

	api.GET("/users/leaderboard", userHandler.GetLeaderboard)
	api.GET("/users/:id/profile", userHandler.GetProfile)
	api.GET("/users/:id/downloads", userHandler.GetDownloadHistory)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/users/me", authHandler.Me)
		protected.POST("/upload", uploadHandler.UploadFile)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Resource{},
		&model.Download{},
		&model.Rating{},
		&model.PointLog{},
	)
}

func newRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without leaderboard cache and rate limiting")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
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
