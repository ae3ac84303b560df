package main

import (
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ruangpendapat.com/forum/internal/config"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/internal/server"
	"ruangpendapat.com/forum/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)
	meiliClient := connectMeilisearch(cfg)

	srv := server.NewServer(cfg, db, redisClient, meiliClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Vote{},
		&model.Comment{},
		&model.UserCategoryPoints{},
		&model.PointLog{},
		&model.Notification{},
	)
}

// connectRedis returns nil when redis is unreachable; the app degrades to
// database-only ranking and polling notifications.
func connectRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, running without redis: %v", err)
		return nil
	}
	return redis.NewClient(opts)
}

func connectMeilisearch(cfg *config.Config) meilisearch.ServiceManager {
	host := cfg.MeiliSearchHost
	if host == "" {
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
}
