package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/prysmhq/prysm_backend/internal/auth"
	"github.com/prysmhq/prysm_backend/internal/config"
	"github.com/prysmhq/prysm_backend/internal/database"
	"github.com/prysmhq/prysm_backend/internal/logging"
	"github.com/prysmhq/prysm_backend/internal/routes"
	"github.com/prysmhq/prysm_backend/internal/store"
	"github.com/prysmhq/prysm_backend/internal/token"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	gormStore := store.NewGormStore(db)

	// Refresh records can live in Redis when an address is configured; user
	// credentials always stay in the database.
	var tokens store.TokenStore = gormStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tokens = store.NewRedisTokenStore(client)
	}

	codec := token.NewCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	svc := auth.NewService(gormStore, tokens, codec, logger)

	r := gin.Default()
	routes.Register(r, db, svc, cfg, logger)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
