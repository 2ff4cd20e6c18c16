package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Redis connection timeout

	"blog_system/internal/api"       // Custom package for API handlers
	"blog_system/internal/cache"     // Custom package for the Redis read cache
	"blog_system/internal/config"    // Custom package for configuration
	"blog_system/internal/db"        // Custom package for database access
	"blog_system/internal/db/memory" // In-memory repository for DB_DRIVER=memory
	"blog_system/internal/service"   // Custom package for business logic
	"blog_system/internal/session"   // Custom package for session tokens and stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid LOG_LEVEL: %v", err)
	}
	logrus.SetLevel(level)
	log := logrus.StandardLogger()

	// Setup storage
	var repo service.Repository
	if cfg.DBDriver == config.DriverMemory {
		logrus.Warn("DB_DRIVER=memory, nothing will be persisted")
		repo = memory.New()
	} else {
		gdb, err := db.Open(cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		repo = db.NewRepository(gdb)
	}

	// Setup sessions and cache, in memory when no Redis is configured
	var sessions service.SessionStore = session.NewMemoryStore()
	var readCache service.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})

		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		sessions = session.NewRedisStore(redisClient)
		readCache = cache.NewRedis(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR not set, sessions are kept in memory and reads are not cached")
	}

	tokens := session.NewTokens(cfg.JWTSecret, cfg.SessionTTL)
	auth := service.NewAuth(repo, sessions, tokens, cfg.AdminEmails, log)
	content := service.NewContent(repo, readCache, cfg.CacheTTL, log)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(auth, content, api.RouterOptions{
		Cookie:         api.CookieOptions{Secure: cfg.IsProd, TTL: cfg.SessionTTL},
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,
		"driver": cfg.DBDriver,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
