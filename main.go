package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codebin/codebin/handlers"
	"github.com/codebin/codebin/internal/codes"
	"github.com/codebin/codebin/internal/config"
	"github.com/codebin/codebin/internal/database"
	"github.com/codebin/codebin/internal/sessions"
	"github.com/codebin/codebin/internal/users"
	"github.com/codebin/codebin/pkg/logger"
	"github.com/codebin/codebin/pkg/metrics"
	"github.com/codebin/codebin/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Global middlewares: logging, recovery, and the terminal error stage.
	// Every failure raised below is rendered by middleware.Errors and only there.
	r.Use(gin.Logger(), gin.Recovery(), middleware.Errors())
	r.NoRoute(middleware.NoRoute())
	r.NoMethod(middleware.NoRoute())

	// Connect to Redis early so the blacklist, sessions and rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	blacklist := sessions.NewBlacklist(redisClient)

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimit(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Storage: MongoDB when configured, in-memory repositories otherwise
	// (useful for local development and integration tests without a cluster).
	var userRepo users.Repository
	var codeRepo codes.Repository
	var sessionRepo sessions.Repository
	mongoReady := false

	ctx := context.Background()
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var db *mongo.Database
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, db, errConn = database.ConnectMongo(ctx, cfg.MongoDB)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = client.Disconnect(ctx) }()

		userRepo = users.NewMongoRepository(db.Collection("users"))
		codeRepo = codes.NewMongoRepository(db.Collection("codes"))
		sessionRepo = sessions.NewMongoRepository(db.Collection("sessions"))
		mongoReady = true
	} else {
		logger.Warnf("MONGODB_URI not set; using in-memory repositories")
		userRepo = users.NewMemoryRepository()
		codeRepo = codes.NewMemoryRepository()
	}

	// Prefer Redis-based refresh sessions when available
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:")
		logger.Infof("using Redis for refresh session storage")
	}
	if sessionRepo == nil {
		logger.Warnf("no MongoDB or Redis configured; refresh sessions are kept in memory and lost on restart")
		sessionRepo = sessions.NewMemoryRepository()
	}

	userSvc := users.NewService(userRepo)
	codeSvc := codes.NewService(codeRepo)
	// deleting a user also deletes that user's codes
	userSvc.SetCodeDeleter(codeSvc)
	sessionSvc := sessions.NewService(sessionRepo)

	authGate := middleware.Auth(cfg, blacklist)
	users.NewHandler(userSvc).Register(r, authGate)
	codes.NewHandler(codeSvc).Register(r, authGate)
	handlers.NewAuthHandler(cfg, userSvc, sessionSvc, blacklist).Register(r)
	handlers.RegisterSwagger(r)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Readiness: 200 only when the configured dependencies are reachable
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"storage": mongoReady || cfg.MongoDB.URI == "",
			"redis":   redisClient != nil || cfg.Redis.Host == "",
		}
		status := http.StatusOK
		body := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()}
		for _, ok := range deps {
			if !ok {
				status = http.StatusServiceUnavailable
				body["status"] = "not_ready"
				break
			}
		}
		c.JSON(status, body)
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting codebin on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
