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

	"github.com/stockroom/stockroom/handlers"
	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/inventory"
	invhandler "github.com/stockroom/stockroom/internal/inventory/handler"
	"github.com/stockroom/stockroom/internal/inventory/service"
	"github.com/stockroom/stockroom/internal/inventory/store"
	"github.com/stockroom/stockroom/pkg/logger"
	"github.com/stockroom/stockroom/pkg/metrics"
	"github.com/stockroom/stockroom/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: db_path=%s instance=%s rate_limit=%v", cfg.Store.Path, cfg.Instance.Name, cfg.RateLimit.Enabled)

	st := store.NewFileStore(cfg.Store.Path)
	svc := service.New(st)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Optional global rate limiter, Redis-backed when configured so several
	// instances behind one proxy share a window.
	if cfg.RateLimit.Enabled {
		var redisClient *redis.Client
		if cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				logger.Warnf("failed to connect to Redis (%s:%s): %v; falling back to in-memory limiter", cfg.Redis.Host, cfg.Redis.Port, err)
				redisClient = nil
			}
		}
		if redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Unprotected liveness endpoint
	r.GET("/health", func(c *gin.Context) {
		hostname, _ := os.Hostname()
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"time":          inventory.NowISO(),
			"instance_name": cfg.Instance.Name,
			"hostname":      hostname,
			"db_path":       st.Path(),
		})
	})

	// API documentation
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Inventory CRUD, behind the shared-secret header
	api := r.Group("/", middleware.APIKeyAuth(cfg.Auth.APIKey))
	invhandler.New(svc).RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting inventory service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
