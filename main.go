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

	"github.com/avtostart/avtostart-backend/handlers"
	"github.com/avtostart/avtostart-backend/internal/config"
	"github.com/avtostart/avtostart-backend/internal/database"
	dochandler "github.com/avtostart/avtostart-backend/internal/documents/handler"
	docrepo "github.com/avtostart/avtostart-backend/internal/documents/repository"
	docservice "github.com/avtostart/avtostart-backend/internal/documents/service"
	"github.com/avtostart/avtostart-backend/internal/fleet"
	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/avtostart/avtostart-backend/internal/leads"
	"github.com/avtostart/avtostart-backend/internal/mailer"
	"github.com/avtostart/avtostart-backend/internal/oidc"
	"github.com/avtostart/avtostart-backend/internal/orginfo"
	"github.com/avtostart/avtostart-backend/internal/storage"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"github.com/avtostart/avtostart-backend/pkg/metrics"
	"github.com/avtostart/avtostart-backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first (LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v minio=%v smtp=%v",
		cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Mail.Host != "")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware: the public site is served from a
	// different origin in dev and on shared hosting.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Redis (optional): backs the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// MongoDB: the registry degrades to in-memory repositories when no URI
	// is configured (useful for local front-end work).
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, func(attempt int, err error) {
			logger.Warnf("attempt %d: failed to connect to MongoDB: %v", attempt, err)
		})
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v — using in-memory repositories", err)
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	var docSvc docservice.Service
	var infoSvc *orginfo.Service
	var fleetSvc *fleet.Service
	if mongoClient != nil {
		db := mongoClient.Database(cfg.MongoDB.Database)
		docSvc = docservice.New(docrepo.NewMongoRepo(db.Collection("documents")))
		infoSvc = orginfo.NewService(orginfo.NewMongoRepository(db.Collection("basic_info")))
		fleetSvc = fleet.NewService(fleet.NewMongoRepository(db.Collection("vehicles")))
	} else {
		docSvc = docservice.NewMemoryService()
		infoSvc = orginfo.NewService(orginfo.NewMemoryRepository())
		fleetSvc = fleet.NewService(fleet.NewMemoryRepository())
	}

	// MinIO (optional): document file assets
	var assets *storage.AssetStore
	if cfg.MinIO.Endpoint != "" {
		assets, err = storage.NewAssetStore(cfg.MinIO)
		if err != nil {
			logger.Warnf("failed to initialize asset store: %v", err)
			assets = nil
		}
	}

	// SMTP (optional): lead notifications
	var mail mailer.Mailer
	if m, err := mailer.NewSMTPMailer(cfg.Mail); err != nil {
		logger.Warnf("lead mail transport unavailable: %v", err)
	} else {
		mail = m
	}

	// OIDC verifier for the admin endpoints
	var verifier middleware.Verifier
	if cfg.Auth.IssuerURL != "" && cfg.Auth.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.Auth.IssuerURL, cfg.Auth.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && cfg.Auth.AllowInsecureToken {
		logger.Warn("enabling insecure token verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	// capability gate: permissive only outside production
	g := gate.ForEnvironment(cfg.Server.Environment)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the configured dependencies answered
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}
		if cfg.MongoDB.URI != "" {
			deps["mongodb"] = mongoClient != nil
			ready = ready && deps["mongodb"]
		} else {
			deps["mongodb"] = true
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			ready = ready && deps["redis"]
		} else {
			deps["redis"] = true
		}
		code := http.StatusOK
		status := "ready"
		if !ready {
			code = http.StatusServiceUnavailable
			status = "not_ready"
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuthMiddleware(verifier))
	dochandler.New(docSvc, assets, g, cfg.Server.IsProduction()).Register(api)
	orginfo.NewHandler(infoSvc, g, cfg.Server.IsProduction()).Register(api)
	fleet.NewHandler(fleetSvc, g, cfg.Server.IsProduction()).Register(api)
	leads.NewHandler(mail, cfg.Server.IsProduction()).Register(api)

	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting back-office service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
