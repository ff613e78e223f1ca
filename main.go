package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/geomark/geomark/handlers"
	"github.com/geomark/geomark/internal/auth"
	"github.com/geomark/geomark/internal/config"
	docrepo "github.com/geomark/geomark/internal/document/repository"
	docservice "github.com/geomark/geomark/internal/document/service"
	projrepo "github.com/geomark/geomark/internal/project/repository"
	projservice "github.com/geomark/geomark/internal/project/service"
	"github.com/geomark/geomark/internal/qr"
	"github.com/geomark/geomark/internal/storage"
	"github.com/geomark/geomark/internal/store"
	"github.com/geomark/geomark/pkg/logger"
	"github.com/geomark/geomark/pkg/metrics"
	"github.com/geomark/geomark/pkg/middleware"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: auth0=%v database=%v redis=%v", cfg.Auth.Domain != "", cfg.Database.URL != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Logger(), gin.Recovery())

	// Redis powers the distributed rate limiter when configured
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
	// The limiter is registered per-route after scope enforcement (see the
	// handler Register funcs) so it can key on the verified subject instead of
	// the client IP. Health, readiness and metrics stay unlimited.
	var apiMiddleware []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			apiMiddleware = append(apiMiddleware, middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			apiMiddleware = append(apiMiddleware, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Token verifier: Auth0 when configured, local HS256 as a dev fallback,
	// and a signature-less parser only under explicit opt-in.
	var verifier middleware.Verifier
	ctx := context.Background()
	if cfg.Auth.Domain != "" && cfg.Auth.Audience != "" {
		ver, err := auth.NewOIDCVerifier(ctx, cfg.Auth.Domain, cfg.Auth.Audience)
		if err != nil {
			logger.Fatalf("failed to initialize OIDC verifier: %v", err)
		}
		verifier = ver
	} else if cfg.Auth.Secret != "" {
		ver, err := auth.NewHS256Verifier(cfg.Auth.Secret)
		if err != nil {
			logger.Fatalf("failed to initialize HS256 verifier: %v", err)
		}
		logger.Warn("using local HS256 verifier; configure AUTH0_DOMAIN and API_AUDIENCE in production")
		verifier = ver
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure token verifier (integration mode)")
		verifier = auth.NewInsecureVerifier()
	} else {
		logger.Fatalf("no token verifier configured: set AUTH0_DOMAIN+API_AUDIENCE or JWT_SECRET")
	}

	// Record store: relational when DATABASE_URL is set, in-memory otherwise
	// (useful for local runs and CI).
	var db *gorm.DB
	var docRepo docrepo.Repository
	var projRepo projrepo.Repository
	if cfg.Database.URL != "" {
		db, err = store.Connect(cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			logger.Fatalf("could not connect to database: %v", err)
		}
		docRepo = docrepo.NewGormRepo(db)
		projRepo = projrepo.NewGormRepo(db)
	} else {
		logger.Warn("DATABASE_URL not set; using in-memory repositories (data is not persisted)")
		docRepo = docrepo.NewMemoryRepo()
		projRepo = projrepo.NewMemoryRepo()
	}

	// QR image sink: MinIO when configured, local directory otherwise.
	var imageStore qr.ImageStore
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		ms, err := storage.NewMinIOStore(mcfg)
		if err != nil {
			logger.Fatalf("could not initialize MinIO image store: %v", err)
		}
		imageStore = ms
		logger.Infof("QR images stored in MinIO bucket %q", mcfg.Bucket)
	} else {
		ds, err := qr.NewDirStore(cfg.QR.OutputDir)
		if err != nil {
			logger.Fatalf("could not initialize QR output directory: %v", err)
		}
		imageStore = ds
		logger.Infof("QR images stored under %s", cfg.QR.OutputDir)
	}

	docSvc := docservice.New(docRepo, qr.NewEncoder(imageStore))
	projSvc := projservice.New(projRepo)

	handlers.NewDocumentHandler(docSvc).Register(r, verifier, apiMiddleware...)
	handlers.NewProjectHandler(projSvc).Register(r, verifier, apiMiddleware...)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"verifier": verifier != nil}

		if cfg.Database.URL != "" {
			ok := false
			if db != nil {
				if sqlDB, err := db.DB(); err == nil {
					ok = sqlDB.Ping() == nil
				}
			}
			deps["database"] = ok
			ready = ready && ok
		} else {
			deps["database"] = true
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			ready = ready && deps["redis"]
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting geomark API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
