package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futur-backend/config"
	"futur-backend/internal/cart"
	"futur-backend/internal/delivery/http/middleware"
	v1 "futur-backend/internal/delivery/http/v1"
	"futur-backend/internal/domain"
	"futur-backend/internal/infrastructure/cache"
	"futur-backend/internal/infrastructure/facebook"
	"futur-backend/internal/infrastructure/kvstore"
	"futur-backend/internal/infrastructure/messaging"
	"futur-backend/internal/pricing"
	kvrepo "futur-backend/internal/repository/kv"
	"futur-backend/internal/usecase"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/storage"
	"futur-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

const serviceName = "futur-backend"

var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetSecret(cfg.SessionSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Forwarding headers only count when they come from our own proxies.
	if err := middleware.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}

	ctx := context.Background()

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Catalog & Pricing
	catalog, err := pricing.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}
	calc := pricing.NewCalculator(catalog)
	log.Info().Int("styles", len(catalog.Styles)).Int("products", len(catalog.Products())).Msg("Catalog loaded")

	// Durable key/value storage
	kv, closeKV, err := kvstore.Open(ctx, cfg, memCache)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open storage")
	}
	defer closeKV()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Storage ready")

	// Initialize Repositories
	productRepo := kvrepo.NewProductRepository(catalog)
	designRepo := kvrepo.NewDesignRepository(kv)
	orderRepo := kvrepo.NewOrderRepository(kv)

	// Cart sessions live in their own cache so idle carts expire independently.
	cartCache := cache.NewMemoryCache(cfg.SessionIdleTTL, cfg.SessionIdleTTL)
	carts := cart.NewRegistry(cartCache, kv, cfg.SessionIdleTTL, cfg.PersistTimeout)

	// --- Storage Module (R2) ---
	var uploader domain.ImageUploader
	if cfg.R2Enabled() {
		client, err := storage.NewR2Client(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		uploader = storage.NewR2Storage(client, cfg.R2BucketName, cfg.R2PublicURL, cfg.R2UploadTimeout)
	} else {
		log.Warn().Msg("R2 not configured, uploads disabled")
	}

	// --- Messaging (order events) ---
	var publisher domain.OrderPublisher = messaging.LogPublisher{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer conn.Close()
		rabbit, err := messaging.NewRabbitPublisher(conn, cfg.AMQPOrderQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open AMQP channel")
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info().Str("queue", cfg.AMQPOrderQueue).Msg("Publishing order events to AMQP")
	}

	// --- Analytics (Meta CAPI) ---
	// A nil client must not become a non-nil interface holding nil.
	var tracker domain.AnalyticsTracker
	if capi := facebook.NewCAPIClient(cfg.FBPixelID, cfg.FBAccessToken, cfg.FBAPIVersion, cfg.FBTestCode); capi != nil {
		tracker = capi
	}

	// --- Modules Initialization ---
	catalogUC := usecase.NewCatalogUsecase(productRepo, calc, memCache, 10*time.Minute)
	cartUC := usecase.NewCartUsecase(carts, productRepo, calc, tracker, cfg.MaxCartQuantity)
	designUC := usecase.NewDesignUsecase(designRepo, calc, uploader, cfg.MaxUploadSizeMB<<20)
	checkoutUC := usecase.NewCheckoutUsecase(carts, orderRepo, publisher, tracker, catalog.Currency)

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog: v1.NewCatalogHandler(catalogUC),
		Cart:    v1.NewCartHandler(cartUC),
		Design:  v1.NewDesignHandler(designUC),
		Upload:  v1.NewUploadHandler(designUC),
		Order:   v1.NewOrderHandler(checkoutUC),
	}, middleware.NewCartSessionMiddleware(cfg.SessionTTL, cfg.Env == "production"))

	// Initialize Rate Limiter with lifecycle management.
	// With redis storage the window is shared across instances and
	// RATE_LIMIT_BURST has no meaning.
	var limiter middleware.Limiter
	stopLimiter := func() {}
	if cfg.StorageDriver == config.StorageRedis {
		client := kvstore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		limiter = middleware.NewRedisRateLimiter(client, middleware.WindowLimit(cfg.RateLimitRPS, time.Second), time.Second, cfg.RedisKeyPrefix)
	} else {
		rl := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, time.Minute, 3*time.Minute)
		limiter = rl
		stopLimiter = rl.Shutdown
	}

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = middleware.RateLimit(limiter)(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	stopLimiter()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
