package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/mandi-assist/internal/adapter/cache"
	"github.com/seu-repo/mandi-assist/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/mandi-assist/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/mandi-assist/internal/adapter/queue"
	"github.com/seu-repo/mandi-assist/internal/adapter/storage/postgres"
	wsAdapter "github.com/seu-repo/mandi-assist/internal/adapter/websocket"
	"github.com/seu-repo/mandi-assist/internal/nlu"
	"github.com/seu-repo/mandi-assist/internal/observability/telemetry"
	"github.com/seu-repo/mandi-assist/internal/service/assistant"
	"github.com/seu-repo/mandi-assist/pkg/config"
)

const (
	serviceName    = "mandi-assist"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Mandi Assist",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// Run migrations and seed the directory/price tables
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Cache (Redis, local fallback)
	cacheStore, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		cacheStore = cache.NewLocalCache(time.Minute, logger)
	}
	defer cacheStore.Close()

	// 6. Initialize Message Queue (NATS)
	messageQueue, err := queue.NewNATSQueue(cfg.NATS.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer messageQueue.Close()

	// 7. Initialize Repositories
	vendorRepo := postgres.NewVendorRepository(db, logger)
	priceRepo := postgres.NewPriceRepository(db, logger)

	// 8. Initialize the Resolution Engine + Service Layer
	vocabulary := nlu.NewVocabulary()
	classifier := nlu.NewClassifier(vocabulary)
	ranker := nlu.NewRanker(nlu.NewNormalizer(), nlu.NewMatcher(nlu.DefaultCatalog()))

	assistantService := assistant.New(
		ranker,
		classifier,
		vendorRepo,
		priceRepo,
		cacheStore,
		messageQueue,
		logger,
		assistant.Options{
			DefaultRadiusKm:   cfg.Assistant.DefaultRadiusKm,
			DirectoryCacheTTL: cfg.Cache.VendorDirectoryTTL,
			BreakerTimeout:    cfg.CircuitBreaker.Timeout,
		},
	)

	// 9. Initialize WebSocket Hub (for real-time updates)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	// 10. Initialize Voice Stream Handler
	voiceStreamHandler := wsAdapter.NewVoiceStreamHandler(
		assistantService, classifier, cfg.Assistant.LocationTimeout, logger)

	// 11. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := cacheStore.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// API v1 Routes
	v1 := app.Group("/api/v1")

	assistantHandler := handlers.NewAssistantHandler(assistantService, logger)
	v1.Post("/assistant/voice", assistantHandler.ResolveVoice)
	v1.Post("/assistant/chat", assistantHandler.Chat)

	vendorHandler := handlers.NewVendorHandler(assistantService, logger)
	v1.Get("/vendors/nearby", vendorHandler.GetNearby)

	priceHandler := handlers.NewPriceHandler(assistantService, priceRepo, logger)
	v1.Get("/prices", priceHandler.List)
	v1.Get("/prices/:vegetable", priceHandler.Get)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// Real-time resolved-intent updates
	app.Get("/ws/updates", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Query("session_id", "guest")
		wsHub.AddClient(c, sessionID)
	}))

	// Voice streaming WebSocket
	app.Get("/ws/voice", websocket.New(func(c *websocket.Conn) {
		voiceStreamHandler.HandleVoiceStream(c)
	}))

	// 12. Start Background Workers
	go startBackgroundWorkers(messageQueue, wsHub, logger)

	// 13. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers consumes assistant events from the broker.
func startBackgroundWorkers(mq queue.MessageQueue, hub *wsAdapter.Hub, logger *zap.Logger) {
	logger.Info("Starting background workers")

	// Worker 1: fan resolved intents out to /ws/updates subscribers
	if err := mq.Subscribe(assistant.SubjectIntentResolved, func(msg []byte) error {
		hub.Broadcast(msg)
		return nil
	}); err != nil {
		logger.Error("Failed to subscribe to resolved intents", zap.Error(err))
	}

	// Worker 2: analytics logging of classified queries
	if err := mq.Subscribe(assistant.SubjectQueryClassified, func(msg []byte) error {
		logger.Info("Query classified", zap.ByteString("event", msg))
		return nil
	}); err != nil {
		logger.Error("Failed to subscribe to classified queries", zap.Error(err))
	}
}
