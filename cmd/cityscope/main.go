package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpapi "github.com/saadsfaoui/cityscope/internal/api/http"
	"github.com/saadsfaoui/cityscope/internal/cache"
	"github.com/saadsfaoui/cityscope/internal/city"
	"github.com/saadsfaoui/cityscope/internal/config"
	"github.com/saadsfaoui/cityscope/internal/observability"
	"github.com/saadsfaoui/cityscope/internal/providers"
	"github.com/saadsfaoui/cityscope/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Shared HTTP client for outbound provider calls. No client-level
	// timeout: the bounded providers apply their own deadline, and the
	// air-quality, image, and music calls are deliberately unbounded.
	httpClient := &http.Client{}

	provs := city.Providers{
		Weather: providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.FetchTimeout),
		Air:     providers.NewWAQIProvider(httpClient, cfg.WAQIToken),
		Events:  providers.NewTicketmasterProvider(httpClient, cfg.TicketmasterKey, cfg.FetchTimeout),
		Bikes:   providers.NewCityBikesProvider(httpClient, cfg.FetchTimeout),
		Music:   providers.NewDeezerProvider(httpClient),
		Images:  providers.NewUnsplashProvider(httpClient, cfg.UnsplashKey),
	}

	// One session cache per process: the server is the map session.
	sessionCache := cache.New()
	agg := city.NewAggregator(provs, sessionCache, zlog)
	resolver := city.NewResolver(cfg.Seeds, provs.Weather)
	sess := city.NewSession(agg, resolver)

	warmer := scheduler.New(cfg.Seeds, cfg.WarmInterval, agg, zlog)
	if err := warmer.Start(); err != nil {
		zlog.Fatal("failed to start warmer", zap.Error(err))
	}
	defer warmer.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "cityscope",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "cityscope",
		})
	})

	httpapi.RegisterRoutes(app, agg, sess, resolver)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
