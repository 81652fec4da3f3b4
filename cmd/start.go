package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"card-catalog/core/loader"
	"card-catalog/core/logger"
	"card-catalog/core/middleware/auth"
	"card-catalog/core/middleware/rayid"
	"card-catalog/feature/cards"
	"card-catalog/feature/search"
	"card-catalog/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "card-catalog/docs/swagger"
)

// @title Card Catalog API
// @version 1.0
// @description Cached, fault-tolerant access to trading card catalogs.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the card catalog server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Wire configuration, logger, storage, cache, providers and the optional index
		a, err := loadApplication(context.Background())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           a.cfg.Server.ReadTimeout,
			WriteTimeout:          a.cfg.Server.WriteTimeout,
		})

		// 3. Register Features
		mgr := loader.NewManager()
		mgr.Register(cards.NewFeature(a.cards, logg))
		mgr.Register(search.NewFeature(a.engine(), logg))
		mgr.Register(status.NewFeature(a.status))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey:       a.cfg.Server.ApiKey,
			SkipPrefixes: []string{"/swagger"},
		}))

		// 4. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 5. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.String("environment", a.cfg.Server.Environment),
				zap.String("cache_backend", a.cfg.Cache.Backend),
			)
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
