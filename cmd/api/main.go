package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"roulette-backend/internal/config"
	"roulette-backend/internal/handlers"
	"roulette-backend/internal/logging"
	"roulette-backend/internal/models"
	"roulette-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	wheel := services.DefaultWheel()
	if cfg.WheelConfig != "" {
		wheel, err = services.LoadWheel(cfg.WheelConfig)
		if err != nil {
			return err
		}
	}

	ledger := services.NewMemoryLedger(
		services.WithStartingBalances(cfg.Ledger.StartingFTN, cfg.Ledger.StartingLBR),
	)
	if cfg.Ledger.SeedDemoUser {
		demo, err := ledger.CreateUser(models.NewUser{Username: "demo_user"})
		if err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
		log.WithField("user_id", demo.ID).Info("Seeded demo user")
	}

	hub := handlers.NewWebSocketHub()
	engine := services.NewRouletteEngine(ledger, wheel,
		services.WithBroadcaster(hub),
		services.WithMaxBet(cfg.Ledger.MaxBet),
	)

	deps := handlers.RouterDeps{
		Ledger:         ledger,
		Engine:         engine,
		Hub:            hub,
		RateLimitSpins: cfg.RateLimitSpins,
	}

	if cfg.RateLimitEnabled() {
		redisService, err := services.NewRedisService(ctx, cfg)
		if err != nil {
			return err
		}
		defer redisService.Close()

		deps.Limiter = redisService
	} else {
		log.Info("REDIS_URL not set, spin rate limiting disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		log.WithFields(log.Fields{
			"port":       cfg.Port,
			"slot_count": wheel.SlotCount(),
			"colors":     wheel.Colors(),
		}).Info("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("Shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
