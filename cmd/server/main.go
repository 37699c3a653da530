package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"pantryHub/internal/config"
	donorport "pantryHub/internal/modules/donors/application/port"
	donorusecase "pantryHub/internal/modules/donors/application/usecase"
	donorinfra "pantryHub/internal/modules/donors/infrastructure"
	donortransport "pantryHub/internal/modules/donors/interface"
	pantryport "pantryHub/internal/modules/pantries/application/port"
	pantryusecase "pantryHub/internal/modules/pantries/application/usecase"
	pantryinfra "pantryHub/internal/modules/pantries/infrastructure"
	pantrytransport "pantryHub/internal/modules/pantries/interface"
	handler "pantryHub/internal/modules/realtime/application/handler"
	usecase "pantryHub/internal/modules/realtime/application/usecase"
	"pantryHub/internal/modules/realtime/domain"
	"pantryHub/internal/modules/realtime/infrastructure"
	transport "pantryHub/internal/modules/realtime/interface"
	"pantryHub/internal/platform/broker"
	"pantryHub/internal/platform/database"
	"pantryHub/internal/shared/auth"
	"pantryHub/internal/shared/logging"
)

func main() {
	// .env is optional; local runs use it to override the environment.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.InventoryTopics))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.close()
	pantries, inventory := store.pantries, store.inventory

	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		slog.Error("jwt validator init failed", slog.Any("error", err))
		os.Exit(1)
	}

	clock := pantryport.Clock(time.Now)
	loc := cfg.Hours.Location

	// Realtime
	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	publisher := usecase.NewInventoryBroadcaster(broadcastUC, clock)

	// Pantries
	getUC := pantryusecase.NewGetPantryUseCase(pantries, inventory, clock, loc)
	pantryUCs := pantrytransport.UseCases{
		Search:    pantryusecase.NewSearchPantriesUseCase(pantries, inventory, clock, loc),
		Get:       getUC,
		Hours:     pantryusecase.NewHoursStatusUseCase(pantries, clock, loc),
		Manage:    pantryusecase.NewManagePantryUseCase(pantries, clock),
		Inventory: pantryusecase.NewInventoryUseCase(pantries, inventory, publisher, clock),
		Stats:     pantryusecase.NewStatsUseCase(pantries, inventory, clock, loc),
		Evaluate:  pantryusecase.NewEvaluateHoursUseCase(clock, loc),
	}
	donorsUC := donorusecase.NewManageDonorsUseCase(store.donors, pantries, donorport.Clock(clock))
	watchUC := usecase.NewWatchPantryUseCase(validator, getUC)
	announceUC := usecase.NewAnnounceUseCase(getUC, broadcastUC, clock)

	for _, topic := range cfg.Kafka.InventoryTopics {
		registry.Register(handler.NewInventoryEventHandler(topic, domain.InventoryActions, broadcastUC))
	}
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	if cfg.Server.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimitRPS))))
	}
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "clients": hub.ClientCount()})
	})
	pantrytransport.RegisterRoutes(e, pantryUCs, validator)
	donortransport.RegisterRoutes(e, donorsUC, validator)
	transport.RegisterRoutes(e, hub, watchUC, announceUC, validator, clock)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	cancel()
	consumers.Wait()
}

type stores struct {
	pantries  pantryport.PantryRepository
	inventory pantryport.InventoryRepository
	donors    donorport.DonorRepository
	close     func()
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to the in-memory store.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*stores, error) {
	if cfg.URL == "" {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		repo := pantryinfra.NewMemoryRepository()
		return &stores{
			pantries:  repo,
			inventory: repo.Inventory(),
			donors:    donorinfra.NewMemoryRepository(),
			close:     func() {},
		}, nil
	}
	pool, err := database.Connect(ctx, cfg.URL, database.PoolConfig{})
	if err != nil {
		return nil, err
	}
	repo := pantryinfra.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	donors := donorinfra.NewPostgresRepository(pool)
	if err := donors.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("postgres connected", slog.Int("maxConns", int(pool.Config().MaxConns)))
	return &stores{pantries: repo, inventory: repo.Inventory(), donors: donors, close: pool.Close}, nil
}
