package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/config"
	"github.com/aliskhannn/daily-challenge-bot/internal/delivery/telegram"
	"github.com/aliskhannn/daily-challenge-bot/internal/events"
	"github.com/aliskhannn/daily-challenge-bot/internal/infra/postgres"
	"github.com/aliskhannn/daily-challenge-bot/internal/infra/sqlite"
	"github.com/aliskhannn/daily-challenge-bot/internal/logger"
	"github.com/aliskhannn/daily-challenge-bot/internal/questionsource"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	code := exitCode(lg, run(cfg, lg))
	_ = lg.Sync()
	os.Exit(code)
}

// exitCode logs how the bot stopped and returns the process exit code.
func exitCode(lg *zap.Logger, err error) int {
	if err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped", zap.Error(err))
		return 1
	}
	lg.Info("shutdown complete")
	return 0
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openProfileStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer closeStore()

	loader, closeCache, err := newLoader(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeCache()

	bus := events.NewFailedItemBus(store, cfg.Events.Buffer, logger.NewWatermillAdapter(lg), lg)
	if err := bus.Start(ctx); err != nil {
		return fmt.Errorf("start failed item bus: %w", err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			lg.Warn("close failed item bus", zap.Error(err))
		}
	}()

	source := questionsource.New(loader, lg)
	sampler := questionsource.NewSampler(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg.Quiz.SessionSize,
		cfg.Quiz.MatchingSessionSize,
	)

	profileService := service.NewProfileService(store, lg)
	challengeService := service.NewChallengeService(
		store,
		source,
		sampler,
		bus,
		storage.NewRunStorage(),
		lg,
		cfg.Quiz.MatchingFailureThreshold,
	)
	contentService := service.NewContentService(source, sampler)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(bot, lg, profileService, challengeService, contentService)
	if err := handler.RegisterCommands(); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	return handler.Run(ctx)
}

// openProfileStore opens the configured database backend.
func openProfileStore(ctx context.Context, cfg *config.Config) (service.ProfileStore, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.URL)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewProfileStore(db), func() { _ = db.Close() }, nil

	default:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewProfileStore(pool), pool.Close, nil
	}
}

// newLoader builds the bank loader, cached in Redis when REDIS_URL is set.
func newLoader(ctx context.Context, cfg *config.Config, lg *zap.Logger) (questionsource.Loader, func(), error) {
	httpLoader := questionsource.NewHTTPLoader(cfg.Source.BaseURL, cfg.Source.Timeout, lg)
	if cfg.RedisURL == "" {
		lg.Info("redis cache disabled")
		return httpLoader, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		lg.Warn("redis unavailable, cache disabled", zap.Error(err))
		_ = client.Close()
		return httpLoader, func() {}, nil
	}

	cached := questionsource.NewCachedLoader(httpLoader, questionsource.NewRedisCache(client), cfg.Source.CacheTTL, lg)
	return cached, func() { _ = client.Close() }, nil
}
