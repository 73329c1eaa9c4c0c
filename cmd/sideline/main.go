package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/logging"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
	"github.com/KirkDiggler/sideline/internal/config"
	"github.com/KirkDiggler/sideline/internal/handlers/discord"
	matchRepo "github.com/KirkDiggler/sideline/internal/repositories/match"
	playtimeRepo "github.com/KirkDiggler/sideline/internal/repositories/playtime"
	matchService "github.com/KirkDiggler/sideline/internal/services/match"
	"github.com/redis/go-redis/v9"
)

func main() {
	os.Exit(serve(os.Stdin, os.Stdout))
}

// serve wires the application and runs the command loop over in and out,
// returning the process exit code once every deferred cleanup has run
func serve(in io.Reader, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		return 1
	}

	// Initialize repositories
	matches, err := matchRepo.NewRedis(&matchRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Error("failed to create match repository", "error", err)
		return 1
	}

	ledger, err := playtimeRepo.NewRedis(&playtimeRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Error("failed to create playtime repository", "error", err)
		return 1
	}

	var notifier matchService.Notifier = matchService.NoopNotifier{}
	if cfg.DiscordEnabled() {
		discordNotifier, err := discord.New(&discord.Config{
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
		})
		if err != nil {
			logger.Error("failed to create Discord notifier", "error", err)
			return 1
		}
		if err := discordNotifier.Start(); err != nil {
			logger.Error("failed to start Discord notifier", "error", err)
			return 1
		}
		defer func() {
			if err := discordNotifier.Stop(); err != nil {
				logger.Warn("error stopping Discord notifier", "error", err)
			}
		}()
		notifier = discordNotifier
	} else {
		logger.Info("Discord not configured, match updates will not be posted")
	}

	// Initialize match service
	svc, err := matchService.New(&matchService.Config{
		MatchRepo:     matches,
		PlaytimeRepo:  ledger,
		Notifier:      notifier,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create match service", "error", err)
		return 1
	}

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- run(runCtx, svc, in, out)
	}()

	logger.Info("sideline is reading commands from stdin")

	// Wait for end of input or an interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	select {
	case err := <-done:
		if err != nil {
			logger.Error("command loop failed", "error", err)
			return 1
		}
	case sig := <-sc:
		logger.Info("shutting down", "signal", sig.String())
	}

	return 0
}
