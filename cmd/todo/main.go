package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/cleanup"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/bootstrap"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/config"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	srv "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/server"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/notifier"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "todo", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if err := run(cfg, log); err != nil {
		log.Fatalf("todo service: %v", err)
	}
}

func run(cfg config.AppConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL, db.PoolConfig{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, log, pool); err != nil {
		return err
	}

	clk := clock.NewRealClock()
	app, err := bootstrap.NewApp(cfg, bootstrap.PgStores(pool, cfg, clk), clk, log)
	if err != nil {
		return err
	}

	workers, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	var wg sync.WaitGroup

	db.StartPoolMetrics(workers, pool, constants.DBPoolMetricsInterval)
	app.Limits.StartCleanup(workers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanup.StartSessionCleanup(workers, app.Stores.Sessions, log)
	}()

	if cfg.NotifierEnabled() {
		sender, err := notifier.NewTelegramSender(cfg.TelegramBotToken, "", nil)
		if err != nil {
			return fmt.Errorf("failed to create telegram sender: %w", err)
		}
		if err := sender.Verify(ctx); err != nil {
			log.Warnf("telegram bot not reachable yet, sweeps will keep retrying: %v", err)
		} else {
			log.Infof("telegram bot @%s connected", sender.BotName())
		}

		n := notifier.New(notifier.NewPgRepository(pool), sender, clk, cfg.NotifyInterval, log)

		if cfg.TelegramDefaultChatID != "" {
			if err := n.Announce(ctx, cfg.TelegramDefaultChatID); err != nil {
				log.Warnf("startup announcement failed: %v", err)
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Run(workers)
		}()
	} else {
		log.Warn("TELEGRAM_BOT_TOKEN is not set, notifications are disabled")
	}

	server := srv.New(srv.DefaultConfig(cfg.HTTPPort), app.Handler)

	hooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("todo service: stopping background workers")
			cancelWorkers()

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}

	return srv.Run(ctx, server, log, "todo", hooks)
}
