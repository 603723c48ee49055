package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kinowatch/internal/api"
	"kinowatch/internal/bot"
	"kinowatch/internal/cache"
	"kinowatch/internal/config"
	"kinowatch/internal/i18n"
	"kinowatch/internal/models"
	"kinowatch/internal/monitor"
	"kinowatch/internal/notifier"
	"kinowatch/internal/scheduler"
	"kinowatch/internal/scrapers"
	"kinowatch/internal/services/telegram"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinowatch",
		Short: "Cinema program notification bot for Nuremberg",
		Long: "Kinowatch watches cinema program pages, detects new, changed and " +
			"removed films, and notifies Telegram subscribers.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the webhook server and scheduled monitoring",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Run one monitoring pass over all sources and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCheck()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the bot version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(bot.BotVersion)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles everything both subcommands need.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	db       *models.Database
	registry *scrapers.Registry
	cache    *cache.ProgramCache
	client   *telegram.Client
	bot      *bot.Bot
	monitor  *monitor.Monitor
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.LogLevel)
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	if err := i18n.Validate(); err != nil {
		return nil, fmt.Errorf("translation tables are inconsistent: %w", err)
	}

	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("Database initialized")

	imported, err := db.MigrateLegacySubscribers(cfg.LegacySubscribersFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate legacy subscribers: %w", err)
	}
	if imported > 0 {
		logger.WithField("imported", imported).Info("Migrated legacy subscribers")
	}

	registry := scrapers.NewRegistry()
	registry.Register(scrapers.NewMeisengeige(logger))
	registry.Register(scrapers.NewFilmhaus(logger))

	programCache := cache.NewProgramCache(registry, time.Duration(cfg.CacheTTLMinutes)*time.Minute, logger)

	client, err := telegram.NewClient(cfg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize Telegram client: %w", err)
	}
	logger.Info("Telegram client initialized")

	n := notifier.NewNotifier(db, client, registry, logger)
	m := monitor.NewMonitor(db, registry, n, programCache, logger)
	chatBot := bot.New(db, client, programCache, registry, cfg, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		registry: registry,
		cache:    programCache,
		client:   client,
		bot:      chatBot,
		monitor:  m,
	}, nil
}

func runCheck() error {
	a, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer a.db.Close()

	a.monitor.RunAll(context.Background())
	a.logger.Info("Check completed")
	return nil
}

func runServe() error {
	a, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer a.db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.bot.SetupCommandMenus(ctx); err != nil {
		a.logger.WithError(err).Warn("Failed to install command menus, continuing")
	}

	sched := scheduler.NewScheduler(a.monitor, a.cfg.MonitorSchedule, a.logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	server := api.NewServer(a.cfg, a.db, a.bot, a.registry, a.logger)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.logger.Info("Kinowatch is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		a.logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			a.logger.WithError(err).Error("Error during server shutdown")
		}
	}

	a.logger.Info("Kinowatch stopped")
	return nil
}
