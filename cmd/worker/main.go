package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/baseline-api/internal/config"
	"github.com/jwalitptl/baseline-api/internal/worker"
	"github.com/jwalitptl/baseline-api/pkg/logger"
	"github.com/jwalitptl/baseline-api/pkg/messaging/redis"
)

func main() {
	var (
		configPath string
		healthAddr string
	)

	rootCmd := &cobra.Command{
		Use:   "baseline-worker",
		Short: "Tail record-change events from the broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, healthAddr)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&healthAddr, "health-addr", ":8081", "Address for the liveness endpoint, empty to disable")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath, healthAddr string) error {
	// Load config
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Log.ToLoggerConfig())
	log.Logger = appLogger.Zerolog()

	// An in-process broker cannot see the API's events, so Redis is required here.
	if cfg.Redis.URL == "" {
		return errors.New("redis.url (or REDIS_URL) must be set for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	broker, err := redis.NewRedisBroker(connectCtx, cfg.Redis.ToBrokerConfig(), log.Logger, nil)
	cancel()
	if err != nil {
		return err
	}
	defer broker.Close()

	if healthAddr != "" {
		setupHealthCheck(healthAddr, appLogger)
	}

	w := worker.NewEventLogWorker(broker, cfg.Events.Channel, appLogger)
	return w.Start(ctx)
}

func setupHealthCheck(addr string, logger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal(err, "Health check server failed")
		}
	}()
}
