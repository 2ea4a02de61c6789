package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/baseline-api/internal/config"
	"github.com/jwalitptl/baseline-api/internal/handler"
	"github.com/jwalitptl/baseline-api/internal/handler/appointment"
	"github.com/jwalitptl/baseline-api/internal/handler/auth"
	"github.com/jwalitptl/baseline-api/internal/handler/dashboard"
	"github.com/jwalitptl/baseline-api/internal/handler/patient"
	"github.com/jwalitptl/baseline-api/internal/middleware"
	"github.com/jwalitptl/baseline-api/internal/repository/memory"
	"github.com/jwalitptl/baseline-api/internal/router"
	appointmentService "github.com/jwalitptl/baseline-api/internal/service/appointment"
	authService "github.com/jwalitptl/baseline-api/internal/service/auth"
	eventService "github.com/jwalitptl/baseline-api/internal/service/event"
	patientService "github.com/jwalitptl/baseline-api/internal/service/patient"
	statsService "github.com/jwalitptl/baseline-api/internal/service/stats"
	jwtauth "github.com/jwalitptl/baseline-api/pkg/auth"
	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/logger"
	"github.com/jwalitptl/baseline-api/pkg/messaging"
	"github.com/jwalitptl/baseline-api/pkg/messaging/redis"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
	"github.com/jwalitptl/baseline-api/pkg/validator"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "baseline-api",
		Short: "Healthcare records API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yml or ./config/config.yml)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the demo data set the server starts with",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			users := memory.SeedUsers()
			views := make([]interface{}, 0, len(users))
			for i := range users {
				views = append(views, users[i].View())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"users":        views,
				"patients":     memory.SeedPatients(now),
				"appointments": memory.SeedAppointments(now),
			})
		},
	}
}

func runServer(configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Log.ToLoggerConfig())
	log.Logger = appLogger.Zerolog()

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(reg, cfg.Metrics.Namespace)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize event broker
	broker, err := newBroker(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer broker.Close()

	// Initialize repositories
	stores := memory.NewStores(cfg.Seed.Enabled, time.Now().UTC())
	patientRepo := memory.NewPatientRepository(stores.Patients, m)
	appointmentRepo := memory.NewAppointmentRepository(stores.Appointments, m)
	userRepo := memory.NewUserRepository(stores.Users, m)

	// Initialize services
	v := validator.New()
	jwtSvc := jwtauth.NewJWTService(jwtauth.Config{
		Secret: cfg.Auth.Secret,
		Expiry: cfg.TokenExpiry(),
		Issuer: cfg.Auth.Issuer,
	})
	patientSvc := patientService.NewService(patientRepo, v)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientSvc, v)
	authSvc := authService.NewService(userRepo, jwtSvc, cfg.Auth.IssueTokens)
	statsSvc := statsService.NewService(patientRepo, appointmentRepo)

	// Initialize event tracking
	var eventTracker *event.EventTracker
	if cfg.Events.Enabled {
		eventSvc := eventService.NewService(broker, cfg.Events.Channel, appLogger, m)
		eventTracker = event.NewEventTracker(eventSvc)
	}

	// Setup router
	routerConfig := router.RouterConfig{
		CORSConfig:     corsConfig(cfg.CORS),
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Metrics:        m,
	}
	if cfg.Metrics.Enabled {
		routerConfig.MetricsPath = cfg.Metrics.Path
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimiterConfig()
		rl.Rate = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		rl.Burst = cfg.RateLimit.Burst
		routerConfig.RateLimit = &rl
	}

	r := router.NewRouter(
		handler.NewHandler(reg),
		auth.NewHandler(authSvc),
		patient.NewHandler(patientSvc),
		appointment.NewHandler(appointmentSvc),
		dashboard.NewHandler(statsSvc),
		eventTracker,
		routerConfig,
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("seeded", cfg.Seed.Enabled).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

// newBroker connects to Redis when a URL is configured and otherwise keeps
// events in process.
func newBroker(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (messaging.Broker, error) {
	if cfg.Redis.URL == "" {
		log.Info().Msg("no redis url configured, using in-process event broker")
		return messaging.NewMemoryBroker(256), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	broker, err := redis.NewRedisBroker(connectCtx, cfg.Redis.ToBrokerConfig(), log.Logger, m)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return broker, nil
}

func corsConfig(c config.CORSConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(c.AllowedOrigins) > 0 {
		cors.AllowOrigins = c.AllowedOrigins
	}
	cors.AllowCredentials = c.AllowCredentials
	return cors
}
