package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/config"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokedex-api/internal/redis"
	catalogsession "github.com/KirkDiggler/pokedex-api/internal/repositories/catalog_session"
)

const (
	shutdownTimeout  = 30 * time.Second
	redisPingTimeout = 5 * time.Second
)

var (
	configPath string
	grpcPort   int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the Pokedex API gRPC server with the catalog service and a Prometheus metrics endpoint.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides grpc_port)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close() // nolint:errcheck // shutting down
	}()
	if err := redis.Ping(ctx, redisClient, redisPingTimeout); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	sessionRepo, err := catalogsession.NewRedisRepository(&catalogsession.Config{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	pokeClient, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.CatalogBaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create pokeapi client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	eventBus := events.NewBus()
	subscribeCatalogLogging(eventBus)

	catalogService, err := catalog.NewOrchestrator(&catalog.Config{
		Client:      pokeClient,
		SessionRepo: sessionRepo,
		IDGenerator: idgen.NewUUID("catalog"),
		EventBus:    eventBus,
		Metrics:     recorder,
		SessionTTL:  cfg.SessionTTL,
		LoadTimeout: cfg.LoadTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog orchestrator: %w", err)
	}

	catalogHandler, err := v1alpha1.NewCatalogHandler(&v1alpha1.CatalogHandlerConfig{
		CatalogService: catalogService,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic(logger))),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic(logger))),
		),
	)

	v1alpha1.RegisterCatalogServiceServer(srv, catalogHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.CatalogServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler(registry))
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()
	go func() {
		slog.Info("Metrics server starting", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve metrics: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		srv.Stop()
		_ = metricsServer.Close() // nolint:errcheck // already failing
		return err
	}

	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Running background loads are recorded as FAILED before Redis closes
	if err := catalogService.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Background catalog loads did not finish", "error", err)
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Metrics server shutdown failed", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}

// subscribeCatalogLogging logs every finished catalog session at the
// presentation boundary
func subscribeCatalogLogging(bus events.EventBus) {
	logOutcome := func(ctx context.Context, event events.Event) error {
		sessionID, _ := event.Context().Get(catalog.EventKeySessionID)
		slog.InfoContext(ctx, "Catalog session finished", "event", event.Type(), "session_id", sessionID)
		return nil
	}
	bus.SubscribeFunc(catalog.EventCatalogReady, 100, logOutcome)
	bus.SubscribeFunc(catalog.EventCatalogFailed, 100, logOutcome)
}
