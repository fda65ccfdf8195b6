package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/aradsms/compose_service/internal/compose_service/adapters/backend"
	composeApp "github.com/aradsms/compose_service/internal/compose_service/app"
	"github.com/aradsms/compose_service/internal/compose_service/middleware"
	httptransport "github.com/aradsms/compose_service/internal/compose_service/transport/http"
	"github.com/aradsms/compose_service/internal/platform/config"
	"github.com/aradsms/compose_service/internal/platform/logger"
)

const (
	serviceName     = "compose_service"
	shutdownTimeout = 15 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel).With("service", serviceName)
	appLogger.Info("Starting service...")
	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"http_port", cfg.ComposeAPIServicePort,
		"grpc_port", cfg.ComposeServiceGRPCPort,
		"backend_base_url", cfg.BackendBaseURL,
		"backend_account_id", cfg.BackendAccountID,
		"backend_token_present", cfg.BackendAPIToken != "",
		"backend_rate_limit_rps", cfg.BackendRateLimitRPS,
		"direct_uploads_enabled", cfg.DirectUploadsEnabled,
	)

	backendClient := backend.NewClient(appLogger, cfg.BackendBaseURL, cfg.BackendAccountID, cfg.BackendAPIToken,
		&http.Client{Timeout: cfg.BackendTimeout()},
		backend.WithRateLimit(cfg.BackendRateLimitRPS, cfg.BackendRateLimitBurst))
	application := composeApp.NewApplication(backendClient, appLogger)
	composeHandler := httptransport.NewComposeHandler(application, cfg.Portal(), cfg.DirectUploadsEnabled, appLogger, validator.New())

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httptransport.PrometheusMetricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "Compose service is healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v1Router chi.Router) {
		v1Router.Use(middleware.AuthMiddleware(cfg.JWTAccessSecret, appLogger))
		composeHandler.RegisterRoutes(v1Router)
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ComposeAPIServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
			return err
		}
		appLogger.Info("HTTP server stopped gracefully.")
		return nil
	})

	g.Go(func() error {
		listenAddress := fmt.Sprintf(":%d", cfg.ComposeServiceGRPCPort)
		appLogger.Info("gRPC health server starting", "address", listenAddress)
		lis, err := net.Listen("tcp", listenAddress)
		if err != nil {
			appLogger.Error("Failed to listen for gRPC", "address", listenAddress, "error", err)
			return fmt.Errorf("failed to listen for gRPC on %s: %w", listenAddress, err)
		}
		defer lis.Close()

		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Error("gRPC server failed to serve", "error", err)
			return err
		}
		appLogger.Info("gRPC server stopped gracefully.")
		return nil
	})

	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
			return nil
		case <-groupCtx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown...")
		healthServer.Shutdown()

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	appLogger.Info("Service is ready and running.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, grpc.ErrServerStopped) {
		appLogger.Error("Service group encountered an error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Service shutdown complete.")
}
