package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/Fraud-stop/shield-wise-guard/internal/api"
	"github.com/Fraud-stop/shield-wise-guard/internal/api/handlers"
	apimiddleware "github.com/Fraud-stop/shield-wise-guard/internal/api/middleware"
	"github.com/Fraud-stop/shield-wise-guard/internal/bootstrap"
	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/grpc/healthcheck"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/cache"
	"github.com/Fraud-stop/shield-wise-guard/internal/streaming"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		TimeFormat: cfg.Logger.TimeFormat,
	})

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting Fraud Stop API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	infra, err := bootstrap.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize infrastructure")
	}
	defer infra.Close()

	refs, err := bootstrap.LoadReferences(ctx, cfg, infra.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reference lists")
	}

	eventBus := streaming.NewEventBus(infra.NATS, log)
	defer eventBus.Close()
	log.Info().Bool("nats_enabled", infra.NATS != nil).Msg("event bus initialized")

	go func() {
		if err := eventBus.Run(ctx); err != nil {
			log.Error().Err(err).Msg("NATS relay stopped")
		}
	}()

	wsHub := streaming.NewWebSocketHub(log, cfg.CORS.AllowedOrigins...)
	hubEvents, unsubscribeHub := eventBus.Subscribe(nil)
	defer unsubscribeHub()
	go wsHub.Run(ctx, hubEvents)

	publisher := streaming.NewBusPublisher(eventBus)
	classifier := bootstrap.NewClassifier(cfg, refs)
	matcher := services.NewIntentMatcher(services.DefaultIntentTable())

	var (
		sessions cache.SessionStore
		limiter  apimiddleware.Limiter
	)
	if infra.Redis != nil {
		sessions = cache.NewRedisSessionStore(infra.Redis, cfg.Chat.SessionTTL, cfg.Chat.MaxHistory)
		limiter = infra.Redis
	} else {
		sessions = cache.NewMemorySessionStore(cfg.Chat.SessionTTL, cfg.Chat.MaxHistory)
		limiter = cache.NewMemoryLimiter()
	}

	probes := make(map[string]handlers.Probe)
	if infra.DB != nil {
		probes["postgres"] = infra.DB.Ping
	}
	if infra.Redis != nil {
		probes["redis"] = infra.Redis.Ping
	}
	if infra.NATS != nil {
		probes["nats"] = func(context.Context) error {
			if !infra.NATS.IsConnected() {
				return streaming.ErrNATSUnavailable
			}
			return nil
		}
	}

	h := handlers.NewHandlers(handlers.Dependencies{
		Config:          *cfg,
		ReferenceSource: cfg.Reference.Source,
		Checks:          services.NewCheckService(classifier, publisher, cfg.Checker.MaxBatchSize, log),
		Reports:         services.NewReportService(classifier, publisher, log),
		Conversation:    services.NewConversation(matcher),
		Content:         services.DefaultContentCatalog(),
		Sessions:        sessions,
		EventBus:        eventBus,
		WebSocketHub:    wsHub,
		Probes:          probes,
		Logger:          log,
	})

	router := api.NewRouter(*cfg, h, limiter, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gRPC listener")
	}

	grpcServer := grpc.NewServer()
	healthProbes := make(map[string]healthcheck.Probe, len(probes))
	for name, p := range probes {
		healthProbes[name] = healthcheck.Probe(p)
	}
	health := healthcheck.NewServer(healthProbes, 0, log)
	health.Register(grpcServer)
	go health.Run(ctx)

	go func() {
		log.Info().Str("addr", grpcListener.Addr().String()).Msg("starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	grpcServer.GracefulStop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
