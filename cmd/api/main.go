package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	_ "github.com/communityhub/events-api/docs"
	"github.com/communityhub/events-api/internal/api"
	"github.com/communityhub/events-api/internal/api/handler"
	"github.com/communityhub/events-api/internal/core/service"
	"github.com/communityhub/events-api/internal/infrastructure/broker"
	"github.com/communityhub/events-api/internal/infrastructure/config"
	redisstore "github.com/communityhub/events-api/internal/infrastructure/db/redis"
	"github.com/communityhub/events-api/internal/infrastructure/queue"
	"github.com/communityhub/events-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Community Events API
// @version                     1.0
// @description                 Event catalogue with organizer submissions, admin approval and capacity-checked registrations.
// @host                        localhost:8080
// @BasePath                    /
// @schemes                     http
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("service stopped")
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Output: os.Stderr})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "events-api",
		Env:     cfg.Env,
	})

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// --- Storage ---
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close(context.Background()) }()
	log.Info().Str("backend", st.name).Msg("store ready")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	revocations := redisstore.NewRevocationList(rdb)

	// --- Activity trail ---
	sinks := []queue.Sink{{Name: "store", ActivitySink: st.activity}}
	if cfg.RabbitMQ.URL != "" {
		pub, err := broker.Dial(ctx, cfg.RabbitMQ.URL, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		sinks = append(sinks, queue.Sink{Name: "rabbitmq", ActivitySink: pub})
	}

	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, sinks, log)
	dispatcher.Start(dispatchCtx)

	// --- Services ---
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, revocations)
	bootstrap := service.NewRoleBootstrap(cfg.Bootstrap.AdminEmails, cfg.Bootstrap.OrganizerEmails)

	router := api.NewRouter(api.Dependencies{
		Auth:          service.NewAuthService(st.users, tokens, bootstrap, component(log, "auth")),
		Tokens:        tokens,
		Events:        service.NewEventService(st.events, st.activity, dispatcher, component(log, "events")),
		Registrations: service.NewRegistrationService(st.events, st.regs, dispatcher, component(log, "registrations")),
		Users:         service.NewUserService(st.users, st.events, component(log, "users")),
		Health: map[string]handler.Pinger{
			st.name: st,
			"redis": revocations,
		},
		Log:    log,
		Sentry: cfg.SentryDSN != "",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		stopDispatch()
		dispatcher.Wait()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// In-flight requests are done; flush what they published.
	stopDispatch()
	dispatcher.Wait()
	log.Info().Msg("server exited gracefully")
	return nil
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
