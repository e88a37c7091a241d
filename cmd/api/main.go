package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead_gateway_backend/internal/adapters"
	"lead_gateway_backend/internal/booking"
	"lead_gateway_backend/internal/crm"
	"lead_gateway_backend/internal/events"
	apphttp "lead_gateway_backend/internal/http"
	"lead_gateway_backend/internal/http/router"
	"lead_gateway_backend/internal/identity/repository"
	"lead_gateway_backend/internal/identity/service"
	"lead_gateway_backend/internal/ingest"
	"lead_gateway_backend/internal/notion"
	"lead_gateway_backend/internal/relay"
	"lead_gateway_backend/internal/status"
	"lead_gateway_backend/internal/telephony"
	"lead_gateway_backend/internal/voiceagent"
	"lead_gateway_backend/internal/workflow"
	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/db"
	"lead_gateway_backend/platform/logger"
	"lead_gateway_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting gateway", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, storeKind := initStore(ctx, cfg, log)
	log.Info("identity store initialized", "kind", storeKind)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	publisher, relayMode, closePublisher := initRelayPublisher(cfg, log)
	if closePublisher != nil {
		defer closePublisher()
	}
	relay.NewForwarder(publisher, log).RegisterHandlers(eventBus)
	log.Info("workflow relay initialized", "mode", relayMode)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	resolver := service.NewResolver(store)
	recorder := workflow.NewRecorder(store, eventBus, log)

	crmModule := crm.NewModule(cfg, recorder, val, log)

	var contactLookup voiceagent.ContactLookup = crmModule.ContactLookup()
	leadCache := false
	if client := initRedisClient(cfg, log); client != nil {
		contactLookup = voiceagent.NewCachedContactLookup(contactLookup, client, cfg.LeadCacheTTL, log)
		leadCache = true
		defer client.Close()
	}

	outcomeSink := adapters.NewCallOutcomeRecorder(recorder, resolver, log)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   store,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			ingest.NewModule(store, resolver, recorder, eventBus, cfg.DefaultPhoneRegion, val, log),
			telephony.NewModule(recorder, cfg.DefaultPhoneRegion, val, log),
			booking.NewModule(recorder, resolver, cfg.DefaultPhoneRegion, val, log),
			notion.NewModule(recorder, log),
			voiceagent.NewModule(contactLookup, outcomeSink, recorder, eventBus, cfg.PrecallLookupTimeout, val, log),
			crmModule,
			status.NewModule(status.NewPipelineStatus(storeKind, relayMode, leadCache, zohoAuthMode(cfg))),
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initStore selects the identity store backend. An empty DATABASE_URL runs
// the gateway on the in-memory store; with a URL configured, migrations and
// the pool must come up before the server starts.
func initStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, string) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not configured; using in-memory identity store")
		return repository.NewMemoryStore(), "in-memory"
	}

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(cfg.DatabaseURL, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var store *repository.PostgresStore
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		store = repository.NewPostgresStore(pool)
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}

	return store, "postgres"
}

// initRelayPublisher picks the outbound relay transport: the asynq queue
// when Redis is configured, a direct HTTP post when only the webhook URL
// is, otherwise a no-op.
func initRelayPublisher(cfg *config.Config, log *logger.Logger) (relay.Publisher, string, func()) {
	if cfg.RedisURL != "" {
		queue, err := relay.NewQueuePublisher(cfg)
		if err != nil {
			log.Error("failed to initialize relay queue publisher", "error", err)
		} else {
			return relay.NewLoggingPublisher(queue, log), "queue", func() { _ = queue.Close() }
		}
	}
	if cfg.WorkflowWebhookURL != "" {
		return relay.NewLoggingPublisher(relay.NewHTTPPublisher(cfg), log), "http", nil
	}
	log.Warn("no relay transport configured; workflow events stay local")
	return relay.NoopPublisher{}, "disabled", nil
}

// initRedisClient builds the client backing the pre-call lead cache, or
// nil when Redis is not configured or the URL does not parse.
func initRedisClient(cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid REDIS_URL; lead cache disabled", "error", err)
		return nil
	}
	if opt.TLSConfig != nil && cfg.RedisTLSInsecure {
		opt.TLSConfig.InsecureSkipVerify = true
	}
	return redis.NewClient(opt)
}

func zohoAuthMode(cfg *config.Config) string {
	switch {
	case cfg.ZohoClientID != "" && cfg.ZohoClientSecret != "" && cfg.ZohoRefreshToken != "":
		return "oauth2_refresh"
	case cfg.ZohoAccessToken != "":
		return "static_token"
	default:
		return "not_configured"
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
