// Command server runs the amoria admin backend: person screening, background
// verification, plan overrides, and operator auth behind one HTTP surface.
// main wires dependencies and owns the process lifecycle; business logic
// lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"amoria/internal/audit"
	billinghandler "amoria/internal/billing/handler"
	billingmetrics "amoria/internal/billing/metrics"
	billingservice "amoria/internal/billing/service"
	billingstore "amoria/internal/billing/store"
	operatorhandler "amoria/internal/operator/handler"
	operatorservice "amoria/internal/operator/service"
	operatorstore "amoria/internal/operator/store"
	"amoria/internal/operator/token"
	"amoria/internal/platform/config"
	"amoria/internal/platform/database"
	"amoria/internal/platform/health"
	"amoria/internal/platform/logger"
	platformredis "amoria/internal/platform/redis"
	"amoria/internal/screening/cache"
	screeninghandler "amoria/internal/screening/handler"
	screeningmetrics "amoria/internal/screening/metrics"
	"amoria/internal/screening/searchbug"
	screeningservice "amoria/internal/screening/service"
	screeningstore "amoria/internal/screening/store"
	httptransport "amoria/internal/transport/http"
	verificationhandler "amoria/internal/verification/handler"
	verificationmetrics "amoria/internal/verification/metrics"
	verificationservice "amoria/internal/verification/service"
	verificationstore "amoria/internal/verification/store"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing amoria admin backend",
		"addr", cfg.Addr,
		"manual_search_enabled", cfg.ManualSearchEnabled,
	)

	// Optional infrastructure. Each constructor returns nil when the
	// dependency is not configured and the services degrade accordingly.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		log.Warn("no kafka brokers configured, audit events stay in memory")
		sink = audit.NewInMemorySink()
	}
	auditor := audit.NewPublisher(sink, log)

	// Stores: postgres when a database is configured, in-memory otherwise.
	var (
		batches   screeningstore.Store
		profiles  screeningstore.ProfileStore
		verifs    verificationstore.Store
		purchases billingstore.Store
		operators operatorstore.Store
	)
	if pool != nil {
		batches = screeningstore.NewPostgres(pool.DB())
		profiles = screeningstore.NewPostgresProfiles(pool.DB())
		verifs = verificationstore.NewPostgres(pool.DB())
		purchases = billingstore.NewPostgres(pool.DB())
		operators = operatorstore.NewPostgres(pool.DB())
	} else {
		log.Warn("no database configured, using in-memory stores")
		batches = screeningstore.New()
		profiles = screeningstore.NewProfiles()
		verifs = verificationstore.New()
		purchases = billingstore.New()
		operators = operatorstore.New()
	}

	var lookup screeningservice.Lookup
	if sb := searchbug.New(cfg.SearchBugBaseURL, cfg.SearchBugAPIKey, cfg.SearchBugTimeout, log); sb != nil {
		lookup = sb
	}

	var reportCache *cache.Reports
	if redisClient != nil {
		reportCache = cache.NewReports(redisClient.Client, cfg.ReportCacheTTL)
	}

	screeningSvc := screeningservice.NewService(batches, profiles, lookup, auditor, log,
		screeningservice.WithMetrics(screeningmetrics.New()),
		screeningservice.WithReportCache(reportCache),
		screeningservice.WithManualSearch(cfg.ManualSearchEnabled),
	)
	verificationSvc := verificationservice.NewService(verifs, auditor, log,
		verificationservice.WithMetrics(verificationmetrics.New()),
	)
	billingSvc := billingservice.NewService(purchases, auditor, log,
		billingservice.WithMetrics(billingmetrics.New()),
	)

	tokens := token.NewService(cfg.JWTSigningKey, cfg.TokenTTL)
	operatorSvc := operatorservice.NewService(operators, tokens, auditor, log)

	checks := map[string]health.Checker{}
	if pool != nil {
		checks["postgres"] = pool
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Operator:     operatorhandler.New(operatorSvc, log),
		Screening:    screeninghandler.New(screeningSvc, log),
		Verification: verificationhandler.New(verificationSvc, log),
		Billing:      billinghandler.New(billingSvc, log),
		Health:       health.New(checks),
	}, tokens, log)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	if pool != nil {
		if err := pool.Close(); err != nil {
			log.Error("closing database pool", "error", err)
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("server stopped")
}
