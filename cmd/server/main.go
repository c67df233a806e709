package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"cleargate/internal/chains"
	"cleargate/internal/compliance"
	compliancehandler "cleargate/internal/compliance/handler"
	"cleargate/internal/compliance/metrics"
	"cleargate/internal/platform/config"
	"cleargate/internal/platform/httpserver"
	"cleargate/internal/platform/logger"
	platformredis "cleargate/internal/platform/redis"
	"cleargate/internal/sanctions"
	httptransport "cleargate/internal/transport/http"
	"cleargate/internal/usage"
	"cleargate/internal/verification"
	"cleargate/pkg/platform/circuit"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Error("policy load failed", "path", cfg.PolicyFile, "error", err)
		os.Exit(1)
	}

	// Verification provider: postgres when configured, memory otherwise.
	var verificationProvider compliance.VerificationProvider
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		verificationProvider = verification.NewPostgresStore(db)
	} else {
		verificationProvider = verification.NewMemoryStore()
	}

	// Usage history: redis when configured, memory otherwise.
	var usageProvider compliance.UsageHistoryProvider
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		usageProvider = usage.NewRedisStore(redisClient.Client)
	} else {
		usageProvider = usage.NewMemoryStore()
	}

	// Sanctions: remote screening behind a breaker when configured, else the
	// policy file's static denylist.
	var sanctionsLookup compliance.SanctionsLookup
	if cfg.SanctionsURL != "" {
		breaker := circuit.New("sanctions", circuit.WithFailureThreshold(5))
		sanctionsLookup = sanctions.NewBreaker(
			sanctions.NewHTTP(cfg.SanctionsURL),
			breaker,
			sanctions.WithBreakerLogger(log),
		)
	} else {
		sanctionsLookup = sanctions.NewStaticFromSet(policy.SanctionedAddresses)
	}

	engine, err := compliance.New(
		policy,
		verificationProvider,
		usageProvider,
		sanctionsLookup,
		chains.New(),
		compliance.WithLogger(log),
		compliance.WithMetrics(metrics.New()),
		compliance.WithGatherTimeout(cfg.GatherTimeout),
	)
	if err != nil {
		log.Error("engine setup failed", "error", err)
		os.Exit(1)
	}

	handler := compliancehandler.New(engine, log)
	router := httptransport.NewRouter(handler, cfg.JWTSigningKey, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting cleargate", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
