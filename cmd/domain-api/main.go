package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	temporalclient "go.temporal.io/sdk/client"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/edgedomains/internal/api"
	"github.com/edvin/edgedomains/internal/awsconfig"
	"github.com/edvin/edgedomains/internal/certauthority"
	"github.com/edvin/edgedomains/internal/config"
	"github.com/edvin/edgedomains/internal/core"
	"github.com/edvin/edgedomains/internal/db"
	"github.com/edvin/edgedomains/internal/logging"
	"github.com/edvin/edgedomains/internal/metrics"
	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/paramstore"
	"github.com/edvin/edgedomains/migrations"
)

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "create-api-key" {
		createAPIKey(os.Args[2:])
		return
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("domain-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var corePool *pgxpool.Pool
	var coreDB core.DB
	if cfg.CoreDatabaseURL != "" {
		if *migrateFlag {
			logger.Info().Msg("running database migrations")
			if err := db.RunMigrations(cfg.CoreDatabaseURL, migrations.Core, "core"); err != nil {
				logger.Fatal().Err(err).Msg("migration failed")
			}
		}

		corePool, err = db.NewCorePool(ctx, cfg.CoreDatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to core database")
		}
		defer corePool.Close()
		coreDB = corePool
		metrics.RegisterPgxPoolMetrics(prometheus.DefaultRegisterer, corePool)
	} else {
		logger.Warn().Msg("CORE_DATABASE_URL not set, API key authentication and audit log disabled")
	}

	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load aws config")
	}

	opts, err := cfg.TemporalClientOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure temporal client")
	}
	if opts.ConnectionOptions.TLS != nil {
		logger.Info().Msg("temporal mTLS enabled")
	}
	tc, err := temporalclient.Dial(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer tc.Close()

	services := core.NewServices(coreDB, tc,
		paramstore.New(awsCfg),
		certauthority.New(awsconfig.ForCertificates(awsCfg)),
		core.WorkflowSettings{
			Keys:    cfg.ParameterKeys(),
			Poll:    model.PollPolicy{Interval: cfg.PollInterval, MaxAttempts: cfg.PollMaxAttempts},
			Timeout: cfg.WorkflowTimeout,
		},
	)

	srv := api.NewServer(logger, services, tc, corePool)
	defer srv.Close()

	// Registration and reconcile hold the request open until their workflow
	// finishes.
	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WorkflowTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting domain API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func createAPIKey(args []string) {
	fs := flag.NewFlagSet("create-api-key", flag.ExitOnError)
	name := fs.String("name", "", "Name for the API key (required)")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "error: --name is required")
		fmt.Fprintln(os.Stderr, "usage: domain-api create-api-key --name <name>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.CoreDatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "error: CORE_DATABASE_URL is required to create API keys")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewCorePool(ctx, cfg.CoreDatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := core.NewAPIKeyService(pool)
	key, rawKey, err := svc.Create(ctx, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API key created successfully.\n\n")
	fmt.Printf("  Name:   %s\n", key.Name)
	fmt.Printf("  ID:     %s\n", key.ID)
	fmt.Printf("  Key:    %s\n\n", rawKey)
	fmt.Printf("Save this key, it will not be shown again.\n")
}
