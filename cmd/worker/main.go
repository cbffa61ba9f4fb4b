package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/awsconfig"
	"github.com/edvin/edgedomains/internal/certauthority"
	"github.com/edvin/edgedomains/internal/config"
	"github.com/edvin/edgedomains/internal/edge"
	"github.com/edvin/edgedomains/internal/logging"
	"github.com/edvin/edgedomains/internal/metrics"
	"github.com/edvin/edgedomains/internal/paramstore"
	"github.com/edvin/edgedomains/internal/workflow"
)

const sweepScheduleID = "certificate-sweep-cron"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	w := worker.New(tc, workflow.TaskQueue, worker.Options{
		Interceptors: []interceptor.WorkerInterceptor{&workflow.ErrorKindInterceptor{}},
	})

	// Register activities
	w.RegisterActivity(activity.NewParameters(paramstore.New(awsCfg), logger))
	w.RegisterActivity(activity.NewCertificates(certauthority.New(awsconfig.ForCertificates(awsCfg)), nil, logger))
	w.RegisterActivity(activity.NewDistribution(edge.New(awsCfg), logger))
	w.RegisterActivity(activity.NewArchive(s3.NewFromConfig(awsCfg), cfg.SweepReportBucket, logger))

	// Register workflows
	w.RegisterWorkflow(workflow.RegisterDomainWorkflow)
	w.RegisterWorkflow(workflow.DeregisterDomainWorkflow)
	w.RegisterWorkflow(workflow.ReconcileDistributionWorkflow)
	w.RegisterWorkflow(workflow.SweepCertificatesWorkflow)

	if err := w.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start temporal worker")
	}
	logger.Info().Str("taskQueue", workflow.TaskQueue).Msg("started temporal worker")

	// Errors for an existing schedule are ignored so that re-deploys do not fail.
	registerSweepSchedule(ctx, tc, cfg, logger)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr)
		g.Go(func() error {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting metrics server")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return metricsSrv.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down worker")
		w.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("worker exited with error")
		os.Exit(1)
	}
}

func registerSweepSchedule(ctx context.Context, tc temporalclient.Client, cfg *config.Config, logger zerolog.Logger) {
	_, err := tc.ScheduleClient().Create(ctx, temporalclient.ScheduleOptions{
		ID: sweepScheduleID,
		Spec: temporalclient.ScheduleSpec{
			CronExpressions: []string{cfg.SweepCron},
		},
		Action: &temporalclient.ScheduleWorkflowAction{
			ID:        sweepScheduleID,
			Workflow:  workflow.SweepCertificatesWorkflow,
			Args:      []interface{}{workflow.SweepParams{CertificateARNParam: cfg.CertificateARNParam}},
			TaskQueue: workflow.TaskQueue,
		},
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "AlreadyExists") || strings.Contains(err.Error(), "already registered") {
			logger.Info().Str("id", sweepScheduleID).Msg("sweep schedule already exists, skipping")
			return
		}
		logger.Fatal().Err(err).Str("id", sweepScheduleID).Msg("failed to create sweep schedule")
	}
	logger.Info().Str("id", sweepScheduleID).Str("cron", cfg.SweepCron).Msg("created sweep schedule")
}
