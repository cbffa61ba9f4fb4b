package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/edvin/edgedomains/internal/api"
	"github.com/edvin/edgedomains/internal/awsconfig"
	"github.com/edvin/edgedomains/internal/certauthority"
	"github.com/edvin/edgedomains/internal/config"
	"github.com/edvin/edgedomains/internal/core"
	"github.com/edvin/edgedomains/internal/lambdaproxy"
	"github.com/edvin/edgedomains/internal/logging"
	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/paramstore"
)

// The Lambda front door sits behind an API gateway that checks its own API
// key, so no core database is used here.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("domain-lambda"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)
	ctx := context.Background()

	awsCfg, err := awsconfig.Load(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load aws config")
	}

	opts, err := cfg.TemporalClientOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure temporal client")
	}
	tc, err := temporalclient.Dial(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to temporal")
	}
	defer tc.Close()

	services := core.NewServices(nil, tc,
		paramstore.New(awsCfg),
		certauthority.New(awsconfig.ForCertificates(awsCfg)),
		core.WorkflowSettings{
			Keys:    cfg.ParameterKeys(),
			Poll:    model.PollPolicy{Interval: cfg.PollInterval, MaxAttempts: cfg.PollMaxAttempts},
			Timeout: cfg.WorkflowTimeout,
		},
	)

	srv := api.NewServer(logger, services, tc, nil)
	lambda.Start(lambdaproxy.New(srv).Handle)
}
