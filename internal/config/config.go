package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/edvin/edgedomains/internal/model"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"edgedomains"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPListenAddr string `env:"HTTP_LISTEN_ADDR" envDefault:":8090"`
	MetricsAddr    string `env:"METRICS_ADDR"`

	// CoreDatabaseURL enables API key authentication and the audit log when set.
	CoreDatabaseURL string `env:"CORE_DATABASE_URL"`

	TemporalAddress       string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	TemporalNamespace     string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TemporalTLSCert       string `env:"TEMPORAL_TLS_CERT"`
	TemporalTLSKey        string `env:"TEMPORAL_TLS_KEY"`
	TemporalTLSCACert     string `env:"TEMPORAL_TLS_CA_CERT"`
	TemporalTLSServerName string `env:"TEMPORAL_TLS_SERVER_NAME"`

	// Parameter names in the parameter store. They are checked per request so
	// a missing one is reported to the caller instead of failing startup.
	DomainNamesParam    string `env:"DOMAIN_NAMES_PARAM"`
	CertificateARNParam string `env:"CERTIFICATE_ARN_PARAM"`
	DistributionIDParam string `env:"CLOUDFRONT_DISTRIBUTION_ID_PARAM"`

	AWSRegion          string `env:"AWS_REGION"`
	AWSEndpointURL     string `env:"AWS_ENDPOINT_URL"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	PollMaxAttempts int           `env:"POLL_MAX_ATTEMPTS" envDefault:"120"`
	// WorkflowTimeout bounds a whole registration or reconcile run. It is the
	// only deadline applied on top of the polling ceiling.
	WorkflowTimeout time.Duration `env:"WORKFLOW_TIMEOUT" envDefault:"5m"`

	SweepCron         string `env:"SWEEP_CRON" envDefault:"0 3 * * *"`
	SweepReportBucket string `env:"SWEEP_REPORT_BUCKET"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that the settings required by the given role are present.
func (c *Config) Validate(role string) error {
	var missing []string

	switch role {
	case "domain-api":
		if c.TemporalAddress == "" {
			missing = append(missing, "TEMPORAL_ADDRESS")
		}
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
	case "domain-lambda":
		if c.TemporalAddress == "" {
			missing = append(missing, "TEMPORAL_ADDRESS")
		}
	case "worker":
		if c.TemporalAddress == "" {
			missing = append(missing, "TEMPORAL_ADDRESS")
		}
		if c.CertificateARNParam == "" {
			missing = append(missing, "CERTIFICATE_ARN_PARAM")
		}
		if c.SweepCron == "" {
			missing = append(missing, "SWEEP_CRON")
		}
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if (c.TemporalTLSCert == "") != (c.TemporalTLSKey == "") {
		return errors.New("TEMPORAL_TLS_CERT and TEMPORAL_TLS_KEY must both be set")
	}
	if (c.AWSAccessKeyID == "") != (c.AWSSecretAccessKey == "") {
		return errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must both be set")
	}
	if c.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	if c.PollMaxAttempts < 1 {
		return errors.New("POLL_MAX_ATTEMPTS must be at least 1")
	}

	return nil
}

// ParameterKeys returns the configured parameter names.
func (c *Config) ParameterKeys() model.ParameterKeys {
	return model.ParameterKeys{
		DomainNames:    c.DomainNamesParam,
		CertificateARN: c.CertificateARNParam,
		DistributionID: c.DistributionIDParam,
	}
}
