// Package awsconfig loads the aws.Config shared by the parameter store,
// certificate authority, edge and archive clients.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/edvin/edgedomains/internal/config"
)

// Load builds an aws.Config from the service config. Static credentials are
// used when both halves are set; otherwise the default provider chain applies.
// A configured endpoint URL overrides every service endpoint, which is how
// local emulators are targeted.
func Load(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := loadOptions(cfg)

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsConfig, nil
}

func loadOptions(cfg *config.Config) []func(*awscfg.LoadOptions) error {
	var opts []func(*awscfg.LoadOptions) error

	if cfg.AWSRegion != "" {
		opts = append(opts, awscfg.WithRegion(cfg.AWSRegion))
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	if cfg.AWSEndpointURL != "" {
		opts = append(opts, awscfg.WithBaseEndpoint(cfg.AWSEndpointURL))
	}
	return opts
}

// CertificateRegion is the only region whose certificates CloudFront accepts.
const CertificateRegion = "us-east-1"

// ForCertificates returns a copy of awsConfig targeting CertificateRegion.
func ForCertificates(awsConfig aws.Config) aws.Config {
	c := awsConfig.Copy()
	c.Region = CertificateRegion
	return c
}
