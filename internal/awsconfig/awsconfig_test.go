package awsconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/edgedomains/internal/config"
)

func TestLoad_StaticCredentials(t *testing.T) {
	cfg := &config.Config{
		AWSRegion:          "eu-west-1",
		AWSAccessKeyID:     "AKIDEXAMPLE",
		AWSSecretAccessKey: "secret",
		AWSEndpointURL:     "http://localhost:4566",
	}

	awsConfig, err := Load(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", awsConfig.Region)
	require.NotNil(t, awsConfig.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *awsConfig.BaseEndpoint)

	creds, err := awsConfig.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestLoadOptions_Minimal(t *testing.T) {
	assert.Empty(t, loadOptions(&config.Config{}))
	assert.Len(t, loadOptions(&config.Config{AWSRegion: "us-east-1"}), 1)
	assert.Len(t, loadOptions(&config.Config{AWSAccessKeyID: "only-half"}), 0)
}

func TestForCertificates(t *testing.T) {
	base := aws.Config{Region: "eu-west-1"}

	c := ForCertificates(base)
	assert.Equal(t, "us-east-1", c.Region)
	assert.Equal(t, "eu-west-1", base.Region)
}
