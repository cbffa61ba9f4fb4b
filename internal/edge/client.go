// Package edge manages the certificate binding and alias list of a CloudFront
// distribution.
package edge

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"

	"github.com/edvin/edgedomains/internal/model"
)

type cloudFrontAPI interface {
	GetDistribution(ctx context.Context, params *cloudfront.GetDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionOutput, error)
	GetDistributionConfig(ctx context.Context, params *cloudfront.GetDistributionConfigInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionConfigOutput, error)
	UpdateDistribution(ctx context.Context, params *cloudfront.UpdateDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.UpdateDistributionOutput, error)
}

// Client reads and conditionally updates distributions.
type Client struct {
	api cloudFrontAPI
}

func New(cfg aws.Config) *Client {
	return &Client{api: cloudfront.NewFromConfig(cfg)}
}

func NewWithAPI(api cloudFrontAPI) *Client {
	return &Client{api: api}
}

// GetDistribution returns the distribution's domain name, aliases, bound
// certificate and the ETag it was read with.
func (c *Client) GetDistribution(ctx context.Context, id string) (*model.Distribution, error) {
	out, err := c.api.GetDistribution(ctx, &cloudfront.GetDistributionInput{
		Id: aws.String(id),
	})
	if err != nil {
		return nil, classify(err, "get distribution %s", id)
	}
	if out.Distribution == nil {
		return nil, model.NewError(model.ErrNotFound, "distribution %s not found", id)
	}

	d := &model.Distribution{
		ID:         aws.ToString(out.Distribution.Id),
		DomainName: aws.ToString(out.Distribution.DomainName),
		ETag:       aws.ToString(out.ETag),
	}
	if cfg := out.Distribution.DistributionConfig; cfg != nil {
		if cfg.Aliases != nil {
			d.Aliases = cfg.Aliases.Items
		}
		if cfg.ViewerCertificate != nil {
			d.CertificateARN = aws.ToString(cfg.ViewerCertificate.ACMCertificateArn)
		}
	}
	return d, nil
}

// UpdateBinding points the distribution at the binding's certificate and
// replaces its aliases. The write is conditioned on binding.ETag; if the
// distribution changed since it was read the update fails with a Conflict
// error and is not retried.
func (c *Client) UpdateBinding(ctx context.Context, b model.DistributionBinding) error {
	current, err := c.api.GetDistributionConfig(ctx, &cloudfront.GetDistributionConfigInput{
		Id: aws.String(b.DistributionID),
	})
	if err != nil {
		return classify(err, "get distribution config %s", b.DistributionID)
	}
	if aws.ToString(current.ETag) != b.ETag {
		return model.NewError(model.ErrConflict, "distribution %s changed since it was read", b.DistributionID)
	}

	cfg := current.DistributionConfig
	if cfg == nil {
		return model.NewError(model.ErrNotFound, "distribution %s has no config", b.DistributionID)
	}
	applyBinding(cfg, b)

	_, err = c.api.UpdateDistribution(ctx, &cloudfront.UpdateDistributionInput{
		Id:                 aws.String(b.DistributionID),
		IfMatch:            aws.String(b.ETag),
		DistributionConfig: cfg,
	})
	if err != nil {
		return classify(err, "update distribution %s", b.DistributionID)
	}
	return nil
}

func applyBinding(cfg *types.DistributionConfig, b model.DistributionBinding) {
	aliases := make([]string, len(b.Aliases))
	copy(aliases, b.Aliases)
	cfg.Aliases = &types.Aliases{
		Items:    aliases,
		Quantity: aws.Int32(int32(len(aliases))),
	}

	vc := cfg.ViewerCertificate
	if vc == nil {
		vc = &types.ViewerCertificate{}
		cfg.ViewerCertificate = vc
	}
	vc.ACMCertificateArn = aws.String(b.CertificateARN)
	vc.CloudFrontDefaultCertificate = aws.Bool(false)
	vc.IAMCertificateId = nil
	vc.Certificate = nil
	vc.CertificateSource = ""
	vc.SSLSupportMethod = types.SSLSupportMethodSniOnly
	if vc.MinimumProtocolVersion == "" {
		vc.MinimumProtocolVersion = types.MinimumProtocolVersionTLSv122021
	}
}

func classify(err error, format string, args ...any) error {
	var noSuch *types.NoSuchDistribution
	var precondition *types.PreconditionFailed
	var badIfMatch *types.InvalidIfMatchVersion

	switch {
	case errors.As(err, &noSuch):
		return model.WrapError(model.ErrNotFound, err, format, args...)
	case errors.As(err, &precondition), errors.As(err, &badIfMatch):
		return model.WrapError(model.ErrConflict, err, format, args...)
	}
	return model.WrapError(model.ErrUpstreamFailure, err, format, args...)
}
