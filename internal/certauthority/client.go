// Package certauthority wraps AWS Certificate Manager.
package certauthority

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/aws/smithy-go"

	"github.com/edvin/edgedomains/internal/model"
)

// acmAPI is the subset of the ACM client we use.
type acmAPI interface {
	RequestCertificate(ctx context.Context, params *acm.RequestCertificateInput, optFns ...func(*acm.Options)) (*acm.RequestCertificateOutput, error)
	DescribeCertificate(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error)
	ListCertificates(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error)
	DeleteCertificate(ctx context.Context, params *acm.DeleteCertificateInput, optFns ...func(*acm.Options)) (*acm.DeleteCertificateOutput, error)
}

// Client talks to ACM. CloudFront only accepts certificates from us-east-1,
// so the aws.Config handed to New should target that region.
type Client struct {
	api acmAPI
}

func New(cfg aws.Config) *Client {
	return &Client{api: acm.NewFromConfig(cfg)}
}

func NewWithAPI(api acmAPI) *Client {
	return &Client{api: api}
}

// RequestCertificate requests a new DNS-validated certificate and returns its
// ARN. The authority treats repeated requests with the same token and names
// within an hour as one request.
func (c *Client) RequestCertificate(ctx context.Context, req model.CertificateRequest, idempotencyToken string) (string, error) {
	in := &acm.RequestCertificateInput{
		DomainName:              aws.String(req.DomainName),
		SubjectAlternativeNames: req.SubjectAlternativeNames,
		ValidationMethod:        types.ValidationMethodDns,
	}
	if idempotencyToken != "" {
		in.IdempotencyToken = aws.String(idempotencyToken)
	}

	out, err := c.api.RequestCertificate(ctx, in)
	if err != nil {
		return "", classify(err, "request certificate for %s", req.DomainName)
	}
	return aws.ToString(out.CertificateArn), nil
}

// DescribeCertificate returns the certificate's status and validation entries.
// An ARN the authority does not recognize is a NotFound error.
func (c *Client) DescribeCertificate(ctx context.Context, arn string) (*model.Certificate, error) {
	out, err := c.api.DescribeCertificate(ctx, &acm.DescribeCertificateInput{
		CertificateArn: aws.String(arn),
	})
	if err != nil {
		return nil, classify(err, "describe certificate %s", arn)
	}
	if out.Certificate == nil {
		return nil, model.NewError(model.ErrNotFound, "certificate %s not found", arn)
	}
	return toCertificate(out.Certificate), nil
}

// ListCertificates returns every certificate in one of the given statuses.
func (c *Client) ListCertificates(ctx context.Context, statuses ...string) ([]model.CertificateSummary, error) {
	in := &acm.ListCertificatesInput{}
	for _, s := range statuses {
		in.CertificateStatuses = append(in.CertificateStatuses, types.CertificateStatus(s))
	}

	var summaries []model.CertificateSummary
	p := acm.NewListCertificatesPaginator(c.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classify(err, "list certificates")
		}
		for _, s := range page.CertificateSummaryList {
			summaries = append(summaries, model.CertificateSummary{
				ARN:        aws.ToString(s.CertificateArn),
				DomainName: aws.ToString(s.DomainName),
				Status:     string(s.Status),
			})
		}
	}
	return summaries, nil
}

// DeleteCertificate deletes a certificate. A certificate still attached to a
// distribution is a Conflict error.
func (c *Client) DeleteCertificate(ctx context.Context, arn string) error {
	_, err := c.api.DeleteCertificate(ctx, &acm.DeleteCertificateInput{
		CertificateArn: aws.String(arn),
	})
	if err != nil {
		return classify(err, "delete certificate %s", arn)
	}
	return nil
}

func toCertificate(d *types.CertificateDetail) *model.Certificate {
	cert := &model.Certificate{
		ARN:                     aws.ToString(d.CertificateArn),
		DomainName:              aws.ToString(d.DomainName),
		Status:                  string(d.Status),
		SubjectAlternativeNames: d.SubjectAlternativeNames,
	}
	for _, v := range d.DomainValidationOptions {
		dv := model.DomainValidation{
			DomainName:       aws.ToString(v.DomainName),
			ValidationMethod: string(v.ValidationMethod),
			ValidationStatus: string(v.ValidationStatus),
		}
		if v.ResourceRecord != nil {
			dv.ResourceRecord = &model.ResourceRecord{
				Name:  aws.ToString(v.ResourceRecord.Name),
				Type:  string(v.ResourceRecord.Type),
				Value: aws.ToString(v.ResourceRecord.Value),
			}
		}
		cert.DomainValidations = append(cert.DomainValidations, dv)
	}
	return cert
}

func classify(err error, format string, args ...any) error {
	var notFound *types.ResourceNotFoundException
	var invalidArn *types.InvalidArnException
	var inUse *types.ResourceInUseException
	var limit *types.LimitExceededException

	switch {
	case errors.As(err, &notFound), errors.As(err, &invalidArn):
		return model.WrapError(model.ErrNotFound, err, format, args...)
	case errors.As(err, &inUse):
		return model.WrapError(model.ErrConflict, err, format, args...)
	case errors.As(err, &limit):
		return model.WrapError(model.ErrCertificateRequestFailed, err, format, args...)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationException" {
		return model.WrapError(model.ErrBadRequest, err, format, args...)
	}
	return model.WrapError(model.ErrUpstreamFailure, err, format, args...)
}
