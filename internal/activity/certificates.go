package activity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edvin/edgedomains/internal/metrics"
	"github.com/edvin/edgedomains/internal/model"
)

// CertificateAuthority is the certificate authority the activities talk to.
type CertificateAuthority interface {
	RequestCertificate(ctx context.Context, req model.CertificateRequest, idempotencyToken string) (string, error)
	DescribeCertificate(ctx context.Context, arn string) (*model.Certificate, error)
	ListCertificates(ctx context.Context, statuses ...string) ([]model.CertificateSummary, error)
	DeleteCertificate(ctx context.Context, arn string) error
}

// CertificateRequester decides how a covering certificate is obtained for a
// domain set. The default asks the authority for a new certificate on every
// call, even when an equivalent certificate exists.
type CertificateRequester interface {
	Request(ctx context.Context, req model.CertificateRequest, idempotencyToken string) (string, error)
}

// AlwaysRequest is the CertificateRequester that never reuses certificates.
type AlwaysRequest struct {
	Authority CertificateAuthority
}

func (r AlwaysRequest) Request(ctx context.Context, req model.CertificateRequest, idempotencyToken string) (string, error) {
	return r.Authority.RequestCertificate(ctx, req, idempotencyToken)
}

// RequestCertificateParams holds parameters for requesting a certificate.
type RequestCertificateParams struct {
	DomainName              string
	SubjectAlternativeNames []string
	IdempotencyToken        string
}

// ListCertificatesParams selects certificates by status.
type ListCertificatesParams struct {
	Statuses []string
}

// Certificates contains activities over the certificate authority.
type Certificates struct {
	authority CertificateAuthority
	requester CertificateRequester
	logger    zerolog.Logger
}

// NewCertificates creates a Certificates activity struct. A nil requester
// selects AlwaysRequest.
func NewCertificates(authority CertificateAuthority, requester CertificateRequester, logger zerolog.Logger) *Certificates {
	if requester == nil {
		requester = AlwaysRequest{Authority: authority}
	}
	return &Certificates{
		authority: authority,
		requester: requester,
		logger:    logger.With().Str("component", "certificates-activity").Logger(),
	}
}

// RequestCertificate requests a certificate covering the given names and
// returns its ARN. An empty ARN from the authority is a
// CertificateRequestFailed error.
func (a *Certificates) RequestCertificate(ctx context.Context, params RequestCertificateParams) (string, error) {
	arn, err := a.requester.Request(ctx, model.CertificateRequest{
		DomainName:              params.DomainName,
		SubjectAlternativeNames: params.SubjectAlternativeNames,
	}, params.IdempotencyToken)
	if err == nil && arn == "" {
		err = model.NewError(model.ErrCertificateRequestFailed, "certificate authority returned no certificate for %s", params.DomainName)
	}
	metrics.CertificatesRequested.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return "", ApplicationError(err)
	}

	a.logger.Info().
		Str("primary", params.DomainName).
		Strs("names", params.SubjectAlternativeNames).
		Str("arn", arn).
		Msg("RequestCertificate")
	return arn, nil
}

// DescribeCertificate returns a certificate's status and validation entries.
func (a *Certificates) DescribeCertificate(ctx context.Context, arn string) (*model.Certificate, error) {
	cert, err := a.authority.DescribeCertificate(ctx, arn)
	if err != nil {
		return nil, ApplicationError(err)
	}
	return cert, nil
}

// ListCertificates lists certificates in the given statuses.
func (a *Certificates) ListCertificates(ctx context.Context, params ListCertificatesParams) ([]model.CertificateSummary, error) {
	summaries, err := a.authority.ListCertificates(ctx, params.Statuses...)
	if err != nil {
		return nil, ApplicationError(err)
	}
	return summaries, nil
}

// DeleteCertificate deletes a certificate.
func (a *Certificates) DeleteCertificate(ctx context.Context, arn string) error {
	if err := a.authority.DeleteCertificate(ctx, arn); err != nil {
		return ApplicationError(err)
	}
	a.logger.Info().Str("arn", arn).Msg("DeleteCertificate")
	return nil
}
