package core

import (
	"context"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/workflow"
)

// ListReader reads comma-joined list parameters.
type ListReader interface {
	GetList(ctx context.Context, name string) ([]string, bool, error)
}

// CertificateLookup is the read side of the certificate authority.
type CertificateLookup interface {
	ListCertificates(ctx context.Context, statuses ...string) ([]model.CertificateSummary, error)
	DescribeCertificate(ctx context.Context, arn string) (*model.Certificate, error)
}

// DomainService registers and looks up customer domains.
type DomainService struct {
	runner
	params   ListReader
	certs    CertificateLookup
	settings WorkflowSettings
}

// NewDomainService creates a new DomainService.
func NewDomainService(tc temporalclient.Client, params ListReader, certs CertificateLookup, settings WorkflowSettings) *DomainService {
	return &DomainService{
		runner:   runner{tc: tc, timeout: settings.Timeout},
		params:   params,
		certs:    certs,
		settings: settings,
	}
}

// Register adds domainName to the domain set and returns the DNS records the
// customer has to publish.
func (s *DomainService) Register(ctx context.Context, domainName string) (*model.RegistrationResult, error) {
	params, err := s.domainParams(domainName)
	if err != nil {
		return nil, err
	}

	var result model.RegistrationResult
	if err := s.run(ctx, "register-domain", "RegisterDomainWorkflow", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Deregister removes domainName from the domain set. A replacement
// certificate without the domain is requested; the distribution keeps
// serving the old one until the next reconcile.
func (s *DomainService) Deregister(ctx context.Context, domainName string) (*model.DeregistrationResult, error) {
	params, err := s.domainParams(domainName)
	if err != nil {
		return nil, err
	}

	var result model.DeregistrationResult
	if err := s.run(ctx, "deregister-domain", "DeregisterDomainWorkflow", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *DomainService) domainParams(domainName string) (workflow.DomainParams, error) {
	if err := s.settings.Keys.Validate(); err != nil {
		return workflow.DomainParams{}, err
	}
	name := model.NormalizeDomain(domainName)
	if name == "" {
		return workflow.DomainParams{}, model.NewError(model.ErrBadRequest, "domainName is required")
	}
	return workflow.DomainParams{
		DomainName: name,
		Keys:       s.settings.Keys,
		Poll:       s.settings.Poll,
	}, nil
}

// List returns the domain set in order.
func (s *DomainService) List(ctx context.Context) ([]string, error) {
	if err := s.settings.Keys.Validate(); err != nil {
		return nil, err
	}
	domains, found, err := s.params.GetList(ctx, s.settings.Keys.DomainNames)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewError(model.ErrInvalidState, "domain set %s is not initialized", s.settings.Keys.DomainNames)
	}
	if domains == nil {
		domains = []string{}
	}
	return domains, nil
}

// LookupCName returns the validation record of the first issued certificate
// covering domainName. Certificates are described one at a time, in the
// order the authority lists them.
func (s *DomainService) LookupCName(ctx context.Context, domainName string) (*model.ResourceRecord, error) {
	name := model.NormalizeDomain(domainName)
	if name == "" {
		return nil, model.NewError(model.ErrBadRequest, "domainName is required")
	}

	summaries, err := s.certs.ListCertificates(ctx, model.CertStatusIssued)
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		cert, err := s.certs.DescribeCertificate(ctx, summary.ARN)
		if err != nil {
			return nil, err
		}
		if !cert.Covers(name) {
			continue
		}
		v, ok := cert.Validation(name)
		if !ok || v.ResourceRecord == nil {
			continue
		}
		record := *v.ResourceRecord
		return &record, nil
	}

	return nil, model.NewError(model.ErrNotFound, "no issued certificate covers %s", name)
}
