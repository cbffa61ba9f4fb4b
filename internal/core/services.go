package core

import (
	temporalclient "go.temporal.io/sdk/client"
)

type Services struct {
	Domain       *DomainService
	Distribution *DistributionService
	// APIKey is nil when no core database is configured.
	APIKey *APIKeyService
}

func NewServices(db DB, tc temporalclient.Client, params ListReader, certs CertificateLookup, settings WorkflowSettings) *Services {
	s := &Services{
		Domain:       NewDomainService(tc, params, certs, settings),
		Distribution: NewDistributionService(tc, settings),
	}
	if db != nil {
		s.APIKey = NewAPIKeyService(db)
	}
	return s
}
