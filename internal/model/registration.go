package model

import "time"

// PollPolicy bounds a sleep/check loop.
type PollPolicy struct {
	Interval    time.Duration `json:"interval"`
	MaxAttempts int           `json:"maxAttempts"`
}

// DefaultPollPolicy polls once per second for up to two minutes.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: time.Second, MaxAttempts: 120}
}

// RegistrationResult is returned when a domain is added.
type RegistrationResult struct {
	DomainName     string           `json:"domainName"`
	CertificateARN string           `json:"certificateArn"`
	Domains        []string         `json:"domains"`
	Records        []ResourceRecord `json:"records"`
}

// DeregistrationResult is returned when a domain is removed.
type DeregistrationResult struct {
	DomainName     string   `json:"domainName"`
	CertificateARN string   `json:"certificateArn"`
	Domains        []string `json:"domains"`
}

// ReconcileResult is returned when a distribution has been updated.
type ReconcileResult struct {
	DistributionID string   `json:"distributionId"`
	CertificateARN string   `json:"certificateArn"`
	Aliases        []string `json:"aliases"`
}
