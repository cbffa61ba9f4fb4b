package model

import "strings"

// Certificate statuses as reported by the certificate authority. Statuses not
// listed here are carried verbatim.
const (
	CertStatusPendingValidation  = "PENDING_VALIDATION"
	CertStatusIssued             = "ISSUED"
	CertStatusFailed             = "FAILED"
	CertStatusValidationTimedOut = "VALIDATION_TIMED_OUT"
	CertStatusInactive           = "INACTIVE"
	CertStatusExpired            = "EXPIRED"
	CertStatusRevoked            = "REVOKED"
)

const (
	ValidationMethodDNS   = "DNS"
	ValidationMethodEmail = "EMAIL"

	ValidationStatusPending = "PENDING_VALIDATION"
	ValidationStatusSuccess = "SUCCESS"
	ValidationStatusFailed  = "FAILED"

	RecordTypeCNAME = "CNAME"
)

// ResourceRecord is a DNS record descriptor.
type ResourceRecord struct {
	Name  string `json:"Name"`
	Type  string `json:"Type"`
	Value string `json:"Value"`
}

// DomainValidation is the authority's per-domain ownership proof state.
type DomainValidation struct {
	DomainName       string          `json:"domainName"`
	ValidationMethod string          `json:"validationMethod,omitempty"`
	ValidationStatus string          `json:"validationStatus,omitempty"`
	ResourceRecord   *ResourceRecord `json:"resourceRecord,omitempty"`
}

// Certificate is a certificate as described by the authority.
type Certificate struct {
	ARN                     string             `json:"arn"`
	DomainName              string             `json:"domainName"`
	Status                  string             `json:"status"`
	SubjectAlternativeNames []string           `json:"subjectAlternativeNames"`
	DomainValidations       []DomainValidation `json:"domainValidations"`
}

// CertificateSummary is one entry of a certificate listing.
type CertificateSummary struct {
	ARN        string `json:"arn"`
	DomainName string `json:"domainName"`
	Status     string `json:"status"`
}

// CertificateRequest asks the authority for a new DNS-validated certificate.
type CertificateRequest struct {
	DomainName              string   `json:"domainName"`
	SubjectAlternativeNames []string `json:"subjectAlternativeNames"`
}

// Validation returns the validation entry for domain, if present.
func (c *Certificate) Validation(domain string) (DomainValidation, bool) {
	for _, v := range c.DomainValidations {
		if v.DomainName == domain {
			return v, true
		}
	}
	return DomainValidation{}, false
}

// ValidationOptionsReady reports whether the authority has settled on DNS
// validation for every entry. Until then the entries carry no records.
func (c *Certificate) ValidationOptionsReady() bool {
	if len(c.DomainValidations) == 0 {
		return false
	}
	for _, v := range c.DomainValidations {
		if v.ValidationMethod == ValidationMethodEmail {
			return false
		}
	}
	return true
}

// Covers reports whether domain is one of the certificate's names.
func (c *Certificate) Covers(domain string) bool {
	for _, san := range c.SubjectAlternativeNames {
		if san == domain {
			return true
		}
	}
	return false
}

// PendingDomains lists the domains whose validation has not completed.
func (c *Certificate) PendingDomains() []string {
	var pending []string
	for _, v := range c.DomainValidations {
		if v.ValidationStatus != ValidationStatusSuccess {
			pending = append(pending, v.DomainName)
		}
	}
	return pending
}

// ValidationRecord converts an authority record into the record a customer
// publishes in the zone of domain: the domain suffix is stripped from the
// name and trailing dots are removed from the name and the value.
func ValidationRecord(domain string, rr ResourceRecord) ResourceRecord {
	name := strings.TrimSuffix(rr.Name, ".")
	name = strings.TrimSuffix(name, domain)
	name = strings.TrimSuffix(name, ".")
	return ResourceRecord{
		Name:  name,
		Type:  rr.Type,
		Value: strings.TrimSuffix(rr.Value, "."),
	}
}

// RoutingRecord is the CNAME pointing the customer's domain at the
// distribution. The empty name denotes the zone apex of the customer domain.
func RoutingRecord(distributionDomain string) ResourceRecord {
	return ResourceRecord{
		Name:  "",
		Type:  RecordTypeCNAME,
		Value: distributionDomain,
	}
}
