package request

// DomainName is the body of POST /domains and DELETE /domains.
type DomainName struct {
	DomainName string `json:"domainName" validate:"required,domain"`
}
