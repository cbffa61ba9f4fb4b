package model

// Distribution is the part of an edge distribution's configuration this
// service manages, together with the concurrency token it was read with.
type Distribution struct {
	ID             string   `json:"id"`
	DomainName     string   `json:"domainName"`
	Aliases        []string `json:"aliases"`
	CertificateARN string   `json:"certificateArn,omitempty"`
	ETag           string   `json:"etag"`
}

// DistributionBinding is the desired alias list and certificate of a
// distribution. ETag must be the token the current config was read with.
type DistributionBinding struct {
	DistributionID string   `json:"distributionId"`
	CertificateARN string   `json:"certificateArn"`
	Aliases        []string `json:"aliases"`
	ETag           string   `json:"etag"`
}
