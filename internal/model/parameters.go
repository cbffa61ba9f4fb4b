package model

// ParameterKeys names the parameter-store entries holding shared state.
type ParameterKeys struct {
	DomainNames    string `json:"domainNames"`
	CertificateARN string `json:"certificateArn"`
	DistributionID string `json:"distributionId"`
}

// Validate returns a ConfigMissing error naming the first unset key.
func (k ParameterKeys) Validate() error {
	switch {
	case k.DomainNames == "":
		return NewError(ErrConfigMissing, "DOMAIN_NAMES_PARAM is not configured")
	case k.CertificateARN == "":
		return NewError(ErrConfigMissing, "CERTIFICATE_ARN_PARAM is not configured")
	case k.DistributionID == "":
		return NewError(ErrConfigMissing, "CLOUDFRONT_DISTRIBUTION_ID_PARAM is not configured")
	}
	return nil
}
