package workflow

import (
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/platform"
)

// DomainParams is the input of the registration workflows.
type DomainParams struct {
	DomainName string
	Keys       model.ParameterKeys
	Poll       model.PollPolicy
}

// domainChange is the shared state after the domain set and the tracked
// certificates have been written.
type domainChange struct {
	domains model.DomainSet
	arn     string
}

// RegisterDomainWorkflow adds a domain to the domain set, requests a
// certificate covering the new set and waits until the validation record for
// the domain is available.
//
// The domain set is read and written without a version check. Two concurrent
// registrations can lose one of the additions; a later registration or a
// manual re-add repairs it.
func RegisterDomainWorkflow(ctx workflow.Context, params DomainParams) (*model.RegistrationResult, error) {
	ctx = withActivityOptions(ctx)
	logger := workflow.GetLogger(ctx)

	change, err := applyDomainChange(ctx, params, true)
	if err != nil {
		return nil, err
	}

	// Until the authority has chosen DNS validation for every name the
	// entries carry no records.
	_, err = pollCertificate(ctx, change.arn, params.Poll, "validation options", func(c *model.Certificate) bool {
		return c.ValidationOptionsReady()
	})
	if err != nil {
		return nil, err
	}

	var distributionID string
	err = workflow.ExecuteActivity(ctx, "ReadParameter", params.Keys.DistributionID).Get(ctx, &distributionID)
	if err != nil {
		return nil, err
	}
	var distribution model.Distribution
	err = workflow.ExecuteActivity(ctx, "GetDistribution", distributionID).Get(ctx, &distribution)
	if err != nil {
		return nil, err
	}

	cert, err := pollCertificate(ctx, change.arn, params.Poll, "validation record", func(c *model.Certificate) bool {
		v, ok := c.Validation(params.DomainName)
		if !ok {
			return true
		}
		return v.ValidationStatus != model.ValidationStatusPending || v.ResourceRecord != nil
	})
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	if v, ok := cert.Validation(params.DomainName); ok && v.ResourceRecord != nil {
		records = append(records, model.ValidationRecord(params.DomainName, *v.ResourceRecord))
	} else {
		logger.Warn("no validation record for domain", "domain", params.DomainName, "certificate", change.arn)
	}
	records = append(records, model.RoutingRecord(distribution.DomainName))

	return &model.RegistrationResult{
		DomainName:     params.DomainName,
		CertificateARN: change.arn,
		Domains:        change.domains,
		Records:        records,
	}, nil
}

// DeregisterDomainWorkflow removes a domain from the domain set and requests a
// certificate covering the smaller set. It does not wait for validation.
func DeregisterDomainWorkflow(ctx workflow.Context, params DomainParams) (*model.DeregistrationResult, error) {
	ctx = withActivityOptions(ctx)

	change, err := applyDomainChange(ctx, params, false)
	if err != nil {
		return nil, err
	}

	return &model.DeregistrationResult{
		DomainName:     params.DomainName,
		CertificateARN: change.arn,
		Domains:        change.domains,
	}, nil
}

func applyDomainChange(ctx workflow.Context, params DomainParams, add bool) (*domainChange, error) {
	if params.DomainName == "" {
		return nil, fail(model.ErrBadRequest, "domainName is required")
	}

	var current activity.ListResult
	err := workflow.ExecuteActivity(ctx, "ReadList", activity.ReadListParams{Name: params.Keys.DomainNames}).Get(ctx, &current)
	if err != nil {
		return nil, err
	}
	if !current.Found {
		return nil, fail(model.ErrInvalidState, "domain set parameter %s is not set", params.Keys.DomainNames)
	}

	domains := model.DomainSet(current.Items)
	if add {
		domains = domains.Add(params.DomainName)
	} else {
		if !domains.Contains(params.DomainName) {
			return nil, fail(model.ErrNotFound, "domain %s is not registered", params.DomainName)
		}
		domains = domains.Remove(params.DomainName)
		if len(domains) == 0 {
			return nil, fail(model.ErrBadRequest, "cannot remove %s: it is the last registered domain", params.DomainName)
		}
	}

	err = workflow.ExecuteActivity(ctx, "WriteList", activity.WriteListParams{
		Name:  params.Keys.DomainNames,
		Items: domains,
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	// The token is recorded so a replay presents the same one.
	var token string
	encoded := workflow.SideEffect(ctx, func(ctx workflow.Context) interface{} {
		return platform.NewToken("edge")
	})
	if err := encoded.Get(&token); err != nil {
		return nil, err
	}

	var arn string
	err = workflow.ExecuteActivity(ctx, "RequestCertificate", activity.RequestCertificateParams{
		DomainName:              domains.Primary(),
		SubjectAlternativeNames: domains,
		IdempotencyToken:        token,
	}).Get(ctx, &arn)
	if err != nil {
		return nil, err
	}

	var tracked activity.ListResult
	err = workflow.ExecuteActivity(ctx, "ReadList", activity.ReadListParams{Name: params.Keys.CertificateARN}).Get(ctx, &tracked)
	if err != nil {
		return nil, err
	}
	err = workflow.ExecuteActivity(ctx, "WriteList", activity.WriteListParams{
		Name:  params.Keys.CertificateARN,
		Items: model.TrackedCertificates(tracked.Items).Track(arn),
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &domainChange{domains: domains, arn: arn}, nil
}
