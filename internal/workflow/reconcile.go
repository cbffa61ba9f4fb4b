package workflow

import (
	"fmt"
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
)

// ReconcileParams is the input of ReconcileDistributionWorkflow.
type ReconcileParams struct {
	Keys model.ParameterKeys
}

// ReconcileDistributionWorkflow binds the most recently requested certificate
// and the current domain set to the distribution. It refuses to write until
// that certificate is issued. The write is conditioned on the concurrency
// token read at the start; a concurrent change fails the run and is not
// retried with a fresh token.
func ReconcileDistributionWorkflow(ctx workflow.Context, params ReconcileParams) (*model.ReconcileResult, error) {
	ctx = withActivityOptions(ctx)

	var distributionID string
	err := workflow.ExecuteActivity(ctx, "ReadParameter", params.Keys.DistributionID).Get(ctx, &distributionID)
	if err != nil {
		return nil, err
	}

	var distribution model.Distribution
	err = workflow.ExecuteActivity(ctx, "GetDistribution", distributionID).Get(ctx, &distribution)
	if err != nil {
		return nil, err
	}

	var tracked activity.ListResult
	err = workflow.ExecuteActivity(ctx, "ReadList", activity.ReadListParams{Name: params.Keys.CertificateARN}).Get(ctx, &tracked)
	if err != nil {
		return nil, err
	}
	primary := model.TrackedCertificates(tracked.Items).Primary()
	if primary == "" {
		return nil, fail(model.ErrInvalidState, "no tracked certificates in %s", params.Keys.CertificateARN)
	}

	var cert model.Certificate
	err = workflow.ExecuteActivity(ctx, "DescribeCertificate", primary).Get(ctx, &cert)
	if err != nil {
		return nil, err
	}
	switch cert.Status {
	case model.CertStatusIssued:
	case model.CertStatusFailed:
		return nil, fail(model.ErrBadRequest,
			"certificate %s failed validation; register a domain again to request a new certificate", primary)
	default:
		pending := cert.PendingDomains()
		return nil, activity.ApplicationError(&model.Error{
			Kind:           model.ErrBadRequest,
			Message:        fmt.Sprintf("certificate %s is %s; domains pending validation: %s", primary, cert.Status, strings.Join(pending, ", ")),
			PendingDomains: pending,
		})
	}

	var domains activity.ListResult
	err = workflow.ExecuteActivity(ctx, "ReadList", activity.ReadListParams{Name: params.Keys.DomainNames}).Get(ctx, &domains)
	if err != nil {
		return nil, err
	}
	if !domains.Found || len(domains.Items) == 0 {
		return nil, fail(model.ErrInvalidState, "domain set parameter %s is not set", params.Keys.DomainNames)
	}

	binding := model.DistributionBinding{
		DistributionID: distributionID,
		CertificateARN: primary,
		Aliases:        domains.Items,
		ETag:           distribution.ETag,
	}
	err = workflow.ExecuteActivity(ctx, "UpdateDistributionBinding", binding).Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &model.ReconcileResult{
		DistributionID: distributionID,
		CertificateARN: primary,
		Aliases:        domains.Items,
	}, nil
}
