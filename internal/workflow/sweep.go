package workflow

import (
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
)

// SweepParams is the input of SweepCertificatesWorkflow.
type SweepParams struct {
	CertificateARNParam string
}

// SweepCertificatesWorkflow deletes every certificate that failed or timed
// out validation and drops those, along with ARNs the authority no longer
// knows, from the tracked set. Deletion failures are recorded per item and
// never fail the sweep. The tracked set is written back even when unchanged.
func SweepCertificatesWorkflow(ctx workflow.Context, params SweepParams) (*model.SweepOutcome, error) {
	ctx = withActivityOptions(ctx)
	logger := workflow.GetLogger(ctx)

	outcome := &model.SweepOutcome{StartedAt: workflow.Now(ctx)}

	var current activity.ListResult
	err := workflow.ExecuteActivity(ctx, "ReadList", activity.ReadListParams{Name: params.CertificateARNParam}).Get(ctx, &current)
	if err != nil {
		return nil, err
	}
	if !current.Found {
		logger.Info("no tracked certificates, skipping sweep", "param", params.CertificateARNParam)
		outcome.Skipped = true
		return outcome, nil
	}
	tracked := model.TrackedCertificates(current.Items)

	var invalid []model.CertificateSummary
	err = workflow.ExecuteActivity(ctx, "ListCertificates", activity.ListCertificatesParams{
		Statuses: []string{model.CertStatusFailed, model.CertStatusValidationTimedOut},
	}).Get(ctx, &invalid)
	if err != nil {
		return nil, err
	}

	swept := make([]string, 0, len(invalid))
	for _, summary := range invalid {
		swept = append(swept, summary.ARN)
		err := workflow.ExecuteActivity(ctx, "DeleteCertificate", summary.ARN).Get(ctx, nil)
		if err != nil {
			logger.Warn("ignored: failed to delete certificate", "arn", summary.ARN, "error", err)
			outcome.Items = append(outcome.Items, model.SweepItem{ARN: summary.ARN, Result: model.SweepSkipped, Reason: err.Error()})
			continue
		}
		outcome.Items = append(outcome.Items, model.SweepItem{ARN: summary.ARN, Result: model.SweepDeleted})
	}
	tracked = tracked.Untrack(swept...)

	remaining := make(model.TrackedCertificates, 0, len(tracked))
	for _, arn := range tracked {
		var cert model.Certificate
		err := workflow.ExecuteActivity(ctx, "DescribeCertificate", arn).Get(ctx, &cert)
		switch {
		case err == nil:
			remaining = append(remaining, arn)
		case isKind(err, model.ErrNotFound):
			logger.Info("certificate not found, removing from tracked set", "arn", arn)
			outcome.Items = append(outcome.Items, model.SweepItem{ARN: arn, Result: model.SweepUntracked, Reason: "not found"})
		default:
			logger.Warn("failed to describe certificate, keeping it tracked", "arn", arn, "error", err)
			remaining = append(remaining, arn)
			outcome.Items = append(outcome.Items, model.SweepItem{ARN: arn, Result: model.SweepKept, Reason: err.Error()})
		}
	}

	err = workflow.ExecuteActivity(ctx, "WriteList", activity.WriteListParams{
		Name:  params.CertificateARNParam,
		Items: remaining,
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	outcome.Tracked = remaining

	var key string
	if err := workflow.ExecuteActivity(ctx, "ReportSweep", *outcome).Get(ctx, &key); err != nil {
		logger.Warn("failed to report sweep outcome", "error", err)
	} else if key != "" {
		logger.Info("archived sweep outcome", "key", key)
	}

	return outcome, nil
}
