package workflow

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
)

// TaskQueue is the queue the worker polls and the API starts workflows on.
const TaskQueue = "edgedomains-tasks"

// withActivityOptions applies the options shared by every workflow. Activities
// are attempted once; the only retries are the explicit polling loops.
func withActivityOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 1 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
}

// fail returns a classified, non-retryable workflow error.
func fail(kind model.ErrorKind, format string, args ...any) error {
	return activity.ApplicationError(model.NewError(kind, format, args...))
}

// isKind reports whether an activity error carries the given kind.
func isKind(err error, kind model.ErrorKind) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == string(kind)
}

func normalizePoll(p model.PollPolicy) model.PollPolicy {
	def := model.DefaultPollPolicy()
	if p.Interval <= 0 {
		p.Interval = def.Interval
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = def.MaxAttempts
	}
	return p
}

// pollCertificate describes the certificate until done reports true, sleeping
// policy.Interval between attempts. A certificate the authority does not know
// yet counts as not done. Exhausting policy.MaxAttempts is a Timeout error.
func pollCertificate(ctx workflow.Context, arn string, policy model.PollPolicy, what string, done func(*model.Certificate) bool) (*model.Certificate, error) {
	policy = normalizePoll(policy)

	for attempt := 1; ; attempt++ {
		var cert model.Certificate
		err := workflow.ExecuteActivity(ctx, "DescribeCertificate", arn).Get(ctx, &cert)
		if err != nil && !isKind(err, model.ErrNotFound) {
			return nil, err
		}
		if err == nil && done(&cert) {
			return &cert, nil
		}
		if attempt >= policy.MaxAttempts {
			return nil, fail(model.ErrTimeout, "certificate %s: %s not reached after %d attempts", arn, what, attempt)
		}
		if err := workflow.Sleep(ctx, policy.Interval); err != nil {
			return nil, err
		}
	}
}
