package core

import (
	"context"
	"errors"
	"time"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/edvin/edgedomains/internal/activity"
	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/platform"
	"github.com/edvin/edgedomains/internal/workflow"
)

// WorkflowSettings holds what every synchronous workflow run needs.
type WorkflowSettings struct {
	Keys    model.ParameterKeys
	Poll    model.PollPolicy
	Timeout time.Duration
}

// runner starts a workflow and waits for its result. The HTTP request stays
// open for the whole run, so the workflow deadline doubles as the request
// deadline.
type runner struct {
	tc      temporalclient.Client
	timeout time.Duration
}

func (r runner) run(ctx context.Context, kind, workflowName string, arg, out any) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	run, err := r.tc.ExecuteWorkflow(ctx, temporalclient.StartWorkflowOptions{
		ID:                       platform.WorkflowID(kind),
		TaskQueue:                workflow.TaskQueue,
		WorkflowExecutionTimeout: r.timeout,
	}, workflowName, arg)
	if err != nil {
		return model.WrapError(model.ErrUpstreamFailure, err, "start %s", workflowName)
	}

	if err := run.Get(ctx, out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return model.WrapError(model.ErrTimeout, err, "%s did not finish in time", workflowName)
		}
		return activity.FromApplicationError(err)
	}
	return nil
}
