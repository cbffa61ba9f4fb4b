package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/temporal"

	"github.com/edvin/edgedomains/internal/model"
)

// ErrorKindInterceptor makes sure every activity failure reaches the workflow
// as a non-retryable application error carrying an error kind. Errors that
// already carry a type pass through; anything else becomes an
// UpstreamFailure prefixed with the activity name.
type ErrorKindInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (e *ErrorKindInterceptor) InterceptActivity(
	ctx context.Context,
	next interceptor.ActivityInboundInterceptor,
) interceptor.ActivityInboundInterceptor {
	return &errorKindActivityInterceptor{next: next}
}

type errorKindActivityInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
	next interceptor.ActivityInboundInterceptor
}

func (e *errorKindActivityInterceptor) Init(outbound interceptor.ActivityOutboundInterceptor) error {
	return e.next.Init(outbound)
}

func (e *errorKindActivityInterceptor) ExecuteActivity(
	ctx context.Context,
	in *interceptor.ExecuteActivityInput,
) (interface{}, error) {
	result, err := e.next.ExecuteActivity(ctx, in)
	if err == nil {
		return result, nil
	}

	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() != "" {
		return result, err
	}

	name := activity.GetInfo(ctx).ActivityType.Name
	return result, temporal.NewNonRetryableApplicationError(
		fmt.Sprintf("%s: %v", name, err), string(model.ErrUpstreamFailure), err)
}
