package activity

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/edvin/edgedomains/internal/model"
)

// ApplicationError converts err into a non-retryable Temporal application
// error whose type is the error kind. Pending domains travel as details so
// callers can report them. Only the polling loops retry, and they do so in
// the workflow.
func ApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return err
	}

	var e *model.Error
	if errors.As(err, &e) {
		if len(e.PendingDomains) > 0 {
			return temporal.NewNonRetryableApplicationError(e.Error(), string(e.Kind), err, e.PendingDomains)
		}
		return temporal.NewNonRetryableApplicationError(e.Error(), string(e.Kind), err)
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), string(model.ErrUpstreamFailure), err)
}

// FromApplicationError recovers a model.Error from an error returned by a
// workflow or activity execution. Timeouts become Timeout errors and
// unclassified errors become upstream failures.
func FromApplicationError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		e := &model.Error{Kind: model.ErrorKind(appErr.Type()), Message: appErr.Message()}
		if e.Kind == "" {
			e.Kind = model.ErrUpstreamFailure
		}
		if appErr.HasDetails() {
			var pending []string
			if derr := appErr.Details(&pending); derr == nil {
				e.PendingDomains = pending
			}
		}
		return e
	}

	var timeoutErr *temporal.TimeoutError
	if errors.As(err, &timeoutErr) {
		return model.WrapError(model.ErrTimeout, err, "workflow timed out")
	}

	var e *model.Error
	if errors.As(err, &e) {
		return e
	}
	return model.WrapError(model.ErrUpstreamFailure, err, "workflow failed")
}
