package activity

import (
	"context"

	"github.com/rs/zerolog"
)

// ParameterStore is the key-value store holding the shared lists.
type ParameterStore interface {
	Get(ctx context.Context, name string) (string, error)
	GetList(ctx context.Context, name string) ([]string, bool, error)
	PutList(ctx context.Context, name string, items []string) error
}

// ReadListParams names a list parameter to read.
type ReadListParams struct {
	Name string
}

// ListResult is a list parameter's content. Found is false when the
// parameter does not exist.
type ListResult struct {
	Items []string
	Found bool
}

// WriteListParams holds a list parameter to overwrite.
type WriteListParams struct {
	Name  string
	Items []string
}

// Parameters contains activities over the parameter store.
type Parameters struct {
	store  ParameterStore
	logger zerolog.Logger
}

// NewParameters creates a new Parameters activity struct.
func NewParameters(store ParameterStore, logger zerolog.Logger) *Parameters {
	return &Parameters{
		store:  store,
		logger: logger.With().Str("component", "parameters-activity").Logger(),
	}
}

// ReadList reads a comma-joined list parameter.
func (a *Parameters) ReadList(ctx context.Context, params ReadListParams) (*ListResult, error) {
	items, found, err := a.store.GetList(ctx, params.Name)
	if err != nil {
		return nil, ApplicationError(err)
	}
	return &ListResult{Items: items, Found: found}, nil
}

// WriteList overwrites a list parameter without a version check.
func (a *Parameters) WriteList(ctx context.Context, params WriteListParams) error {
	a.logger.Info().Str("name", params.Name).Int("count", len(params.Items)).Msg("WriteList")
	return ApplicationError(a.store.PutList(ctx, params.Name, params.Items))
}

// ReadParameter reads a single-value parameter.
func (a *Parameters) ReadParameter(ctx context.Context, name string) (string, error) {
	value, err := a.store.Get(ctx, name)
	if err != nil {
		return "", ApplicationError(err)
	}
	return value, nil
}
