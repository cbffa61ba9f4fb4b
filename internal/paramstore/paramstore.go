// Package paramstore reads and writes the comma-joined list parameters that
// hold the domain set and the tracked certificate ARNs.
package paramstore

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/edvin/edgedomains/internal/model"
)

// ssmAPI is the subset of the SSM client the store uses.
type ssmAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
}

// Store is an SSM Parameter Store backed key-value store. Writes overwrite
// without a version check.
type Store struct {
	api ssmAPI
}

// New creates a Store from an AWS config.
func New(cfg aws.Config) *Store {
	return &Store{api: ssm.NewFromConfig(cfg)}
}

// NewWithAPI creates a Store over an existing SSM client.
func NewWithAPI(api ssmAPI) *Store {
	return &Store{api: api}
}

// Get returns a parameter's value. A missing parameter is a NotFound error.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", model.NewError(model.ErrNotFound, "parameter %s not found", name)
		}
		return "", model.WrapError(model.ErrUpstreamFailure, err, "get parameter %s", name)
	}
	if out.Parameter == nil {
		return "", model.NewError(model.ErrNotFound, "parameter %s not found", name)
	}
	return aws.ToString(out.Parameter.Value), nil
}

// GetList returns a list parameter. found is false when the parameter does
// not exist.
func (s *Store) GetList(ctx context.Context, name string) (items []string, found bool, err error) {
	value, err := s.Get(ctx, name)
	if err != nil {
		if model.IsKind(err, model.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return model.ParseList(value), true, nil
}

// Put overwrites a parameter.
func (s *Store) Put(ctx context.Context, name, value string) error {
	_, err := s.api.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return model.WrapError(model.ErrUpstreamFailure, err, "put parameter %s", name)
	}
	return nil
}

// PutList overwrites a list parameter. SSM rejects empty values, so an empty
// list deletes the parameter and reads back as absent.
func (s *Store) PutList(ctx context.Context, name string, items []string) error {
	if len(items) == 0 {
		return s.Delete(ctx, name)
	}
	return s.Put(ctx, name, model.JoinList(items))
}

// Delete removes a parameter. Deleting a missing parameter succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.api.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return nil
		}
		return model.WrapError(model.ErrUpstreamFailure, err, "delete parameter %s", name)
	}
	return nil
}
