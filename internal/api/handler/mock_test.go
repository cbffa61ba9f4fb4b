package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/edvin/edgedomains/internal/model"
)

type mockDomainService struct {
	mock.Mock
}

func (m *mockDomainService) Register(ctx context.Context, domainName string) (*model.RegistrationResult, error) {
	args := m.Called(ctx, domainName)
	result, _ := args.Get(0).(*model.RegistrationResult)
	return result, args.Error(1)
}

func (m *mockDomainService) Deregister(ctx context.Context, domainName string) (*model.DeregistrationResult, error) {
	args := m.Called(ctx, domainName)
	result, _ := args.Get(0).(*model.DeregistrationResult)
	return result, args.Error(1)
}

func (m *mockDomainService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	domains, _ := args.Get(0).([]string)
	return domains, args.Error(1)
}

func (m *mockDomainService) LookupCName(ctx context.Context, domainName string) (*model.ResourceRecord, error) {
	args := m.Called(ctx, domainName)
	record, _ := args.Get(0).(*model.ResourceRecord)
	return record, args.Error(1)
}

type mockDistributionService struct {
	mock.Mock
}

func (m *mockDistributionService) Reconcile(ctx context.Context) (*model.ReconcileResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*model.ReconcileResult)
	return result, args.Error(1)
}
