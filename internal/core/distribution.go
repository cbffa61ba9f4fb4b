package core

import (
	"context"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/edvin/edgedomains/internal/model"
	"github.com/edvin/edgedomains/internal/workflow"
)

// DistributionService keeps the edge distribution in line with the domain set.
type DistributionService struct {
	runner
	keys model.ParameterKeys
}

// NewDistributionService creates a new DistributionService.
func NewDistributionService(tc temporalclient.Client, settings WorkflowSettings) *DistributionService {
	return &DistributionService{
		runner: runner{tc: tc, timeout: settings.Timeout},
		keys:   settings.Keys,
	}
}

// Reconcile binds the newest tracked certificate to the distribution and
// sets its aliases to the domain set.
func (s *DistributionService) Reconcile(ctx context.Context) (*model.ReconcileResult, error) {
	if err := s.keys.Validate(); err != nil {
		return nil, err
	}

	var result model.ReconcileResult
	err := s.run(ctx, "reconcile-distribution", "ReconcileDistributionWorkflow", workflow.ReconcileParams{Keys: s.keys}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
