package activity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edvin/edgedomains/internal/metrics"
	"github.com/edvin/edgedomains/internal/model"
)

// EdgeClient reads and conditionally updates the distribution.
type EdgeClient interface {
	GetDistribution(ctx context.Context, id string) (*model.Distribution, error)
	UpdateBinding(ctx context.Context, b model.DistributionBinding) error
}

// Distribution contains activities over the edge distribution.
type Distribution struct {
	edge   EdgeClient
	logger zerolog.Logger
}

// NewDistribution creates a new Distribution activity struct.
func NewDistribution(edge EdgeClient, logger zerolog.Logger) *Distribution {
	return &Distribution{
		edge:   edge,
		logger: logger.With().Str("component", "distribution-activity").Logger(),
	}
}

// GetDistribution returns the distribution and its concurrency token.
func (a *Distribution) GetDistribution(ctx context.Context, id string) (*model.Distribution, error) {
	d, err := a.edge.GetDistribution(ctx, id)
	if err != nil {
		return nil, ApplicationError(err)
	}
	return d, nil
}

// UpdateDistributionBinding binds the certificate and alias list, conditioned
// on the token the distribution was read with.
func (a *Distribution) UpdateDistributionBinding(ctx context.Context, binding model.DistributionBinding) error {
	err := a.edge.UpdateBinding(ctx, binding)
	metrics.DistributionUpdates.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return ApplicationError(err)
	}
	a.logger.Info().
		Str("distribution", binding.DistributionID).
		Str("certificate", binding.CertificateARN).
		Strs("aliases", binding.Aliases).
		Msg("UpdateDistributionBinding")
	return nil
}
