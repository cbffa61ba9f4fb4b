package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edvin/edgedomains/internal/api/response"
	"github.com/edvin/edgedomains/internal/model"
)

// DistributionService is implemented by core.DistributionService.
type DistributionService interface {
	Reconcile(ctx context.Context) (*model.ReconcileResult, error)
}

// Distribution handles the /distribution endpoint.
type Distribution struct {
	svc DistributionService
}

// NewDistribution creates a new Distribution handler.
func NewDistribution(svc DistributionService) *Distribution {
	return &Distribution{svc: svc}
}

// Reconcile binds the newest certificate and the domain set to the
// distribution.
func (h *Distribution) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Reconcile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteMessage(w, http.StatusOK,
		fmt.Sprintf("distribution %s updated with %d aliases", result.DistributionID, len(result.Aliases)))
}
