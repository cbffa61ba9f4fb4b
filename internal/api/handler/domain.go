package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/edgedomains/internal/api/request"
	"github.com/edvin/edgedomains/internal/api/response"
	"github.com/edvin/edgedomains/internal/model"
)

// DomainService is implemented by core.DomainService.
type DomainService interface {
	Register(ctx context.Context, domainName string) (*model.RegistrationResult, error)
	Deregister(ctx context.Context, domainName string) (*model.DeregistrationResult, error)
	List(ctx context.Context) ([]string, error)
	LookupCName(ctx context.Context, domainName string) (*model.ResourceRecord, error)
}

// Domain handles the /domains endpoints.
type Domain struct {
	svc DomainService
}

// NewDomain creates a new Domain handler.
func NewDomain(svc DomainService) *Domain {
	return &Domain{svc: svc}
}

// Register adds a domain and responds with the records the customer has to
// publish, keyed by the domain name.
func (h *Domain) Register(w http.ResponseWriter, r *http.Request) {
	var req request.DomainName
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Register(r.Context(), req.DomainName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	records := result.Records
	if records == nil {
		records = []model.ResourceRecord{}
	}
	response.WriteJSON(w, http.StatusOK, map[string][]model.ResourceRecord{result.DomainName: records})
}

// List returns the domain set.
func (h *Domain) List(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string][]string{"domains": domains})
}

// Deregister removes a domain from the domain set.
func (h *Domain) Deregister(w http.ResponseWriter, r *http.Request) {
	var req request.DomainName
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Deregister(r.Context(), req.DomainName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteMessage(w, http.StatusOK,
		fmt.Sprintf("%s removed; certificate %s requested for the remaining domains", result.DomainName, result.CertificateARN))
}

// CName returns the validation record for one domain.
func (h *Domain) CName(w http.ResponseWriter, r *http.Request) {
	name, err := request.RequireParam("domainName", chi.URLParam(r, "domainName"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	name = model.NormalizeDomain(name)

	record, err := h.svc.LookupCName(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]model.ResourceRecord{name: *record})
}
