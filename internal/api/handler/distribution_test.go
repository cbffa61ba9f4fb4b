package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/edgedomains/internal/model"
)

func TestDistributionReconcile_Success(t *testing.T) {
	svc := &mockDistributionService{}
	h := NewDistribution(svc)

	svc.On("Reconcile", mock.Anything).Return(&model.ReconcileResult{
		DistributionID: "EDIST",
		CertificateARN: "arn:1",
		Aliases:        []string{"a.co", "b.co"},
	}, nil)

	rec := httptest.NewRecorder()
	h.Reconcile(rec, newRequest(http.MethodPatch, "/distribution", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "distribution EDIST updated with 2 aliases", decodeBody(rec)["message"])
}

func TestDistributionReconcile_PendingDomains(t *testing.T) {
	svc := &mockDistributionService{}
	h := NewDistribution(svc)

	svc.On("Reconcile", mock.Anything).Return(nil, &model.Error{
		Kind:           model.ErrBadRequest,
		Message:        "certificate arn:1 is PENDING_VALIDATION; domains pending validation: b.co",
		PendingDomains: []string{"b.co"},
	})

	rec := httptest.NewRecorder()
	h.Reconcile(rec, newRequest(http.MethodPatch, "/distribution", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"message":"certificate arn:1 is PENDING_VALIDATION; domains pending validation: b.co",
		"pendingDomains":["b.co"]
	}`, rec.Body.String())
}

func TestDistributionReconcile_Conflict(t *testing.T) {
	svc := &mockDistributionService{}
	h := NewDistribution(svc)

	svc.On("Reconcile", mock.Anything).Return(nil, model.NewError(model.ErrConflict, "distribution EDIST changed since it was read"))

	rec := httptest.NewRecorder()
	h.Reconcile(rec, newRequest(http.MethodPatch, "/distribution", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDistributionReconcile_UnclassifiedError(t *testing.T) {
	svc := &mockDistributionService{}
	h := NewDistribution(svc)

	svc.On("Reconcile", mock.Anything).Return(nil, errors.New("boom"))

	rec := httptest.NewRecorder()
	h.Reconcile(rec, newRequest(http.MethodPatch, "/distribution", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", decodeBody(rec)["message"])
}
