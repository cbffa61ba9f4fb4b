package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/edgedomains/internal/api/response"
	"github.com/edvin/edgedomains/internal/model"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.ErrConfigMissing, model.ErrBadRequest, model.ErrInvalidState, model.ErrCertificateRequestFailed:
		return http.StatusBadRequest
	case model.ErrNotFound:
		return http.StatusNotFound
	case model.ErrConflict:
		return http.StatusConflict
	case model.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with the status of its kind. The message is
// always passed through so callers see what the upstream said.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	body := response.ErrorBody{Message: err.Error()}
	kind := model.ErrUpstreamFailure

	var e *model.Error
	if errors.As(err, &e) {
		kind = e.Kind
		body.PendingDomains = e.PendingDomains
	}

	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("request failed")
	}
	response.WriteJSON(w, status, body)
}
