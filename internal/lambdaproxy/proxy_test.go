package lambdaproxy

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRouter() http.Handler {
	r := chi.NewRouter()
	r.Post("/domains", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Key", r.Header.Get("X-API-Key"))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
	r.Get("/domains/{domainName}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "domainName") + "?" + r.URL.Query().Get("verbose")))
	})
	return r
}

func TestHandle_PostWithBody(t *testing.T) {
	p := New(echoRouter())

	resp, err := p.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/domains",
		Headers:    map[string]string{"X-API-Key": "k"},
		Body:       `{"domainName":"b.co"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"domainName":"b.co"}`, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "k", resp.Headers["X-Key"])
}

func TestHandle_Base64Body(t *testing.T) {
	p := New(echoRouter())

	resp, err := p.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/domains",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"domainName":"c.co"}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"domainName":"c.co"}`, resp.Body)
}

func TestHandle_InvalidBase64(t *testing.T) {
	p := New(echoRouter())

	resp, err := p.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/domains",
		Body:            "!!!",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "decode body")
}

func TestHandle_PathParamAndQuery(t *testing.T) {
	p := New(echoRouter())

	resp, err := p.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/domains/a.co",
		QueryStringParameters: map[string]string{"verbose": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a.co?1", resp.Body)
}

func TestHandle_NotFound(t *testing.T) {
	p := New(echoRouter())

	resp, err := p.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/nope",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
