package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	payload := map[string]string{"hello": "world"}

	WriteJSON(w, http.StatusOK, payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "world", body["hello"])
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "something went wrong")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"something went wrong"}`, w.Body.String())
}

func TestWriteError_PendingDomains(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusBadRequest, ErrorBody{Message: "pending", PendingDomains: []string{"b.co"}})

	assert.JSONEq(t, `{"message":"pending","pendingDomains":["b.co"]}`, w.Body.String())
}

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()

	WriteMessage(w, http.StatusOK, "done")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
}

func TestWriteJSON_NilValue(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusOK, nil)

	assert.Equal(t, "null\n", w.Body.String())
}
