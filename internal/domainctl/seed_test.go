package domainctl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeed_APIKeyFromEnv(t *testing.T) {
	t.Setenv("EDGEDOMAINS_API_KEY", "edk_env")
	path := writeSeed(t, "api_url: http://localhost:8090\ndomains:\n  - a.example.com\n")

	cfg, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "edk_env", cfg.APIKey)
	assert.Equal(t, []string{"a.example.com"}, cfg.Domains)
}

func TestLoadSeed_RequiresAPIURL(t *testing.T) {
	path := writeSeed(t, "domains: [a.example.com]\n")

	_, err := LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_url is required")
}

func TestSeed_AddsOnlyMissingDomains(t *testing.T) {
	var (
		mu    sync.Mutex
		added []string
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, r.Method+" "+r.URL.Path)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/domains":
			w.Write([]byte(`{"domains":["a.example.com"]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/domains":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			added = append(added, body["domainName"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"` + body["domainName"] + `":[{"Name":"","Type":"CNAME","Value":"d111.cloudfront.net"}]}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/distribution":
			w.Write([]byte(`{"message":"distribution EDIST updated with 3 aliases"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	path := writeSeed(t, "api_url: "+srv.URL+"\napi_key: edk_test\nreconcile: true\ndomains:\n"+
		"  - a.example.com\n  - B.Example.com.\n  - c.example.com\n  - b.example.com\n")

	var out bytes.Buffer
	require.NoError(t, Seed(path, time.Second, &out))

	assert.Equal(t, []string{"b.example.com", "c.example.com"}, added)
	assert.Equal(t, "PATCH /distribution", calls[len(calls)-1])
	assert.Contains(t, out.String(), "Domain a.example.com: already registered")
	assert.Contains(t, out.String(), "distribution EDIST updated with 3 aliases")
}

func TestSeed_StopsOnAddFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"domains":[]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"certificate request failed"}`))
	}))
	t.Cleanup(srv.Close)

	path := writeSeed(t, "api_url: "+srv.URL+"\ndomains: [a.example.com]\n")

	err := Seed(path, time.Second, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add domain a.example.com")
	assert.Contains(t, err.Error(), "certificate request failed")
}
