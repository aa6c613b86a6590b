package httpin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

func TestOperationalRoutes(t *testing.T) {
	registry := prometheus.NewRegistry()
	api := New(llog, config.APIConfig{Port: 9010}, registry, "1.2.3")

	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthy")
	require.NoError(t, err, "the healthy route should answer")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "healthy should return 200")
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/ready")
	require.NoError(t, err, "the ready route should answer")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "ready should return 200")
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err, "the metrics route should answer")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "metrics should return 200")
	resp.Body.Close()
}

func TestVersionRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	api := New(llog, config.APIConfig{Port: 9010}, registry, "1.2.3")

	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	require.NoError(t, err, "the version route should answer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "version should return 200")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), "version should answer json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "the body should be readable")

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload), "the body should be valid json")
	assert.Equal(t, "1.2.3", payload["version"], "the configured version should be returned")
}
