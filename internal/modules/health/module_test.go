package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpi_trader/internal/metrics"
	"rpi_trader/internal/modules/health/service"
)

func TestMux(t *testing.T) {
	state := service.NewState()
	m := metrics.New(prometheus.NewRegistry())
	srv := httptest.NewServer(NewMux(state, m))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	state.SetReady(true)
	state.TouchCycle(time.Unix(1700000000, 0), 1, metrics.ResultOK)
	m.ObserveCycle(metrics.ResultOK, time.Now())

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, true, body["ready"])
	assert.Equal(t, 1.0, body["lastMode"])
	assert.Equal(t, "ok", body["lastResult"])
	assert.Equal(t, 1700000000.0, body["lastCycleUnix"])

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(b), `rpi_trader_cycles_total{result="ok"} 1`)
}

func TestStateKeepsModeOnNoop(t *testing.T) {
	s := service.NewState()
	assert.Equal(t, -1, s.LastMode())

	s.TouchCycle(time.Now(), 2, metrics.ResultOK)
	s.TouchCycle(time.Now(), -1, metrics.ResultNoop)

	assert.Equal(t, 2, s.LastMode())
	assert.Equal(t, metrics.ResultNoop, s.LastResult())
}
