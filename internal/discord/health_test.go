package discord

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCommand(t *testing.T) {
	before := commandCounter.Load()
	RecordCommand()
	RecordCommand()
	assert.Equal(t, before+2, commandCounter.Load())
	assert.NotZero(t, lastCommandUnix.Load())
}

func TestHandleHealth(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	bot := &Bot{Session: ctx.Session, Client: ctx.APIClient}
	srv := NewHTTPServer("0", bot)

	check := func() (int, HealthStatus) {
		rec := httptest.NewRecorder()
		srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		var status HealthStatus
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
		return rec.Code, status
	}

	code, status := check()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", status.Status)
	assert.True(t, status.APIReachable)
	assert.False(t, status.Connected)

	ctx.Session.DataReady = true
	code, status = check()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, status.StreamConnected)
}
