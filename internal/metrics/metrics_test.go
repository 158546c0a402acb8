package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New()

	m.ObserveRPC("/fairshare.v1.SplitService/Analyze", "ok", 20*time.Millisecond)
	m.ObserveRPC("/fairshare.v1.SplitService/Analyze", "ok", 5*time.Millisecond)
	m.ObserveRPC("/fairshare.v1.SplitService/Analyze", "invalid_argument", time.Millisecond)
	m.SettlementsComputed(2)
	m.SettlementsComputed(0)
	m.ValidationFailed("/fairshare.v1.SplitService/Analyze")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/fairshare.v1.SplitService/Analyze", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlements))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("/fairshare.v1.SplitService/Analyze")))
}

func TestNilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("p", "ok", time.Second)
		m.SettlementsComputed(3)
		m.ValidationFailed("p")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SettlementsComputed(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "fairshare_settlements_computed_total 1"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
