package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue finds the sample of name whose labels match want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, want) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetrics_CountsByEndpointAndCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		jsonResponse(w, `{"products":[],"totals":[]}`)
	}, WithMetrics(m))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = c.Cart(ctx)
	}

	assert.Equal(t, 2.0, counterValue(t, reg, "storefront_api_requests_total", map[string]string{"endpoint": "cart", "code": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "storefront_api_requests_total", map[string]string{"endpoint": "cart", "code": "503"}))
}

func TestMetrics_NetworkFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	hc := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("offline")
	})}
	c, err := New("http://example.com/", "", WithHTTPClient(hc), WithMetrics(m))
	require.NoError(t, err)

	_, _ = c.Orders(context.Background())
	assert.Equal(t, 1.0, counterValue(t, reg, "storefront_api_requests_total", map[string]string{"endpoint": "orders", "code": "none"}))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("cart", 200, 0) })
}
