package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shipzone-backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	require.NoError(t, m.Handle(context.Background(), domain.MethodEvent{Type: domain.EventMethodCreated, MethodID: "flat_rate"}))
	require.NoError(t, m.Handle(context.Background(), domain.MethodEvent{Type: domain.EventMethodCreated, MethodID: "flat_rate"}))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MethodEvents.WithLabelValues("method.created", "flat_rate")))

	m.ObserveRequest(http.MethodGet, http.StatusOK, 15*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}
