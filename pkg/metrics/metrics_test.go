package metrics_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/pkg/metrics"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("%w: x", domain.ErrForbidden), "forbidden"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrInsufficientStock, "insufficient_stock"},
		{domain.ErrInvalidState, "invalid_state"},
		{domain.ErrInvalidQuantity, "invalid_input"},
		{domain.ErrInvalidInput, "invalid_input"},
		{domain.ErrRetryable, "retryable"},
		{domain.ErrConflict, "conflict"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, metrics.Outcome(tt.err))
	}
}

func TestMetrics_Registra(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveWorkflow("transfer_approve", nil)
	m.ObserveWorkflow("transfer_approve", domain.ErrInvalidState)
	m.AddStock("out", 3)
	m.AddStock("out", 0)
	m.ObserveHTTP("GET", "/api/assets", 200, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkflowTotal.WithLabelValues("transfer_approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkflowTotal.WithLabelValues("transfer_approve", "invalid_state")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StockMovements.WithLabelValues("out")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/assets", "200")))
}

func TestMetrics_NilEsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
		m.ObserveWorkflow("x", nil)
		m.AddStock("in", 1)
	})
}
