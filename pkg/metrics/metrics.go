// Package metrics registra las métricas Prometheus de la API (HTTP y flujos de inventario).
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/logistica-api/internal/domain"
)

// Metrics agrupa los colectores. Todos los métodos aceptan receptor nil (métricas desactivadas).
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	WorkflowTotal  *prometheus.CounterVec
	StockMovements *prometheus.CounterVec
}

// New crea y registra los colectores en el registry indicado.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logistica_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logistica_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		WorkflowTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logistica_workflow_operations_total",
				Help: "Operaciones de flujo (traslados, asignaciones, solicitudes) por resultado",
			},
			[]string{"operation", "outcome"},
		),
		StockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logistica_stock_units_total",
				Help: "Unidades movidas por el libro de inventario",
			},
			[]string{"direction"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.WorkflowTotal,
		m.StockMovements,
	)
	return m
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveWorkflow registra el resultado de una operación de flujo.
func (m *Metrics) ObserveWorkflow(operation string, err error) {
	if m == nil {
		return
	}
	m.WorkflowTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

// AddStock suma unidades movidas; direction es "in" u "out".
func (m *Metrics) AddStock(direction string, qty int) {
	if m == nil || qty <= 0 {
		return
	}
	m.StockMovements.WithLabelValues(direction).Add(float64(qty))
}

// Outcome clasifica un error de dominio en una etiqueta de baja cardinalidad.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrRetryable):
		return "retryable"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
