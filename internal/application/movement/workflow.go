// Package movement implementa los flujos que mueven existencias: traslados entre bases,
// entregas y devoluciones a personal, y solicitudes de PERSONNEL.
// Cada operación es una sola unidad de trabajo: bloqueo de filas, validación de estado y stock,
// mutaciones del libro, transición y auditoría se confirman juntas o no se confirman.
package movement

import (
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/pkg/logger"
	"github.com/jhoicas/logistica-api/pkg/metrics"
)

// Nombres de operación para métricas y logs.
const (
	opTransferCreate  = "transfer_create"
	opTransferApprove = "transfer_approve"
	opTransferReject  = "transfer_reject"
	opIssue           = "assignment_issue"
	opReturn          = "assignment_return"
	opRequestCreate   = "request_create"
	opRequestApprove  = "request_approve"
	opRequestReject   = "request_reject"
)

// Service agrupa los tres flujos sobre el mismo almacén.
type Service struct {
	tx      ports.TxRunner
	repos   ports.Repos
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewService construye los flujos. log y m pueden ser nil.
func NewService(store ports.Store, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{tx: store, repos: store.Repos(), log: log.Named("movement"), metrics: m}
}

// observe registra el resultado de la operación; los fallos de negocio van en debug.
func (s *Service) observe(op string, err error) {
	s.metrics.ObserveWorkflow(op, err)
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Str("outcome", metrics.Outcome(err)).Msg("operación rechazada")
	}
}
