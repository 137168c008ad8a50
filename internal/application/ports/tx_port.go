package ports

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// Repos agrupa los repositorios de una unidad de trabajo.
// Dentro de TxRunner.Run todos comparten la misma transacción.
type Repos struct {
	Bases       repository.BaseRepository
	Users       repository.UserRepository
	Personnel   repository.PersonnelRepository
	Assets      repository.AssetRepository
	Purchases   repository.PurchaseRepository
	Transfers   repository.TransferRepository
	Assignments repository.AssignmentRepository
	Requests    repository.AssetRequestRepository
	Audit       repository.AuditRepository
	Maintenance repository.MaintenanceRepository
	Damage      repository.DamageRepository
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error se hace rollback y no queda ningún efecto visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Store es la fuente de repos fuera de transacción (lecturas) más el runner transaccional.
type Store interface {
	TxRunner
	Repos() Repos
}
