package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/logistica-api/internal/application/ports"
)

var (
	_ ports.TxRunner = (*Store)(nil)
	_ ports.Store    = (*Store)(nil)
)

// Store ejecuta unidades de trabajo dentro de una transacción PostgreSQL.
type Store struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewStore construye el almacén. lockTimeout > 0 se aplica con SET LOCAL en cada transacción,
// de modo que una espera de lock larga termina en domain.ErrRetryable en vez de colgar la petición.
func NewStore(pool *pgxpool.Pool, lockTimeout time.Duration) *Store {
	return &Store{pool: pool, lockTimeout: lockTimeout}
}

// Repos devuelve repositorios sobre el pool, para lecturas fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return reposOn(s.pool)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if s.lockTimeout > 0 {
		// SET no admite parámetros; el valor es un entero propio, no entrada del usuario.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", s.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return classify(err, "set lock_timeout")
		}
	}

	if err := fn(reposOn(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(err, "commit transaction")
	}
	return nil
}

func reposOn(q Querier) ports.Repos {
	return ports.Repos{
		Bases:       NewBaseRepository(q),
		Users:       NewUserRepository(q),
		Personnel:   NewPersonnelRepository(q),
		Assets:      NewAssetRepository(q),
		Purchases:   NewPurchaseRepository(q),
		Transfers:   NewTransferRepository(q),
		Assignments: NewAssignmentRepository(q),
		Requests:    NewAssetRequestRepository(q),
		Audit:       NewAuditRepository(q),
		Maintenance: NewMaintenanceRepository(q),
		Damage:      NewDamageRepository(q),
	}
}
