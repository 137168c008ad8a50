// Package memory implementa el almacén en memoria: mismos contratos y semántica todo-o-nada
// que PostgreSQL, para tests y para STORE_DRIVER=memory.
//
// Las unidades de trabajo se serializan con un RWMutex (escritura) y, si fn devuelve error,
// se restaura la instantánea tomada al inicio. Las lecturas fuera de transacción toman el
// lock de lectura.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

var (
	_ ports.Store    = (*Store)(nil)
	_ ports.TxRunner = (*Store)(nil)
)

// table filas por ID más el orden de inserción. Las filas nunca se mutan en sitio:
// cada escritura reemplaza el puntero, así una copia superficial sirve de instantánea.
type table[T any] struct {
	rows  map[string]*T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[string]*T{}}
}

func (t table[T]) clone() table[T] {
	rows := make(map[string]*T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return table[T]{rows: rows, order: append([]string(nil), t.order...)}
}

func (t *table[T]) insert(id string, v T) {
	t.rows[id] = &v
	t.order = append(t.order, id)
}

func (t *table[T]) replace(id string, v T) {
	t.rows[id] = &v
}

func (t *table[T]) remove(id string) {
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			return
		}
	}
}

// get devuelve una copia de la fila.
func (t table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// each recorre las filas en orden de inserción.
func (t table[T]) each(fn func(v *T)) {
	for _, id := range t.order {
		if v, ok := t.rows[id]; ok {
			fn(v)
		}
	}
}

type state struct {
	bases       table[entity.Base]
	users       table[entity.User]
	personnel   table[entity.Personnel]
	assets      table[entity.Asset]
	purchases   table[entity.Purchase]
	transfers   table[entity.Transfer]
	assignments table[entity.Assignment]
	requests    table[entity.AssetRequest]
	audit       table[entity.AuditLogEntry]
	maintenance table[entity.MaintenanceRecord]
	damage      table[entity.DamageReport]
}

func newState() *state {
	return &state{
		bases:       newTable[entity.Base](),
		users:       newTable[entity.User](),
		personnel:   newTable[entity.Personnel](),
		assets:      newTable[entity.Asset](),
		purchases:   newTable[entity.Purchase](),
		transfers:   newTable[entity.Transfer](),
		assignments: newTable[entity.Assignment](),
		requests:    newTable[entity.AssetRequest](),
		audit:       newTable[entity.AuditLogEntry](),
		maintenance: newTable[entity.MaintenanceRecord](),
		damage:      newTable[entity.DamageReport](),
	}
}

func (s *state) clone() *state {
	return &state{
		bases:       s.bases.clone(),
		users:       s.users.clone(),
		personnel:   s.personnel.clone(),
		assets:      s.assets.clone(),
		purchases:   s.purchases.clone(),
		transfers:   s.transfers.clone(),
		assignments: s.assignments.clone(),
		requests:    s.requests.clone(),
		audit:       s.audit.clone(),
		maintenance: s.maintenance.clone(),
		damage:      s.damage.clone(),
	}
}

// Store almacén en memoria.
type Store struct {
	mu   sync.RWMutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repos devuelve repositorios para lecturas fuera de transacción.
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

// Run ejecuta fn con acceso exclusivo. Si fn falla se descartan todos sus cambios.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) repos(inTx bool) ports.Repos {
	c := &conn{store: s, inTx: inTx}
	return ports.Repos{
		Bases:       &baseRepo{c},
		Users:       &userRepo{c},
		Personnel:   &personnelRepo{c},
		Assets:      &assetRepo{c},
		Purchases:   &purchaseRepo{c},
		Transfers:   &transferRepo{c},
		Assignments: &assignmentRepo{c},
		Requests:    &requestRepo{c},
		Audit:       &auditRepo{c},
		Maintenance: &maintenanceRepo{c},
		Damage:      &damageRepo{c},
	}
}

// conn decide si cada operación toma el lock: dentro de Run ya se tiene el de escritura.
type conn struct {
	store *Store
	inTx  bool
}

func (c *conn) read(fn func(d *state) error) error {
	if !c.inTx {
		c.store.mu.RLock()
		defer c.store.mu.RUnlock()
	}
	return fn(c.store.data)
}

func (c *conn) write(fn func(d *state) error) error {
	if !c.inTx {
		c.store.mu.Lock()
		defer c.store.mu.Unlock()
	}
	return fn(c.store.data)
}
