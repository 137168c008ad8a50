package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var (
	_ repository.BaseRepository         = (*baseRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
	_ repository.PersonnelRepository    = (*personnelRepo)(nil)
	_ repository.AssetRepository        = (*assetRepo)(nil)
	_ repository.PurchaseRepository     = (*purchaseRepo)(nil)
	_ repository.TransferRepository     = (*transferRepo)(nil)
	_ repository.AssignmentRepository   = (*assignmentRepo)(nil)
	_ repository.AssetRequestRepository = (*requestRepo)(nil)
	_ repository.AuditRepository        = (*auditRepo)(nil)
	_ repository.MaintenanceRepository  = (*maintenanceRepo)(nil)
	_ repository.DamageRepository       = (*damageRepo)(nil)
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrConflict}, args...)...)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// newestFirst ordena por fecha descendente conservando el orden inverso de inserción en empates.
func newestFirst[T any](list []*T, at func(*T) time.Time) []*T {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool { return at(list[i]).After(at(list[j])) })
	return list
}

// ── bases ─────────────────────────────────────────────────────────────────────

type baseRepo struct{ c *conn }

func baseNameTaken(d *state, name, exceptID string) bool {
	taken := false
	d.bases.each(func(x *entity.Base) { taken = taken || (x.ID != exceptID && x.Name == name) })
	return taken
}

func (r *baseRepo) Create(_ context.Context, b *entity.Base) error {
	return r.c.write(func(d *state) error {
		if baseNameTaken(d, b.Name, b.ID) {
			return conflict("la base %s ya existe", b.Name)
		}
		d.bases.insert(b.ID, *b)
		return nil
	})
}

func (r *baseRepo) GetByID(_ context.Context, id string) (*entity.Base, error) {
	var out *entity.Base
	err := r.c.read(func(d *state) error {
		b, ok := d.bases.get(id)
		if !ok {
			return notFound("base", id)
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *baseRepo) List(_ context.Context) ([]*entity.Base, error) {
	var out []*entity.Base
	err := r.c.read(func(d *state) error {
		d.bases.each(func(b *entity.Base) {
			cp := *b
			out = append(out, &cp)
		})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *baseRepo) Update(_ context.Context, b *entity.Base) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.bases.get(b.ID); !ok {
			return notFound("base", b.ID)
		}
		if baseNameTaken(d, b.Name, b.ID) {
			return conflict("la base %s ya existe", b.Name)
		}
		d.bases.replace(b.ID, *b)
		return nil
	})
}

func (r *baseRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.bases.get(id); !ok {
			return notFound("base", id)
		}
		used := false
		d.users.each(func(u *entity.User) { used = used || (u.BaseID != nil && *u.BaseID == id) })
		d.personnel.each(func(p *entity.Personnel) { used = used || p.BaseID == id })
		d.assets.each(func(a *entity.Asset) { used = used || a.BaseID == id })
		d.purchases.each(func(p *entity.Purchase) { used = used || p.BaseID == id })
		d.transfers.each(func(t *entity.Transfer) { used = used || t.FromBaseID == id || t.ToBaseID == id })
		if used {
			return conflict("la base %s está referenciada", id)
		}
		d.bases.remove(id)
		return nil
	})
}

// ── users ─────────────────────────────────────────────────────────────────────

type userRepo struct{ c *conn }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.c.write(func(d *state) error {
		dup := false
		d.users.each(func(x *entity.User) { dup = dup || strings.EqualFold(x.Username, u.Username) })
		if dup {
			return conflict("el usuario %s ya existe", u.Username)
		}
		if u.BaseID != nil {
			if _, ok := d.bases.get(*u.BaseID); !ok {
				return notFound("base", *u.BaseID)
			}
		}
		d.users.insert(u.ID, *u)
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(d *state) error {
		u, ok := d.users.get(id)
		if !ok {
			return notFound("usuario", id)
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(d *state) error {
		d.users.each(func(u *entity.User) {
			if out == nil && strings.EqualFold(u.Username, username) {
				cp := *u
				out = &cp
			}
		})
		if out == nil {
			return notFound("usuario", username)
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.c.read(func(d *state) error {
		d.users.each(func(u *entity.User) {
			cp := *u
			out = append(out, &cp)
		})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.users.get(u.ID); !ok {
			return notFound("usuario", u.ID)
		}
		if u.BaseID != nil {
			if _, ok := d.bases.get(*u.BaseID); !ok {
				return notFound("base", *u.BaseID)
			}
		}
		d.users.replace(u.ID, *u)
		return nil
	})
}

// Delete replica las FK de PostgreSQL: un usuario con historial no se puede borrar.
func (r *userRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.users.get(id); !ok {
			return notFound("usuario", id)
		}
		is := func(p *string) bool { return p != nil && *p == id }
		used := false
		d.personnel.each(func(p *entity.Personnel) { used = used || is(p.UserID) })
		d.purchases.each(func(p *entity.Purchase) { used = used || p.CreatedBy == id })
		d.transfers.each(func(t *entity.Transfer) { used = used || t.RequestedBy == id || is(t.ApprovedBy) })
		d.assignments.each(func(a *entity.Assignment) { used = used || a.IssuedBy == id || is(a.ReturnedTo) })
		d.requests.each(func(q *entity.AssetRequest) { used = used || q.RequestedBy == id || is(q.ReviewedBy) })
		d.maintenance.each(func(m *entity.MaintenanceRecord) { used = used || m.CreatedBy == id })
		d.damage.each(func(x *entity.DamageReport) { used = used || x.ReportedBy == id })
		if used {
			return conflict("el usuario %s tiene historial", id)
		}
		d.users.remove(id)
		return nil
	})
}

// ── personnel ─────────────────────────────────────────────────────────────────

type personnelRepo struct{ c *conn }

func (r *personnelRepo) checkLinks(d *state, p *entity.Personnel) error {
	if _, ok := d.bases.get(p.BaseID); !ok {
		return notFound("base", p.BaseID)
	}
	if p.UserID == nil {
		return nil
	}
	if _, ok := d.users.get(*p.UserID); !ok {
		return notFound("usuario", *p.UserID)
	}
	taken := false
	d.personnel.each(func(x *entity.Personnel) {
		taken = taken || (x.ID != p.ID && x.UserID != nil && *x.UserID == *p.UserID)
	})
	if taken {
		return conflict("el usuario %s ya está vinculado a otro personal", *p.UserID)
	}
	return nil
}

func (r *personnelRepo) Create(_ context.Context, p *entity.Personnel) error {
	return r.c.write(func(d *state) error {
		if err := r.checkLinks(d, p); err != nil {
			return err
		}
		d.personnel.insert(p.ID, *p)
		return nil
	})
}

func (r *personnelRepo) GetByID(_ context.Context, id string) (*entity.Personnel, error) {
	var out *entity.Personnel
	err := r.c.read(func(d *state) error {
		p, ok := d.personnel.get(id)
		if !ok {
			return notFound("personal", id)
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *personnelRepo) GetByUserID(_ context.Context, userID string) (*entity.Personnel, error) {
	var out *entity.Personnel
	err := r.c.read(func(d *state) error {
		d.personnel.each(func(p *entity.Personnel) {
			if out == nil && p.LinkedTo(userID) {
				cp := *p
				out = &cp
			}
		})
		if out == nil {
			return notFound("personal del usuario", userID)
		}
		return nil
	})
	return out, err
}

func (r *personnelRepo) List(_ context.Context, f repository.PersonnelFilter) ([]*entity.Personnel, error) {
	var out []*entity.Personnel
	err := r.c.read(func(d *state) error {
		d.personnel.each(func(p *entity.Personnel) {
			if f.BaseID != "" && p.BaseID != f.BaseID {
				return
			}
			if f.UserID != "" && !p.LinkedTo(f.UserID) {
				return
			}
			cp := *p
			out = append(out, &cp)
		})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *personnelRepo) Update(_ context.Context, p *entity.Personnel) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.personnel.get(p.ID); !ok {
			return notFound("personal", p.ID)
		}
		if err := r.checkLinks(d, p); err != nil {
			return err
		}
		d.personnel.replace(p.ID, *p)
		return nil
	})
}

func (r *personnelRepo) UnlinkUser(_ context.Context, userID string) error {
	return r.c.write(func(d *state) error {
		var ids []string
		d.personnel.each(func(p *entity.Personnel) {
			if p.LinkedTo(userID) {
				ids = append(ids, p.ID)
			}
		})
		for _, id := range ids {
			p, _ := d.personnel.get(id)
			p.UserID = nil
			d.personnel.replace(id, p)
		}
		return nil
	})
}

// ── assets ────────────────────────────────────────────────────────────────────

type assetRepo struct{ c *conn }

func sameAsset(a *entity.Asset, baseID, name string, t entity.EquipmentType) bool {
	return a.BaseID == baseID && a.Name == name && a.EquipmentType == t
}

func (r *assetRepo) Create(_ context.Context, a *entity.Asset) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.bases.get(a.BaseID); !ok {
			return notFound("base", a.BaseID)
		}
		dup := false
		d.assets.each(func(x *entity.Asset) { dup = dup || sameAsset(x, a.BaseID, a.Name, a.EquipmentType) })
		if dup {
			return conflict("ya existe %s (%s) en la base", a.Name, a.EquipmentType)
		}
		d.assets.insert(a.ID, *a)
		return nil
	})
}

func (r *assetRepo) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.c.read(func(d *state) error {
		a, ok := d.assets.get(id)
		if !ok {
			return notFound("activo", id)
		}
		out = &a
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el lock de escritura ya serializa.
func (r *assetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *assetRepo) GetOrCreateAtBase(_ context.Context, candidate *entity.Asset) (*entity.Asset, bool, error) {
	var (
		out     *entity.Asset
		created bool
	)
	err := r.c.write(func(d *state) error {
		d.assets.each(func(x *entity.Asset) {
			if out == nil && sameAsset(x, candidate.BaseID, candidate.Name, candidate.EquipmentType) {
				cp := *x
				out = &cp
			}
		})
		if out != nil {
			return nil
		}
		if _, ok := d.bases.get(candidate.BaseID); !ok {
			return notFound("base", candidate.BaseID)
		}
		d.assets.insert(candidate.ID, *candidate)
		cp := *candidate
		out, created = &cp, true
		return nil
	})
	return out, created, err
}

func (r *assetRepo) List(_ context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	search := strings.ToLower(f.Search)
	var out []*entity.Asset
	err := r.c.read(func(d *state) error {
		d.assets.each(func(a *entity.Asset) {
			if f.BaseID != "" && a.BaseID != f.BaseID {
				return
			}
			if f.EquipmentType != "" && a.EquipmentType != f.EquipmentType {
				return
			}
			if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
				return
			}
			cp := *a
			out = append(out, &cp)
		})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].BaseID < out[j].BaseID
	})
	return out, err
}

func (r *assetRepo) Update(_ context.Context, a *entity.Asset) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.assets.get(a.ID)
		if !ok {
			return notFound("activo", a.ID)
		}
		dup := false
		d.assets.each(func(x *entity.Asset) {
			dup = dup || (x.ID != a.ID && sameAsset(x, cur.BaseID, a.Name, a.EquipmentType))
		})
		if dup {
			return conflict("ya existe %s (%s) en la base", a.Name, a.EquipmentType)
		}
		cur.Name, cur.EquipmentType, cur.Condition, cur.UpdatedAt = a.Name, a.EquipmentType, a.Condition, a.UpdatedAt
		d.assets.replace(a.ID, cur)
		return nil
	})
}

func (r *assetRepo) SetQuantity(_ context.Context, id string, quantity int) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.assets.get(id)
		if !ok {
			return notFound("activo", id)
		}
		if quantity < 0 {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInsufficientStock)
		}
		cur.Quantity = quantity
		cur.UpdatedAt = time.Now().UTC()
		d.assets.replace(id, cur)
		return nil
	})
}

func (r *assetRepo) SetCondition(_ context.Context, id string, condition entity.Condition) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.assets.get(id)
		if !ok {
			return notFound("activo", id)
		}
		cur.Condition = condition
		cur.UpdatedAt = time.Now().UTC()
		d.assets.replace(id, cur)
		return nil
	})
}

func (r *assetRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(id); !ok {
			return notFound("activo", id)
		}
		used := false
		d.purchases.each(func(p *entity.Purchase) { used = used || p.AssetID == id })
		d.transfers.each(func(t *entity.Transfer) { used = used || t.AssetID == id })
		d.assignments.each(func(a *entity.Assignment) { used = used || a.AssetID == id })
		d.requests.each(func(q *entity.AssetRequest) { used = used || q.AssetID == id })
		d.maintenance.each(func(m *entity.MaintenanceRecord) { used = used || m.AssetID == id })
		d.damage.each(func(x *entity.DamageReport) { used = used || x.AssetID == id })
		if used {
			return conflict("el activo %s tiene historial", id)
		}
		d.assets.remove(id)
		return nil
	})
}

// ── purchases ─────────────────────────────────────────────────────────────────

type purchaseRepo struct{ c *conn }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(p.AssetID); !ok {
			return notFound("activo", p.AssetID)
		}
		d.purchases.insert(p.ID, *p)
		return nil
	})
}

func (r *purchaseRepo) List(_ context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.c.read(func(d *state) error {
		d.purchases.each(func(p *entity.Purchase) {
			if f.BaseID != "" && p.BaseID != f.BaseID {
				return
			}
			if f.AssetID != "" && p.AssetID != f.AssetID {
				return
			}
			if f.EquipmentType != "" {
				a, ok := d.assets.get(p.AssetID)
				if !ok || a.EquipmentType != f.EquipmentType {
					return
				}
			}
			if !inRange(p.CreatedAt, f.From, f.To) {
				return
			}
			cp := *p
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(p *entity.Purchase) time.Time { return p.CreatedAt }), err
}

// ── transfers ─────────────────────────────────────────────────────────────────

type transferRepo struct{ c *conn }

func (r *transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(t.AssetID); !ok {
			return notFound("activo", t.AssetID)
		}
		for _, b := range []string{t.FromBaseID, t.ToBaseID} {
			if _, ok := d.bases.get(b); !ok {
				return notFound("base", b)
			}
		}
		d.transfers.insert(t.ID, *t)
		return nil
	})
}

func (r *transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.c.read(func(d *state) error {
		t, ok := d.transfers.get(id)
		if !ok {
			return notFound("traslado", id)
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *transferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *transferRepo) UpdateStatus(_ context.Context, t *entity.Transfer) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.transfers.get(t.ID)
		if !ok {
			return notFound("traslado", t.ID)
		}
		cur.Status, cur.ApprovedBy, cur.ApprovedAt = t.Status, t.ApprovedBy, t.ApprovedAt
		d.transfers.replace(t.ID, cur)
		return nil
	})
}

func (r *transferRepo) List(_ context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	err := r.c.read(func(d *state) error {
		d.transfers.each(func(t *entity.Transfer) {
			if f.BaseID != "" && t.FromBaseID != f.BaseID && t.ToBaseID != f.BaseID {
				return
			}
			if f.FromBaseID != "" && t.FromBaseID != f.FromBaseID {
				return
			}
			if f.ToBaseID != "" && t.ToBaseID != f.ToBaseID {
				return
			}
			if f.Status != "" && t.Status != f.Status {
				return
			}
			if !inRange(t.CreatedAt, f.From, f.To) {
				return
			}
			cp := *t
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(t *entity.Transfer) time.Time { return t.CreatedAt }), err
}

// ── assignments ───────────────────────────────────────────────────────────────

type assignmentRepo struct{ c *conn }

func (r *assignmentRepo) Create(_ context.Context, a *entity.Assignment) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(a.AssetID); !ok {
			return notFound("activo", a.AssetID)
		}
		if _, ok := d.personnel.get(a.PersonnelID); !ok {
			return notFound("personal", a.PersonnelID)
		}
		d.assignments.insert(a.ID, *a)
		return nil
	})
}

func (r *assignmentRepo) GetByID(_ context.Context, id string) (*entity.Assignment, error) {
	var out *entity.Assignment
	err := r.c.read(func(d *state) error {
		a, ok := d.assignments.get(id)
		if !ok {
			return notFound("asignación", id)
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *assignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.GetByID(ctx, id)
}

func (r *assignmentRepo) MarkReturned(_ context.Context, a *entity.Assignment) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.assignments.get(a.ID)
		if !ok {
			return notFound("asignación", a.ID)
		}
		cur.ReturnedAt, cur.ReturnedTo = a.ReturnedAt, a.ReturnedTo
		d.assignments.replace(a.ID, cur)
		return nil
	})
}

func (r *assignmentRepo) List(_ context.Context, f repository.AssignmentFilter) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	err := r.c.read(func(d *state) error {
		d.assignments.each(func(a *entity.Assignment) {
			if f.OpenOnly && !a.Open() {
				return
			}
			if f.PersonnelID != "" && a.PersonnelID != f.PersonnelID {
				return
			}
			if f.AssetID != "" && a.AssetID != f.AssetID {
				return
			}
			if f.BaseID != "" {
				p, ok := d.personnel.get(a.PersonnelID)
				if !ok || p.BaseID != f.BaseID {
					return
				}
			}
			cp := *a
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(a *entity.Assignment) time.Time { return a.IssuedAt }), err
}

// ── asset requests ────────────────────────────────────────────────────────────

type requestRepo struct{ c *conn }

func (r *requestRepo) Create(_ context.Context, q *entity.AssetRequest) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(q.AssetID); !ok {
			return notFound("activo", q.AssetID)
		}
		if _, ok := d.users.get(q.RequestedBy); !ok {
			return notFound("usuario", q.RequestedBy)
		}
		d.requests.insert(q.ID, *q)
		return nil
	})
}

func (r *requestRepo) GetByID(_ context.Context, id string) (*entity.AssetRequest, error) {
	var out *entity.AssetRequest
	err := r.c.read(func(d *state) error {
		q, ok := d.requests.get(id)
		if !ok {
			return notFound("solicitud", id)
		}
		out = &q
		return nil
	})
	return out, err
}

func (r *requestRepo) GetForUpdate(ctx context.Context, id string) (*entity.AssetRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *requestRepo) UpdateReview(_ context.Context, q *entity.AssetRequest) error {
	return r.c.write(func(d *state) error {
		cur, ok := d.requests.get(q.ID)
		if !ok {
			return notFound("solicitud", q.ID)
		}
		cur.Status, cur.ReviewedBy, cur.ReviewedAt = q.Status, q.ReviewedBy, q.ReviewedAt
		cur.ReviewNote, cur.AssignmentID = q.ReviewNote, q.AssignmentID
		d.requests.replace(q.ID, cur)
		return nil
	})
}

func (r *requestRepo) List(_ context.Context, f repository.AssetRequestFilter) ([]*entity.AssetRequest, error) {
	var out []*entity.AssetRequest
	err := r.c.read(func(d *state) error {
		d.requests.each(func(q *entity.AssetRequest) {
			if f.Status != "" && q.Status != f.Status {
				return
			}
			if f.RequestedBy != "" && q.RequestedBy != f.RequestedBy {
				return
			}
			if f.BaseID != "" {
				u, ok := d.users.get(q.RequestedBy)
				if !ok || u.BaseIDOrEmpty() != f.BaseID {
					return
				}
			}
			cp := *q
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(q *entity.AssetRequest) time.Time { return q.CreatedAt }), err
}

// ── audit ─────────────────────────────────────────────────────────────────────

type auditRepo struct{ c *conn }

func (r *auditRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	return r.c.write(func(d *state) error {
		d.audit.insert(e.ID, *e)
		return nil
	})
}

func (r *auditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditLogEntry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = repository.DefaultAuditLimit
	}
	var out []*entity.AuditLogEntry
	err := r.c.read(func(d *state) error {
		d.audit.each(func(e *entity.AuditLogEntry) {
			if f.BaseID != "" && (e.BaseID == nil || *e.BaseID != f.BaseID) {
				return
			}
			if f.UserID != "" && e.UserID != f.UserID {
				return
			}
			if f.Action != "" && e.Action != f.Action {
				return
			}
			if f.EntityType != "" && e.EntityType != f.EntityType {
				return
			}
			cp := *e
			out = append(out, &cp)
		})
		return nil
	})
	out = newestFirst(out, func(e *entity.AuditLogEntry) time.Time { return e.Timestamp })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// ── maintenance & damage ──────────────────────────────────────────────────────

type maintenanceRepo struct{ c *conn }

func (r *maintenanceRepo) Create(_ context.Context, m *entity.MaintenanceRecord) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(m.AssetID); !ok {
			return notFound("activo", m.AssetID)
		}
		d.maintenance.insert(m.ID, *m)
		return nil
	})
}

func (r *maintenanceRepo) List(_ context.Context, f repository.HistoryFilter) ([]*entity.MaintenanceRecord, error) {
	var out []*entity.MaintenanceRecord
	err := r.c.read(func(d *state) error {
		d.maintenance.each(func(m *entity.MaintenanceRecord) {
			if f.AssetID != "" && m.AssetID != f.AssetID {
				return
			}
			if f.BaseID != "" {
				a, ok := d.assets.get(m.AssetID)
				if !ok || a.BaseID != f.BaseID {
					return
				}
			}
			cp := *m
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(m *entity.MaintenanceRecord) time.Time { return m.CreatedAt }), err
}

type damageRepo struct{ c *conn }

func (r *damageRepo) Create(_ context.Context, x *entity.DamageReport) error {
	return r.c.write(func(d *state) error {
		if _, ok := d.assets.get(x.AssetID); !ok {
			return notFound("activo", x.AssetID)
		}
		if x.AssignmentID != nil {
			if _, ok := d.assignments.get(*x.AssignmentID); !ok {
				return notFound("asignación", *x.AssignmentID)
			}
		}
		d.damage.insert(x.ID, *x)
		return nil
	})
}

func (r *damageRepo) List(_ context.Context, f repository.HistoryFilter) ([]*entity.DamageReport, error) {
	var out []*entity.DamageReport
	err := r.c.read(func(d *state) error {
		d.damage.each(func(x *entity.DamageReport) {
			if f.AssetID != "" && x.AssetID != f.AssetID {
				return
			}
			if f.ReportedBy != "" && x.ReportedBy != f.ReportedBy {
				return
			}
			if f.BaseID != "" {
				a, ok := d.assets.get(x.AssetID)
				if !ok || a.BaseID != f.BaseID {
					return
				}
			}
			cp := *x
			out = append(out, &cp)
		})
		return nil
	})
	return newestFirst(out, func(x *entity.DamageReport) time.Time { return x.ReportedAt }), err
}
