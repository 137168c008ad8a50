package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// PersonnelUseCase registro de personal por base.
type PersonnelUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
}

// NewPersonnelUseCase construye el caso de uso.
func NewPersonnelUseCase(store ports.Store) *PersonnelUseCase {
	return &PersonnelUseCase{tx: store, repos: store.Repos()}
}

// Reglas de gestión de personal: crear lo puede cualquier rol de mando o logística; editar solo mando.
func canCreatePersonnel(baseID string) authz.Rule {
	return authz.AllOf(
		authz.RoleIn(entity.RoleAdmin, entity.RoleBaseCommander, entity.RoleLogisticsOfficer),
		authz.InBase(baseID),
	)
}

func canUpdatePersonnel(baseID string) authz.Rule {
	return authz.AllOf(
		authz.RoleIn(entity.RoleAdmin, entity.RoleBaseCommander),
		authz.InBase(baseID),
	)
}

// List devuelve el personal visible: todo para ADMIN, la base propia para mando y logística,
// y el registro propio para PERSONNEL.
func (uc *PersonnelUseCase) List(ctx context.Context, id authz.Identity) ([]dto.PersonnelResponse, error) {
	f := repository.PersonnelFilter{}
	switch {
	case id.IsAdmin():
	case authz.Can(id.Role, authz.CanViewInventory):
		f.BaseID = id.BaseID
	default:
		f.UserID = id.UserID
	}
	list, err := uc.repos.Personnel.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonnelResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPersonnelResponse(p))
	}
	return out, nil
}

// Create registra personal. Sin base_id se usa la base del usuario que crea.
func (uc *PersonnelUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreatePersonnelRequest) (*dto.PersonnelResponse, error) {
	baseID := in.BaseID
	if baseID == "" {
		baseID = id.BaseID
	}
	if err := authz.Check(id, canCreatePersonnel(baseID)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || baseID == "" {
		return nil, fmt.Errorf("%w: name y base_id son obligatorios", domain.ErrInvalidInput)
	}
	p := &entity.Personnel{
		ID:        uuid.New().String(),
		Name:      name,
		Rank:      strings.TrimSpace(in.Rank),
		UserID:    nonEmpty(in.UserID),
		BaseID:    baseID,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if _, err := r.Bases.GetByID(ctx, baseID); err != nil {
			return err
		}
		if err := checkLinkedUser(ctx, r, p.UserID, p.BaseID); err != nil {
			return err
		}
		if err := r.Personnel.Create(ctx, p); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionCreatePersonnel,
			EntityType: entity.EntityPersonnel,
			EntityID:   p.ID,
			Details:    fmt.Sprintf("Personal registrado: %s %s", p.Rank, p.Name),
			UserID:     id.UserID,
			BaseID:     p.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewPersonnelResponse(p)
	return &out, nil
}

// Update edita un registro de personal. Cambiar de base exige alcance sobre ambas bases.
func (uc *PersonnelUseCase) Update(ctx context.Context, id authz.Identity, personnelID string, in dto.UpdatePersonnelRequest) (*dto.PersonnelResponse, error) {
	if err := authz.Check(id, authz.RoleIn(entity.RoleAdmin, entity.RoleBaseCommander)); err != nil {
		return nil, err
	}
	var p *entity.Personnel
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		p, err = r.Personnel.GetByID(ctx, personnelID)
		if err != nil {
			return err
		}
		if !id.InScope(p.BaseID) {
			return domain.ErrNotFound
		}
		if err := authz.Check(id, canUpdatePersonnel(p.BaseID)); err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
			}
			p.Name = name
		}
		if in.Rank != nil {
			p.Rank = strings.TrimSpace(*in.Rank)
		}
		if in.BaseID != nil && *in.BaseID != p.BaseID {
			if err := authz.Check(id, canUpdatePersonnel(*in.BaseID)); err != nil {
				return err
			}
			if _, err := r.Bases.GetByID(ctx, *in.BaseID); err != nil {
				return err
			}
			p.BaseID = *in.BaseID
		}
		if in.UserID != nil {
			p.UserID = nonEmpty(in.UserID)
		}
		if err := checkLinkedUser(ctx, r, p.UserID, p.BaseID); err != nil {
			return err
		}
		if err := r.Personnel.Update(ctx, p); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionUpdatePersonnel,
			EntityType: entity.EntityPersonnel,
			EntityID:   p.ID,
			Details:    "Personal actualizado: " + p.Name,
			UserID:     id.UserID,
			BaseID:     p.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewPersonnelResponse(p)
	return &out, nil
}

// checkLinkedUser exige que el usuario vinculado exista, tenga rol PERSONNEL y pertenezca a la
// base del registro: el vínculo da al usuario derechos propios (devoluciones, daños, solicitudes).
func checkLinkedUser(ctx context.Context, r ports.Repos, userID *string, baseID string) error {
	if userID == nil {
		return nil
	}
	u, err := r.Users.GetByID(ctx, *userID)
	if err != nil {
		return err
	}
	if u.Role != entity.RolePersonnel {
		return fmt.Errorf("%w: solo un usuario PERSONNEL puede vincularse a personal (rol %s)", domain.ErrInvalidInput, u.Role)
	}
	if u.BaseIDOrEmpty() != baseID {
		return fmt.Errorf("%w: el usuario %s pertenece a otra base", domain.ErrInvalidInput, u.Username)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
