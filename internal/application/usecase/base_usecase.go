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
)

// BaseUseCase casos de uso CRUD para bases.
type BaseUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
}

// NewBaseUseCase construye el caso de uso.
func NewBaseUseCase(store ports.Store) *BaseUseCase {
	return &BaseUseCase{tx: store, repos: store.Repos()}
}

// List devuelve todas las bases para ADMIN y solo la propia para el resto.
func (uc *BaseUseCase) List(ctx context.Context, id authz.Identity) ([]dto.BaseResponse, error) {
	if id.IsAdmin() {
		list, err := uc.repos.Bases.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.BaseResponse, 0, len(list))
		for _, b := range list {
			out = append(out, dto.NewBaseResponse(b))
		}
		return out, nil
	}
	if id.BaseID == "" {
		return []dto.BaseResponse{}, nil
	}
	b, err := uc.repos.Bases.GetByID(ctx, id.BaseID)
	if err != nil {
		if domain.IsNotFound(err) {
			return []dto.BaseResponse{}, nil
		}
		return nil, err
	}
	return []dto.BaseResponse{dto.NewBaseResponse(b)}, nil
}

// Create crea una nueva base.
func (uc *BaseUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateBaseRequest) (*dto.BaseResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAllBases)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	b := &entity.Base{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Bases.Create(ctx, b); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionCreateBase,
			EntityType: entity.EntityBase,
			EntityID:   b.ID,
			Details:    "Base creada: " + b.Name,
			UserID:     id.UserID,
			BaseID:     b.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewBaseResponse(b)
	return &out, nil
}

// Update cambia los campos de presentación de una base.
func (uc *BaseUseCase) Update(ctx context.Context, id authz.Identity, baseID string, in dto.UpdateBaseRequest) (*dto.BaseResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAllBases)); err != nil {
		return nil, err
	}
	var b *entity.Base
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		b, err = r.Bases.GetByID(ctx, baseID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
			}
			b.Name = name
		}
		if in.Location != nil {
			b.Location = strings.TrimSpace(*in.Location)
		}
		if err := r.Bases.Update(ctx, b); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionUpdateBase,
			EntityType: entity.EntityBase,
			EntityID:   b.ID,
			Details:    "Base actualizada: " + b.Name,
			UserID:     id.UserID,
			BaseID:     b.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewBaseResponse(b)
	return &out, nil
}

// Delete elimina una base sin referencias; si está en uso devuelve ErrConflict.
func (uc *BaseUseCase) Delete(ctx context.Context, id authz.Identity, baseID string) error {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAllBases)); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		b, err := r.Bases.GetByID(ctx, baseID)
		if err != nil {
			return err
		}
		if err := r.Bases.Delete(ctx, b.ID); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionDeleteBase,
			EntityType: entity.EntityBase,
			EntityID:   b.ID,
			Details:    "Base eliminada: " + b.Name,
			UserID:     id.UserID,
		})
	})
}
