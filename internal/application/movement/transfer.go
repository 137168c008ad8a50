package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// CreateTransfer solicita un traslado. Si el creador puede aprobar en destino sin restricción de base
// (ADMIN) el traslado nace APPROVED y se ejecuta en la misma transacción; si no, queda PENDING.
func (s *Service) CreateTransfer(ctx context.Context, id authz.Identity, in dto.CreateTransferRequest) (res *dto.TransferResponse, err error) {
	defer func() { s.observe(opTransferCreate, err) }()

	if err := authz.Check(id, authz.Scoped(authz.CanRequestTransfers, in.FromBaseID)); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, in.Quantity)
	}
	if in.AssetID == "" || in.ToBaseID == "" {
		return nil, fmt.Errorf("%w: asset_id y to_base_id son obligatorios", domain.ErrInvalidInput)
	}
	if in.FromBaseID == in.ToBaseID {
		return nil, fmt.Errorf("%w: origen y destino son la misma base", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	t := &entity.Transfer{
		ID:          uuid.New().String(),
		AssetID:     in.AssetID,
		FromBaseID:  in.FromBaseID,
		ToBaseID:    in.ToBaseID,
		Quantity:    in.Quantity,
		Status:      entity.StatusPending,
		RequestedBy: id.UserID,
		CreatedAt:   now,
	}
	autoApprove := id.IsAdmin()
	var destID string

	err = s.tx.Run(ctx, func(r ports.Repos) error {
		src, err := inventory.EnsureStock(ctx, r.Assets, in.AssetID, in.Quantity)
		if err != nil {
			return err
		}
		if src.BaseID != in.FromBaseID {
			return fmt.Errorf("%w: el activo no está en la base de origen", domain.ErrNotFound)
		}
		if _, err := r.Bases.GetByID(ctx, in.ToBaseID); err != nil {
			return err
		}
		if autoApprove {
			t.Status = entity.StatusApproved
			t.ApprovedBy = &id.UserID
			t.ApprovedAt = &now
		}
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		if err := audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionTransferRequest,
			EntityType: entity.EntityTransfer,
			EntityID:   t.ID,
			Details:    fmt.Sprintf("Traslado de %d %s solicitado", t.Quantity, src.Name),
			UserID:     id.UserID,
			BaseID:     t.FromBaseID,
		}); err != nil {
			return err
		}
		if !autoApprove {
			return nil
		}
		dest, err := executeTransfer(ctx, r, t)
		if err != nil {
			return err
		}
		destID = dest.ID
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionTransferApproved,
			EntityType: entity.EntityTransfer,
			EntityID:   t.ID,
			Details:    fmt.Sprintf("Traslado de %d %s ejecutado al crear", t.Quantity, src.Name),
			UserID:     id.UserID,
			BaseID:     t.ToBaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	if autoApprove {
		s.metrics.AddStock("transfer", t.Quantity)
	}
	out := dto.NewTransferResponse(t)
	out.DestinationAssetID = destID
	return &out, nil
}

// ApproveTransfer aprueba un traslado PENDING y mueve las existencias.
// El stock de origen se vuelve a validar dentro de la transacción.
func (s *Service) ApproveTransfer(ctx context.Context, id authz.Identity, transferID string) (res *dto.TransferResponse, err error) {
	defer func() { s.observe(opTransferApprove, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanApproveTransfers)); err != nil {
		return nil, err
	}
	var (
		t      *entity.Transfer
		destID string
	)
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		t, err = r.Transfers.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanApproveTransfers, t.ToBaseID)); err != nil {
			return err
		}
		if t.Status != entity.StatusPending {
			return fmt.Errorf("%w: el traslado está %s", domain.ErrInvalidState, t.Status)
		}
		now := time.Now().UTC()
		t.Status = entity.StatusApproved
		t.ApprovedBy = &id.UserID
		t.ApprovedAt = &now
		if err := r.Transfers.UpdateStatus(ctx, t); err != nil {
			return err
		}
		dest, err := executeTransfer(ctx, r, t)
		if err != nil {
			return err
		}
		destID = dest.ID
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionTransferApproved,
			EntityType: entity.EntityTransfer,
			EntityID:   t.ID,
			Details:    fmt.Sprintf("Traslado de %d %s aprobado", t.Quantity, dest.Name),
			UserID:     id.UserID,
			BaseID:     t.ToBaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddStock("transfer", t.Quantity)
	s.log.Info().Str("transfer_id", t.ID).Str("approved_by", id.UserID).Int("quantity", t.Quantity).Msg("traslado aprobado")
	out := dto.NewTransferResponse(t)
	out.DestinationAssetID = destID
	return &out, nil
}

// RejectTransfer rechaza un traslado PENDING sin mover existencias.
func (s *Service) RejectTransfer(ctx context.Context, id authz.Identity, transferID string) (res *dto.TransferResponse, err error) {
	defer func() { s.observe(opTransferReject, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanApproveTransfers)); err != nil {
		return nil, err
	}
	var t *entity.Transfer
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		t, err = r.Transfers.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanApproveTransfers, t.ToBaseID)); err != nil {
			return err
		}
		if t.Status != entity.StatusPending {
			return fmt.Errorf("%w: el traslado está %s", domain.ErrInvalidState, t.Status)
		}
		now := time.Now().UTC()
		t.Status = entity.StatusRejected
		t.ApprovedBy = &id.UserID
		t.ApprovedAt = &now
		if err := r.Transfers.UpdateStatus(ctx, t); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionTransferRejected,
			EntityType: entity.EntityTransfer,
			EntityID:   t.ID,
			Details:    fmt.Sprintf("Traslado de %d unidades rechazado", t.Quantity),
			UserID:     id.UserID,
			BaseID:     t.ToBaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewTransferResponse(t)
	return &out, nil
}

// ListTransfers lista traslados que salen o llegan a la base propia (todos para ADMIN).
func (s *Service) ListTransfers(ctx context.Context, id authz.Identity, q dto.TransferQuery) ([]dto.TransferResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAssignedAssets)); err != nil {
		return nil, err
	}
	f := repository.TransferFilter{Status: entity.Status(q.Status)}
	if id.IsAdmin() {
		f.BaseID = q.BaseID
	} else {
		f.BaseID = id.BaseID
	}
	list, err := s.repos.Transfers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NewTransferResponse(t))
	}
	return out, nil
}

// executeTransfer descuenta en origen y suma en el activo (nombre, tipo) de la base destino,
// creándolo con cantidad cero si la base nunca lo tuvo.
func executeTransfer(ctx context.Context, r ports.Repos, t *entity.Transfer) (*entity.Asset, error) {
	src, err := inventory.Decrease(ctx, r.Assets, t.AssetID, t.Quantity)
	if err != nil {
		return nil, err
	}
	dest, err := inventory.FindOrCreateAtBase(ctx, r.Assets, src.Name, src.EquipmentType, src.Condition, t.ToBaseID)
	if err != nil {
		return nil, err
	}
	return inventory.Increase(ctx, r.Assets, dest.ID, t.Quantity)
}
