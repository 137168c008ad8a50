package movement

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

// CreateRequest registra una solicitud PENDING de PERSONNEL.
func (s *Service) CreateRequest(ctx context.Context, id authz.Identity, in dto.CreateAssetRequestRequest) (res *dto.AssetRequestResponse, err error) {
	defer func() { s.observe(opRequestCreate, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanRequestAssets)); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, in.Quantity)
	}
	req := &entity.AssetRequest{
		ID:          uuid.New().String(),
		AssetID:     in.AssetID,
		RequestedBy: id.UserID,
		Quantity:    in.Quantity,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      entity.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		asset, err := r.Assets.GetByID(ctx, in.AssetID)
		if err != nil {
			return err
		}
		// Solo se piden activos de la propia base; los ajenos se reportan como inexistentes.
		if !id.InScope(asset.BaseID) {
			return fmt.Errorf("%w: asset %s", domain.ErrNotFound, in.AssetID)
		}
		if err := r.Requests.Create(ctx, req); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionAssetRequest,
			EntityType: entity.EntityAssetRequest,
			EntityID:   req.ID,
			Details:    fmt.Sprintf("Solicitud de %d %s", req.Quantity, asset.Name),
			UserID:     id.UserID,
			BaseID:     id.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewAssetRequestResponse(req)
	return &out, nil
}

// ApproveRequest aprueba una solicitud PENDING: crea la asignación al personal vinculado
// al solicitante y descuenta el activo. Sin personal vinculado falla con ErrNotFound y no confirma nada.
func (s *Service) ApproveRequest(ctx context.Context, id authz.Identity, requestID string, in dto.ReviewRequest) (res *dto.AssetRequestResponse, err error) {
	defer func() { s.observe(opRequestApprove, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanIssueAssets)); err != nil {
		return nil, err
	}
	var (
		req *entity.AssetRequest
		qty int
	)
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		req, err = r.Requests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		requester, err := r.Users.GetByID(ctx, req.RequestedBy)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanIssueAssets, requester.BaseIDOrEmpty())); err != nil {
			return err
		}
		if req.Status != entity.StatusPending {
			return fmt.Errorf("%w: la solicitud está %s", domain.ErrInvalidState, req.Status)
		}
		p, err := r.Personnel.GetByUserID(ctx, requester.ID)
		if err != nil {
			if domain.IsNotFound(err) {
				return fmt.Errorf("%w: el solicitante no tiene personal vinculado", domain.ErrNotFound)
			}
			return err
		}
		// La entrega sale del inventario de la base del personal, no de la del solicitante.
		if err := authz.Check(id, authz.Scoped(authz.CanIssueAssets, p.BaseID)); err != nil {
			return err
		}
		a, err := issue(ctx, r, id, req.AssetID, p, req.Quantity)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		req.Status = entity.StatusApproved
		req.ReviewedBy = &id.UserID
		req.ReviewedAt = &now
		req.ReviewNote = strings.TrimSpace(in.Note)
		req.AssignmentID = &a.ID
		if err := r.Requests.UpdateReview(ctx, req); err != nil {
			return err
		}
		qty = a.Quantity
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionRequestApproved,
			EntityType: entity.EntityAssetRequest,
			EntityID:   req.ID,
			Details:    fmt.Sprintf("Solicitud aprobada, asignación %s", a.ID),
			UserID:     id.UserID,
			BaseID:     p.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddStock("out", qty)
	out := dto.NewAssetRequestResponse(req)
	return &out, nil
}

// RejectRequest rechaza una solicitud PENDING guardando la nota del revisor.
func (s *Service) RejectRequest(ctx context.Context, id authz.Identity, requestID string, in dto.ReviewRequest) (res *dto.AssetRequestResponse, err error) {
	defer func() { s.observe(opRequestReject, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanIssueAssets)); err != nil {
		return nil, err
	}
	var req *entity.AssetRequest
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		req, err = r.Requests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != entity.StatusPending {
			return fmt.Errorf("%w: la solicitud está %s", domain.ErrInvalidState, req.Status)
		}
		now := time.Now().UTC()
		req.Status = entity.StatusRejected
		req.ReviewedBy = &id.UserID
		req.ReviewedAt = &now
		req.ReviewNote = strings.TrimSpace(in.Note)
		if err := r.Requests.UpdateReview(ctx, req); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionRequestRejected,
			EntityType: entity.EntityAssetRequest,
			EntityID:   req.ID,
			Details:    "Solicitud rechazada: " + req.ReviewNote,
			UserID:     id.UserID,
			BaseID:     id.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewAssetRequestResponse(req)
	return &out, nil
}

// ListRequests lista solicitudes: PERSONNEL las propias, el resto las de usuarios de su base.
func (s *Service) ListRequests(ctx context.Context, id authz.Identity, q dto.AssetRequestQuery) ([]dto.AssetRequestResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAssignedAssets)); err != nil {
		return nil, err
	}
	f := repository.AssetRequestFilter{Status: entity.Status(strings.ToUpper(q.Status))}
	switch {
	case id.IsAdmin():
	case authz.Can(id.Role, authz.CanRequestAssets):
		f.RequestedBy = id.UserID
	default:
		f.BaseID = id.BaseID
	}
	list, err := s.repos.Requests.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewAssetRequestResponse(r))
	}
	return out, nil
}
