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

// IssueAsset entrega existencias a una persona de la base del emisor.
func (s *Service) IssueAsset(ctx context.Context, id authz.Identity, in dto.IssueAssetRequest) (res *dto.AssignmentResponse, err error) {
	defer func() { s.observe(opIssue, err) }()

	if err := authz.Check(id, authz.HasCapability(authz.CanIssueAssets)); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, in.Quantity)
	}
	var a *entity.Assignment
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		p, err := r.Personnel.GetByID(ctx, in.PersonnelID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanIssueAssets, p.BaseID)); err != nil {
			return err
		}
		a, err = issue(ctx, r, id, in.AssetID, p, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddStock("out", a.Quantity)
	out := dto.NewAssignmentResponse(a)
	return &out, nil
}

// ReturnAsset cierra una asignación abierta y devuelve exactamente la cantidad entregada.
// Puede hacerlo quien recibe devoluciones en la base del personal o el propio titular.
func (s *Service) ReturnAsset(ctx context.Context, id authz.Identity, assignmentID string) (res *dto.AssignmentResponse, err error) {
	defer func() { s.observe(opReturn, err) }()

	var a *entity.Assignment
	err = s.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		a, err = r.Assignments.GetForUpdate(ctx, assignmentID)
		if err != nil {
			return err
		}
		p, err := r.Personnel.GetByID(ctx, a.PersonnelID)
		if err != nil {
			return err
		}
		rule := authz.AnyOf(
			authz.Scoped(authz.CanReceiveReturns, p.BaseID),
			authz.AllOf(authz.HasCapability(authz.CanRequestAssets), authz.Self(p.UserID)),
		)
		if err := authz.Check(id, rule); err != nil {
			return err
		}
		if !a.Open() {
			return fmt.Errorf("%w: la asignación ya fue devuelta", domain.ErrInvalidState)
		}
		now := time.Now().UTC()
		a.ReturnedAt = &now
		a.ReturnedTo = &id.UserID
		if err := r.Assignments.MarkReturned(ctx, a); err != nil {
			return err
		}
		asset, err := inventory.Increase(ctx, r.Assets, a.AssetID, a.Quantity)
		if err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionReturnAsset,
			EntityType: entity.EntityAssignment,
			EntityID:   a.ID,
			Details:    fmt.Sprintf("%s devolvió %d %s", p.Name, a.Quantity, asset.Name),
			UserID:     id.UserID,
			BaseID:     p.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AddStock("in", a.Quantity)
	out := dto.NewAssignmentResponse(a)
	return &out, nil
}

// ListAssignments lista asignaciones (abiertas salvo q.All). PERSONNEL solo ve las propias.
func (s *Service) ListAssignments(ctx context.Context, id authz.Identity, q dto.AssignmentQuery) ([]dto.AssignmentResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAssignedAssets)); err != nil {
		return nil, err
	}
	f := repository.AssignmentFilter{PersonnelID: q.PersonnelID, OpenOnly: !q.All}
	switch {
	case id.IsAdmin():
	case authz.Can(id.Role, authz.CanViewInventory):
		f.BaseID = id.BaseID
	default:
		p, err := s.repos.Personnel.GetByUserID(ctx, id.UserID)
		if err != nil {
			if domain.IsNotFound(err) {
				return []dto.AssignmentResponse{}, nil
			}
			return nil, err
		}
		f.PersonnelID = p.ID
	}
	list, err := s.repos.Assignments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.NewAssignmentResponse(a))
	}
	return out, nil
}

// issue crea la asignación abierta y descuenta el activo. El activo debe estar en la base del personal.
func issue(ctx context.Context, r ports.Repos, id authz.Identity, assetID string, p *entity.Personnel, qty int) (*entity.Assignment, error) {
	asset, err := inventory.Decrease(ctx, r.Assets, assetID, qty)
	if err != nil {
		return nil, err
	}
	if asset.BaseID != p.BaseID {
		return nil, fmt.Errorf("%w: el activo no está en la base del personal", domain.ErrInvalidInput)
	}
	a := &entity.Assignment{
		ID:          uuid.New().String(),
		AssetID:     asset.ID,
		PersonnelID: p.ID,
		Quantity:    qty,
		IssuedBy:    id.UserID,
		IssuedAt:    time.Now().UTC(),
	}
	if err := r.Assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := audit.Record(ctx, r.Audit, audit.Entry{
		Action:     entity.ActionIssueAsset,
		EntityType: entity.EntityAssignment,
		EntityID:   a.ID,
		Details:    fmt.Sprintf("%d %s entregados a %s", qty, asset.Name, p.Name),
		UserID:     id.UserID,
		BaseID:     p.BaseID,
	}); err != nil {
		return nil, err
	}
	return a, nil
}
