package dto

import "github.com/jhoicas/logistica-api/internal/domain/entity"

// Conversores entidad -> respuesta compartidos por los casos de uso.

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      string(u.Role),
		BaseID:    u.BaseID,
		CreatedAt: u.CreatedAt,
	}
}

func NewBaseResponse(b *entity.Base) BaseResponse {
	return BaseResponse{ID: b.ID, Name: b.Name, Location: b.Location, CreatedAt: b.CreatedAt}
}

func NewPersonnelResponse(p *entity.Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:        p.ID,
		Name:      p.Name,
		Rank:      p.Rank,
		UserID:    p.UserID,
		BaseID:    p.BaseID,
		CreatedAt: p.CreatedAt,
	}
}

func NewAssetResponse(a *entity.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.ID,
		Name:          a.Name,
		EquipmentType: string(a.EquipmentType),
		Quantity:      a.Quantity,
		Condition:     string(a.Condition),
		BaseID:        a.BaseID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func NewAssetResponses(list []*entity.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAssetResponse(a))
	}
	return out
}

func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:        p.ID,
		AssetID:   p.AssetID,
		BaseID:    p.BaseID,
		Quantity:  p.Quantity,
		UnitCost:  p.UnitCost,
		TotalCost: p.TotalCost(),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
}

func NewTransferResponse(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:          t.ID,
		AssetID:     t.AssetID,
		FromBaseID:  t.FromBaseID,
		ToBaseID:    t.ToBaseID,
		Quantity:    t.Quantity,
		Status:      string(t.Status),
		RequestedBy: t.RequestedBy,
		ApprovedBy:  t.ApprovedBy,
		ApprovedAt:  t.ApprovedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func NewAssignmentResponse(a *entity.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		AssetID:     a.AssetID,
		PersonnelID: a.PersonnelID,
		Quantity:    a.Quantity,
		IssuedBy:    a.IssuedBy,
		IssuedAt:    a.IssuedAt,
		ReturnedAt:  a.ReturnedAt,
		ReturnedTo:  a.ReturnedTo,
	}
}

func NewAssetRequestResponse(r *entity.AssetRequest) AssetRequestResponse {
	return AssetRequestResponse{
		ID:           r.ID,
		AssetID:      r.AssetID,
		RequestedBy:  r.RequestedBy,
		Quantity:     r.Quantity,
		Reason:       r.Reason,
		Status:       string(r.Status),
		ReviewedBy:   r.ReviewedBy,
		ReviewedAt:   r.ReviewedAt,
		ReviewNote:   r.ReviewNote,
		AssignmentID: r.AssignmentID,
		CreatedAt:    r.CreatedAt,
	}
}

func NewMaintenanceResponse(m *entity.MaintenanceRecord) MaintenanceResponse {
	return MaintenanceResponse{
		ID:              m.ID,
		AssetID:         m.AssetID,
		Description:     m.Description,
		MaintenanceType: m.MaintenanceType,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

func NewDamageReportResponse(d *entity.DamageReport) DamageReportResponse {
	return DamageReportResponse{
		ID:           d.ID,
		AssetID:      d.AssetID,
		AssignmentID: d.AssignmentID,
		Description:  d.Description,
		Severity:     string(d.Severity),
		ReportedBy:   d.ReportedBy,
		ReportedAt:   d.ReportedAt,
	}
}

func NewAuditLogResponse(e *entity.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		UserID:     e.UserID,
		BaseID:     e.BaseID,
		Timestamp:  e.Timestamp,
	}
}
