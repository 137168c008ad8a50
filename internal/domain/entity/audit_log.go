package entity

import "time"

// Tipos de entidad registrados en la bitácora.
const (
	EntityBase         = "BASE"
	EntityUser         = "USER"
	EntityPersonnel    = "PERSONNEL"
	EntityAsset        = "ASSET"
	EntityPurchase     = "PURCHASE"
	EntityTransfer     = "TRANSFER"
	EntityAssignment   = "ASSIGNMENT"
	EntityAssetRequest = "ASSET_REQUEST"
	EntityMaintenance  = "MAINTENANCE"
	EntityDamageReport = "DAMAGE_REPORT"
)

// Acciones registradas en la bitácora.
const (
	ActionCreateBase        = "CREATE_BASE"
	ActionUpdateBase        = "UPDATE_BASE"
	ActionDeleteBase        = "DELETE_BASE"
	ActionCreateUser        = "CREATE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
	ActionCreatePersonnel   = "CREATE_PERSONNEL"
	ActionUpdatePersonnel   = "UPDATE_PERSONNEL"
	ActionCreateAsset       = "CREATE_ASSET"
	ActionUpdateAsset       = "UPDATE_ASSET"
	ActionDeleteAsset       = "DELETE_ASSET"
	ActionUpdateCondition   = "UPDATE_CONDITION"
	ActionPurchase          = "PURCHASE"
	ActionTransferRequest   = "TRANSFER_REQUEST"
	ActionTransferApproved  = "TRANSFER_APPROVED"
	ActionTransferRejected  = "TRANSFER_REJECTED"
	ActionIssueAsset        = "ISSUE_ASSET"
	ActionReturnAsset       = "RETURN_ASSET"
	ActionAssetRequest      = "ASSET_REQUEST"
	ActionRequestApproved   = "REQUEST_APPROVED"
	ActionRequestRejected   = "REQUEST_REJECTED"
	ActionCreateMaintenance = "CREATE_MAINTENANCE"
	ActionDamageReport      = "DAMAGE_REPORT"
)

// AuditLogEntry registro inmutable de quién hizo qué sobre qué entidad.
// BaseID es la base afectada (nil para operaciones globales) y permite acotar la vista de BASE_COMMANDER.
type AuditLogEntry struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	UserID     string
	BaseID     *string
	Timestamp  time.Time
}
