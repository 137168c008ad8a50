// Package authz contiene la matriz de permisos por rol y la compuerta de autorización
// que evalúan todos los casos de uso antes de tocar el almacén.
package authz

import (
	"sort"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// Capability nombre de una capacidad de la matriz de permisos.
type Capability string

// Capacidades conocidas. Los nombres se exponen tal cual en GET /api/roles.
const (
	CanManageUsers        Capability = "canManageUsers"
	CanViewAllBases       Capability = "canViewAllBases"
	CanAddAssets          Capability = "canAddAssets"
	CanEditAssets         Capability = "canEditAssets"
	CanDeleteAssets       Capability = "canDeleteAssets"
	CanViewInventory      Capability = "canViewInventory"
	CanApproveTransfers   Capability = "canApproveTransfers"
	CanRequestTransfers   Capability = "canRequestTransfers"
	CanIssueAssets        Capability = "canIssueAssets"
	CanReceiveReturns     Capability = "canReceiveReturns"
	CanUpdateCondition    Capability = "canUpdateCondition"
	CanCreateMaintenance  Capability = "canCreateMaintenance"
	CanViewReports        Capability = "canViewReports"
	CanViewAuditLogs      Capability = "canViewAuditLogs"
	CanRequestAssets      Capability = "canRequestAssets"
	CanViewAssignedAssets Capability = "canViewAssignedAssets"
)

// Capabilities lista todas las capacidades en orden estable.
func Capabilities() []Capability {
	return []Capability{
		CanManageUsers, CanViewAllBases, CanAddAssets, CanEditAssets, CanDeleteAssets,
		CanViewInventory, CanApproveTransfers, CanRequestTransfers, CanIssueAssets,
		CanReceiveReturns, CanUpdateCondition, CanCreateMaintenance, CanViewReports,
		CanViewAuditLogs, CanRequestAssets, CanViewAssignedAssets,
	}
}

// matrix es dato puro; solo se lee a través de Can y CapabilitiesOf.
var matrix = map[entity.Role]map[Capability]bool{
	entity.RoleAdmin: {
		CanManageUsers:        true,
		CanViewAllBases:       true,
		CanAddAssets:          true,
		CanEditAssets:         true,
		CanDeleteAssets:       true,
		CanViewInventory:      true,
		CanApproveTransfers:   true,
		CanRequestTransfers:   true,
		CanIssueAssets:        true,
		CanReceiveReturns:     true,
		CanUpdateCondition:    true,
		CanCreateMaintenance:  true,
		CanViewReports:        true,
		CanViewAuditLogs:      true,
		CanRequestAssets:      false,
		CanViewAssignedAssets: true,
	},
	entity.RoleBaseCommander: {
		CanManageUsers:        false,
		CanViewAllBases:       false,
		CanAddAssets:          false,
		CanEditAssets:         false,
		CanDeleteAssets:       false,
		CanViewInventory:      true,
		CanApproveTransfers:   true,
		CanRequestTransfers:   true,
		CanIssueAssets:        false,
		CanReceiveReturns:     false,
		CanUpdateCondition:    false,
		CanCreateMaintenance:  false,
		CanViewReports:        true,
		CanViewAuditLogs:      true,
		CanRequestAssets:      false,
		CanViewAssignedAssets: true,
	},
	entity.RoleLogisticsOfficer: {
		CanManageUsers:        false,
		CanViewAllBases:       false,
		CanAddAssets:          false,
		CanEditAssets:         false,
		CanDeleteAssets:       false,
		CanViewInventory:      true,
		CanApproveTransfers:   false,
		CanRequestTransfers:   false,
		CanIssueAssets:        true,
		CanReceiveReturns:     true,
		CanUpdateCondition:    true,
		CanCreateMaintenance:  true,
		CanViewReports:        false,
		CanViewAuditLogs:      false,
		CanRequestAssets:      false,
		CanViewAssignedAssets: true,
	},
	entity.RolePersonnel: {
		CanManageUsers:        false,
		CanViewAllBases:       false,
		CanAddAssets:          false,
		CanEditAssets:         false,
		CanDeleteAssets:       false,
		CanViewInventory:      false,
		CanApproveTransfers:   false,
		CanRequestTransfers:   false,
		CanIssueAssets:        false,
		CanReceiveReturns:     false,
		CanUpdateCondition:    false,
		CanCreateMaintenance:  false,
		CanViewReports:        false,
		CanViewAuditLogs:      false,
		CanRequestAssets:      true,
		CanViewAssignedAssets: true,
	},
}

// Can informa si el rol tiene la capacidad. Roles o capacidades desconocidos devuelven false.
func Can(role entity.Role, c Capability) bool {
	return matrix[role][c]
}

// CapabilitiesOf devuelve una copia de la fila de la matriz para el rol (nil si el rol no existe).
func CapabilitiesOf(role entity.Role) map[Capability]bool {
	row, ok := matrix[role]
	if !ok {
		return nil
	}
	out := make(map[Capability]bool, len(row))
	for c, v := range row {
		out[c] = v
	}
	return out
}

// Granted devuelve las capacidades concedidas al rol, ordenadas por nombre.
func Granted(role entity.Role) []Capability {
	var out []Capability
	for c, v := range matrix[role] {
		if v {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
