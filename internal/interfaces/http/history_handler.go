package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
)

// HistoryHandler mantenimientos y reportes de daño.
type HistoryHandler struct {
	uc *inventory.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *inventory.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// ListMaintenance godoc
// @Summary      Listar mantenimientos
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        asset_id  query  string  false  "Filtrar por activo"
// @Success      200  {array}  dto.MaintenanceResponse
// @Router       /api/maintenance [get]
func (h *HistoryHandler) ListMaintenance(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.uc.ListMaintenance(c.UserContext(), id, c.Query("asset_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMaintenance godoc
// @Summary      Registrar mantenimiento
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaintenanceRequest  true  "asset_id, description, maintenance_type"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/maintenance [post]
func (h *HistoryHandler) CreateMaintenance(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateMaintenance(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDamage godoc
// @Summary      Listar reportes de daño
// @Tags         damage
// @Security     Bearer
// @Produce      json
// @Param        asset_id  query  string  false  "Filtrar por activo"
// @Success      200  {array}  dto.DamageReportResponse
// @Router       /api/damage [get]
func (h *HistoryHandler) ListDamage(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.uc.ListDamage(c.UserContext(), id, c.Query("asset_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportDamage godoc
// @Summary      Reportar daño
// @Tags         damage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDamageReportRequest  true  "asset_id, assignment_id, description, severity"
// @Success      201   {object}  dto.DamageReportResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/damage [post]
func (h *HistoryHandler) ReportDamage(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateDamageReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReportDamage(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
