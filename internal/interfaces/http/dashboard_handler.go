package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/logistica-api/internal/application/analytics"
	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
)

// DashboardHandler tablero, reporte PDF y bitácora.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	reports   *appanalytics.ReportUseCase
	audit     *audit.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, reports *appanalytics.ReportUseCase, auditUC *audit.UseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, audit: auditUC}
}

// Get godoc
// @Summary      Tablero de inventario
// @Description  Roles con canViewInventory reciben saldos y movimientos; PERSONNEL recibe su resumen personal.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        base_id         query  string  false  "Solo ADMIN"
// @Param        equipment_type  query  string  false  "Filtrar por tipo"
// @Param        start_date      query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date        query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.DashboardQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.dashboard.Get(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	if out.Personal != nil {
		return c.JSON(out.Personal)
	}
	return c.JSON(out.Summary)
}

// InventoryReport godoc
// @Summary      Reporte PDF de existencias
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        base_id  query  string  false  "Solo ADMIN; vacío = todas las bases"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *DashboardHandler) InventoryReport(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	pdf, filename, err := h.reports.InventoryPDF(c.UserContext(), id, c.Query("base_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Audit godoc
// @Summary      Bitácora de operaciones
// @Description  Más recientes primero, máximo 100. BASE_COMMANDER solo ve su base.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action       query  string  false  "Filtrar por acción"
// @Param        entity_type  query  string  false  "Filtrar por tipo de entidad"
// @Param        user_id      query  string  false  "Filtrar por usuario"
// @Param        limit        query  int     false  "Máximo 100"
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *DashboardHandler) Audit(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.AuditQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.audit.List(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
