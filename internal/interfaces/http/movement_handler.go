package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/movement"
)

// MovementHandler traslados, asignaciones y solicitudes de activos.
type MovementHandler struct {
	svc *movement.Service
}

// NewMovementHandler construye el handler.
func NewMovementHandler(svc *movement.Service) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// ── transfers ─────────────────────────────────────────────────────────────────

// ListTransfers godoc
// @Summary      Listar traslados
// @Description  Fuera de ADMIN se ven los traslados que salen o llegan a la base propia.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "PENDING|APPROVED|REJECTED"
// @Param        base_id  query  string  false  "Origen o destino (solo ADMIN)"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *MovementHandler) ListTransfers(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.TransferQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.ListTransfers(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTransfer godoc
// @Summary      Solicitar traslado
// @Description  ADMIN lo aprueba y ejecuta en la misma operación.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "asset_id, from_base_id, to_base_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *MovementHandler) CreateTransfer(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreateTransfer(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApproveTransfer godoc
// @Summary      Aprobar traslado pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *MovementHandler) ApproveTransfer(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.svc.ApproveTransfer(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RejectTransfer godoc
// @Summary      Rechazar traslado pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *MovementHandler) RejectTransfer(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.svc.RejectTransfer(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── assignments ───────────────────────────────────────────────────────────────

// ListAssignments godoc
// @Summary      Listar asignaciones
// @Description  Por defecto solo las abiertas; all=true incluye las devueltas.
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        personnel_id  query  string  false  "Filtrar por personal"
// @Param        all           query  bool    false  "Incluir devueltas"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/assignments [get]
func (h *MovementHandler) ListAssignments(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.AssignmentQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.ListAssignments(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// IssueAsset godoc
// @Summary      Entregar existencias a personal
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueAssetRequest  true  "asset_id, personnel_id, quantity"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *MovementHandler) IssueAsset(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.IssueAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.IssueAsset(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReturnAsset godoc
// @Summary      Devolver asignación
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id}/return [post]
func (h *MovementHandler) ReturnAsset(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.svc.ReturnAsset(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── asset requests ────────────────────────────────────────────────────────────

// ListRequests godoc
// @Summary      Listar solicitudes de activos
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING|APPROVED|REJECTED"
// @Success      200  {array}  dto.AssetRequestResponse
// @Router       /api/requests [get]
func (h *MovementHandler) ListRequests(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.AssetRequestQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.ListRequests(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateRequest godoc
// @Summary      Solicitar existencias
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequestRequest  true  "asset_id, quantity, reason"
// @Success      201   {object}  dto.AssetRequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *MovementHandler) CreateRequest(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateAssetRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreateRequest(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApproveRequest godoc
// @Summary      Aprobar solicitud (crea la asignación)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID de la solicitud"
// @Param        body  body  dto.ReviewRequest  false  "note"
// @Success      200   {object}  dto.AssetRequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *MovementHandler) ApproveRequest(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	in, ok := parseReview(c)
	if !ok {
		return invalidBody(c)
	}
	out, err := h.svc.ApproveRequest(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RejectRequest godoc
// @Summary      Rechazar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID de la solicitud"
// @Param        body  body  dto.ReviewRequest  false  "note"
// @Success      200   {object}  dto.AssetRequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *MovementHandler) RejectRequest(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	in, ok := parseReview(c)
	if !ok {
		return invalidBody(c)
	}
	out, err := h.svc.RejectRequest(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseReview el cuerpo es opcional.
func parseReview(c *fiber.Ctx) (dto.ReviewRequest, bool) {
	var in dto.ReviewRequest
	if len(c.Body()) == 0 {
		return in, true
	}
	return in, c.BodyParser(&in) == nil
}
