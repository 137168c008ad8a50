package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
)

// AssetHandler maneja el catálogo de activos y las compras.
type AssetHandler struct {
	assets    *inventory.AssetUseCase
	purchases *inventory.PurchaseUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(assets *inventory.AssetUseCase, purchases *inventory.PurchaseUseCase) *AssetHandler {
	return &AssetHandler{assets: assets, purchases: purchases}
}

// List godoc
// @Summary      Listar activos
// @Description  Los roles sin alcance global solo ven su base; base_id lo respeta ADMIN.
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        base_id         query  string  false  "Filtrar por base"
// @Param        equipment_type  query  string  false  "VEHICLE|WEAPON|AMMUNITION|EQUIPMENT|OTHER"
// @Param        search          query  string  false  "Coincidencia parcial en el nombre"
// @Success      200  {array}   dto.AssetResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.AssetQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.assets.List(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.assets.Get(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear activo
// @Description  Una cantidad inicial mayor que cero se registra como compra.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "name, equipment_type, base_id, quantity, condition, unit_cost"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.assets.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar activo (sin cantidad)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del activo"
// @Param        body  body  dto.UpdateAssetRequest  true  "name, equipment_type, condition"
// @Success      200   {object}  dto.AssetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.UpdateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.assets.Update(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar activo sin historial
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	if err := h.assets.Delete(c.UserContext(), id, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "activo eliminado"})
}

// SetCondition godoc
// @Summary      Cambiar condición del activo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del activo"
// @Param        body  body  dto.SetConditionRequest  true  "condition"
// @Success      200   {object}  dto.AssetResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/condition [patch]
func (h *AssetHandler) SetCondition(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.SetConditionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.assets.SetCondition(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        base_id         query  string  false  "Filtrar por base (solo ADMIN)"
// @Param        asset_id        query  string  false  "Filtrar por activo"
// @Param        equipment_type  query  string  false  "Filtrar por tipo"
// @Param        start_date      query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date        query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}   dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *AssetHandler) ListPurchases(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var q dto.PurchaseQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchases.List(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "asset_id, quantity, unit_cost"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *AssetHandler) CreatePurchase(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchases.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
