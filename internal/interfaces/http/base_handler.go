package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/usecase"
)

// BaseHandler maneja las peticiones HTTP de bases (protegido).
type BaseHandler struct {
	uc *usecase.BaseUseCase
}

// NewBaseHandler construye el handler.
func NewBaseHandler(uc *usecase.BaseUseCase) *BaseHandler {
	return &BaseHandler{uc: uc}
}

// List godoc
// @Summary      Listar bases visibles
// @Tags         bases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BaseResponse
// @Router       /api/bases [get]
func (h *BaseHandler) List(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.uc.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear base
// @Tags         bases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBaseRequest  true  "name, location"
// @Success      201   {object}  dto.BaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/bases [post]
func (h *BaseHandler) Create(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreateBaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar base
// @Tags         bases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la base"
// @Param        body  body  dto.UpdateBaseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.BaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bases/{id} [put]
func (h *BaseHandler) Update(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.UpdateBaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar base sin referencias
// @Tags         bases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la base"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bases/{id} [delete]
func (h *BaseHandler) Delete(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	if err := h.uc.Delete(c.UserContext(), id, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "base eliminada"})
}
