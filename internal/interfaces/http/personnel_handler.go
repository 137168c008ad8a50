package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/usecase"
)

// PersonnelHandler maneja el registro de personal.
type PersonnelHandler struct {
	uc *usecase.PersonnelUseCase
}

// NewPersonnelHandler construye el handler.
func NewPersonnelHandler(uc *usecase.PersonnelUseCase) *PersonnelHandler {
	return &PersonnelHandler{uc: uc}
}

// List godoc
// @Summary      Listar personal visible
// @Tags         personnel
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PersonnelResponse
// @Router       /api/personnel [get]
func (h *PersonnelHandler) List(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.uc.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar personal
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonnelRequest  true  "name, rank, base_id, user_id"
// @Success      201   {object}  dto.PersonnelResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/personnel [post]
func (h *PersonnelHandler) Create(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.CreatePersonnelRequest
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
// @Summary      Actualizar personal
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del personal"
// @Param        body  body  dto.UpdatePersonnelRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PersonnelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [put]
func (h *PersonnelHandler) Update(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	var in dto.UpdatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
