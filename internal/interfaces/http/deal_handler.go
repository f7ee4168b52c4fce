package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
)

// DealHandler maneja las peticiones HTTP de deals (protegido).
type DealHandler struct {
	uc *usecase.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create POST /api/deals
func (h *DealHandler) Create(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.Create(c.Context(), identity.OrganizationID, identity.UserID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido y amount no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// List GET /api/deals?limit=20&offset=0
func (h *DealHandler) List(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	list, err := h.uc.List(c.Context(), identity.OrganizationID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(list)
}

// GetByID GET /api/deals/:id
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	deal, err := h.uc.GetByID(c.Context(), identity.OrganizationID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(deal)
}

// Update PUT /api/deals/:id
func (h *DealHandler) Update(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	var in dto.UpdateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.Update(c.Context(), identity.OrganizationID, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(deal)
}

// Delete DELETE /api/deals/:id
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if err := h.uc.Delete(c.Context(), identity.OrganizationID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "deal no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
