package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain"
)

// DealHandler maneja los negocios del pipeline: CRUD, movimiento entre etapas,
// historial y tablero Kanban. Todas las rutas son protegidas.
type DealHandler struct {
	uc *pipeline.UseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *pipeline.UseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create POST /api/deals
func (h *DealHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.CreateDeal(companyID, GetUserID(c), in)
	if err != nil {
		return dealError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// List GET /api/deals?limit=20&offset=0
// Devuelve solo los negocios visibles para el rol del usuario.
func (h *DealHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListVisibleDeals(companyID, GetUserID(c), limit, offset)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(list)
}

// Board GET /api/deals/board
// Tablero Kanban completo: columnas por order_index, tarjetas por UpdatedAt desc.
func (h *DealHandler) Board(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	board, err := h.uc.Board(companyID, GetUserID(c))
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(board)
}

// GetByID GET /api/deals/:id
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	deal, err := h.uc.GetVisibleDeal(GetUserID(c), c.Params("id"))
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

// Update PUT /api/deals/:id
// Solo atributos; el cambio de etapa va por Move.
func (h *DealHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.UpdateDeal(c.Params("id"), in)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

// Move POST /api/deals/:id/move
// Mueve el negocio a otra etapa (drag & drop). Mover a la etapa actual es un
// no-op idempotente que responde 200 con el negocio sin cambios.
func (h *DealHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.StatusID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status_id es requerido"})
	}
	deal, err := h.uc.ChangeDealStatus(c.Context(), c.Params("id"), in.StatusID, GetUserID(c), in.Notes)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

// History GET /api/deals/:id/history
// Transiciones del negocio en orden cronológico ascendente.
func (h *DealHandler) History(c *fiber.Ctx) error {
	history, err := h.uc.History(c.Params("id"))
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(history)
}

// Delete DELETE /api/deals/:id
// Borra el negocio junto con su historial (misma transacción).
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteDeal(c.Context(), c.Params("id")); err != nil {
		return dealError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// dealError mapea los sentinels de dominio a respuestas HTTP.
func dealError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrDealNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "negocio no encontrado"})
	case domain.ErrStatusNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "STATUS_NOT_FOUND", Message: "la etapa destino no existe"})
	case domain.ErrClientNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CLIENT_NOT_FOUND", Message: "el cliente no existe"})
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del negocio inválidos"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene visibilidad sobre este negocio"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
