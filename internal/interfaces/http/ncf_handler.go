package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
)

// NCFHandler administra los rangos de secuencias NCF (solo admin).
type NCFHandler struct {
	uc *billing.NCFAdminUseCase
}

// NewNCFHandler construye el handler.
func NewNCFHandler(uc *billing.NCFAdminUseCase) *NCFHandler {
	return &NCFHandler{uc: uc}
}

// CreateSequence godoc
// @Summary      Registrar rango de NCF autorizado
// @Description  Registra un rango autorizado por la DGII. El consecutivo arranca en range_from.
// @Tags         ncf
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNCFSequenceRequest  true  "Rango autorizado"
// @Success      201   {object}  dto.NCFSequenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ncf-sequences [post]
func (h *NCFHandler) CreateSequence(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateNCFSequenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSequence(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo NCF, autorización o rango inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la secuencia ya está registrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSequences godoc
// @Summary      Listar secuencias NCF de la empresa
// @Tags         ncf
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NCFSequenceResponse
// @Router       /api/ncf-sequences [get]
func (h *NCFHandler) ListSequences(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ListSequences(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeactivateSequence godoc
// @Summary      Desactivar secuencia NCF
// @Description  Desactivación administrativa; los rangos nunca se eliminan.
// @Tags         ncf
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la secuencia"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ncf-sequences/{id}/deactivate [post]
func (h *NCFHandler) DeactivateSequence(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeactivateSequence(c.Context(), companyID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "secuencia no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "secuencia desactivada"})
}

// Preview godoc
// @Summary      Consultar próximo NCF disponible
// @Description  Consulta no mutante: devuelve el próximo NCF y cuántos quedan para el tipo.
// @Tags         ncf
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "Tipo de NCF (B01, B02, B14, B15, B16)"
// @Success      200   {object}  dto.NCFPreviewResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ncf/{type}/preview [get]
func (h *NCFHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	ncfType := c.Params("type")
	out, err := h.uc.Preview(c.Context(), companyID, ncfType)
	if err != nil {
		// El asignador envuelve los sentinelas con contexto: errors.Is, no ==.
		if errors.Is(err, domain.ErrNoSequenceAvailable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NCF_UNAVAILABLE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrSequenceExpired) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NCF_EXPIRED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de NCF inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
