package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/application/reports"
	"github.com/tu-usuario/factura-rd/internal/domain"
)

// ReportHandler genera los archivos de envío DGII (606, 607, 608) como
// descarga TXT en ISO-8859-1 (el formato que acepta la herramienta de la DGII).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Download606 godoc
// @Summary      Descargar reporte 606 (compras)
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/606 [get]
func (h *ReportHandler) Download606(c *fiber.Ctx) error {
	return h.download(c, h.uc.Generate606)
}

// Download607 godoc
// @Summary      Descargar reporte 607 (ventas)
// @Description  Incluye solo facturas emitidas; las anuladas se declaran en el 608.
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/607 [get]
func (h *ReportHandler) Download607(c *fiber.Ctx) error {
	return h.download(c, h.uc.Generate607)
}

// Download608 godoc
// @Summary      Descargar reporte 608 (comprobantes anulados)
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/608 [get]
func (h *ReportHandler) Download608(c *fiber.Ctx) error {
	return h.download(c, h.uc.Generate608)
}

func (h *ReportHandler) download(c *fiber.Ctx, generate func(context.Context, string, dto.ReportRequest) (*reports.ReportFile, error)) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	in := dto.ReportRequest{
		Year:  c.QueryInt("year"),
		Month: c.QueryInt("month"),
	}
	file, err := generate(c.Context(), companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month (1-12) son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa o contraparte no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=ISO-8859-1")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Meta.Filename))
	return c.Send(file.Content)
}
