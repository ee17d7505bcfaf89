package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/report"
)

// ReportHandler maneja la generación de reportes (protegido).
type ReportHandler struct {
	kardex *report.KardexUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(kardex *report.KardexUseCase) *ReportHandler {
	return &ReportHandler{kardex: kardex}
}

// KardexPDF godoc
// @Summary      Kardex de un producto en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/kardex.pdf [get]
func (h *ReportHandler) KardexPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	pdfBytes, err := h.kardex.GenerateForProduct(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+productKardexFilename(int64(id))+`"`)
	return c.Send(pdfBytes)
}
