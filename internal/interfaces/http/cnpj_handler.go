package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
)

// CNPJHandler maneja las consultas de CNPJ.
type CNPJHandler struct {
	uc    *lookup.LookupUseCase
	pdfUC *lookup.PDFUseCase
}

// NewCNPJHandler construye el handler. pdfUC puede ser nil (ruta PDF deshabilitada).
func NewCNPJHandler(uc *lookup.LookupUseCase, pdfUC *lookup.PDFUseCase) *CNPJHandler {
	return &CNPJHandler{uc: uc, pdfUC: pdfUC}
}

// cnpjParam lee el CNPJ crudo de la ruta. Formas aceptadas:
//
//	/cnpj/11222333000181          dígitos
//	/cnpj/11.222.333%2F0001-81    máscara con la barra codificada
//	/cnpj/11.222.333/0001-81      máscara con la barra literal (raíz y filial como dos segmentos)
//	/cnpj?cnpj=11.222.333/0001-81 query string
func cnpjParam(c *fiber.Ctx) string {
	raw := c.Params("cnpj")
	if raw == "" && c.Params("root") != "" {
		raw = c.Params("root") + "/" + c.Params("branch")
	}
	if raw == "" {
		return c.Query("cnpj")
	}
	if s, err := url.PathUnescape(raw); err == nil {
		raw = s
	}
	return raw
}

// Lookup godoc
// @Summary      Consultar CNPJ
// @Description  Acepta el CNPJ con o sin máscara; en la ruta la barra de la máscara puede ir literal o como %2F.
// @Description  También acepta GET /api/cnpj?cnpj=. Si es filial, el régimen tributario sale de la matriz.
// @Tags         cnpj
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ (14 dígitos, con o sin máscara)"
// @Success      200  {object}  dto.CompanyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cnpj/{cnpj} [get]
func (h *CNPJHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Execute(c.UserContext(), cnpjParam(c))
	if err != nil {
		return writeLookupError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar reporte de CNPJ en PDF
// @Tags         cnpj
// @Produce      application/pdf
// @Param        cnpj  path  string  true  "CNPJ (14 dígitos, con o sin máscara)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cnpj/{cnpj}/pdf [get]
func (h *CNPJHandler) DownloadPDF(c *fiber.Ctx) error {
	b, filename, err := h.pdfUC.DownloadReportPDF(c.UserContext(), cnpjParam(c))
	if err != nil {
		return writeLookupError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(b)
}
