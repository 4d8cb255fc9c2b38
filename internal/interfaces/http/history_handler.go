package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
)

// HistoryHandler expone el histórico de consultas.
type HistoryHandler struct {
	uc *lookup.HistoryUseCase
}

// NewHistoryHandler construye el handler inyectando el caso de uso.
func NewHistoryHandler(uc *lookup.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar histórico de consultas
// @Description  Con ?cnpj= filtra por la raíz (todas las filiales y la matriz).
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Param        cnpj    query  string  false  "CNPJ cuya raíz se filtra"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.LookupLogListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/lookups [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()

	var (
		out *dto.LookupLogListResponse
		err error
	)
	if raw := c.Query("cnpj"); raw != "" {
		out, err = h.uc.ListByCompany(c.UserContext(), raw, page.Limit, page.Offset)
	} else {
		out, err = h.uc.List(c.UserContext(), page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
