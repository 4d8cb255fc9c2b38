package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/domain"
)

// writeLookupError traduce los errores de la consulta al status HTTP correspondiente.
// Validación → 400; NotFound → 404; Unavailable/Malformed → 502.
func writeLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCNPJ):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CNPJ", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "CNPJ no encontrado en el registro"})
	}
	var le *domain.LookupError
	if errors.As(err, &le) {
		code := "REGISTRY_UNAVAILABLE"
		if le.Kind == domain.LookupMalformed {
			code = "REGISTRY_MALFORMED"
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: code, Message: "el registro no respondió correctamente, intente más tarde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
