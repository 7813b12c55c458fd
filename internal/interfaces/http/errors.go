package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/hidroflex/hidroflex-api/internal/application/dto"
	"github.com/hidroflex/hidroflex-api/internal/domain"
)

// respondError mapeia os erros de domínio para o corpo {detail, code}.
// Saída sem saldo disponível é erro do cliente (400), não conflito.
// ErrTransient sai como 503: o caller pode repetir a chamada.
// Erro não mapeado vira 500 com a mensagem no detail e stack no log.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "VALIDATION"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "INSUFFICIENT_STOCK"})
	case errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "NOT_FOUND"})
	case errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "DUPLICATE"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "FORBIDDEN"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrTransient):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Detail: "contenção no banco, tente novamente", Code: "TRANSIENT"})
	default:
		log.Error().Stack().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("erro não mapeado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: err.Error(), Code: "INTERNAL"})
	}
}
