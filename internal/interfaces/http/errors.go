package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
	"github.com/jhoicas/codicefiscale-api/internal/domain"
	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

// Códigos de error de la API.
const (
	CodeValidation           = "VALIDATION"
	CodeInvalidDate          = "INVALID_DATE"
	CodeInvalidSex           = "INVALID_SEX"
	CodeMunicipalityNotFound = "MUNICIPALITY_NOT_FOUND"
	CodeInvalidBody          = "INVALID_BODY"
	CodeNotFound             = "NOT_FOUND"
	CodePDFUnavailable       = "PDF_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

// classify traduce un error de dominio a status HTTP y código de API.
// notFoundStatus es el status para un municipio inexistente: 404 cuando el municipio
// es el recurso consultado, 422 cuando es un dato del cálculo.
func classify(err error, notFoundStatus int) (int, string) {
	switch {
	case errors.Is(err, codicefiscale.ErrMunicipalityNotFound):
		return notFoundStatus, CodeMunicipalityNotFound
	case errors.Is(err, codicefiscale.ErrInvalidDate):
		return fiber.StatusBadRequest, CodeInvalidDate
	case errors.Is(err, codicefiscale.ErrInvalidSex):
		return fiber.StatusBadRequest, CodeInvalidSex
	case errors.Is(err, codicefiscale.ErrValidation):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, fiscalcode.ErrCardUnavailable):
		return fiber.StatusServiceUnavailable, CodePDFUnavailable
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// writeError responde con dto.ErrorResponse. Si el error es un *FieldError
// se informan el campo y el valor rechazados.
func writeError(c *fiber.Ctx, err error, notFoundStatus int) error {
	status, code := classify(err, notFoundStatus)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	var fe *codicefiscale.FieldError
	if errors.As(err, &fe) {
		resp.Message = fe.Kind.Error()
		resp.Field = fe.Field
		resp.Value = fe.Value
	}
	return c.Status(status).JSON(resp)
}
