package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/metrics"
)

// FiscalCodeHandler maneja el cálculo del codice fiscale y la consulta de códigos catastrales.
type FiscalCodeHandler struct {
	uc      *fiscalcode.UseCase
	metrics *metrics.Metrics
}

// NewFiscalCodeHandler construye el handler. m puede ser nil.
func NewFiscalCodeHandler(uc *fiscalcode.UseCase, m *metrics.Metrics) *FiscalCodeHandler {
	return &FiscalCodeHandler{uc: uc, metrics: m}
}

// Compute godoc
// @Summary      Calcular codice fiscale
// @Description  Calcula los 16 caracteres a partir de nombre, apellido, fecha (YYYY-MM-DD),
//
//	sexo (M/F) y municipio de nacimiento. No resuelve omocodia.
//
// @Tags         codice-fiscale
// @Accept       json
// @Produce      json
// @Param        body  body      dto.FiscalCodeRequest  true  "name, surname, birthdate, gender, birthplace"
// @Success      200   {object}  dto.FiscalCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/codice-fiscale [post]
func (h *FiscalCodeHandler) Compute(c *fiber.Ctx) error {
	var in dto.FiscalCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	out, err := h.uc.Compute(in)
	if err != nil {
		h.countFailure(err)
		return writeError(c, err, fiber.StatusUnprocessableEntity)
	}
	h.metrics.IncComputed()
	return c.JSON(out)
}

// Card godoc
// @Summary      Tarjeta PDF del codice fiscale
// @Tags         codice-fiscale
// @Accept       json
// @Produce      application/pdf
// @Param        body  body      dto.FiscalCodeRequest  true  "mismos datos que el cálculo"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/codice-fiscale/pdf [post]
func (h *FiscalCodeHandler) Card(c *fiber.Ctx) error {
	var in dto.FiscalCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	pdf, filename, err := h.uc.Card(c.UserContext(), in)
	if err != nil {
		h.countFailure(err)
		return writeError(c, err, fiber.StatusUnprocessableEntity)
	}
	h.metrics.IncComputed()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// CityCode godoc
// @Summary      Código catastral de un municipio
// @Tags         codice-fiscale
// @Produce      json
// @Param        city  path      string  true  "Nombre del municipio (sin distinguir mayúsculas)"
// @Success      200   {object}  dto.CityCodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/city-code/{city} [get]
func (h *FiscalCodeHandler) CityCode(c *fiber.Ctx) error {
	city, err := decodeParam(c, "city")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "parámetro city inválido"})
	}
	out, err := h.uc.LookupCityCode(city)
	if err != nil {
		h.metrics.IncLookup(false)
		return writeError(c, err, fiber.StatusNotFound)
	}
	h.metrics.IncLookup(true)
	return c.JSON(out)
}

// countFailure cuenta el rechazo por código de API (validation, invalid_date...).
func (h *FiscalCodeHandler) countFailure(err error) {
	if errors.Is(err, fiscalcode.ErrCardUnavailable) {
		return
	}
	_, code := classify(err, fiber.StatusUnprocessableEntity)
	h.metrics.IncFailure(strings.ToLower(code))
}
