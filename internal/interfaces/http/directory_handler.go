package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/codicefiscale-api/internal/application/directory"
	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
)

// DirectoryHandler expone el directorio de municipios, regiones y CAP.
type DirectoryHandler struct {
	uc *directory.UseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *directory.UseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// ListCities godoc
// @Summary      Listar municipios
// @Tags         directory
// @Produce      json
// @Param        region  query  string  false  "Región (sin distinguir mayúsculas)"
// @Param        letter  query  string  false  "Letra inicial del nombre"
// @Success      200  {array}   dto.CityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cities [get]
func (h *DirectoryHandler) ListCities(c *fiber.Ctx) error {
	var f dto.CityFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "filtros inválidos"})
	}
	return c.JSON(h.uc.ListCities(f))
}

// GetCity godoc
// @Summary      Obtener municipio por ID
// @Tags         directory
// @Produce      json
// @Param        id   path      int  true  "ID (1..N en el orden del dataset)"
// @Success      200  {object}  dto.CityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cities/{id} [get]
func (h *DirectoryHandler) GetCity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "id debe ser un entero", Field: "id", Value: c.Params("id")})
	}
	city, err := h.uc.GetCity(id)
	if err != nil {
		return writeError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(city)
}

// ListRegions godoc
// @Summary      Listar regiones
// @Tags         directory
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/regions [get]
func (h *DirectoryHandler) ListRegions(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListRegions())
}

// ListPostalCodes godoc
// @Summary      Listar códigos postales (CAP)
// @Description  Sin filtros devuelve todos. city filtra por nombre del municipio y code por CAP
//
//	(coincidencia parcial). Si vienen ambos se aplica city.
//
// @Tags         directory
// @Produce      json
// @Param        city  query  string  false  "Nombre (o parte) del municipio"
// @Param        code  query  string  false  "CAP (o parte)"
// @Success      200  {array}  dto.PostalCodeResponse
// @Router       /api/postal-codes [get]
func (h *DirectoryHandler) ListPostalCodes(c *fiber.Ctx) error {
	if city := c.Query("city"); city != "" {
		return c.JSON(h.uc.PostalCodesByCity(city))
	}
	if code := c.Query("code"); code != "" {
		return c.JSON(h.uc.CitiesByPostalCode(code))
	}
	return c.JSON(h.uc.ListPostalCodes())
}

// GetPostalCode godoc
// @Summary      Obtener CAP por ID
// @Tags         directory
// @Produce      json
// @Param        id   path      int  true  "ID (1..N en el orden de /api/postal-codes)"
// @Success      200  {object}  dto.PostalCodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postal-codes/{id} [get]
func (h *DirectoryHandler) GetPostalCode(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "id debe ser un entero", Field: "id", Value: c.Params("id")})
	}
	p, err := h.uc.GetPostalCode(id)
	if err != nil {
		return writeError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(p)
}

// decodeParam devuelve el parámetro de ruta sin escapar ("San%20Giovanni" → "San Giovanni").
func decodeParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(c.Params(name))
}
