package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/codicefiscale-api/internal/application/directory"
	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FiscalCodeUC *fiscalcode.UseCase
	DirectoryUC  *directory.UseCase
	Metrics      *metrics.Metrics // nil desactiva /metrics y los contadores
}

// Router registra las rutas de la API. Todas son públicas y de solo lectura
// sobre el dataset cargado al arrancar.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Codice fiscale
	fcHandler := NewFiscalCodeHandler(deps.FiscalCodeUC, deps.Metrics)
	api.Post("/codice-fiscale", fcHandler.Compute)
	api.Post("/codice-fiscale/pdf", fcHandler.Card)
	api.Get("/city-code/:city", fcHandler.CityCode)

	// Directorio de municipios
	dirHandler := NewDirectoryHandler(deps.DirectoryUC)
	api.Get("/cities", dirHandler.ListCities)
	api.Get("/cities/:id", dirHandler.GetCity)
	api.Get("/regions", dirHandler.ListRegions)
	api.Get("/postal-codes", dirHandler.ListPostalCodes)
	api.Get("/postal-codes/:id", dirHandler.GetPostalCode)
}
