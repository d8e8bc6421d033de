package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/codicefiscale-api/internal/application/directory"
	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/municipality"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/dataset"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/codicefiscale-api/internal/infrastructure/pdf"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/codicefiscale-api/internal/interfaces/http"
	"github.com/jhoicas/codicefiscale-api/pkg/config"
	"github.com/jhoicas/codicefiscale-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("dataset", cfg.Dataset.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()
	cities, err := loadCities(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Dataset.Source).Msg("carga del dataset de municipios")
	}
	table, err := municipality.FromCities(cities)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de municipios inválida")
	}
	log.Info().Int("municipios", table.Len()).Msg("tabla de municipios cargada")

	fiscalCodeUC := fiscalcode.NewUseCase(table, infrapdf.NewMarotoCardGenerator())
	directoryUC := directory.NewUseCase(cities)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.AccessLog(log, m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Codice Fiscale API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    cfg.App.Name,
			"municipios": fiscalCodeUC.Municipalities(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FiscalCodeUC: fiscalCodeUC,
		DirectoryUC:  directoryUC,
		Metrics:      m,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// loadCities lee el dataset una sola vez. Con postgres la conexión se cierra al terminar:
// la tabla queda en memoria y el servicio no vuelve a consultar la base de datos.
func loadCities(ctx context.Context, cfg *config.Config) ([]entity.City, error) {
	switch cfg.Dataset.Source {
	case config.DatasetFile:
		return dataset.FileSource{Path: cfg.Dataset.File}.LoadCities(ctx)
	case config.DatasetPostgres:
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return postgres.NewCityRepository(pool).LoadCities(ctx)
	default:
		return dataset.EmbeddedSource{}.LoadCities(ctx)
	}
}
