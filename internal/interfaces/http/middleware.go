package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/metrics"
	"github.com/jhoicas/codicefiscale-api/pkg/logger"
)

// unmatchedRoute etiqueta de las peticiones que no coinciden con ninguna ruta.
const unmatchedRoute = "unmatched"

// AccessLog registra una línea por petición (método, ruta, status, duración, request id)
// y, si m no es nil, la duración en el histograma. Debe montarse después de requestid.
// No lee el cuerpo: los datos personales del cálculo no llegan al log.
func AccessLog(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber fije el status antes de registrarlo.
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		dur := time.Since(start)
		status := c.Response().StatusCode()

		// Method y Path apuntan al buffer de fasthttp, que se reutiliza entre peticiones:
		// prometheus guarda las etiquetas, así que se copian.
		m.ObserveRequest(utils.CopyString(c.Method()), routeLabel(c), strconv.Itoa(status), float64(dur.Microseconds())/1000)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", dur.Milliseconds()).
			Str("request_id", requestID(c)).
			Msg("http_access")
		return err
	}
}

// routeLabel devuelve la plantilla de la ruta (/api/cities/:id) o unmatchedRoute si
// ninguna coincidió, para que las rutas inexistentes no creen series nuevas.
func routeLabel(c *fiber.Ctx) string {
	route := c.Route().Path
	if route == "" || route == "/" {
		return unmatchedRoute
	}
	return utils.CopyString(route)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
