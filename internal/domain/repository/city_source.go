package repository

import (
	"context"

	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
)

// CitySource define el puerto de carga del dataset de municipios.
// Se invoca una sola vez al arrancar; el resultado no se modifica después.
type CitySource interface {
	LoadCities(ctx context.Context) ([]entity.City, error)
}
