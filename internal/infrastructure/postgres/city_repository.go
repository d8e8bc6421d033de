package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/repository"
)

var _ repository.CitySource = (*CityRepo)(nil)

// CityRepo lee el dataset de municipios de la tabla comuni (ver migrations/001_seed_comuni.sql).
// Es de solo lectura: el servicio no escribe en la base de datos.
type CityRepo struct {
	q Querier
}

// NewCityRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewCityRepository(q Querier) *CityRepo {
	return &CityRepo{q: q}
}

const selectComuni = `
	SELECT name, province, region, population, COALESCE(mayor, ''), area,
	       COALESCE(istat_code, ''), cadastral_code, COALESCE(postal_codes, '{}')
	FROM comuni
	ORDER BY id`

// LoadCities devuelve todos los municipios en orden de id. Los IDs de entity.City
// son 1..N en ese orden, igual que con el dataset YAML.
func (r *CityRepo) LoadCities(ctx context.Context) ([]entity.City, error) {
	rows, err := r.q.Query(ctx, selectComuni)
	if err != nil {
		return nil, fmt.Errorf("list comuni: %w", err)
	}
	cities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.City, error) {
		var c entity.City
		err := row.Scan(&c.Name, &c.Province, &c.Region, &c.Population, &c.Mayor, &c.Area,
			&c.IstatCode, &c.CadastralCode, &c.PostalCodes)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan comuni: %w", err)
	}
	for i := range cities {
		cities[i].ID = i + 1
	}
	return cities, nil
}
