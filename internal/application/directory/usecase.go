// Package directory consultas de solo lectura sobre el dataset de municipios:
// fichas, regiones y códigos postales (CAP).
package directory

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
	"github.com/jhoicas/codicefiscale-api/internal/domain"
	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
)

// UseCase guarda una copia inmutable del dataset y las vistas derivadas.
type UseCase struct {
	cities  []entity.City
	postal  []entity.PostalCodeEntry
	regions []string
}

// NewUseCase construye el directorio a partir del dataset cargado al arrancar.
func NewUseCase(cities []entity.City) *UseCase {
	uc := &UseCase{cities: make([]entity.City, len(cities))}
	seen := make(map[string]struct{})
	for i, c := range cities {
		c.PostalCodes = append([]string(nil), c.PostalCodes...)
		uc.cities[i] = c
		for _, p := range c.PostalCodes {
			uc.postal = append(uc.postal, entity.PostalCodeEntry{
				ID:         len(uc.postal) + 1,
				PostalCode: p,
				City:       c.Name,
				Province:   c.Province,
				Region:     c.Region,
			})
		}
		if _, ok := seen[c.Region]; !ok && c.Region != "" {
			seen[c.Region] = struct{}{}
			uc.regions = append(uc.regions, c.Region)
		}
	}
	sort.Strings(uc.regions)
	return uc
}

// ListCities filtra por región (sin distinguir mayúsculas) y por letra inicial del nombre.
// Filtros vacíos no aplican.
func (uc *UseCase) ListCities(f dto.CityFilter) []dto.CityResponse {
	region := strings.TrimSpace(f.Region)
	letter, _ := utf8.DecodeRuneInString(strings.TrimSpace(f.Letter))
	out := make([]dto.CityResponse, 0, len(uc.cities))
	for _, c := range uc.cities {
		if region != "" && !strings.EqualFold(c.Region, region) {
			continue
		}
		if letter != utf8.RuneError {
			first, _ := utf8.DecodeRuneInString(c.Name)
			if unicode.ToUpper(first) != unicode.ToUpper(letter) {
				continue
			}
		}
		out = append(out, toCityResponse(c))
	}
	return out
}

// GetCity busca por id (1..N en el orden del dataset). Un id menor que 1 es ErrInvalidInput.
func (uc *UseCase) GetCity(id int) (*dto.CityResponse, error) {
	if id < 1 {
		return nil, domain.ErrInvalidInput
	}
	for _, c := range uc.cities {
		if c.ID == id {
			out := toCityResponse(c)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListRegions regiones distintas, ordenadas alfabéticamente.
func (uc *UseCase) ListRegions() []string {
	return append([]string{}, uc.regions...)
}

// ListPostalCodes todos los CAP con su municipio.
func (uc *UseCase) ListPostalCodes() []dto.PostalCodeResponse {
	return uc.filterPostal(func(entity.PostalCodeEntry) bool { return true })
}

// GetPostalCode busca un CAP por id (1..N en ListPostalCodes).
func (uc *UseCase) GetPostalCode(id int) (*dto.PostalCodeResponse, error) {
	if id < 1 {
		return nil, domain.ErrInvalidInput
	}
	if id > len(uc.postal) {
		return nil, domain.ErrNotFound
	}
	out := toPostalCodeResponse(uc.postal[id-1])
	return &out, nil
}

// PostalCodesByCity CAP de los municipios cuyo nombre contiene name (sin distinguir mayúsculas).
func (uc *UseCase) PostalCodesByCity(name string) []dto.PostalCodeResponse {
	q := strings.ToLower(strings.TrimSpace(name))
	return uc.filterPostal(func(p entity.PostalCodeEntry) bool {
		return strings.Contains(strings.ToLower(p.City), q)
	})
}

// CitiesByPostalCode CAP que contienen code.
func (uc *UseCase) CitiesByPostalCode(code string) []dto.PostalCodeResponse {
	q := strings.TrimSpace(code)
	return uc.filterPostal(func(p entity.PostalCodeEntry) bool {
		return strings.Contains(p.PostalCode, q)
	})
}

func (uc *UseCase) filterPostal(keep func(entity.PostalCodeEntry) bool) []dto.PostalCodeResponse {
	out := make([]dto.PostalCodeResponse, 0)
	for _, p := range uc.postal {
		if keep(p) {
			out = append(out, toPostalCodeResponse(p))
		}
	}
	return out
}

func toPostalCodeResponse(p entity.PostalCodeEntry) dto.PostalCodeResponse {
	return dto.PostalCodeResponse{
		ID:         p.ID,
		PostalCode: p.PostalCode,
		City:       p.City,
		Province:   p.Province,
		Region:     p.Region,
	}
}

func toCityResponse(c entity.City) dto.CityResponse {
	return dto.CityResponse{
		ID:            c.ID,
		Name:          c.Name,
		Province:      c.Province,
		Region:        c.Region,
		Population:    c.Population,
		Mayor:         c.Mayor,
		Area:          c.Area,
		IstatCode:     c.IstatCode,
		CadastralCode: c.CadastralCode,
		PostalCodes:   append([]string{}, c.PostalCodes...),
	}
}
