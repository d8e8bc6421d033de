// Package municipality contiene la tabla inmutable de códigos catastrales usada
// para el segmento de lugar de nacimiento del codice fiscale.
package municipality

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/codicefiscale-api/internal/domain"
	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

var (
	cadastralCodeRe = regexp.MustCompile(`^[A-Z0-9]{4}$`)
	provinceRe      = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Table mapa nombre → municipio. Se construye una vez con NewTable y no expone
// operaciones de escritura, por lo que admite lectores concurrentes sin bloqueo.
type Table struct {
	byName  map[string]entity.Municipality
	ordered []entity.Municipality
}

var _ codicefiscale.PlaceResolver = (*Table)(nil)

// NewTable valida las entradas y construye la tabla.
// Rechaza nombres vacíos o duplicados (sin distinguir mayúsculas), códigos que no sean
// 4 caracteres alfanuméricos y provincias que no sean 2 letras.
func NewTable(entries []entity.Municipality) (*Table, error) {
	t := &Table{
		byName:  make(map[string]entity.Municipality, len(entries)),
		ordered: make([]entity.Municipality, 0, len(entries)),
	}
	var errs []error
	for i, e := range entries {
		m := entity.Municipality{
			Name:          strings.TrimSpace(e.Name),
			CadastralCode: strings.ToUpper(strings.TrimSpace(e.CadastralCode)),
			Province:      strings.ToUpper(strings.TrimSpace(e.Province)),
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("entrada %d: nombre vacío", i))
			continue
		}
		if !cadastralCodeRe.MatchString(m.CadastralCode) {
			errs = append(errs, fmt.Errorf("%s: código catastral %q inválido", m.Name, e.CadastralCode))
			continue
		}
		if !provinceRe.MatchString(m.Province) {
			errs = append(errs, fmt.Errorf("%s: provincia %q inválida", m.Name, e.Province))
			continue
		}
		k := key(m.Name)
		if _, dup := t.byName[k]; dup {
			errs = append(errs, fmt.Errorf("%w: municipio %q repetido", domain.ErrDuplicate, m.Name))
			continue
		}
		t.byName[k] = m
		t.ordered = append(t.ordered, m)
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{domain.ErrInvalidData}, errs...)...)
	}
	return t, nil
}

// FromCities construye la tabla a partir de las fichas del directorio.
func FromCities(cities []entity.City) (*Table, error) {
	entries := make([]entity.Municipality, 0, len(cities))
	for _, c := range cities {
		entries = append(entries, c.Municipality())
	}
	return NewTable(entries)
}

// Lookup busca por nombre exacto, sin distinguir mayúsculas, tras quitar espacios
// alrededor. Si no existe devuelve un *codicefiscale.FieldError de tipo ErrMunicipalityNotFound.
func (t *Table) Lookup(name string) (entity.Municipality, error) {
	if t != nil {
		if m, ok := t.byName[key(name)]; ok {
			return m, nil
		}
	}
	return entity.Municipality{}, codicefiscale.NewFieldError(codicefiscale.ErrMunicipalityNotFound, codicefiscale.FieldBirthplace, strings.TrimSpace(name))
}

// CadastralCode implementa codicefiscale.PlaceResolver.
func (t *Table) CadastralCode(name string) (string, error) {
	m, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	return m.CadastralCode, nil
}

// All devuelve una copia de las entradas en el orden de carga.
func (t *Table) All() []entity.Municipality {
	if t == nil {
		return nil
	}
	return append([]entity.Municipality(nil), t.ordered...)
}

// Len número de municipios cargados.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ordered)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
