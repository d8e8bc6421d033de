// Package dataset carga el listado de municipios desde YAML: el fichero embebido
// en el binario o uno externo indicado en la configuración.
package dataset

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/repository"
)

//go:embed comuni.yaml
var embeddedComuni []byte

// EmbeddedName identifica el dataset embebido en los mensajes de error.
const EmbeddedName = "embedded:comuni.yaml"

var postalCodeRe = regexp.MustCompile(`^[0-9]{5}$`)

type document struct {
	Comuni []record `yaml:"comuni"`
}

type record struct {
	Name          string   `yaml:"name"`
	Province      string   `yaml:"province"`
	Region        string   `yaml:"region"`
	Population    int      `yaml:"population"`
	Mayor         string   `yaml:"mayor"`
	Area          string   `yaml:"area"`
	IstatCode     string   `yaml:"istat_code"`
	CadastralCode string   `yaml:"cadastral_code"`
	PostalCodes   []string `yaml:"postal_codes"`
}

var (
	_ repository.CitySource = EmbeddedSource{}
	_ repository.CitySource = FileSource{}
)

// EmbeddedSource lee el dataset compilado en el binario.
type EmbeddedSource struct{}

// LoadCities implementa repository.CitySource.
func (EmbeddedSource) LoadCities(_ context.Context) ([]entity.City, error) {
	return Parse(embeddedComuni, EmbeddedName)
}

// FileSource lee el dataset de un fichero YAML con el mismo formato que el embebido.
type FileSource struct {
	Path string
}

// LoadCities implementa repository.CitySource.
func (s FileSource) LoadCities(_ context.Context) ([]entity.City, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: abrir %s: %w", s.Path, err)
	}
	defer f.Close()
	return Load(f, s.Path)
}

// Load lee y valida un dataset desde r.
func Load(r io.Reader, source string) ([]entity.City, error) {
	if r == nil {
		return nil, fmt.Errorf("dataset: lector nulo para %s", source)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: leer %s: %w", source, err)
	}
	return Parse(data, source)
}

// Parse decodifica el YAML y convierte cada registro en entity.City. Los IDs son
// 1..N en el orden del fichero. La unicidad de nombres la valida municipality.NewTable.
func Parse(data []byte, source string) ([]entity.City, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("dataset: el fichero %s está vacío", source)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dataset: parsear %s: %w", source, err)
	}
	if len(doc.Comuni) == 0 {
		return nil, fmt.Errorf("dataset: %s no contiene municipios", source)
	}

	cities := make([]entity.City, 0, len(doc.Comuni))
	for i, rec := range doc.Comuni {
		c, err := rec.toEntity(i + 1)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s, municipio #%d: %w", source, i+1, err)
		}
		cities = append(cities, c)
	}
	return cities, nil
}

func (r record) toEntity(id int) (entity.City, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return entity.City{}, fmt.Errorf("name es obligatorio")
	}
	if r.Population < 0 {
		return entity.City{}, fmt.Errorf("%s: population negativa", name)
	}
	area := decimal.Zero
	if s := strings.TrimSpace(r.Area); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return entity.City{}, fmt.Errorf("%s: area %q inválida: %w", name, r.Area, err)
		}
		area = d
	}
	postal := make([]string, 0, len(r.PostalCodes))
	for _, p := range r.PostalCodes {
		p = strings.TrimSpace(p)
		if !postalCodeRe.MatchString(p) {
			return entity.City{}, fmt.Errorf("%s: CAP %q inválido", name, p)
		}
		postal = append(postal, p)
	}
	return entity.City{
		ID:            id,
		Name:          name,
		Province:      strings.ToUpper(strings.TrimSpace(r.Province)),
		Region:        strings.TrimSpace(r.Region),
		Population:    r.Population,
		Mayor:         strings.TrimSpace(r.Mayor),
		Area:          area,
		IstatCode:     strings.TrimSpace(r.IstatCode),
		CadastralCode: strings.ToUpper(strings.TrimSpace(r.CadastralCode)),
		PostalCodes:   postal,
	}, nil
}
