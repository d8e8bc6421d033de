// seed_comuni genera el script SQL para poblar la tabla comuni a partir del dataset YAML
// (el embebido o uno externo). Sirve para DATASET_SOURCE=postgres; el servicio nunca escribe.
//
// Uso: go run ./cmd/seed_comuni [ruta/comuni.yaml]
// Sin argumento usa el dataset embebido.
// Escribe: internal/infrastructure/postgres/migrations/001_seed_comuni.sql
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/municipality"
	"github.com/jhoicas/codicefiscale-api/internal/domain/repository"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/dataset"
)

func main() {
	var src repository.CitySource = dataset.EmbeddedSource{}
	if len(os.Args) > 1 {
		src = dataset.FileSource{Path: os.Args[1]}
	}
	cities, err := src.LoadCities(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer dataset: %v\n", err)
		os.Exit(1)
	}
	// Mismas reglas que al arrancar el servicio: nombres únicos, códigos bien formados.
	if _, err := municipality.FromCities(cities); err != nil {
		fmt.Fprintf(os.Stderr, "Dataset inválido: %v\n", err)
		os.Exit(1)
	}

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "001_seed_comuni.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, cities); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d municipios\n", outPath, len(cities))
}

const schema = `CREATE TABLE IF NOT EXISTS comuni (
  id             SERIAL PRIMARY KEY,
  name           TEXT NOT NULL UNIQUE,
  province       CHAR(2) NOT NULL,
  region         TEXT NOT NULL,
  population     INTEGER NOT NULL DEFAULT 0,
  mayor          TEXT,
  area           NUMERIC(12,2) NOT NULL DEFAULT 0,
  istat_code     TEXT,
  cadastral_code CHAR(4) NOT NULL,
  postal_codes   TEXT[]
);
`

// writeSeed escribe esquema + upserts en el orden del dataset (el id SERIAL conserva ese orden).
func writeSeed(w io.Writer, cities []entity.City) error {
	var b strings.Builder
	b.WriteString("-- Municipios italianos con código catastral (Belfiore)\n")
	b.WriteString("-- Generado por cmd/seed_comuni\n\n")
	b.WriteString("-- 1. Esquema\n")
	b.WriteString(schema)
	b.WriteString("\n-- 2. Municipios\n")
	for _, c := range cities {
		fmt.Fprintf(&b, "INSERT INTO comuni (name, province, region, population, mayor, area, istat_code, cadastral_code, postal_codes)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %d, '%s', %s, '%s', '%s', %s)\n",
			escapeSQL(c.Name), escapeSQL(c.Province), escapeSQL(c.Region), c.Population,
			escapeSQL(c.Mayor), c.Area.String(), escapeSQL(c.IstatCode), escapeSQL(c.CadastralCode),
			textArray(c.PostalCodes))
		b.WriteString("ON CONFLICT (name) DO UPDATE SET province = EXCLUDED.province, region = EXCLUDED.region,\n")
		b.WriteString("  population = EXCLUDED.population, mayor = EXCLUDED.mayor, area = EXCLUDED.area,\n")
		b.WriteString("  istat_code = EXCLUDED.istat_code, cadastral_code = EXCLUDED.cadastral_code,\n")
		b.WriteString("  postal_codes = EXCLUDED.postal_codes;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func textArray(values []string) string {
	if len(values) == 0 {
		return "'{}'"
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + escapeSQL(v) + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
