package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/municipality"
	"github.com/jhoicas/codicefiscale-api/internal/domain/repository"
	"github.com/jhoicas/codicefiscale-api/internal/infrastructure/dataset"
	infrapdf "github.com/jhoicas/codicefiscale-api/internal/infrastructure/pdf"
	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

// cli estado compartido por los subcomandos. Se crea uno por ejecución para que los
// tests no compartan flags.
type cli struct {
	datasetPath string
	person      dto.FiscalCodeRequest
	pdfPath     string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "cf",
		Short: "Codice fiscale: cálculo y consulta de códigos catastrales",
		Long: `Calcula el codice fiscale italiano (16 caracteres) a partir de los datos
anagráficos y consulta el código catastral de los municipios del dataset.

No resuelve omocodia ni verifica códigos existentes.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.datasetPath, "dataset", "", "Fichero YAML de municipios (por defecto el embebido)")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Calcular el codice fiscale",
		Example: `  cf compute --name Mario --surname Rossi --birthdate 1985-04-15 --gender M --birthplace Roma
  cf compute ... --pdf rossi.pdf`,
		Args: cobra.NoArgs,
		RunE: c.runCompute,
	}
	// Los flags se llaman como los campos de FieldError para que describe los cite.
	computeCmd.Flags().StringVar(&c.person.Name, codicefiscale.FieldName, "", "Nombre")
	computeCmd.Flags().StringVar(&c.person.Surname, codicefiscale.FieldSurname, "", "Apellido")
	computeCmd.Flags().StringVar(&c.person.Birthdate, codicefiscale.FieldBirthdate, "", "Fecha de nacimiento (YYYY-MM-DD)")
	computeCmd.Flags().StringVar(&c.person.Gender, codicefiscale.FieldGender, "", "Sexo: M o F")
	computeCmd.Flags().StringVar(&c.person.Birthplace, codicefiscale.FieldBirthplace, "", "Municipio de nacimiento")
	computeCmd.Flags().StringVar(&c.pdfPath, "pdf", "", "Escribir además la tarjeta PDF en esta ruta")
	for _, f := range []string{
		codicefiscale.FieldName, codicefiscale.FieldSurname, codicefiscale.FieldBirthdate,
		codicefiscale.FieldGender, codicefiscale.FieldBirthplace,
	} {
		_ = computeCmd.MarkFlagRequired(f)
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup [comune]",
		Short: "Código catastral y provincia de un municipio",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runLookup,
	}

	comuniCmd := &cobra.Command{
		Use:   "comuni",
		Short: "Listar los municipios del dataset",
		Args:  cobra.NoArgs,
		RunE:  c.runComuni,
	}

	root.AddCommand(computeCmd, lookupCmd, comuniCmd)
	return root
}

func (c *cli) source() repository.CitySource {
	if c.datasetPath != "" {
		return dataset.FileSource{Path: c.datasetPath}
	}
	return dataset.EmbeddedSource{}
}

func (c *cli) loadCities(ctx context.Context) ([]entity.City, *municipality.Table, error) {
	cities, err := c.source().LoadCities(ctx)
	if err != nil {
		return nil, nil, err
	}
	table, err := municipality.FromCities(cities)
	if err != nil {
		return nil, nil, err
	}
	return cities, table, nil
}

func (c *cli) runCompute(cmd *cobra.Command, _ []string) error {
	_, table, err := c.loadCities(cmd.Context())
	if err != nil {
		return err
	}
	uc := fiscalcode.NewUseCase(table, infrapdf.NewMarotoCardGenerator())
	// En la terminal se acepta "m"/"f"; la API exige "M" o "F".
	c.person.Gender = strings.ToUpper(strings.TrimSpace(c.person.Gender))

	if c.pdfPath == "" {
		out, err := uc.Compute(c.person)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.FiscalCode)
		return nil
	}

	pdf, filename, err := uc.Card(cmd.Context(), c.person)
	if err != nil {
		return describe(err)
	}
	if err := os.WriteFile(c.pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", c.pdfPath, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(filename, ".pdf"))
	return nil
}

func (c *cli) runLookup(cmd *cobra.Command, args []string) error {
	_, table, err := c.loadCities(cmd.Context())
	if err != nil {
		return err
	}
	out, err := fiscalcode.NewUseCase(table, nil).LookupCityCode(args[0])
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", out.City, out.Code, out.Province)
	return nil
}

func (c *cli) runComuni(cmd *cobra.Command, _ []string) error {
	cities, _, err := c.loadCities(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMUNE\tPROV\tREGIONE\tCODICE")
	for _, city := range cities {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", city.ID, city.Name, city.Province, city.Region, city.CadastralCode)
	}
	return w.Flush()
}

// describe convierte un *FieldError en un mensaje legible para la terminal.
func describe(err error) error {
	var fe *codicefiscale.FieldError
	if !errors.As(err, &fe) {
		return err
	}
	if errors.Is(err, codicefiscale.ErrMunicipalityNotFound) {
		return fmt.Errorf("municipio %q no encontrado (ver `cf comuni`)", fe.Value)
	}
	return fmt.Errorf("%s (--%s=%q)", fe.Kind, fe.Field, fe.Value)
}
