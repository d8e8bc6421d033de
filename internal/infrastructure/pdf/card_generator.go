// Package pdf genera la tarjeta del codice fiscale en PDF.
//
// Layout (A4, bloque superior):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CODICE FISCALE                         │                   │
//	│  RSSMRA85D15H501T                       │        QR         │
//	│  ─────────────────────────────────────  │                   │
//	│  Cognome / Nome / Sesso                 │                   │
//	│  Luogo e data di nascita                │                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/codicefiscale-api/internal/application/fiscalcode"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ fiscalcode.CardGenerator = (*MarotoCardGenerator)(nil)

// MarotoCardGenerator implementa fiscalcode.CardGenerator usando Maroto v2.
type MarotoCardGenerator struct{}

// NewMarotoCardGenerator construye el generador.
func NewMarotoCardGenerator() *MarotoCardGenerator { return &MarotoCardGenerator{} }

// GenerateCard genera el PDF y devuelve sus bytes.
func (g *MarotoCardGenerator) GenerateCard(_ context.Context, card fiscalcode.Card) ([]byte, error) {
	if card.FiscalCode == "" {
		return nil, fmt.Errorf("pdf: codice fiscale vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Codice Fiscale "+card.FiscalCode, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(personRows(card)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + código (izq) y QR con el código (der).
func headerRow(card fiscalcode.Card) core.Row {
	return row.New(40).Add(
		col.New(8).Add(
			text.New("CODICE FISCALE", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4,
			}),
			text.New(card.FiscalCode, props.Text{
				Style: fontstyle.Bold, Size: 20, Top: 14,
			}),
			text.New("Tessera di promemoria, senza valore legale", props.Text{
				Size: 7, Top: 28, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(card.FiscalCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

// personRows: datos anagráficos usados en el cálculo.
func personRows(card fiscalcode.Card) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(9).Add(
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			})),
			col.New(8).Add(text.New(nonEmpty(value, "-"), props.Text{
				Size: 10, Top: 1.5,
			})),
		)
	}
	birth := "-"
	if !card.BirthDate.IsZero() {
		birth = card.BirthDate.Format("02/01/2006")
	}
	place := card.Birthplace
	if card.Province != "" {
		place = fmt.Sprintf("%s (%s)", card.Birthplace, card.Province)
	}
	return []core.Row{
		field("COGNOME", card.FamilyName),
		field("NOME", card.GivenName),
		field("SESSO", card.Sex),
		field("LUOGO DI NASCITA", place),
		field("DATA DI NASCITA", birth),
	}
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Codice calcolato con l'algoritmo del DM 23/12/1976. "+
				"Non include l'eventuale sostituzione per omocodia assegnata dall'Agenzia delle Entrate.",
			props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Left},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
