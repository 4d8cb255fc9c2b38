// Package pdf genera el reporte de consulta de CNPJ en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + CNPJ  │  Situación + fecha consulta │
//	│  DISTINTIVO: Régimen tributario                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS DE LA EMPRESA (dos columnas)                         │
//	│  DIRECCIÓN                                                  │
//	│  CNAEs SECUNDARIOS                                          │
//	│  INSCRIPCIONES ESTADUALES                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
	"github.com/jhoicas/consulta-cnpj/internal/domain/regime"
)

var _ lookup.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 26, Green: 26, Blue: 26}
	colorAccent  = &props.Color{Red: 255, Green: 195, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}

	regimeColors = map[regime.Category]*props.Color{
		regime.CategoryLucroReal:      {Red: 52, Green: 152, Blue: 219},
		regime.CategoryLucroPresumido: {Red: 46, Green: 204, Blue: 113},
		regime.CategorySimples:        {Red: 241, Green: 196, Blue: 15},
		regime.CategoryMEI:            {Red: 230, Green: 126, Blue: 34},
		regime.CategoryOther:          {Red: 231, Green: 76, Blue: 60},
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa lookup.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, r *dto.CompanyReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Consulta de CNPJ "+r.CNPJMasked, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(regimeRow(r))
	m.AddRows(line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.5}))

	m.AddRows(sectionTitle("DADOS DA EMPRESA"))
	m.AddRows(companyRows(r)...)

	m.AddRows(sectionTitle("ENDEREÇO"))
	m.AddRows(addressRows(r)...)

	m.AddRows(sectionTitle("CNAEs SECUNDÁRIOS"))
	m.AddRows(activityRows(r)...)

	m.AddRows(sectionTitle("INSCRIÇÕES ESTADUAIS"))
	m.AddRows(registrationRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.CompanyReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(r.DisplayName, "N/A"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+r.CNPJMasked, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Situação: "+nonEmpty(r.StatusText, "N/A"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Consulta: "+r.QueriedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func regimeRow(r *dto.CompanyReport) core.Row {
	bg, ok := regimeColors[regime.Category(r.RegimeCategory)]
	if !ok {
		bg = regimeColors[regime.CategoryOther]
	}
	label := "Regime Tributário: " + r.Regime
	if r.RegimeSource == lookup.RegimeSourceHeadquarters {
		label += " (matriz " + r.HeadquartersCNPJ + ")"
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 2,
		})),
	).WithStyle(&props.Cell{BackgroundColor: bg})
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
	})))
}

func companyRows(r *dto.CompanyReport) []core.Row {
	capital := "N/A"
	if r.ShareCapital != nil {
		capital = "R$ " + r.ShareCapital.StringFixed(2)
	}
	left := []string{
		"Nome Fantasia: " + nonEmpty(r.TradeName, "N/A"),
		"Data Início Atividade: " + nonEmpty(r.ActivityStartDate, "N/A"),
		fmt.Sprintf("CNAE Fiscal: %s (%s)", nonEmpty(r.PrimaryActivity.Description, "N/A"), nonEmpty(r.PrimaryActivity.Code, "N/A")),
	}
	right := []string{
		"Natureza Jurídica: " + nonEmpty(r.LegalNature, "N/A"),
		"Capital Social: " + capital,
		"Email: " + nonEmpty(r.Email, "N/A"),
		"Opção Simples: " + yesNo(r.SimplesOption) + "   |   Opção MEI: " + yesNo(r.MEIOption),
	}
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	rows := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(cell(at(left, i))),
			col.New(6).Add(cell(at(right, i))),
		))
	}
	return rows
}

func addressRows(r *dto.CompanyReport) []core.Row {
	a := r.Address
	street := strings.TrimSpace(a.StreetType + " " + nonEmpty(a.Street, "N/A") + ", " + nonEmpty(a.Number, "N/A"))
	city := fmt.Sprintf("%s - %s/%s", nonEmpty(a.District, "N/A"), nonEmpty(a.City, "N/A"), nonEmpty(a.State, "N/A"))
	return []core.Row{
		row.New(6).Add(col.New(12).Add(cell(street))),
		row.New(6).Add(col.New(12).Add(cell(city))),
		row.New(6).Add(col.New(12).Add(cell("CEP: " + nonEmpty(a.ZipCode, "N/A")))),
	}
}

func activityRows(r *dto.CompanyReport) []core.Row {
	if len(r.SecondaryActivities) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(muted("Nenhum CNAE secundário encontrado para este CNPJ.")))}
	}
	rows := make([]core.Row, 0, len(r.SecondaryActivities))
	for _, a := range r.SecondaryActivities {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			cell(fmt.Sprintf("- %s - %s", nonEmpty(a.Code, "N/A"), nonEmpty(a.Description, "N/A"))),
		)))
	}
	return rows
}

func registrationRows(r *dto.CompanyReport) []core.Row {
	if !r.StateRegistrationsAvailable || len(r.StateRegistrations) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(muted("N/A")))}
	}
	rows := make([]core.Row, 0, len(r.StateRegistrations))
	for _, ie := range r.StateRegistrations {
		rows = append(rows, row.New(6).Add(col.New(12).Add(cell(fmt.Sprintf(
			"UF: %s | IE: %s | Status: %s | Tipo: %s",
			nonEmpty(ie.State, "N/A"), nonEmpty(ie.Number, "N/A"),
			nonEmpty(ie.Status, "N/A"), nonEmpty(ie.Type, "N/A"),
		)))))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(s string) core.Component {
	return text.New(s, props.Text{Size: 8.5, Top: 1})
}

func muted(s string) core.Component {
	return text.New(s, props.Text{Size: 8.5, Top: 1, Color: colorGray, Style: fontstyle.Italic})
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
