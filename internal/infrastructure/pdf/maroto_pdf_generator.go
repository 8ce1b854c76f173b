// Package pdf genera el reporte de ocupación del Dashboard en Vivo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Gerencia   │  Generado en                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPI: Personal total al interior                            │
//	│  TABLA: por cuerpo líquido (personas, %)                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: personal adentro (fecha, nombre, empresa, ...)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: historial reciente                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/application/ports"
)

var _ ports.ReporteGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 235, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReporteGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerarOcupacion genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarOcupacion(_ context.Context, resumen *dto.DashboardDTO) ([]byte, error) {
	if resumen == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Monitor de Trazabilidad RF 29", true).
		WithAuthor("Gerencia Aguas y Relaves", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(resumen))

	if resumen.Mensaje != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(resumen.Mensaje, props.Text{Size: 9, Top: 2, Color: colorGray}),
		)))
	}

	if len(resumen.PorCuerpoLiquido) > 0 {
		m.AddRows(sectionRow("Personal por cuerpo líquido"))
		m.AddRows(tableHeaderRow([]headerCol{
			{"Cuerpo líquido", 8, align.Left}, {"Personas", 2, align.Center}, {"%", 2, align.Right},
		}))
		for _, c := range resumen.PorCuerpoLiquido {
			m.AddRows(dataRow([]dataCol{
				{c.CuerpoLiquido, 8, align.Left},
				{strconv.Itoa(c.Personas), 2, align.Center},
				{c.Porcentaje.StringFixed(2) + "%", 2, align.Right},
			}))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("Personal en Cuerpos Líquidos (Sin registro de salida)"))
	m.AddRows(tableHeaderRow([]headerCol{
		{"Fecha/Hora", 2, align.Left}, {"Nombre", 3, align.Left}, {"Empresa", 2, align.Left},
		{"Cuerpo líquido", 3, align.Left}, {"Autorizador", 2, align.Left},
	}))
	for _, p := range resumen.Adentro {
		m.AddRows(dataRow([]dataCol{
			{p.FechaHora, 2, align.Left}, {p.Nombre, 3, align.Left}, {p.Empresa, 2, align.Left},
			{p.CuerpoLiquido, 3, align.Left}, {p.Autorizador, 2, align.Left},
		}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("Historial de Registros"))
	m.AddRows(tableHeaderRow([]headerCol{
		{"Fecha/Hora", 2, align.Left}, {"Movimiento", 2, align.Left}, {"Nombre", 3, align.Left},
		{"RUT/SAP", 2, align.Left}, {"Cuerpo líquido", 3, align.Left},
	}))
	for _, r := range resumen.Historial {
		m.AddRows(dataRow([]dataCol{
			{r.FechaHora, 2, align.Left}, {r.Movimiento, 2, align.Left}, {r.Nombre, 3, align.Left},
			{r.RUTSAP, 2, align.Left}, {r.CuerpoLiquido, 3, align.Left},
		}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(resumen *dto.DashboardDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Monitor de Trazabilidad en Tiempo Real", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Control ingreso y salida recinto cuerpo líquido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+resumen.GeneradoEn, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func kpiRow(resumen *dto.DashboardDTO) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Personal total al interior", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
			text.New(strconv.Itoa(resumen.TotalAdentro), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 7,
			}),
		),
	)
}

func sectionRow(titulo string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

type dataCol struct {
	value string
	size  int
	align align.Type
}

func tableHeaderRow(cols []headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		out = append(out, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(out...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func dataRow(cols []dataCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, d := range cols {
		out = append(out, col.New(d.size).Add(text.New(nonEmpty(d.value, "—"), props.Text{
			Size: 7.5, Align: d.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(out...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
