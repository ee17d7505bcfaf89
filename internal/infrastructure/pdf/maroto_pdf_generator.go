// Package pdf implementa la generación del reporte Kardex de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + SKU  │  Fecha de generación               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: existencia actual, entradas, salidas, ajustes      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant | Saldo ant. | Saldo | Motivo    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/Kardex-api/internal/application/report"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ report.KardexPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.KardexPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateKardexPDF genera el PDF y devuelve sus bytes. movements llega
// más reciente primero; el reporte lo presenta en orden cronológico.
func (g *MarotoPDFGenerator) GenerateKardexPDF(
	_ context.Context,
	product *entity.Product,
	movements []*entity.Movement,
	stats *repository.MovementStats,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+product.SKU, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(product, stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for i := len(movements) - 1; i >= 0; i-- {
		m.AddRows(movementRow(movements[i]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + SKU (izq) y fecha de generación (der).
func headerRow(product *entity.Product, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: existencia actual y agregados del kardex.
func summaryRow(product *entity.Product, stats *repository.MovementStats) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Existencia: %d   |   Movimientos: %d   |   Entradas: %d (%d und)   |   Salidas: %d (%d und)   |   Ajustes: %d",
				product.Quantity, stats.TotalMovements,
				stats.InCount, stats.TotalQuantityIn,
				stats.OutCount, stats.TotalQuantityOut,
				stats.AdjustmentCount,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "Fecha", align.Left),
		header(2, "Tipo", align.Left),
		header(1, "Cant.", align.Right),
		header(2, "Saldo ant.", align.Right),
		header(2, "Saldo", align.Right),
		header(3, "Motivo", align.Left),
	)
}

func movementRow(m *entity.Movement) core.Row {
	cell := func(size int, value string, al align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: al, Top: 1}))
	}
	return row.New(6).Add(
		cell(2, m.CreatedAt.Format("02/01/2006 15:04"), align.Left),
		cell(2, m.Type, align.Left),
		cell(1, fmt.Sprintf("%d", m.Quantity), align.Right),
		cell(2, fmt.Sprintf("%d", m.PreviousQuantity), align.Right),
		cell(2, fmt.Sprintf("%d", m.NewQuantity), align.Right),
		cell(3, m.Reason, align.Left),
	)
}
