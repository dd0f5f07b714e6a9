package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
	"github.com/mamadbah2/eggmonitor/internal/render"
)

const (
	pageMargin  = 12.0
	chartWidth  = 90.0
	chartHeight = 45.0
	rowHeight   = 7.0
)

var tableHeader = []string{"Métrica de Calidad", "Mínimo", "Promedio", "Máximo", "Desv. Est.", "Estado"}

var columnWidths = []float64{62, 22, 24, 22, 24, 32}

// WritePDF renders report as an A4 document.
func (s *Service) WritePDF(w io.Writer, report Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(148, 163, 184)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("© %d EggMonitor - Confidencial", report.GeneratedAt.Year())), "", 0, "L", false, 0, "")
		pdf.SetX(pageMargin)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	s.writeHeader(pdf, tr, report)

	if report.RecordCount == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 10, tr("Sin registros para los filtros seleccionados."), "", 1, "L", false, 0, "")
		return output(pdf, w)
	}

	sectionTitle(pdf, tr, "Comparativa Global entre Casetas")
	s.writeComparison(pdf, report)

	for _, shed := range report.Sheds {
		pdf.AddPage()
		sectionTitle(pdf, tr, fmt.Sprintf("Análisis Caseta %s (%d muestras)", shed.Shed, shed.RecordCount))
		writeTable(pdf, tr, shed.Metrics)
	}

	return output(pdf, w)
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (s *Service) writeHeader(pdf *fpdf.Fpdf, tr func(string) string, report Report) {
	c := report.Criteria

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 10, tr("Reporte de Calidad de Huevo"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, tr("Emisión: "+report.GeneratedAt.Format("02/01/2006")+"  ·  Análisis de Producción"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(51, 65, 85)
	pdf.CellFormat(0, 5, tr("Parámetros de Filtrado"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	lines := []string{
		fmt.Sprintf("Granja: %s  |  Caseta: %s  |  Edad: %s  |  Estirpe: %s",
			c.Value(models.AttrFarm), c.Value(models.AttrShed), c.Value(models.AttrAge), c.Value(models.AttrBreed)),
		fmt.Sprintf("Cliente: %s  |  MQX: %s", c.Value(models.AttrClient), c.Value(models.AttrMetaqualix)),
		fmt.Sprintf("Rango de Fechas: %s a %s", dateOrOpen(c.Start), dateOrOpen(c.End)),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(21, 128, 61)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d Muestras Verificadas", report.RecordCount)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)
	pdf.Ln(2)
}

func sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetDrawColor(37, 99, 235)
	pdf.SetLineWidth(1)
	y := pdf.GetY()
	pdf.Line(pageMargin, y, pageMargin, y+8)
	pdf.SetX(pageMargin + 3)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetLineWidth(0.2)
	pdf.Ln(2)
}

func (s *Service) writeComparison(pdf *fpdf.Fpdf, report Report) {
	col := 0
	for _, metric := range models.Metrics {
		var buf bytes.Buffer
		err := render.ShedBars(&buf, report.Comparison, metric, render.Size{Width: 800, Height: 400})
		if errors.Is(err, render.ErrNoData) {
			continue
		}
		if err != nil {
			s.logger.Warn("comparison chart skipped", zap.String("metric", string(metric)), zap.Error(err))
			continue
		}

		name := "comparison-" + string(metric)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		if col == 0 && pdf.GetY()+chartHeight > 297-18 {
			pdf.AddPage()
		}
		x := pageMargin + float64(col)*(chartWidth+6)
		y := pdf.GetY()
		pdf.ImageOptions(name, x, y, chartWidth, chartHeight, false, opts, 0, "")

		col++
		if col == 2 {
			col = 0
			pdf.SetY(y + chartHeight + 4)
		}
	}
	if col != 0 {
		pdf.SetY(pdf.GetY() + chartHeight + 4)
	}
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, metrics []MetricReport) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(226, 232, 240)
	for i, h := range tableHeader {
		align := "C"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(columnWidths[i], rowHeight, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range metrics {
		cells := []string{
			fmt.Sprintf("%s (%s)", m.Info.Name, m.Info.Unit),
			fmt.Sprintf("%.2f", m.Summary.Min),
			fmt.Sprintf("%.2f", m.Summary.Mean),
			fmt.Sprintf("%.2f", m.Summary.Max),
			fmt.Sprintf("%.2f", m.Summary.Std),
			string(m.Gauge.Status),
		}
		for i, cell := range cells {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(columnWidths[i], rowHeight, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
