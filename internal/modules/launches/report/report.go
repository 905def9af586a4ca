// Package report builds the printable launch report: both dashboard charts
// for the current selection plus the pie breakdown as a table.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/chartimg"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/charts"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

const (
	Title = "SpaceX Launch Records Dashboard"

	pageMargin = 10.0
	// Letter landscape, millimetres.
	contentWidth = 279.4 - 2*pageMargin
)

type Data struct {
	Pie         charts.PieChart
	Scatter     charts.ScatterChart
	Import      *types.DatasetImport
	GeneratedAt time.Time
}

// Write renders the report as a two page PDF.
func Write(w io.Writer, d Data) error {
	var pieImg, scatterImg bytes.Buffer
	if err := chartimg.RenderPie(&pieImg, d.Pie); err != nil {
		return err
	}
	if err := chartimg.RenderScatter(&scatterImg, d.Scatter); err != nil {
		return err
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle(Title, false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	pdf.AddPage()
	header(pdf, d)
	image(pdf, "pie", &pieImg, 150, chartimg.PieWidth, chartimg.PieHeight)
	sliceTable(pdf, d.Pie)

	pdf.AddPage()
	header(pdf, d)
	image(pdf, "scatter", &scatterImg, contentWidth, chartimg.ScatterWidth, chartimg.ScatterHeight)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s launches plotted for %s", humanize.Comma(int64(d.Scatter.PointCount())), selection(d.Scatter.Criteria)), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	return pdf.Output(w)
}

func header(pdf *gofpdf.Fpdf, d Data) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	line := "Generated " + d.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")
	if d.Import != nil {
		line += fmt.Sprintf(" from %s (%s rows, imported %s)",
			d.Import.Source, humanize.Comma(int64(d.Import.RowCount)), humanize.RelTime(d.Import.ImportedAt, d.GeneratedAt, "earlier", "later"))
	}
	pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

// image places a PNG centered at width mm, keeping the pixel aspect ratio.
func image(pdf *gofpdf.Fpdf, name string, r io.Reader, width float64, pxW, pxH int) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, r)
	height := width * float64(pxH) / float64(pxW)
	x := pageMargin + (contentWidth-width)/2
	pdf.ImageOptions(name, x, pdf.GetY(), width, height, true, opts, 0, "")
	pdf.Ln(2)
}

func sliceTable(pdf *gofpdf.Fpdf, p charts.PieChart) {
	const labelW, valueW, shareW = 80.0, 30.0, 30.0
	x := pageMargin + (contentWidth-labelW-valueW-shareW)/2

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(x)
	pdf.CellFormat(labelW, 7, "Slice", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 7, "Launches", "1", 0, "R", true, 0, "")
	pdf.CellFormat(shareW, 7, "Share", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	total := p.Total()
	if len(p.Slices) == 0 {
		pdf.SetX(x)
		pdf.CellFormat(labelW+valueW+shareW, 7, "No launches for "+p.Site, "1", 1, "C", false, 0, "")
		return
	}
	for _, s := range p.Slices {
		share := "-"
		if total > 0 {
			share = humanize.FtoaWithDigits(100*s.Value/total, 1) + "%"
		}
		pdf.SetX(x)
		pdf.CellFormat(labelW, 7, s.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 7, humanize.Commaf(s.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(shareW, 7, share, "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetX(x)
	pdf.CellFormat(labelW, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, humanize.Commaf(total), "1", 0, "R", false, 0, "")
	pdf.CellFormat(shareW, 7, "", "1", 1, "R", false, 0, "")
}

func selection(c types.Criteria) string {
	site := "all sites"
	if c.Site != types.AllSites {
		site = "site " + c.Site
	}
	return fmt.Sprintf("%s, payload %s to %s kg", site, humanize.Commaf(c.PayloadMin), humanize.Commaf(c.PayloadMax))
}
