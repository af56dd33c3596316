package pdfdoc

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	lineHeight = 10.0
	chartWidth = 180.0
)

// Ranking is one line of a top or bottom list.
type Ranking struct {
	Currency string
	Change   string // already formatted, without the percent sign
}

// CurrencyPage describes the page dedicated to one currency.
type CurrencyPage struct {
	Currency  string
	MaxRate   string
	MinRate   string
	ChartPath string // PNG; skipped when empty
}

// Report is the content of the performance document: a summary page
// followed by one page per currency.
type Report struct {
	Title       string
	Top         []Ranking
	Bottom      []Ranking
	TableHeader []string
	Table       [][]string
	Pages       []CurrencyPage
}

// Write lays out the report as an A4 PDF at path.
func Write(path string, report Report) error {
	if err := layout(report).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf %q: %w", path, err)
	}
	return nil
}

// layout builds a summary page followed by one page per currency.
func layout(report Report) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	// First Page - Summary
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, lineHeight, report.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	writeRankings(pdf, fmt.Sprintf("Top %d Best Performing Currencies:", len(report.Top)), report.Top)
	pdf.Ln(lineHeight)
	writeRankings(pdf, fmt.Sprintf("Bottom %d Worst Performing Currencies:", len(report.Bottom)), report.Bottom)
	pdf.Ln(lineHeight)
	pdf.CellFormat(0, lineHeight, "Full Data Table:", "", 1, "", false, 0, "")
	writeTable(pdf, report.TableHeader, report.Table)

	for _, page := range report.Pages {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, lineHeight, "Exchange Rate Analysis: "+page.Currency, "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, lineHeight, "Max Exchange Rate: "+page.MaxRate, "", 1, "", false, 0, "")
		pdf.CellFormat(0, lineHeight, "Min Exchange Rate: "+page.MinRate, "", 1, "", false, 0, "")

		if page.ChartPath != "" {
			pdf.ImageOptions(page.ChartPath, 10, pdf.GetY(), chartWidth, 0, true,
				fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		}
	}
	return pdf
}

func writeRankings(pdf *fpdf.Fpdf, heading string, rankings []Ranking) {
	pdf.CellFormat(0, lineHeight, heading, "", 1, "", false, 0, "")
	for i, r := range rankings {
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("%d. %s - %s%%", i+1, r.Currency, r.Change), "", 1, "", false, 0, "")
	}
}

func writeTable(pdf *fpdf.Fpdf, header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont("Arial", "B", 10)
	for _, h := range header {
		pdf.CellFormat(colWidth, lineHeight, h, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		for _, col := range row {
			pdf.CellFormat(colWidth, lineHeight, col, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
