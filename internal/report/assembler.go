// Package report turns an analysis into its output artifacts: one trend
// chart per currency, a CSV table and a PDF document.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"fxreport/internal/adapters"
	"fxreport/internal/adapters/csvfile"
	"fxreport/internal/adapters/pdfdoc"
	"fxreport/internal/domain"
	"fxreport/internal/rate"

	"github.com/sirupsen/logrus"
)

const documentTitle = "Currency Performance Report"

type Artifacts struct {
	CSVPath    string
	PDFPath    string
	ChartPaths []string
}

type Assembler struct {
	charts    adapters.ChartRenderer
	outputDir string
	csvName   string
	pdfName   string
	topN      int
}

// Write renders every artifact of the analysis into the output directory.
// An analysis without usable currencies writes nothing.
func (a *Assembler) Write(analysis rate.Analysis) (Artifacts, error) {
	if !analysis.Usable() {
		return Artifacts{}, domain.ErrNoDataAvailable
	}
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("failed to create output directory %q: %w", a.outputDir, err)
	}
	log := logrus.WithField("run_id", analysis.RunID)

	artifacts := Artifacts{
		CSVPath: filepath.Join(a.outputDir, a.csvName),
		PDFPath: filepath.Join(a.outputDir, a.pdfName),
	}

	table := make([][]string, 0, len(analysis.Rows))
	pages := make([]pdfdoc.CurrencyPage, 0, len(analysis.Rows))
	for i, row := range analysis.Rows {
		chartPath := filepath.Join(a.outputDir, string(row.Currency)+"_trend.png")
		if err := a.charts.RenderTrend(analysis.Series[i], chartPath); err != nil {
			return Artifacts{}, fmt.Errorf("failed to render chart for %s: %w", row.Currency.Display(), err)
		}
		artifacts.ChartPaths = append(artifacts.ChartPaths, chartPath)

		formatted := FormatRow(row)
		table = append(table, formatted)
		pages = append(pages, pdfdoc.CurrencyPage{
			Currency:  formatted[0],
			MaxRate:   formatted[6],
			MinRate:   formatted[7],
			ChartPath: chartPath,
		})
	}

	top, bottom := analysis.Ranked.Top(a.topN), analysis.Ranked.Bottom(a.topN)
	logRankings(log, "Top performers", top)
	logRankings(log, "Bottom performers", bottom)

	if err := csvfile.Write(artifacts.CSVPath, TableHeader, table); err != nil {
		return Artifacts{}, err
	}
	log.Infof("CSV file saved: %s", artifacts.CSVPath)

	doc := pdfdoc.Report{
		Title:       documentTitle,
		Top:         toRankings(top),
		Bottom:      toRankings(bottom),
		TableHeader: DocumentTableHeader,
		Table:       table,
		Pages:       pages,
	}
	if err := pdfdoc.Write(artifacts.PDFPath, doc); err != nil {
		return Artifacts{}, err
	}
	log.Infof("PDF report saved: %s", artifacts.PDFPath)

	return artifacts, nil
}

func toRankings(list domain.RankedList) []pdfdoc.Ranking {
	rankings := make([]pdfdoc.Ranking, 0, len(list))
	for _, p := range list {
		rankings = append(rankings, pdfdoc.Ranking{Currency: p.Currency.Display(), Change: FormatChange(p.PctChange, percentPlaces)})
	}
	return rankings
}

func logRankings(log *logrus.Entry, title string, list domain.RankedList) {
	for i, p := range list {
		log.Infof("%s #%d: %s - %s%%", title, i+1, p.Currency.Display(), FormatChange(p.PctChange, ratePlaces))
	}
}

// NewAssembler builds an assembler writing into outputDir. topN is the
// length of the best and worst lists; below 1 it defaults to 3.
func NewAssembler(charts adapters.ChartRenderer, outputDir, csvName, pdfName string, topN int) *Assembler {
	if topN < 1 {
		topN = 3
	}
	if outputDir == "" {
		outputDir = "."
	}
	if csvName == "" {
		csvName = "currency_data.csv"
	}
	if pdfName == "" {
		pdfName = "currency_analysis.pdf"
	}
	return &Assembler{charts: charts, outputDir: outputDir, csvName: csvName, pdfName: pdfName, topN: topN}
}
