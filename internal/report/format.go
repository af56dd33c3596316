package report

import (
	"fxreport/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	ratePlaces    = 4
	percentPlaces = 2
)

// TableHeader is the column header of the CSV file.
var TableHeader = []string{
	"currency", "stdDev", "pctChange(%)", "ROC(last)", "shortMA(last)", "longMA(last)", "maxRate", "minRate",
}

// DocumentTableHeader labels the same columns in the PDF summary table.
var DocumentTableHeader = []string{
	"Currency", "Std Dev", "Variation (%)", "ROC", "Short MA", "Long MA", "Max Rate", "Min Rate",
}

// FormatRow renders a metrics row with rates rounded to 4 decimals and the
// percentage change to 2.
func FormatRow(m domain.Metrics) []string {
	return []string{
		m.Currency.Display(),
		round(m.StdDev, ratePlaces),
		round(m.PctChange, percentPlaces),
		round(m.LastROC, ratePlaces),
		round(m.LastShortMA, ratePlaces),
		round(m.LastLongMA, ratePlaces),
		round(m.MaxRate, ratePlaces),
		round(m.MinRate, ratePlaces),
	}
}

func round(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

// FormatChange renders a ranked change with a fixed number of decimals.
func FormatChange(change float64, places int32) string {
	return decimal.NewFromFloat(change).StringFixed(places)
}
