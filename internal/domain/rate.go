package domain

import "strings"

const (
	// LatestDay names the provider's most recent table.
	LatestDay = "latest"
	// DayLayout is the date format of dated tables.
	DayLayout = "2006-01-02"
)

// CurrencyCode is a 3-letter ASCII currency identifier stored in lowercase,
// which is the form the rate provider uses in its URLs and tables.
type CurrencyCode string

func NewCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", ErrInvalidCurrencyCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return "", ErrInvalidCurrencyCode
		}
	}
	return CurrencyCode(code), nil
}

// Display returns the uppercase form used in reports.
func (c CurrencyCode) Display() string {
	return strings.ToUpper(string(c))
}

func (c CurrencyCode) Equal(other CurrencyCode) bool {
	return strings.EqualFold(string(c), string(other))
}

// TimeSeries holds the observed rates of one currency against the base,
// newest first. Days the provider could not serve are omitted.
type TimeSeries struct {
	Currency CurrencyCode
	Base     CurrencyCode
	Days     int // requested day count
	Rates    []float64
}

func (s TimeSeries) Empty() bool { return len(s.Rates) == 0 }

// Metrics is the per-currency row derived from a TimeSeries.
type Metrics struct {
	Currency    CurrencyCode
	StdDev      float64
	PctChange   float64
	LastROC     float64
	LastShortMA float64
	LastLongMA  float64
	MaxRate     float64
	MinRate     float64
}

type Performance struct {
	Currency  CurrencyCode
	PctChange float64
}

// RankedList is sorted descending by PctChange.
type RankedList []Performance

// Top returns the first n entries.
func (l RankedList) Top(n int) RankedList {
	if n <= 0 {
		return RankedList{}
	}
	if n > len(l) {
		n = len(l)
	}
	return l[:n:n]
}

// Bottom returns the last n entries in ranked order. With fewer than 2n
// entries it overlaps with Top.
func (l RankedList) Bottom(n int) RankedList {
	if n <= 0 {
		return RankedList{}
	}
	if n > len(l) {
		n = len(l)
	}
	return l[len(l)-n:]
}
