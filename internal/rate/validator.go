package rate

import (
	"fmt"

	"fxreport/internal/domain"
)

const (
	MinDays = 1
	MaxDays = 100
)

var (
	ErrDaysOutOfRange     = fmt.Errorf("days must satisfy %d <= days <= %d: %w", MinDays, MaxDays, domain.ErrInvalidRange)
	ErrSampleSizeTooSmall = fmt.Errorf("sample size must be a positive integer: %w", domain.ErrInvalidRange)
	ErrBaseCurrencyCode   = fmt.Errorf("base currency must be a valid 3-letter currency code: %w", domain.ErrInvalidCurrencyCode)
)

// Params are the raw run arguments as given on the command line.
type Params struct {
	Base       string
	Days       int
	SampleSize int
}

// Request is a validated Params.
type Request struct {
	Base       domain.CurrencyCode
	Days       int
	SampleSize int
}

// Validate checks the run arguments before any network activity.
func Validate(p Params) (Request, error) {
	if p.Days < MinDays || p.Days > MaxDays {
		return Request{}, ErrDaysOutOfRange
	}
	if p.SampleSize <= 0 {
		return Request{}, ErrSampleSizeTooSmall
	}
	base, err := domain.NewCurrencyCode(p.Base)
	if err != nil {
		return Request{}, ErrBaseCurrencyCode
	}
	return Request{Base: base, Days: p.Days, SampleSize: p.SampleSize}, nil
}
