package domain

import "errors"

var (
	ErrInvalidRange        = errors.New("value out of range")
	ErrInvalidCurrencyCode = errors.New("currency code must have exactly 3 letters")
	ErrInsufficientSupply  = errors.New("sample size exceeds available currencies")
	ErrNoDataAvailable     = errors.New("no data available")
	ErrNoCurrencies        = errors.New("no available currencies to analyze")
	ErrEmptyInput          = errors.New("empty input")
	ErrDivisionByZero      = errors.New("division by zero")
)
