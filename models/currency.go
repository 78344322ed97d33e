package models

import "fmt"

// Display currencies the settings page offers. Conversion is presentation
// only; the backend always quotes USD.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyAUD = "AUD"
)

var currencyRates = map[string]float64{
	CurrencyUSD: 1.0,
	CurrencyEUR: 0.92,
	CurrencyAUD: 1.52,
}

func ValidCurrency(code string) bool {
	_, ok := currencyRates[code]
	return ok
}

// ConvertPrice converts a USD price into the display currency.
func ConvertPrice(usd float64, code string) (float64, error) {
	rate, ok := currencyRates[code]
	if !ok {
		return 0, fmt.Errorf("unsupported currency: %q", code)
	}
	return usd * rate, nil
}
