// Package currency converts account-denominated amounts into USD using a
// static exchange-rate table. The table is a snapshot, not live market data;
// callers must not assume temporal accuracy.
package currency

// Table maps an ISO 4217 currency code to its USD exchange rate
// (units of that currency per 1 USD). It is injected into the components
// that need conversion so tests can substitute rates.
type Table map[string]float64

// DefaultTable returns the static rate snapshot used in production.
func DefaultTable() Table {
	return Table{
		"USD": 1,
		"EUR": 0.92,
		"GBP": 0.79,
		"INR": 83.12,
		"JPY": 148.0,
	}
}

// Rate returns the rate for the given code. Unknown codes fall back to 1,
// treating the amount as already being in USD.
func (t Table) Rate(code string) float64 {
	if rate, ok := t[code]; ok && rate > 0 {
		return rate
	}
	return 1
}

// ToUSD converts an amount in cents of the given currency to USD dollars.
func (t Table) ToUSD(cents int64, code string) float64 {
	return float64(cents) / 100 / t.Rate(code)
}
