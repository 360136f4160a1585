package currency

import (
	"math"
	"testing"
)

func TestToUSD(t *testing.T) {
	table := DefaultTable()

	t.Run("usd_is_identity", func(t *testing.T) {
		if got := table.ToUSD(12345, "USD"); got != 123.45 {
			t.Errorf("expected 123.45, got %v", got)
		}
	})

	t.Run("eur_divides_by_rate", func(t *testing.T) {
		got := table.ToUSD(10000, "EUR")
		want := 100.0 / 0.92
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unknown_code_defaults_to_rate_one", func(t *testing.T) {
		if got := table.ToUSD(5000, "XYZ"); got != 50.0 {
			t.Errorf("expected 50.0, got %v", got)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		if got := table.ToUSD(0, "JPY"); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})
}

func TestRate(t *testing.T) {
	table := Table{"EUR": 0.92, "BAD": 0}

	if got := table.Rate("EUR"); got != 0.92 {
		t.Errorf("expected 0.92, got %v", got)
	}
	// Zero and missing rates both fall back to 1.
	if got := table.Rate("BAD"); got != 1 {
		t.Errorf("expected fallback 1 for zero rate, got %v", got)
	}
	if got := table.Rate("ZZZ"); got != 1 {
		t.Errorf("expected fallback 1 for unknown code, got %v", got)
	}
}
