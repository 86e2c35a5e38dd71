package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rates is an injected, read-only table of offline exchange rates keyed by
// currency pair. It is reference data, not a live feed: rate fetching policy
// lives outside this core. Tests substitute fixture tables.
type Rates struct {
	pairs map[string]decimal.Decimal
}

// Empirical sanity bounds for rates with no offline reference. Preserved
// literally; see the reasonable-rate notes in DESIGN.md.
var (
	rateBandFactor = decimal.NewFromFloat(0.5)
	rateFloor      = decimal.NewFromFloat(0.0001)
	rateCeiling    = decimal.NewFromInt(10000)
)

func pairKey(from, to string) string {
	return strings.ToUpper(strings.TrimSpace(from)) + "/" + strings.ToUpper(strings.TrimSpace(to))
}

// NewRates builds a rate table from pair strings like "USD/EUR". Unparseable
// or non-positive rates are dropped.
func NewRates(pairs map[string]string) *Rates {
	table := make(map[string]decimal.Decimal, len(pairs))
	for pair, raw := range pairs {
		rate, err := decimal.NewFromString(raw)
		if err != nil || !rate.IsPositive() {
			continue
		}
		table[strings.ToUpper(pair)] = rate
	}
	return &Rates{pairs: table}
}

// DefaultRates returns the built-in offline rate table.
func DefaultRates() *Rates {
	return NewRates(map[string]string{
		"USD/EUR": "0.92",
		"EUR/USD": "1.09",
		"USD/GBP": "0.79",
		"GBP/USD": "1.27",
		"USD/JPY": "149.50",
		"EUR/GBP": "0.86",
		"USD/RUB": "92.50",
		"EUR/RUB": "100.20",
		"USD/KZT": "478.00",
		"RUB/KZT": "5.17",
		"USD/CNY": "7.24",
		"USD/CHF": "0.88",
	})
}

// ExchangeRate looks up the offline rate for a currency pair. A same-currency
// pair is always 1. A pair absent from the table (in either direction)
// reports false.
func (r *Rates) ExchangeRate(from, to string) (decimal.Decimal, bool) {
	if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
		return decimal.NewFromInt(1), true
	}
	if rate, ok := r.pairs[pairKey(from, to)]; ok {
		return rate, true
	}
	// Fall back to the reciprocal of the opposite direction.
	if inverse, ok := r.pairs[pairKey(to, from)]; ok && inverse.IsPositive() {
		return decimal.NewFromInt(1).Div(inverse), true
	}
	return decimal.Zero, false
}

func (r *Rates) resolveRate(from, to string, customRate *decimal.Decimal) (decimal.Decimal, bool) {
	if customRate != nil {
		if !customRate.IsPositive() {
			return decimal.Zero, false
		}
		return *customRate, true
	}
	rate, ok := r.ExchangeRate(from, to)
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// Convert converts an amount between currencies. A same-currency pair is the
// identity, reformatted to the target precision. A missing, invalid or
// non-positive rate reports false; it never fails loudly so multi-currency
// flows can prompt the user instead of crashing.
func (r *Rates) Convert(amount decimal.Decimal, from, to string, customRate *decimal.Decimal) (decimal.Decimal, bool) {
	if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
		return amount.Round(DecimalPlaces(to)), true
	}
	rate, ok := r.resolveRate(from, to, customRate)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Mul(rate).Round(DecimalPlaces(to)), true
}

// ReverseConvert recovers the source amount that produces destAmount under
// the pair's rate, i.e. the inverse of Convert. Same failure contract.
func (r *Rates) ReverseConvert(destAmount decimal.Decimal, from, to string, customRate *decimal.Decimal) (decimal.Decimal, bool) {
	if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
		return destAmount.Round(DecimalPlaces(from)), true
	}
	rate, ok := r.resolveRate(from, to, customRate)
	if !ok {
		return decimal.Zero, false
	}
	return destAmount.Div(rate).Round(DecimalPlaces(from)), true
}

// IsReasonable sanity-checks a user-supplied rate. Non-positive rates are
// rejected outright. When an offline reference rate exists for the pair, the
// rate must fall within ±50% of it; otherwise it only has to sit inside the
// broad [0.0001, 10000] band.
func (r *Rates) IsReasonable(rate decimal.Decimal, from, to string) bool {
	if !rate.IsPositive() {
		return false
	}
	if expected, ok := r.ExchangeRate(from, to); ok && expected.IsPositive() {
		lower := expected.Mul(rateBandFactor)
		upper := expected.Add(expected.Mul(rateBandFactor))
		return rate.GreaterThanOrEqual(lower) && rate.LessThanOrEqual(upper)
	}
	return rate.GreaterThanOrEqual(rateFloor) && rate.LessThanOrEqual(rateCeiling)
}
