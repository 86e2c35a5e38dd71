// Package money is the single trusted boundary for converting user and
// display strings to and from the internal decimal representation, and for
// currency-aware arithmetic on it.
//
// Most functions here deliberately never fail: malformed upstream input
// collapses to the zero decimal so that ledger mutation stays resilient to
// bad data. Division by zero is the one exception and raises
// apperrors.ErrDivisionByZero.
package money

import (
	"math"
	"regexp"
	"strings"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

var validDecimalPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ToDecimal converts any supported value to a decimal. Invalid, empty, nil,
// non-finite or non-numeric input yields the zero decimal; it never fails.
func ToDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}

// FormatAmount renders d rounded (half up) to the given number of decimal
// places. Zero places yields no fractional part at all.
func FormatAmount(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// FormatForCurrency renders d with the decimal place count configured for the
// currency code.
func FormatForCurrency(d decimal.Decimal, currencyCode string) string {
	return FormatAmount(d, DecimalPlaces(currencyCode))
}

func placesFor(currencyCode []string) int32 {
	if len(currencyCode) > 0 {
		return DecimalPlaces(currencyCode[0])
	}
	return 2
}

// Add returns a+b rounded to the currency's decimal places (2 when no
// currency code is given).
func Add(a, b decimal.Decimal, currencyCode ...string) decimal.Decimal {
	return a.Add(b).Round(placesFor(currencyCode))
}

// Subtract returns a-b rounded to the currency's decimal places.
func Subtract(a, b decimal.Decimal, currencyCode ...string) decimal.Decimal {
	return a.Sub(b).Round(placesFor(currencyCode))
}

// Multiply returns a*b rounded to the currency's decimal places.
func Multiply(a, b decimal.Decimal, currencyCode ...string) decimal.Decimal {
	return a.Mul(b).Round(placesFor(currencyCode))
}

// Divide returns a/b rounded to the currency's decimal places. A zero divisor
// fails with apperrors.ErrDivisionByZero; any other divisor never fails.
func Divide(a, b decimal.Decimal, currencyCode ...string) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, apperrors.ErrDivisionByZero
	}
	return a.Div(b).Round(placesFor(currencyCode)), nil
}

// Compare returns -1, 0 or 1 when a is less than, equal to, or greater than b.
func Compare(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.IsPositive()
}

// IsNegative reports whether d is strictly less than zero.
func IsNegative(d decimal.Decimal) bool {
	return d.IsNegative()
}

// IsZero reports whether d equals zero.
func IsZero(d decimal.Decimal) bool {
	return d.IsZero()
}

// Abs returns the absolute value of d.
func Abs(d decimal.Decimal) decimal.Decimal {
	return d.Abs()
}

// ParseInput sanitizes a raw user-entered amount: every character except
// digits, '.' and '-' is stripped. It reports false when the remainder does
// not parse to a finite decimal; otherwise it returns the value formatted for
// the currency.
func ParseInput(raw string, currencyCode string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return "", false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return "", false
	}
	return FormatForCurrency(d, currencyCode), true
}

// IsValid strictly checks whether v is a usable numeric value: decimals and
// integers always are, floats must be finite, and strings must match a signed
// decimal pattern. Everything else is rejected.
func IsValid(v any) bool {
	switch x := v.(type) {
	case decimal.Decimal:
		return true
	case *decimal.Decimal:
		return x != nil
	case int, int32, int64:
		return true
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case string:
		return validDecimalPattern.MatchString(strings.TrimSpace(x))
	default:
		return false
	}
}
