package money

import "strings"

// decimalPlacesByCurrency is the fixed display/storage precision per ISO 4217
// code. Codes not listed default to 2.
var decimalPlacesByCurrency = map[string]int32{
	// Zero-decimal currencies.
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,

	// Three-decimal currencies.
	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,
}

// DecimalPlaces returns the configured decimal place count for a currency
// code, defaulting to 2 for unknown or missing codes.
func DecimalPlaces(currencyCode string) int32 {
	if places, ok := decimalPlacesByCurrency[strings.ToUpper(strings.TrimSpace(currencyCode))]; ok {
		return places
	}
	return 2
}
