package dto

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// CurrencyResponse is the caller-facing shape of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse maps a domain currency to its response shape.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
	}
}

// ConvertResponse is the result of an offline currency conversion.
type ConvertResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Rate      string `json:"rate"`
	Converted string `json:"converted"`
}
