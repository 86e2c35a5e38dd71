package dto

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// AccountResponse is the caller-facing shape of an account.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	Balance      string `json:"balance"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance.String(),
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
