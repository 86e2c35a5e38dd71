package services

import "github.com/fintrack/fintrack_backend/internal/money"

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Ledger   LedgerSvcFacade
	Balance  BalanceSvcFacade
	Snapshot SnapshotSvcFacade
	Account  AccountSvcFacade
	Currency CurrencySvcFacade
	Rates    *money.Rates
}
