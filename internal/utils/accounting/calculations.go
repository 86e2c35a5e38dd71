// Package accounting holds the signed balance-effect math shared by the
// ledger service and the replay-based analytics, so both sides apply one
// consistent formula.
package accounting

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges returns the per-account signed balance deltas produced by
// applying op forward:
//
//	expense:  account -= amount
//	income:   account += amount
//	transfer: source -= amount, destination += destinationAmount ?? amount
//
// A zero-amount operation is an explicit no-op and yields no deltas.
func BalanceChanges(op domain.Operation) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	if op.Amount.IsZero() {
		return changes
	}

	switch op.Type {
	case domain.Expense:
		changes[op.AccountID] = changes[op.AccountID].Sub(op.Amount)
	case domain.Income:
		changes[op.AccountID] = changes[op.AccountID].Add(op.Amount)
	case domain.Transfer:
		changes[op.AccountID] = changes[op.AccountID].Sub(op.Amount)
		if op.ToAccountID != nil {
			changes[*op.ToAccountID] = changes[*op.ToAccountID].Add(op.DestinationCredit())
		}
	}
	return changes
}

// ReversalChanges returns the algebraic inverse of BalanceChanges: the deltas
// that undo a previously applied operation.
func ReversalChanges(op domain.Operation) map[string]decimal.Decimal {
	changes := BalanceChanges(op)
	for accountID, delta := range changes {
		changes[accountID] = delta.Neg()
	}
	return changes
}

// MergeChanges sums two delta maps per account, dropping entries that cancel
// to zero. Used by update, which applies the reversal of the old effect and
// the forward effect of the new one in a single unit of work.
func MergeChanges(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(a)+len(b))
	for accountID, delta := range a {
		merged[accountID] = delta
	}
	for accountID, delta := range b {
		merged[accountID] = merged[accountID].Add(delta)
	}
	for accountID, delta := range merged {
		if delta.IsZero() {
			delete(merged, accountID)
		}
	}
	return merged
}

// EffectOn returns the signed delta op had on one specific account. Transfers
// touching the account on both sides net the two legs.
func EffectOn(op domain.Operation, accountID string) decimal.Decimal {
	if delta, ok := BalanceChanges(op)[accountID]; ok {
		return delta
	}
	return decimal.Zero
}
