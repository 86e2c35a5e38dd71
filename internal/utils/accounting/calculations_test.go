package accounting_test

import (
	"testing"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBalanceChanges_Expense(t *testing.T) {
	changes := accounting.BalanceChanges(domain.Operation{
		Type:      domain.Expense,
		Amount:    decimal.RequireFromString("100.50"),
		AccountID: "acc-1",
	})

	require.Len(t, changes, 1)
	assert.Equal(t, "-100.5", changes["acc-1"].String())
}

func TestBalanceChanges_Income(t *testing.T) {
	changes := accounting.BalanceChanges(domain.Operation{
		Type:      domain.Income,
		Amount:    decimal.RequireFromString("250"),
		AccountID: "acc-1",
	})

	require.Len(t, changes, 1)
	assert.Equal(t, "250", changes["acc-1"].String())
}

func TestBalanceChanges_Transfer(t *testing.T) {
	changes := accounting.BalanceChanges(domain.Operation{
		Type:        domain.Transfer,
		Amount:      decimal.RequireFromString("100"),
		AccountID:   "src",
		ToAccountID: strPtr("dst"),
	})

	require.Len(t, changes, 2)
	assert.Equal(t, "-100", changes["src"].String())
	assert.Equal(t, "100", changes["dst"].String())
}

func TestBalanceChanges_CrossCurrencyTransfer(t *testing.T) {
	// The destination leg credits the destination amount, not the source
	// amount.
	changes := accounting.BalanceChanges(domain.Operation{
		Type:              domain.Transfer,
		Amount:            decimal.RequireFromString("100"),
		AccountID:         "usd-acc",
		ToAccountID:       strPtr("eur-acc"),
		DestinationAmount: decPtr("92"),
	})

	require.Len(t, changes, 2)
	assert.Equal(t, "-100", changes["usd-acc"].String())
	assert.Equal(t, "92", changes["eur-acc"].String())
}

func TestBalanceChanges_ZeroAmountIsNoOp(t *testing.T) {
	changes := accounting.BalanceChanges(domain.Operation{
		Type:      domain.Expense,
		Amount:    decimal.Zero,
		AccountID: "acc-1",
	})
	assert.Empty(t, changes)

	changes = accounting.BalanceChanges(domain.Operation{
		Type:        domain.Transfer,
		Amount:      decimal.Zero,
		AccountID:   "src",
		ToAccountID: strPtr("dst"),
	})
	assert.Empty(t, changes)
}

func TestReversalChanges_UndoesForwardEffect(t *testing.T) {
	op := domain.Operation{
		Type:              domain.Transfer,
		Amount:            decimal.RequireFromString("100"),
		AccountID:         "src",
		ToAccountID:       strPtr("dst"),
		DestinationAmount: decPtr("92"),
	}

	merged := accounting.MergeChanges(accounting.BalanceChanges(op), accounting.ReversalChanges(op))
	assert.Empty(t, merged, "forward plus reversal must cancel exactly")
}

func TestMergeChanges_UpdateNetsOldAndNew(t *testing.T) {
	// An expense of 100 edited to 200 nets a single -100 adjustment.
	old := domain.Operation{Type: domain.Expense, Amount: decimal.RequireFromString("100"), AccountID: "acc-1"}
	updated := domain.Operation{Type: domain.Expense, Amount: decimal.RequireFromString("200"), AccountID: "acc-1"}

	merged := accounting.MergeChanges(
		accounting.ReversalChanges(old),
		accounting.BalanceChanges(updated),
	)

	require.Len(t, merged, 1)
	assert.Equal(t, "-100", merged["acc-1"].String())
}

func TestMergeChanges_AccountMove(t *testing.T) {
	// Moving an expense between accounts touches both.
	old := domain.Operation{Type: domain.Expense, Amount: decimal.RequireFromString("50"), AccountID: "acc-1"}
	updated := domain.Operation{Type: domain.Expense, Amount: decimal.RequireFromString("50"), AccountID: "acc-2"}

	merged := accounting.MergeChanges(
		accounting.ReversalChanges(old),
		accounting.BalanceChanges(updated),
	)

	require.Len(t, merged, 2)
	assert.Equal(t, "50", merged["acc-1"].String())
	assert.Equal(t, "-50", merged["acc-2"].String())
}

func TestEffectOn(t *testing.T) {
	op := domain.Operation{
		Type:              domain.Transfer,
		Amount:            decimal.RequireFromString("100"),
		AccountID:         "src",
		ToAccountID:       strPtr("dst"),
		DestinationAmount: decPtr("92"),
	}

	assert.Equal(t, "-100", accounting.EffectOn(op, "src").String())
	assert.Equal(t, "92", accounting.EffectOn(op, "dst").String())
	assert.True(t, accounting.EffectOn(op, "unrelated").IsZero())
}
