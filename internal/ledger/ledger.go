// Package ledger implements the cash register balance arithmetic.
//
// All amounts are integer minor units. The closing balance is never stored
// incrementally; it is recomputed from the full movement set at close time,
// so the ledger can always be rebuilt from its movements.
package ledger

import "github.com/goatos/goatos/internal/models"

// Totals aggregates a set of movements into the figures the register
// close and daily summary views need.
type Totals struct {
	Income        int64 // sum of income amounts
	Expense       int64 // sum of expense amounts
	MovementCount int
}

// NetCashFlow is income minus expense.
func (t Totals) NetCashFlow() int64 {
	return t.Income - t.Expense
}

// Sum walks the movements once and tallies income and expense separately.
// Amounts are stored unsigned with the sign carried by the movement type.
func Sum(movements []models.CashMovement) Totals {
	var t Totals
	for _, m := range movements {
		switch m.Type {
		case models.MovementExpense:
			t.Expense += m.Amount
		default:
			t.Income += m.Amount
		}
	}
	t.MovementCount = len(movements)
	return t
}

// ClosingBalance computes opening + income - expense for a register being
// closed over the given movements.
func ClosingBalance(openingBalance int64, movements []models.CashMovement) int64 {
	return openingBalance + Sum(movements).NetCashFlow()
}
