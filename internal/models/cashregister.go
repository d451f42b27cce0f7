package models

// RegisterStatus tracks the one-way open -> closed lifecycle of a register.
type RegisterStatus string

const (
	RegisterOpen   RegisterStatus = "open"
	RegisterClosed RegisterStatus = "closed"
)

// CashRegister is the daily cash drawer for an organization. At most one
// register may be open per organization at any time; a closed register is
// immutable except for notes.
type CashRegister struct {
	// ID is the unique identifier for the register (UUID format).
	ID string

	// OrgID is the organization this register belongs to.
	OrgID string

	// Date is the Unix timestamp of the register's day, normalized to
	// start of day UTC.
	Date int64

	// Status is open or closed.
	Status RegisterStatus

	// OpeningBalance is the cash in the drawer at open, in minor units.
	OpeningBalance int64

	// ClosingBalance is fixed at close as opening + income - expense.
	// Nil while the register is open.
	ClosingBalance *int64

	// Notes is free-form annotation; the only field mutable after close.
	Notes string

	// CreatedAt is the Unix timestamp when the register was opened.
	CreatedAt int64
}

// MovementType is the sign of a cash movement.
type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

// CashMovement is a single signed cash transaction recorded against an open
// register. At most one movement exists per (Ref.Type, Ref.ID); retries of
// the same payment are idempotent.
type CashMovement struct {
	// ID is the unique identifier for the movement (UUID format).
	ID string

	// RegisterID is the register this movement belongs to.
	RegisterID string

	// OrgID is the organization, denormalized for tenant-scoped queries.
	OrgID string

	// Type is income or expense.
	Type MovementType

	// Amount is the positive magnitude in minor units; Type carries the sign.
	Amount int64

	// Description is a human-readable label for the movement.
	Description string

	// Ref links to the payment or expense that generated this movement.
	Ref Reference

	// RecordedBy is the user ID that triggered the movement.
	RecordedBy string

	// CreatedAt is the Unix timestamp when the movement was recorded.
	CreatedAt int64
}

// Signed returns the movement amount with its sign applied.
func (m CashMovement) Signed() int64 {
	if m.Type == MovementExpense {
		return -m.Amount
	}
	return m.Amount
}
