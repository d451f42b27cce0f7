package models

// PaymentMethod is how money changed hands. Only cash generates register
// movements.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard || m == MethodTransfer
}

// Payment is money received from an athlete (fees, dues, event tickets).
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// OrgID is the organization this payment belongs to.
	OrgID string

	// AthleteID is who paid.
	AthleteID string

	// Amount is the payment amount in minor units.
	Amount int64

	// Method is cash, card or transfer.
	Method PaymentMethod

	// Description is a human-readable label (e.g., "March dues").
	Description string

	// RecordedBy is the user ID that recorded the payment.
	RecordedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// Expense is money the organization paid out.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// OrgID is the organization this expense belongs to.
	OrgID string

	// Amount is the expense amount in minor units.
	Amount int64

	// Method is cash, card or transfer.
	Method PaymentMethod

	// Description is a human-readable label (e.g., "Pool rental").
	Description string

	// RecordedBy is the user ID that recorded the expense.
	RecordedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
