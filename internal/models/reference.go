package models

import "fmt"

// ReferenceType names the kind of entity a polymorphic reference points at.
type ReferenceType string

const (
	// ReferenceTrainingSession points at a TrainingSession.
	ReferenceTrainingSession ReferenceType = "training_session"
	// ReferenceAthleteGroup points at a TrainingGroup.
	ReferenceAthleteGroup ReferenceType = "athlete_group"
	// ReferencePayment points at a Payment (cash movements only).
	ReferencePayment ReferenceType = "payment"
	// ReferenceExpense points at an Expense (cash movements only).
	ReferenceExpense ReferenceType = "expense"
)

// Reference is a typed polymorphic link to one of several possible entities.
// Waitlist entries reference capacity holders (sessions or groups); cash
// movements reference the payment or expense that generated them.
type Reference struct {
	Type ReferenceType
	ID   string
}

// ValidHolder reports whether the reference points at a capacity holder.
func (r Reference) ValidHolder() error {
	switch r.Type {
	case ReferenceTrainingSession, ReferenceAthleteGroup:
	default:
		return fmt.Errorf("reference type %q is not a capacity holder", r.Type)
	}
	if r.ID == "" {
		return fmt.Errorf("reference id required")
	}
	return nil
}

// ValidFinancial reports whether the reference points at a payment or expense.
func (r Reference) ValidFinancial() error {
	switch r.Type {
	case ReferencePayment, ReferenceExpense:
	default:
		return fmt.Errorf("reference type %q is not a financial record", r.Type)
	}
	if r.ID == "" {
		return fmt.Errorf("reference id required")
	}
	return nil
}
