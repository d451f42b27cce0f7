// Package models defines the core domain models for GOAT OS.
//
// # Model Families
//
//   - Organization: the tenant boundary; every other entity carries its OrgID
//   - User: staff account (admin or staff role) scoped to one organization
//   - Athlete: roster entry; the subject of registrations and waitlist entries
//   - TrainingGroup / TrainingSession: capacity holders with an optional
//     maximum capacity (nil = unbounded)
//   - Registration: an athlete's active slot in a capacity holder
//   - WaitlistEntry: queued interest in a full capacity holder
//   - CashRegister / CashMovement: the daily cash drawer and its signed
//     movements
//   - Payment / Expense: financial records that may generate cash movements
//
// # Design Principles
//
//  1. All monetary amounts are integer minor units (cents). No floats touch
//     money.
//  2. Polymorphic references (waitlist entries, cash movements) use the typed
//     Reference value, never bare string pairs.
//  3. Timestamps are Unix seconds (int64) to keep SQLite storage trivial.
//  4. Models carry no storage tags; the sqlite package owns column mapping.
package models
