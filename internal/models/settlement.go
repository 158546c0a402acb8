package models

import "github.com/mmynk/fairshare/internal/money"

// Settlement is a proposed payment from a debtor to a creditor.
type Settlement struct {
	// From is the participant who owes and pays.
	From string `json:"from_member"`

	// To is the participant who is owed and receives.
	To string `json:"to_member"`

	// Amount is always strictly positive.
	Amount money.Money `json:"amount"`
}

// Payment is a settlement that was actually paid and recorded against a
// group. Recorded payments are folded back into the group's balances.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// From is the participant who paid (debtor settling up).
	From string

	// To is the participant who received payment (creditor being paid).
	To string

	// Amount is the payment amount.
	Amount money.Money

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this payment.
	CreatedBy string

	// Note is an optional description for the payment.
	Note string
}
