package models

import "github.com/mmynk/fairshare/internal/money"

// MemberBalance is the derived balance of one participant.
type MemberBalance struct {
	// Name is the participant's display name (first-seen spelling).
	Name string `json:"name"`

	// TotalPaid is the sum of every expense this participant paid.
	TotalPaid money.Money `json:"total_paid"`

	// FairShare is the sum of this participant's portions across all
	// expenses, whether or not they paid.
	FairShare money.Money `json:"fair_share"`

	// NetBalance is TotalPaid - FairShare. Positive = owed money,
	// negative = owes money.
	NetBalance money.Money `json:"net_balance"`
}

// Tone classifies a net balance for display coloring.
type Tone string

const (
	ToneOwed    Tone = "owed"
	ToneOwes    Tone = "owes"
	ToneSettled Tone = "settled"
)

// ToneOf returns the display tone of a net balance.
func ToneOf(net money.Money) Tone {
	switch {
	case net > 0:
		return ToneOwed
	case net < 0:
		return ToneOwes
	default:
		return ToneSettled
	}
}
