package models

import (
	"github.com/mmynk/fairshare/internal/money"
)

// SplitKind selects how an expense is divided between participants.
type SplitKind string

const (
	// SplitAll divides the amount equally over every known participant, not
	// only those named in the record. It is the zero value.
	SplitAll SplitKind = ""

	// SplitAmong divides the amount equally over the names in Split.Names.
	SplitAmong SplitKind = "among"

	// SplitAmounts uses the absolute amounts in Split.Shares. They must sum to
	// the expense amount.
	SplitAmounts SplitKind = "amounts"

	// SplitWeights normalizes the weights in Split.Shares so the resulting
	// amounts sum to the expense amount.
	SplitWeights SplitKind = "weights"
)

// Split describes how one expense is shared.
type Split struct {
	Kind SplitKind `json:"kind,omitempty"`

	// Names is the subset used by SplitAmong.
	Names []string `json:"names,omitempty"`

	// Shares is used by SplitAmounts and SplitWeights. Order matters: it
	// decides who absorbs rounding leftovers when the payer is not listed.
	Shares []Share `json:"shares,omitempty"`
}

// Share is one participant's explicit portion of an expense.
type Share struct {
	Name   string      `json:"name"`
	Amount money.Money `json:"amount,omitempty"`
	Weight float64     `json:"weight,omitempty"`
}

// ExpenseRecord is a single "who paid what, split how" entry.
type ExpenseRecord struct {
	// Description is what the money was spent on (e.g., "Hotel", "Taxi").
	Description string `json:"description"`

	// Amount is the total paid. Must be positive.
	Amount money.Money `json:"amount"`

	// PaidBy is the participant who paid the full amount.
	PaidBy string `json:"paid_by"`

	// Split says who the amount is shared with. The zero value splits equally
	// among all participants.
	Split Split `json:"split"`
}

// Portion is a participant's normalized share of one expense.
type Portion struct {
	Name   string      `json:"name"`
	Amount money.Money `json:"amount"`
}
