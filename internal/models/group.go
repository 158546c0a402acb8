package models

// Group is a persisted split: a trip or outing, its members and the expenses
// they shared. Balances and settlements are never stored; they are
// recomputed from Expenses and the group's recorded payments.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Goa trip").
	Name string

	// Description is the free-text narration the expenses were parsed from.
	// The self-owner detector reads it.
	Description string

	// Members is the explicit participant list, in display order. Payers and
	// splitters missing from it are appended when balances are computed.
	Members []string

	// Expenses are the group's expense records, in entry order.
	Expenses []ExpenseRecord

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// CreatedBy is the user ID who created the group.
	CreatedBy string
}

// GroupSummary is the listing view of a group.
type GroupSummary struct {
	ID           string
	Name         string
	MemberCount  int
	ExpenseCount int
	CreatedAt    int64
}
