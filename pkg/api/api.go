// Package api defines the wire messages of the fairshare.v1 services.
//
// Messages travel as JSON. Amounts are decimal numbers in major units, the
// same representation the personal finance API uses, and dates are strings:
// RFC 3339 timestamps or plain "2006-01-02" days.
package api

// Share is one participant's explicit portion of an expense.
type Share struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

// Expense is a single "who paid what, split how" entry.
type Expense struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paid_by"`
	// SplitKind is "", "among", "amounts" or "weights". Empty splits equally
	// among every participant.
	SplitKind  string   `json:"split_kind,omitempty"`
	SplitAmong []string `json:"split_among,omitempty"`
	Shares     []Share  `json:"shares,omitempty"`
}

// MemberBalance is one participant's derived position.
type MemberBalance struct {
	Name       string  `json:"name"`
	TotalPaid  float64 `json:"total_paid"`
	FairShare  float64 `json:"fair_share"`
	NetBalance float64 `json:"net_balance"`
	// Tone is "owed", "owes" or "settled".
	Tone string `json:"tone,omitempty"`
}

// Settlement is a proposed transfer from a debtor to a creditor.
type Settlement struct {
	FromMember string  `json:"from_member"`
	ToMember   string  `json:"to_member"`
	Amount     float64 `json:"amount"`
}

// OwnerMatch names the participant believed to be the current user.
type OwnerMatch struct {
	Name string `json:"name"`
	// Method is "identity", "alias" or "first_seen".
	Method string `json:"method"`
}

// TransactionDraft is a transaction the client may post to the personal
// ledger after the user confirms it.
type TransactionDraft struct {
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// Mismatch is one value a verified result disagrees on.
type Mismatch struct {
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

type AnalyzeRequest struct {
	// Description is the narration the expenses were parsed from.
	Description string    `json:"description,omitempty"`
	Members     []string  `json:"members,omitempty"`
	Expenses    []Expense `json:"expenses"`
	// SelfName is an identity the user picked explicitly. It overrides the
	// first-person heuristic when it names a participant.
	SelfName string `json:"self_name,omitempty"`
	// Label names the outing in share drafts, e.g. "Goa trip".
	Label             string `json:"label,omitempty"`
	IncludeReceivable bool   `json:"include_receivable,omitempty"`
	// Date of the share drafts; today when empty.
	Date string `json:"date,omitempty"`
}

type AnalyzeResponse struct {
	MemberBalances []MemberBalance    `json:"member_balances"`
	Settlements    []Settlement       `json:"settlements"`
	TotalAmount    float64            `json:"total_amount"`
	Summary        string             `json:"summary"`
	Owner          *OwnerMatch        `json:"owner,omitempty"`
	ShareDrafts    []TransactionDraft `json:"share_drafts,omitempty"`
}

type VerifyRequest struct {
	Members        []string        `json:"members,omitempty"`
	Expenses       []Expense       `json:"expenses"`
	MemberBalances []MemberBalance `json:"member_balances"`
	Settlements    []Settlement    `json:"settlements"`
}

type VerifyResponse struct {
	Consistent bool       `json:"consistent"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Group is a persisted split with its derived balances.
type Group struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Members        []string        `json:"members"`
	Expenses       []Expense       `json:"expenses"`
	CreatedAt      int64           `json:"created_at"`
	MemberBalances []MemberBalance `json:"member_balances"`
	Settlements    []Settlement    `json:"settlements"`
	Payments       []Payment       `json:"payments,omitempty"`
	TotalAmount    float64         `json:"total_amount"`
	Summary        string          `json:"summary"`
}

// GroupSummary is the listing view of a group.
type GroupSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MemberCount  int    `json:"member_count"`
	ExpenseCount int    `json:"expense_count"`
	CreatedAt    int64  `json:"created_at"`
}

// Payment is a settlement that was actually paid.
type Payment struct {
	ID         string  `json:"id"`
	GroupID    string  `json:"group_id"`
	FromMember string  `json:"from_member"`
	ToMember   string  `json:"to_member"`
	Amount     float64 `json:"amount"`
	CreatedAt  int64   `json:"created_at"`
	CreatedBy  string  `json:"created_by,omitempty"`
	Note       string  `json:"note,omitempty"`
}

type CreateGroupRequest struct {
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Members     []string  `json:"members,omitempty"`
	Expenses    []Expense `json:"expenses"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []GroupSummary `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type RecordPaymentRequest struct {
	GroupID    string  `json:"group_id"`
	FromMember string  `json:"from_member"`
	ToMember   string  `json:"to_member"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
	// Group is the group recomputed with the new payment.
	Group *Group `json:"group"`
}

type DeletePaymentRequest struct {
	GroupID   string `json:"group_id"`
	PaymentID string `json:"payment_id"`
}

type DeletePaymentResponse struct{}

// Transaction is a personal ledger record.
type Transaction struct {
	ID          int64   `json:"id,omitempty"`
	Type        string  `json:"type"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// Reminder is a payment the user wants to be reminded of.
type Reminder struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Amount  float64 `json:"amount,omitempty"`
	DueDate string  `json:"due_date,omitempty"`
	Type    string  `json:"type,omitempty"`
	IsPaid  bool    `json:"is_paid"`
	Notes   string  `json:"notes,omitempty"`
	Overdue bool    `json:"overdue,omitempty"`
}

// Envelope is a budget allocation for one category.
type Envelope struct {
	CategoryName    string  `json:"category_name"`
	AllocatedAmount float64 `json:"allocated_amount"`
	SpentAmount     float64 `json:"spent_amount,omitempty"`
	RemainingAmount float64 `json:"remaining_amount,omitempty"`
	Exceeded        bool    `json:"exceeded,omitempty"`
}

type CategoryBucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type TrendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type MonthBucket struct {
	Month            string  `json:"month"`
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

type DashboardMetrics struct {
	AvailableBalance     float64 `json:"available_balance"`
	TotalIncome          float64 `json:"total_income"`
	TotalExpenses        float64 `json:"total_expenses"`
	NetFlow              float64 `json:"net_flow"`
	RemainingDays        int     `json:"remaining_days"`
	DailyAverageSpending float64 `json:"daily_average_spending"`
	BurnRateStatus       string  `json:"burn_rate_status"`
}

type SummarizeRequest struct {
	Transactions []Transaction `json:"transactions"`
	Reminders    []Reminder    `json:"reminders,omitempty"`
	Envelopes    []Envelope    `json:"envelopes,omitempty"`
	// CycleStart is the salary credit date of the current cycle.
	CycleStart string `json:"cycle_start,omitempty"`
	// Now overrides the current time, for reproducible results.
	Now           string `json:"now,omitempty"`
	ReminderLimit int    `json:"reminder_limit,omitempty"`
}

type SummarizeResponse struct {
	Categories []CategoryBucket `json:"categories"`
	Trend      []TrendPoint     `json:"trend"`
	Months     []MonthBucket    `json:"months"`
	ChartFeed  []MonthBucket    `json:"chart_feed"`
	Reminders  []Reminder       `json:"reminders"`
	Envelopes  []Envelope       `json:"envelopes"`
	Dashboard  DashboardMetrics `json:"dashboard"`
}
