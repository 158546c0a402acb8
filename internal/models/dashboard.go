package models

import (
	"time"

	"github.com/mmynk/fairshare/internal/money"
)

// ReminderType classifies a reminder.
type ReminderType string

const (
	ReminderLoan         ReminderType = "LOAN"
	ReminderBill         ReminderType = "BILL"
	ReminderSubscription ReminderType = "SUBSCRIPTION"
	ReminderCustom       ReminderType = "CUSTOM"
)

// Reminder is an upcoming payment the user wants to be reminded of.
type Reminder struct {
	ID      int64        `json:"id"`
	Title   string       `json:"title"`
	Amount  money.Money  `json:"amount"`
	DueDate *time.Time   `json:"due_date,omitempty"`
	Type    ReminderType `json:"type"`
	IsPaid  bool         `json:"is_paid"`
	Notes   string       `json:"notes,omitempty"`
}

// UpcomingReminder is an unpaid reminder prepared for display.
type UpcomingReminder struct {
	Reminder
	Overdue bool `json:"overdue"`
}

// Envelope is a named budget allocation for one category.
type Envelope struct {
	Category  string      `json:"category_name"`
	Allocated money.Money `json:"allocated_amount"`
}

// EnvelopeUsage is an envelope with what has been spent against it.
type EnvelopeUsage struct {
	Envelope
	Spent     money.Money `json:"spent_amount"`
	Remaining money.Money `json:"remaining_amount"`
	Exceeded  bool        `json:"exceeded"`
}

// BurnRate is how fast the balance is being spent relative to the days left.
type BurnRate string

const (
	BurnStable   BurnRate = "STABLE"
	BurnWarning  BurnRate = "WARNING"
	BurnCritical BurnRate = "CRITICAL"
)

// DashboardMetrics are the headline numbers of the dashboard.
type DashboardMetrics struct {
	AvailableBalance money.Money `json:"available_balance"`
	TotalIncome      money.Money `json:"total_income"`
	TotalExpenses    money.Money `json:"total_expenses"`
	NetFlow          money.Money `json:"net_flow"`
	RemainingDays    int         `json:"remaining_days"`
	DailyAverage     money.Money `json:"daily_average_spending"`
	BurnRateStatus   BurnRate    `json:"burn_rate_status"`
}
