package models

import (
	"time"

	"github.com/mmynk/fairshare/internal/money"
)

// MonthBucket aggregates one calendar month of transactions.
type MonthBucket struct {
	// MonthKey is "YYYY-MM".
	MonthKey         string      `json:"month"`
	Income           money.Money `json:"total_income"`
	Expense          money.Money `json:"total_expenses"`
	Net              money.Money `json:"net"`
	TransactionCount int         `json:"transaction_count"`
}

// CategoryBucket is the expense total of one normalized category.
type CategoryBucket struct {
	Category string      `json:"name"`
	Total    money.Money `json:"value"`
}

// TrendPoint is the expense total of one calendar day.
type TrendPoint struct {
	Day    time.Time   `json:"day"`
	Label  string      `json:"date"`
	Amount money.Money `json:"amount"`
}
