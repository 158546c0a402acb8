package models

import (
	"time"

	"github.com/mmynk/fairshare/internal/money"
)

// TransactionType is the kind of a ledger transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
	TypeSalary  TransactionType = "SALARY"
)

// IsIncome reports whether the type counts toward income (INCOME or SALARY).
func (t TransactionType) IsIncome() bool {
	return t == TypeIncome || t == TypeSalary
}

// TransactionSource is where the money moved from or to.
type TransactionSource string

const (
	SourceMainBalance   TransactionSource = "MAIN_BALANCE"
	SourceCreditCard    TransactionSource = "CREDIT_CARD"
	SourceBorrowed      TransactionSource = "BORROWED"
	SourceSavings       TransactionSource = "SAVINGS"
	SourceFamilySupport TransactionSource = "FAMILY_SUPPORT"
	SourceLoan          TransactionSource = "LOAN"
	SourceOtherIncome   TransactionSource = "OTHER_INCOME"
)

// Transaction is a personal ledger record fetched from the external API. It
// is treated as an immutable snapshot for the duration of one aggregation.
type Transaction struct {
	ID          int64             `json:"id"`
	Type        TransactionType   `json:"type"`
	Category    string            `json:"category,omitempty"`
	Amount      money.Money       `json:"amount"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description,omitempty"`
	Source      TransactionSource `json:"source,omitempty"`
}

// TransactionDraft is a transaction creation request proposed to the user
// (e.g., "log my share"). It is only posted after explicit confirmation.
type TransactionDraft struct {
	Type        TransactionType   `json:"type"`
	Category    string            `json:"category,omitempty"`
	Amount      money.Money       `json:"amount"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Source      TransactionSource `json:"source"`
}
