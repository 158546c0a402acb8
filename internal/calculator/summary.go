package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// Summarize renders a one-line description of a split, e.g.
// "Total: ₹6,000.00. A is owed ₹1,000.00. B owes ₹500.00, C owes ₹500.00."
func Summarize(records []models.ExpenseRecord, balances []models.MemberBalance, f *money.Formatter) string {
	var total money.Money
	for _, r := range records {
		total += r.Amount
	}

	var owed, owes []string
	for _, b := range balances {
		switch models.ToneOf(b.NetBalance) {
		case models.ToneOwed:
			owed = append(owed, fmt.Sprintf("%s is owed %s", b.Name, f.Format(b.NetBalance)))
		case models.ToneOwes:
			owes = append(owes, fmt.Sprintf("%s owes %s", b.Name, f.Format(b.NetBalance.Abs())))
		}
	}

	parts := []string{"Total: " + f.Format(total)}
	if len(owed) > 0 {
		parts = append(parts, strings.Join(owed, ", "))
	}
	if len(owes) > 0 {
		parts = append(parts, strings.Join(owes, ", "))
	}
	if len(owed) == 0 && len(owes) == 0 && total > 0 {
		parts = append(parts, "Everyone is settled")
	}
	return strings.Join(parts, ". ") + "."
}
