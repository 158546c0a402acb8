package owner

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/fairshare/internal/models"
)

// DefaultCategory is the category given to share drafts.
const DefaultCategory = "split"

// ShareOptions tune the drafts built by ProposeShare.
type ShareOptions struct {
	// Label names the split in draft descriptions (e.g., "Goa trip").
	Label string

	// Date is the date put on the drafts.
	Date time.Time

	// IncludeReceivable adds an INCOME draft for a positive net balance,
	// i.e. money the user is owed by the others.
	IncludeReceivable bool
}

// ProposeShare builds the transaction drafts for logging the current user's
// share of a split in their personal ledger: an EXPENSE for the fair share
// and, optionally, an INCOME for what the others owe back.
func ProposeShare(b models.MemberBalance, opts ShareOptions) []models.TransactionDraft {
	label := strings.TrimSpace(opts.Label)
	if label == "" {
		label = "group split"
	}

	var drafts []models.TransactionDraft
	if b.FairShare > 0 {
		drafts = append(drafts, models.TransactionDraft{
			Type:        models.TypeExpense,
			Category:    DefaultCategory,
			Amount:      b.FairShare,
			Date:        opts.Date,
			Description: fmt.Sprintf("My share of %s", label),
			Source:      models.SourceMainBalance,
		})
	}
	if opts.IncludeReceivable && b.NetBalance > 0 {
		drafts = append(drafts, models.TransactionDraft{
			Type:        models.TypeIncome,
			Category:    DefaultCategory,
			Amount:      b.NetBalance,
			Date:        opts.Date,
			Description: fmt.Sprintf("Owed back from %s", label),
			Source:      models.SourceMainBalance,
		})
	}
	return drafts
}
