package aggregate

import (
	"strings"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// EnvelopeUsage reports what has been spent against each envelope. EXPENSE
// transactions are matched to envelopes by category, ignoring case and
// surrounding whitespace. Envelopes keep their input order.
func EnvelopeUsage(envelopes []models.Envelope, txs []models.Transaction) []models.EnvelopeUsage {
	spent := make(map[string]money.Money)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		spent[envelopeKey(tx.Category)] += tx.Amount
	}

	usage := make([]models.EnvelopeUsage, 0, len(envelopes))
	for _, e := range envelopes {
		s := spent[envelopeKey(e.Category)]
		usage = append(usage, models.EnvelopeUsage{
			Envelope:  e,
			Spent:     s,
			Remaining: e.Allocated - s,
			Exceeded:  s > e.Allocated,
		})
	}
	return usage
}

func envelopeKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
