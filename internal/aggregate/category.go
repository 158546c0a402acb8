package aggregate

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// OtherCategory is where uncategorized expenses are counted.
const OtherCategory = "Other"

// NormalizeCategory trims a category and upper-cases its first letter. Empty
// categories become OtherCategory.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return OtherCategory
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}

// CategoryTotals sums EXPENSE transactions per normalized category. Buckets
// are ordered by total descending, then by name.
func CategoryTotals(txs []models.Transaction) []models.CategoryBucket {
	totals := make(map[string]money.Money)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		totals[NormalizeCategory(tx.Category)] += tx.Amount
	}

	buckets := make([]models.CategoryBucket, 0, len(totals))
	for name, total := range totals {
		buckets = append(buckets, models.CategoryBucket{Category: name, Total: total})
	}
	slices.SortFunc(buckets, func(a, b models.CategoryBucket) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return buckets
}
