package aggregate

import (
	"slices"
	"strings"
	"time"

	"github.com/mmynk/fairshare/internal/models"
)

// MonthKeyLayout renders a month key, e.g. "2026-03".
const MonthKeyLayout = "2006-01"

// ChartMonths is how many months the history chart shows.
const ChartMonths = 12

// MonthlyBuckets groups all transactions by calendar month in loc. INCOME and
// SALARY count as income, EXPENSE as expense. The most recent month comes
// first. A nil loc means UTC.
func MonthlyBuckets(txs []models.Transaction, loc *time.Location) []models.MonthBucket {
	if loc == nil {
		loc = time.UTC
	}

	byMonth := make(map[string]*models.MonthBucket)
	for _, tx := range txs {
		key := tx.Date.In(loc).Format(MonthKeyLayout)
		b, ok := byMonth[key]
		if !ok {
			b = &models.MonthBucket{MonthKey: key}
			byMonth[key] = b
		}
		switch {
		case tx.Type.IsIncome():
			b.Income += tx.Amount
		case tx.Type == models.TypeExpense:
			b.Expense += tx.Amount
		}
		b.TransactionCount++
	}

	buckets := make([]models.MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		b.Net = b.Income - b.Expense
		buckets = append(buckets, *b)
	}
	slices.SortFunc(buckets, func(a, b models.MonthBucket) int {
		return strings.Compare(b.MonthKey, a.MonthKey)
	})
	return buckets
}

// ChartFeed returns the most recent ChartMonths buckets in ascending order.
// The input is not modified.
func ChartFeed(buckets []models.MonthBucket) []models.MonthBucket {
	feed := slices.Clone(buckets)
	slices.SortFunc(feed, func(a, b models.MonthBucket) int {
		return strings.Compare(a.MonthKey, b.MonthKey)
	})
	if len(feed) > ChartMonths {
		feed = feed[len(feed)-ChartMonths:]
	}
	return feed
}
