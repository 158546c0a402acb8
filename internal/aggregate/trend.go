package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// TrendLabelLayout renders a day as "14 Mar".
const TrendLabelLayout = "2 Jan"

// DailyTrend sums EXPENSE transactions per calendar day in loc, oldest day
// first. A nil loc means UTC.
func DailyTrend(txs []models.Transaction, loc *time.Location) []models.TrendPoint {
	if loc == nil {
		loc = time.UTC
	}

	expenses := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == models.TypeExpense {
			expenses = append(expenses, tx)
		}
	}
	slices.SortStableFunc(expenses, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	byDay := make(map[time.Time]money.Money)
	for _, tx := range expenses {
		byDay[startOfDay(tx.Date, loc)] += tx.Amount
	}

	points := make([]models.TrendPoint, 0, len(byDay))
	for day, amount := range byDay {
		points = append(points, models.TrendPoint{
			Day:    day,
			Label:  day.Format(TrendLabelLayout),
			Amount: amount,
		})
	}
	slices.SortFunc(points, func(a, b models.TrendPoint) int {
		return cmp.Compare(a.Day.Unix(), b.Day.Unix())
	})
	return points
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
