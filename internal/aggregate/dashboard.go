package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// CycleDays is the assumed length of a salary cycle.
const CycleDays = 30

// Dashboard computes the headline metrics from the transactions of the
// current cycle. cycleStart is the salary credit date; when it is nil the
// whole cycle is assumed to remain and no daily average is computed.
//
// The burn rate compares how many days the available balance lasts at the
// daily average against the days remaining: under half of them is CRITICAL,
// under all of them is WARNING.
func Dashboard(txs []models.Transaction, cycleStart *time.Time, now time.Time) models.DashboardMetrics {
	var m models.DashboardMetrics
	for _, tx := range txs {
		switch {
		case tx.Type.IsIncome():
			m.TotalIncome += tx.Amount
		case tx.Type == models.TypeExpense:
			m.TotalExpenses += tx.Amount
		}
	}
	m.NetFlow = m.TotalIncome - m.TotalExpenses
	m.AvailableBalance = m.NetFlow
	m.BurnRateStatus = models.BurnStable

	if cycleStart == nil {
		m.RemainingDays = CycleDays
		return m
	}

	passed := max(0, int(now.Sub(*cycleStart)/(24*time.Hour)))
	m.RemainingDays = max(0, CycleDays-passed)
	elapsed := int64(max(1, passed))
	m.DailyAverage = money.FromDecimal(m.TotalExpenses.Decimal().Div(decimal.NewFromInt(elapsed)))

	if m.RemainingDays == 0 || m.TotalExpenses <= 0 {
		return m
	}
	// covered = available / (expenses / elapsed), compared without dividing.
	covered := m.AvailableBalance.Decimal().Mul(decimal.NewFromInt(elapsed))
	remaining := m.TotalExpenses.Decimal().Mul(decimal.NewFromInt(int64(m.RemainingDays)))
	switch {
	case covered.Mul(decimal.NewFromInt(2)).LessThan(remaining):
		m.BurnRateStatus = models.BurnCritical
	case covered.LessThan(remaining):
		m.BurnRateStatus = models.BurnWarning
	}
	return m
}
