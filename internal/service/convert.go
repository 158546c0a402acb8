package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/pkg/api"
)

const dateLayout = "2006-01-02"

// Layouts accepted for incoming dates, most specific first. The personal
// finance API emits naive ISO timestamps, which are read in the service's
// location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	dateLayout,
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// wireAmount converts an amount received over the wire. Values that do not fit
// in money.Money are rejected instead of wrapping around.
func wireAmount(field string, v float64) (money.Money, error) {
	m, err := money.FromMajorChecked(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}

// checkTotal fails when the absolute amounts together would overflow, so
// that no sum computed from them can wrap around.
func checkTotal(what string, amounts []money.Money) error {
	var total money.Money
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a.Abs()); err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	return nil
}

func toSplitKind(kind string) (models.SplitKind, error) {
	switch k := models.SplitKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case models.SplitAll, models.SplitAmong, models.SplitAmounts, models.SplitWeights:
		return k, nil
	case "equal", "all":
		return models.SplitAll, nil
	}
	return "", fmt.Errorf("unknown split kind %q", kind)
}

// toRecords converts wire expenses. A split_among list without a kind is
// read as SplitAmong, the way the expense parser emits it.
func toRecords(expenses []api.Expense) ([]models.ExpenseRecord, error) {
	records := make([]models.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		kind, err := toSplitKind(e.SplitKind)
		if err != nil {
			return nil, &calculator.ValidationError{Record: i, Reason: err.Error()}
		}
		if kind == models.SplitAll && len(e.SplitAmong) > 0 {
			kind = models.SplitAmong
		}

		amount, err := wireAmount("amount", e.Amount)
		if err != nil {
			return nil, &calculator.ValidationError{Record: i, Reason: err.Error()}
		}
		rec := models.ExpenseRecord{
			Description: e.Description,
			Amount:      amount,
			PaidBy:      e.PaidBy,
			Split:       models.Split{Kind: kind, Names: e.SplitAmong},
		}
		for j, sh := range e.Shares {
			share, err := wireAmount(fmt.Sprintf("share %d", j+1), sh.Amount)
			if err != nil {
				return nil, &calculator.ValidationError{Record: i, Reason: err.Error()}
			}
			rec.Split.Shares = append(rec.Split.Shares, models.Share{
				Name:   sh.Name,
				Amount: share,
				Weight: sh.Weight,
			})
		}
		records[i] = rec
	}
	return records, nil
}

func toAPIExpenses(records []models.ExpenseRecord) []api.Expense {
	out := make([]api.Expense, len(records))
	for i, r := range records {
		e := api.Expense{
			Description: r.Description,
			Amount:      r.Amount.Major(),
			PaidBy:      r.PaidBy,
			SplitKind:   string(r.Split.Kind),
			SplitAmong:  r.Split.Names,
		}
		for _, sh := range r.Split.Shares {
			e.Shares = append(e.Shares, api.Share{Name: sh.Name, Amount: sh.Amount.Major(), Weight: sh.Weight})
		}
		out[i] = e
	}
	return out
}

func toAPIBalances(balances []models.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = api.MemberBalance{
			Name:       b.Name,
			TotalPaid:  b.TotalPaid.Major(),
			FairShare:  b.FairShare.Major(),
			NetBalance: b.NetBalance.Major(),
			Tone:       string(models.ToneOf(b.NetBalance)),
		}
	}
	return out
}

func fromAPIBalances(balances []api.MemberBalance) ([]models.MemberBalance, error) {
	out := make([]models.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = models.MemberBalance{Name: b.Name}
		fields := []struct {
			name string
			in   float64
			out  *money.Money
		}{
			{"total_paid", b.TotalPaid, &out[i].TotalPaid},
			{"fair_share", b.FairShare, &out[i].FairShare},
			{"net_balance", b.NetBalance, &out[i].NetBalance},
		}
		for _, f := range fields {
			m, err := wireAmount(fmt.Sprintf("balance of %s: %s", b.Name, f.name), f.in)
			if err != nil {
				return nil, &calculator.ValidationError{Record: -1, Reason: err.Error()}
			}
			*f.out = m
		}
	}
	return out, nil
}

func toAPISettlements(settlements []models.Settlement) []api.Settlement {
	out := make([]api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = api.Settlement{FromMember: s.From, ToMember: s.To, Amount: s.Amount.Major()}
	}
	return out
}

func fromAPISettlements(settlements []api.Settlement) ([]models.Settlement, error) {
	out := make([]models.Settlement, len(settlements))
	for i, s := range settlements {
		amount, err := wireAmount(fmt.Sprintf("settlement %d", i+1), s.Amount)
		if err != nil {
			return nil, &calculator.ValidationError{Record: -1, Reason: err.Error()}
		}
		out[i] = models.Settlement{From: s.FromMember, To: s.ToMember, Amount: amount}
	}
	return out, nil
}

func toAPIPayment(p *models.Payment) api.Payment {
	return api.Payment{
		ID:         p.ID,
		GroupID:    p.GroupID,
		FromMember: p.From,
		ToMember:   p.To,
		Amount:     p.Amount.Major(),
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
		Note:       p.Note,
	}
}

func toAPIDrafts(drafts []models.TransactionDraft) []api.TransactionDraft {
	out := make([]api.TransactionDraft, len(drafts))
	for i, d := range drafts {
		out[i] = api.TransactionDraft{
			Type:        string(d.Type),
			Category:    d.Category,
			Amount:      d.Amount.Major(),
			Date:        d.Date.Format(dateLayout),
			Description: d.Description,
			Source:      string(d.Source),
		}
	}
	return out
}

func fromAPITransactions(txs []api.Transaction, loc *time.Location) ([]models.Transaction, error) {
	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		typ := models.TransactionType(strings.ToUpper(strings.TrimSpace(tx.Type)))
		switch typ {
		case models.TypeIncome, models.TypeExpense, models.TypeSalary:
		default:
			return nil, fmt.Errorf("transaction %d: unknown type %q", i+1, tx.Type)
		}
		date, err := parseDate(tx.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		amount, err := wireAmount(fmt.Sprintf("transaction %d", i+1), tx.Amount)
		if err != nil {
			return nil, err
		}
		out[i] = models.Transaction{
			ID:          tx.ID,
			Type:        typ,
			Category:    tx.Category,
			Amount:      amount,
			Date:        date,
			Description: tx.Description,
			Source:      models.TransactionSource(tx.Source),
		}
	}
	return out, nil
}

func fromAPIReminders(reminders []api.Reminder, loc *time.Location) ([]models.Reminder, error) {
	out := make([]models.Reminder, len(reminders))
	for i, r := range reminders {
		amount, err := wireAmount(fmt.Sprintf("reminder %d", r.ID), r.Amount)
		if err != nil {
			return nil, err
		}
		out[i] = models.Reminder{
			ID:     r.ID,
			Title:  r.Title,
			Amount: amount,
			Type:   models.ReminderType(r.Type),
			IsPaid: r.IsPaid,
			Notes:  r.Notes,
		}
		if strings.TrimSpace(r.DueDate) != "" {
			due, err := parseDate(r.DueDate, loc)
			if err != nil {
				return nil, fmt.Errorf("reminder %d: %w", r.ID, err)
			}
			out[i].DueDate = &due
		}
	}
	return out, nil
}

func toAPIReminders(reminders []models.UpcomingReminder) []api.Reminder {
	out := make([]api.Reminder, len(reminders))
	for i, r := range reminders {
		out[i] = api.Reminder{
			ID:      r.ID,
			Title:   r.Title,
			Amount:  r.Amount.Major(),
			Type:    string(r.Type),
			IsPaid:  r.IsPaid,
			Notes:   r.Notes,
			Overdue: r.Overdue,
		}
		if r.DueDate != nil {
			out[i].DueDate = r.DueDate.Format(dateLayout)
		}
	}
	return out
}

func fromAPIEnvelopes(envelopes []api.Envelope) ([]models.Envelope, error) {
	out := make([]models.Envelope, len(envelopes))
	for i, e := range envelopes {
		allocated, err := wireAmount(fmt.Sprintf("envelope %s", e.CategoryName), e.AllocatedAmount)
		if err != nil {
			return nil, err
		}
		out[i] = models.Envelope{Category: e.CategoryName, Allocated: allocated}
	}
	return out, nil
}

func toAPIEnvelopes(usage []models.EnvelopeUsage) []api.Envelope {
	out := make([]api.Envelope, len(usage))
	for i, u := range usage {
		out[i] = api.Envelope{
			CategoryName:    u.Category,
			AllocatedAmount: u.Allocated.Major(),
			SpentAmount:     u.Spent.Major(),
			RemainingAmount: u.Remaining.Major(),
			Exceeded:        u.Exceeded,
		}
	}
	return out
}

func toAPIMonths(buckets []models.MonthBucket) []api.MonthBucket {
	out := make([]api.MonthBucket, len(buckets))
	for i, b := range buckets {
		out[i] = api.MonthBucket{
			Month:            b.MonthKey,
			TotalIncome:      b.Income.Major(),
			TotalExpenses:    b.Expense.Major(),
			Net:              b.Net.Major(),
			TransactionCount: b.TransactionCount,
		}
	}
	return out
}

func toAPICategories(buckets []models.CategoryBucket) []api.CategoryBucket {
	out := make([]api.CategoryBucket, len(buckets))
	for i, b := range buckets {
		out[i] = api.CategoryBucket{Name: b.Category, Value: b.Total.Major()}
	}
	return out
}

func toAPITrend(points []models.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, len(points))
	for i, p := range points {
		out[i] = api.TrendPoint{Date: p.Label, Amount: p.Amount.Major()}
	}
	return out
}

func toAPIDashboard(m models.DashboardMetrics) api.DashboardMetrics {
	return api.DashboardMetrics{
		AvailableBalance:     m.AvailableBalance.Major(),
		TotalIncome:          m.TotalIncome.Major(),
		TotalExpenses:        m.TotalExpenses.Major(),
		NetFlow:              m.NetFlow.Major(),
		RemainingDays:        m.RemainingDays,
		DailyAverageSpending: m.DailyAverage.Major(),
		BurnRateStatus:       string(m.BurnRateStatus),
	}
}
