package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// CalculateBalances computes each member's total paid, fair share and net
// balance, in the ledger's first-seen member order.
//
// Algorithm:
//   - For each entry: payer contributed +amount, each portion holder owes
//     their portion
//   - net_balance = total_paid - fair_share
//
// The net balances always sum to zero; if the totals do not reconcile the
// ledger was malformed and a ValidationError is returned. Totals that would
// overflow Money are rejected the same way. Portions never exceed their
// entry's amount, so once the overall totals fit every per-member figure and
// every net balance fits too.
func CalculateBalances(l *Ledger) ([]models.MemberBalance, error) {
	paid := make([]money.Money, len(l.Members))
	owed := make([]money.Money, len(l.Members))

	var err error
	for _, e := range l.Entries {
		p := l.position(e.PaidBy)
		if p < 0 {
			return nil, invalid(-1, "unknown payer %s", e.PaidBy)
		}
		if paid[p], err = paid[p].Add(e.Amount); err != nil {
			return nil, invalid(-1, "total paid by %s: %v", e.PaidBy, err)
		}
		for _, portion := range e.Portions {
			o := l.position(portion.Name)
			if o < 0 {
				return nil, invalid(-1, "unknown participant %s", portion.Name)
			}
			if owed[o], err = owed[o].Add(portion.Amount); err != nil {
				return nil, invalid(-1, "fair share of %s: %v", portion.Name, err)
			}
		}
	}

	totalPaid, err := money.CheckedSum(paid...)
	if err != nil {
		return nil, invalid(-1, "total paid: %v", err)
	}
	totalOwed, err := money.CheckedSum(owed...)
	if err != nil {
		return nil, invalid(-1, "total of fair shares: %v", err)
	}
	if totalPaid != totalOwed {
		return nil, invalid(-1, "fair shares sum to %s, expected %s", totalOwed, totalPaid)
	}

	balances := make([]models.MemberBalance, len(l.Members))
	for i, name := range l.Members {
		balances[i] = models.MemberBalance{
			Name:       name,
			TotalPaid:  paid[i],
			FairShare:  owed[i],
			NetBalance: paid[i] - owed[i],
		}
	}
	return balances, nil
}

// CalculateGroupBalances computes balances across a group's expenses and the
// payments already recorded against it, and the settlements that would clear
// what is left. Payments must be between participants of the expenses; a
// stranger could not take part in equal splits resolved before the payment.
func CalculateGroupBalances(members []string, records []models.ExpenseRecord, payments []models.Payment) ([]models.MemberBalance, []models.Settlement, error) {
	l, err := BuildLedger(members, records)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range payments {
		for _, name := range []string{p.From, p.To} {
			if _, ok := l.Canonical(name); !ok {
				return nil, nil, fmt.Errorf("payment %s: %w", p.ID,
					invalid(-1, "%s is not a member of the group", strings.TrimSpace(name)))
			}
		}
		if err := l.AddTransfer(p.From, p.To, p.Amount); err != nil {
			return nil, nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}

	balances, err := CalculateBalances(l)
	if err != nil {
		return nil, nil, err
	}

	settlements, err := Settle(balances)
	if err != nil {
		return nil, nil, err
	}
	return balances, settlements, nil
}
