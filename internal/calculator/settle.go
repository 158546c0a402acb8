package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// party is a debtor or creditor in the settlement queues. amount is always
// positive: what the debtor still owes or the creditor is still owed.
type party struct {
	name   string
	amount money.Money
}

// Settle turns net balances into a list of payments using greedy largest-pair
// matching.
//
// Debtors are queued most-negative first and creditors most-positive first;
// equal balances keep their input order. The head debtor pays the head
// creditor min(owes, owed), and whoever reaches zero leaves its queue. The
// result has at most len(balances)-1 entries, each strictly positive. It is
// deterministic but not guaranteed to be the global minimum.
func Settle(balances []models.MemberBalance) ([]models.Settlement, error) {
	var (
		debtors   []party
		creditors []party
		total     money.Money
	)
	for _, b := range balances {
		var err error
		if total, err = total.Add(b.NetBalance); err != nil {
			return nil, invalid(-1, "net balances: %v", err)
		}
		switch {
		case b.NetBalance < 0:
			debtors = append(debtors, party{name: b.Name, amount: -b.NetBalance})
		case b.NetBalance > 0:
			creditors = append(creditors, party{name: b.Name, amount: b.NetBalance})
		}
	}
	if total != 0 {
		return nil, invalid(-1, "net balances sum to %s, expected 0.00", total)
	}

	largestFirst := func(a, b party) int { return cmp.Compare(b.amount, a.amount) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]
		transfer := min(d.amount, c.amount)

		settlements = append(settlements, models.Settlement{
			From:   d.name,
			To:     c.name,
			Amount: transfer,
		})

		d.amount -= transfer
		c.amount -= transfer
		if d.amount == 0 {
			i++
		}
		if c.amount == 0 {
			j++
		}
	}
	return settlements, nil
}

// ApplySettlements returns the balances after every settlement has been paid.
// Each payment counts as an expense paid by From and owed entirely by To.
func ApplySettlements(balances []models.MemberBalance, settlements []models.Settlement) ([]models.MemberBalance, error) {
	out := slices.Clone(balances)
	pos := make(map[string]int, len(out))
	for i, b := range out {
		pos[key(b.Name)] = i
	}

	for _, s := range settlements {
		from, ok := pos[key(s.From)]
		if !ok {
			return nil, invalid(-1, "settlement from unknown member %s", s.From)
		}
		to, ok := pos[key(s.To)]
		if !ok {
			return nil, invalid(-1, "settlement to unknown member %s", s.To)
		}
		out[from].TotalPaid += s.Amount
		out[from].NetBalance += s.Amount
		out[to].FairShare += s.Amount
		out[to].NetBalance -= s.Amount
	}
	return out, nil
}
