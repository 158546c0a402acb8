package calculator

import (
	"strings"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

// Ledger is the normalized form of a list of expenses: every participant in
// first-seen order and, for every expense, the exact portion each
// participant is responsible for. Portions of an entry always sum to its
// amount.
type Ledger struct {
	Members []string
	Entries []Entry

	index map[string]int
}

// Entry is one normalized expense.
type Entry struct {
	Description string
	Amount      money.Money
	PaidBy      string
	Portions    []models.Portion
}

// key is the case-insensitive identity of a participant name.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newLedger() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// add registers a participant and returns its display name. The first
// spelling seen wins.
func (l *Ledger) add(name string) string {
	k := key(name)
	if i, ok := l.index[k]; ok {
		return l.Members[i]
	}
	display := strings.TrimSpace(name)
	l.index[k] = len(l.Members)
	l.Members = append(l.Members, display)
	return display
}

// Canonical returns the display name of a known participant.
func (l *Ledger) Canonical(name string) (string, bool) {
	i, ok := l.index[key(name)]
	if !ok {
		return "", false
	}
	return l.Members[i], true
}

func (l *Ledger) position(name string) int {
	i, ok := l.index[key(name)]
	if !ok {
		return -1
	}
	return i
}

// BuildLedger turns expense records into per-person obligations.
//
// The participant roster is members (optional) followed by every payer and
// splitter in record order. SplitAll records are divided over the whole
// roster, so they are resolved only after every record has been read.
//
// Rounding policy: leftover minor units of an equal split go to the payer;
// if the payer is not among the splitters they go to the first splitter.
func BuildLedger(members []string, records []models.ExpenseRecord) (*Ledger, error) {
	l := newLedger()
	for i, name := range members {
		if key(name) == "" {
			return nil, invalid(-1, "member %d has an empty name", i+1)
		}
		l.add(name)
	}

	// First pass: validate and collect the roster.
	for i, r := range records {
		if r.Amount <= 0 {
			return nil, invalid(i, "amount must be positive, got %s", r.Amount)
		}
		if key(r.PaidBy) == "" {
			return nil, invalid(i, "payer is required")
		}
		l.add(r.PaidBy)

		switch r.Split.Kind {
		case models.SplitAll:
		case models.SplitAmong:
			if len(r.Split.Names) == 0 {
				return nil, invalid(i, "split among needs at least one name")
			}
			for _, name := range r.Split.Names {
				if key(name) == "" {
					return nil, invalid(i, "split among has an empty name")
				}
				l.add(name)
			}
		case models.SplitAmounts, models.SplitWeights:
			if len(r.Split.Shares) == 0 {
				return nil, invalid(i, "%s split needs at least one share", r.Split.Kind)
			}
			for _, s := range r.Split.Shares {
				if key(s.Name) == "" {
					return nil, invalid(i, "share has an empty name")
				}
				l.add(s.Name)
			}
		default:
			return nil, invalid(i, "unknown split kind %q", r.Split.Kind)
		}
	}

	if len(records) > 0 && len(l.Members) == 0 {
		return nil, invalid(-1, "no participants")
	}

	// Second pass: resolve portions against the complete roster.
	for i, r := range records {
		portions, err := l.portions(i, r)
		if err != nil {
			return nil, err
		}
		payer, _ := l.Canonical(r.PaidBy)
		l.Entries = append(l.Entries, Entry{
			Description: r.Description,
			Amount:      r.Amount,
			PaidBy:      payer,
			Portions:    portions,
		})
	}
	return l, nil
}

func (l *Ledger) portions(i int, r models.ExpenseRecord) ([]models.Portion, error) {
	switch r.Split.Kind {
	case models.SplitAll:
		return equalPortions(r.Amount, l.Members, l.position(r.PaidBy)), nil

	case models.SplitAmong:
		names, err := l.distinct(i, r.Split.Names)
		if err != nil {
			return nil, err
		}
		return equalPortions(r.Amount, names, indexOf(names, l, r.PaidBy)), nil

	case models.SplitAmounts:
		names, err := l.distinctShares(i, r.Split.Shares)
		if err != nil {
			return nil, err
		}
		portions := make([]models.Portion, len(names))
		var sum money.Money
		for j, s := range r.Split.Shares {
			if s.Amount < 0 {
				return nil, invalid(i, "share of %s is negative", names[j])
			}
			portions[j] = models.Portion{Name: names[j], Amount: s.Amount}
			if sum, err = sum.Add(s.Amount); err != nil {
				return nil, invalid(i, "shares: %v", err)
			}
		}
		diff := r.Amount - sum
		if diff.Abs() > 1 {
			return nil, invalid(i, "shares sum to %s, expected %s", sum, r.Amount)
		}
		if diff != 0 {
			j := indexOf(names, l, r.PaidBy)
			if j < 0 {
				j = 0
			}
			portions[j].Amount += diff
		}
		return portions, nil

	case models.SplitWeights:
		names, err := l.distinctShares(i, r.Split.Shares)
		if err != nil {
			return nil, err
		}
		weights := make([]float64, len(names))
		for j, s := range r.Split.Shares {
			weights[j] = s.Weight
		}
		parts, err := r.Amount.Allocate(weights)
		if err != nil {
			return nil, invalid(i, "%v", err)
		}
		portions := make([]models.Portion, len(names))
		for j, name := range names {
			portions[j] = models.Portion{Name: name, Amount: parts[j]}
		}
		return portions, nil
	}
	return nil, invalid(i, "unknown split kind %q", r.Split.Kind)
}

// equalPortions divides amount over names; the leftover goes to names[favored],
// or to names[0] when favored is out of range.
func equalPortions(amount money.Money, names []string, favored int) []models.Portion {
	share, rem := amount.Divide(len(names))
	if favored < 0 || favored >= len(names) {
		favored = 0
	}
	portions := make([]models.Portion, len(names))
	for j, name := range names {
		portions[j] = models.Portion{Name: name, Amount: share}
	}
	portions[favored].Amount += rem
	return portions
}

// distinct maps names to display names and rejects duplicates.
func (l *Ledger) distinct(i int, names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for j, name := range names {
		k := key(name)
		if seen[k] {
			return nil, invalid(i, "%s is listed twice", strings.TrimSpace(name))
		}
		seen[k] = true
		out[j], _ = l.Canonical(name)
	}
	return out, nil
}

func (l *Ledger) distinctShares(i int, shares []models.Share) ([]string, error) {
	names := make([]string, len(shares))
	for j, s := range shares {
		names[j] = s.Name
	}
	return l.distinct(i, names)
}

// indexOf returns the position of name within names (display names), or -1.
func indexOf(names []string, l *Ledger, name string) int {
	want, ok := l.Canonical(name)
	if !ok {
		return -1
	}
	for j, n := range names {
		if n == want {
			return j
		}
	}
	return -1
}

// AddTransfer records money that moved directly from one participant to
// another, e.g. a settlement that was paid. It is treated as an expense paid
// by from and owed entirely by to.
func (l *Ledger) AddTransfer(from, to string, amount money.Money) error {
	if amount <= 0 {
		return invalid(-1, "transfer amount must be positive, got %s", amount)
	}
	if key(from) == "" || key(to) == "" {
		return invalid(-1, "transfer needs both a payer and a receiver")
	}
	if key(from) == key(to) {
		return invalid(-1, "transfer from %s to themselves", strings.TrimSpace(from))
	}
	payer := l.add(from)
	receiver := l.add(to)
	l.Entries = append(l.Entries, Entry{
		Description: "Settlement",
		Amount:      amount,
		PaidBy:      payer,
		Portions:    []models.Portion{{Name: receiver, Amount: amount}},
	})
	return nil
}
