package calculator

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

func mustBalances(t *testing.T, members []string, records []models.ExpenseRecord) []models.MemberBalance {
	t.Helper()
	l, err := BuildLedger(members, records)
	if err != nil {
		t.Fatalf("BuildLedger() error = %v", err)
	}
	balances, err := CalculateBalances(l)
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}
	return balances
}

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		records []models.ExpenseRecord
		want    []models.MemberBalance
	}{
		{
			name:    "two people simple split",
			members: []string{"A", "B"},
			records: []models.ExpenseRecord{
				{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"},
			},
			want: []models.MemberBalance{
				{Name: "A", TotalPaid: money.FromMajor(3000), FairShare: money.FromMajor(1500), NetBalance: money.FromMajor(1500)},
				{Name: "B", TotalPaid: 0, FairShare: money.FromMajor(1500), NetBalance: money.FromMajor(-1500)},
			},
		},
		{
			name:    "three people asymmetric payments",
			members: []string{"A", "B", "C"},
			records: []models.ExpenseRecord{
				{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"},
				{Description: "Dinner", Amount: money.FromMajor(1500), PaidBy: "B"},
				{Description: "Taxi", Amount: money.FromMajor(900), PaidBy: "C"},
				{Description: "Snacks", Amount: money.FromMajor(600), PaidBy: "C"},
			},
			want: []models.MemberBalance{
				{Name: "A", TotalPaid: money.FromMajor(3000), FairShare: money.FromMajor(2000), NetBalance: money.FromMajor(1000)},
				{Name: "B", TotalPaid: money.FromMajor(1500), FairShare: money.FromMajor(2000), NetBalance: money.FromMajor(-500)},
				{Name: "C", TotalPaid: money.FromMajor(1500), FairShare: money.FromMajor(2000), NetBalance: money.FromMajor(-500)},
			},
		},
		{
			name: "remainder lands on payer",
			records: []models.ExpenseRecord{
				{Description: "Dinner", Amount: money.FromMajor(1000), PaidBy: "B", Split: models.Split{
					Kind: models.SplitAmong, Names: []string{"A", "B", "C"},
				}},
			},
			want: []models.MemberBalance{
				{Name: "B", TotalPaid: money.FromMajor(1000), FairShare: money.FromMajor(333.34), NetBalance: money.FromMajor(666.66)},
				{Name: "A", TotalPaid: 0, FairShare: money.FromMajor(333.33), NetBalance: money.FromMajor(-333.33)},
				{Name: "C", TotalPaid: 0, FairShare: money.FromMajor(333.33), NetBalance: money.FromMajor(-333.33)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustBalances(t, tt.members, tt.records)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("balance[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCalculateBalances_Empty(t *testing.T) {
	got := mustBalances(t, nil, nil)
	if len(got) != 0 {
		t.Errorf("expected no balances, got %v", got)
	}
}

func TestCalculateGroupBalances_WithPayments(t *testing.T) {
	records := []models.ExpenseRecord{
		{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"},
	}
	payments := []models.Payment{
		{ID: "p1", From: "B", To: "A", Amount: money.FromMajor(1000)},
	}

	balances, settlements, err := CalculateGroupBalances([]string{"A", "B"}, records, payments)
	if err != nil {
		t.Fatalf("CalculateGroupBalances() error = %v", err)
	}
	if balances[1].NetBalance != money.FromMajor(-500) {
		t.Errorf("B net = %s, want -500.00", balances[1].NetBalance)
	}
	if len(settlements) != 1 || settlements[0].Amount != money.FromMajor(500) {
		t.Errorf("settlements = %+v, want one B->A 500.00", settlements)
	}

	_, _, err = CalculateGroupBalances([]string{"A", "B"}, records, []models.Payment{{ID: "bad", From: "A", To: "A", Amount: 1}})
	if err == nil {
		t.Error("expected error for payment to self")
	}
}

func TestCalculateGroupBalances_PaymentFromStranger(t *testing.T) {
	records := []models.ExpenseRecord{
		{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"},
	}

	for _, p := range []models.Payment{
		{ID: "p1", From: "Z", To: "A", Amount: money.FromMajor(100)},
		{ID: "p2", From: "B", To: " z ", Amount: money.FromMajor(100)},
	} {
		_, _, err := CalculateGroupBalances([]string{"A", "B"}, records, []models.Payment{p})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("payment %s: error = %v, want *ValidationError", p.ID, err)
		}
		if !strings.Contains(err.Error(), "is not a member of the group") {
			t.Errorf("payment %s: error = %q", p.ID, err.Error())
		}
	}
}

func TestCalculateBalances_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		records []models.ExpenseRecord
	}{
		{
			name: "one payer",
			records: []models.ExpenseRecord{
				{Description: "Big", Amount: math.MaxInt64/2 + 1, PaidBy: "A"},
				{Description: "Bigger", Amount: math.MaxInt64/2 + 1, PaidBy: "A"},
			},
		},
		{
			name: "across payers",
			records: []models.ExpenseRecord{
				{Description: "Big", Amount: math.MaxInt64/2 + 1, PaidBy: "A", Split: models.Split{Kind: models.SplitAmong, Names: []string{"A"}}},
				{Description: "Bigger", Amount: math.MaxInt64/2 + 1, PaidBy: "B", Split: models.Split{Kind: models.SplitAmong, Names: []string{"B"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := BuildLedger([]string{"A", "B"}, tt.records)
			if err != nil {
				t.Fatalf("BuildLedger() error = %v", err)
			}
			_, err = CalculateBalances(l)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CalculateBalances() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), "out of range") {
				t.Errorf("error = %q, want overflow", err.Error())
			}
		})
	}
}

// randomRecords builds a reproducible mix of equal, subset and weighted splits.
func randomRecords(r *rand.Rand, members []string) []models.ExpenseRecord {
	n := 1 + r.IntN(10)
	records := make([]models.ExpenseRecord, n)
	for i := range records {
		rec := models.ExpenseRecord{
			Description: "expense",
			Amount:      money.Money(1 + r.Int64N(500000)),
			PaidBy:      members[r.IntN(len(members))],
		}
		switch r.IntN(3) {
		case 1:
			k := 1 + r.IntN(len(members))
			rec.Split = models.Split{Kind: models.SplitAmong, Names: members[:k]}
		case 2:
			shares := make([]models.Share, len(members))
			for j, m := range members {
				shares[j] = models.Share{Name: m, Weight: float64(1 + r.IntN(5))}
			}
			rec.Split = models.Split{Kind: models.SplitWeights, Shares: shares}
		}
		records[i] = rec
	}
	return records
}

func TestCalculateBalances_ZeroSum(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	names := []string{"A", "B", "C", "D", "E", "F"}

	for run := 0; run < 200; run++ {
		members := names[:2+r.IntN(len(names)-1)]
		records := randomRecords(r, members)

		balances := mustBalances(t, members, records)
		var sum money.Money
		for _, b := range balances {
			sum += b.NetBalance
			if b.NetBalance != b.TotalPaid-b.FairShare {
				t.Fatalf("run %d: %s net %s != paid %s - share %s", run, b.Name, b.NetBalance, b.TotalPaid, b.FairShare)
			}
		}
		if sum != 0 {
			t.Fatalf("run %d: net balances sum to %s, want 0", run, sum)
		}
	}
}
