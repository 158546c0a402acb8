package calculator

import (
	"testing"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
)

func TestVerify(t *testing.T) {
	members := []string{"A", "B"}
	records := []models.ExpenseRecord{{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"}}

	t.Run("matching results", func(t *testing.T) {
		balances, settlements, err := CalculateGroupBalances(members, records, nil)
		if err != nil {
			t.Fatalf("CalculateGroupBalances() error = %v", err)
		}
		mismatches, err := Verify(members, records, balances, settlements)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if len(mismatches) != 0 {
			t.Errorf("expected no mismatches, got %+v", mismatches)
		}
	})

	t.Run("drifted values", func(t *testing.T) {
		balances := []models.MemberBalance{
			{Name: "a", TotalPaid: money.FromMajor(3000), FairShare: money.FromMajor(1500), NetBalance: money.FromMajor(1500)},
			{Name: "B", TotalPaid: 0, FairShare: money.FromMajor(1500.01), NetBalance: money.FromMajor(-1500.01)},
		}
		settlements := []models.Settlement{{From: "B", To: "A", Amount: money.FromMajor(1500.01)}}

		mismatches, err := Verify(members, records, balances, settlements)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		fields := make(map[string]bool)
		for _, m := range mismatches {
			fields[m.Field] = true
		}
		for _, want := range []string{"B.fair_share", "B.net_balance", "settlements[0]"} {
			if !fields[want] {
				t.Errorf("missing mismatch for %s in %+v", want, mismatches)
			}
		}
		if fields["A.total_paid"] {
			t.Error("A matched case-insensitively and should not be reported")
		}
	})

	t.Run("missing member and settlement count", func(t *testing.T) {
		mismatches, err := Verify(members, records, []models.MemberBalance{{Name: "A", TotalPaid: money.FromMajor(3000), FairShare: money.FromMajor(1500), NetBalance: money.FromMajor(1500)}}, nil)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if len(mismatches) != 2 {
			t.Errorf("expected 2 mismatches, got %+v", mismatches)
		}
	})
}
