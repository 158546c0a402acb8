package calculator

import (
	"fmt"

	"github.com/mmynk/fairshare/internal/models"
)

// Mismatch is one difference between values computed by another
// implementation and the values computed here.
type Mismatch struct {
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

// Verify recomputes balances and settlements for the given expenses and
// reports every value the claimed results disagree on. Amounts must match to
// the minor unit; settlements must match in order.
func Verify(members []string, records []models.ExpenseRecord, balances []models.MemberBalance, settlements []models.Settlement) ([]Mismatch, error) {
	wantBalances, wantSettlements, err := CalculateGroupBalances(members, records, nil)
	if err != nil {
		return nil, err
	}

	var out []Mismatch
	got := make(map[string]models.MemberBalance, len(balances))
	for _, b := range balances {
		got[key(b.Name)] = b
	}
	for _, want := range wantBalances {
		b, ok := got[key(want.Name)]
		if !ok {
			out = append(out, Mismatch{Field: want.Name, Want: "present", Got: "missing"})
			continue
		}
		delete(got, key(want.Name))
		if b.TotalPaid != want.TotalPaid {
			out = append(out, Mismatch{Field: want.Name + ".total_paid", Want: want.TotalPaid.String(), Got: b.TotalPaid.String()})
		}
		if b.FairShare != want.FairShare {
			out = append(out, Mismatch{Field: want.Name + ".fair_share", Want: want.FairShare.String(), Got: b.FairShare.String()})
		}
		if b.NetBalance != want.NetBalance {
			out = append(out, Mismatch{Field: want.Name + ".net_balance", Want: want.NetBalance.String(), Got: b.NetBalance.String()})
		}
	}
	for _, b := range balances {
		if _, extra := got[key(b.Name)]; extra {
			out = append(out, Mismatch{Field: b.Name, Want: "absent", Got: "present"})
		}
	}

	if len(settlements) != len(wantSettlements) {
		out = append(out, Mismatch{
			Field: "settlements",
			Want:  fmt.Sprintf("%d entries", len(wantSettlements)),
			Got:   fmt.Sprintf("%d entries", len(settlements)),
		})
		return out, nil
	}
	for i, want := range wantSettlements {
		s := settlements[i]
		if key(s.From) != key(want.From) || key(s.To) != key(want.To) || s.Amount != want.Amount {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("settlements[%d]", i),
				Want:  formatSettlement(want),
				Got:   formatSettlement(s),
			})
		}
	}
	return out, nil
}

func formatSettlement(s models.Settlement) string {
	return fmt.Sprintf("%s -> %s %s", s.From, s.To, s.Amount)
}
