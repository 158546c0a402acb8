package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func goaTrip() *models.Group {
	return &models.Group{
		Name:        "Goa trip",
		Description: "I paid 3000 for hotel, B paid 1500 for dinner, C paid 900 for taxi",
		Members:     []string{"A", "B", "C"},
		CreatedBy:   "user-1",
		Expenses: []models.ExpenseRecord{
			{Description: "Hotel", Amount: money.FromMajor(3000), PaidBy: "A"},
			{
				Description: "Dinner",
				Amount:      money.FromMajor(1500),
				PaidBy:      "B",
				Split:       models.Split{Kind: models.SplitAmong, Names: []string{"A", "B"}},
			},
			{
				Description: "Taxi",
				Amount:      money.FromMajor(900),
				PaidBy:      "C",
				Split: models.Split{Kind: models.SplitAmounts, Shares: []models.Share{
					{Name: "A", Amount: money.FromMajor(300)},
					{Name: "C", Amount: money.FromMajor(600)},
				}},
			},
			{
				Description: "Fuel",
				Amount:      money.FromMajor(100),
				PaidBy:      "A",
				Split: models.Split{Kind: models.SplitWeights, Shares: []models.Share{
					{Name: "A", Weight: 1},
					{Name: "B", Weight: 2.5},
				}},
			},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := goaTrip()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup round-trips members and expenses in order", func(t *testing.T) {
		original := goaTrip()
		if err := store.CreateGroup(ctx, original); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		retrieved, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !reflect.DeepEqual(retrieved, original) {
			t.Errorf("GetGroup mismatch:\n got  %+v\n want %+v", retrieved, original)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateGroup rejects non-positive amounts", func(t *testing.T) {
		group := &models.Group{
			Members:  []string{"A"},
			Expenses: []models.ExpenseRecord{{Description: "Bad", Amount: 0, PaidBy: "A"}},
		}
		if err := store.CreateGroup(ctx, group); err == nil {
			t.Fatal("Expected error for zero amount")
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected rolled back group to be absent, got %v", err)
		}
	})
}

func TestListGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := goaTrip()
	first.CreatedAt = 100
	second := &models.Group{Name: "Dinner", Members: []string{"X", "Y"}, CreatedBy: "user-1", CreatedAt: 200}
	other := &models.Group{Name: "Someone else's", CreatedBy: "user-2"}
	for _, g := range []*models.Group{first, second, other} {
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
	}

	groups, err := store.ListGroups(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].ID != second.ID || groups[1].ID != first.ID {
		t.Errorf("Expected newest first, got %s then %s", groups[0].Name, groups[1].Name)
	}
	if groups[1].MemberCount != 3 || groups[1].ExpenseCount != 4 {
		t.Errorf("Unexpected counts: %+v", groups[1])
	}
	if groups[0].MemberCount != 2 || groups[0].ExpenseCount != 0 {
		t.Errorf("Unexpected counts: %+v", groups[0])
	}
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := goaTrip()
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	p1 := &models.Payment{GroupID: group.ID, From: "B", To: "A", Amount: money.FromMajor(500), CreatedBy: "user-1", CreatedAt: 10}
	p2 := &models.Payment{GroupID: group.ID, From: "C", To: "A", Amount: money.FromMajor(250.5), Note: "UPI", CreatedAt: 20}
	for _, p := range []*models.Payment{p2, p1} {
		if err := store.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected payment ID to be generated")
		}
	}

	payments, err := store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByGroup failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(payments))
	}
	if !reflect.DeepEqual(payments[0], p1) || !reflect.DeepEqual(payments[1], p2) {
		t.Errorf("Unexpected payments: %+v, %+v", payments[0], payments[1])
	}

	t.Run("payment for unknown group is rejected", func(t *testing.T) {
		err := store.CreatePayment(ctx, &models.Payment{GroupID: "missing", From: "A", To: "B", Amount: 1})
		if err == nil {
			t.Error("Expected foreign key violation")
		}
	})

	t.Run("DeletePayment", func(t *testing.T) {
		if err := store.DeletePayment(ctx, p1.ID); err != nil {
			t.Fatalf("DeletePayment failed: %v", err)
		}
		if err := store.DeletePayment(ctx, p1.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("DeleteGroup cascades to payments", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		payments, err := store.ListPaymentsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListPaymentsByGroup failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("Expected payments to be deleted, got %d", len(payments))
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	group := goaTrip()
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetGroup(context.Background(), group.ID); err != nil {
		t.Errorf("GetGroup after reopen failed: %v", err)
	}
}

func TestGenerateName(t *testing.T) {
	tests := []struct {
		members      []string
		wantContains string
	}{
		{[]string{}, "Split -"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.wantContains, func(t *testing.T) {
			got := generateName(tt.members)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("generateName(%v) = %q, want to contain %q", tt.members, got, tt.wantContains)
			}
		})
	}
}
