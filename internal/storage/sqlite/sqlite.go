// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Foreign keys are per connection, so enable them in the DSN for every
	// connection the pool opens.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGroup persists a new group with its members and expenses.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	if group.Name == "" {
		group.Name = generateName(group.Members)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, created_at, created_by) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.CreatedAt, group.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, name := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)",
			group.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i, rec := range group.Expenses {
		expenseID := uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expenses (id, group_id, position, description, amount, paid_by, split_kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			expenseID, group.ID, i, rec.Description, int64(rec.Amount), rec.PaidBy, string(rec.Split.Kind),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, share := range sharesOf(rec.Split) {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_shares (expense_id, position, name, amount, weight) VALUES (?, ?, ?, ?, ?)",
				expenseID, j, share.Name, int64(share.Amount), share.Weight,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including members and expenses.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, created_by FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt, &group.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	expenses, err := s.getExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Expenses = expenses

	return group, nil
}

func (s *SQLiteStore) getExpenses(ctx context.Context, groupID string) ([]models.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, paid_by, split_kind
		 FROM expenses WHERE group_id = ? ORDER BY position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var ids []string
	var expenses []models.ExpenseRecord
	for rows.Next() {
		var (
			id     string
			rec    models.ExpenseRecord
			amount int64
			kind   string
		)
		if err := rows.Scan(&id, &rec.Description, &amount, &rec.PaidBy, &kind); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		rec.Amount = money.Money(amount)
		rec.Split.Kind = models.SplitKind(kind)
		ids = append(ids, id)
		expenses = append(expenses, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i, id := range ids {
		shares, err := s.getShares(ctx, id)
		if err != nil {
			return nil, err
		}
		if expenses[i].Split.Kind == models.SplitAmong {
			for _, sh := range shares {
				expenses[i].Split.Names = append(expenses[i].Split.Names, sh.Name)
			}
			continue
		}
		expenses[i].Split.Shares = shares
	}

	return expenses, nil
}

func (s *SQLiteStore) getShares(ctx context.Context, expenseID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, amount, weight FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var (
			share  models.Share
			amount int64
		)
		if err := rows.Scan(&share.Name, &amount, &share.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		share.Amount = money.Money(amount)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}

// ListGroups returns summaries of the groups created by a user, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context, createdBy string) ([]*models.GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.created_at,
		        (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.id),
		        (SELECT COUNT(*) FROM expenses e WHERE e.group_id = g.id)
		 FROM groups g
		 WHERE g.created_by = ?
		 ORDER BY g.created_at DESC, g.rowid DESC`,
		createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.GroupSummary
	for rows.Next() {
		g := &models.GroupSummary{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.MemberCount, &g.ExpenseCount); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// DeleteGroup removes a group. Members, expenses and payments cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

// sharesOf flattens a split into rows. SplitAmong names are stored as shares
// without an amount or weight.
func sharesOf(split models.Split) []models.Share {
	if split.Kind != models.SplitAmong {
		return split.Shares
	}
	shares := make([]models.Share, len(split.Names))
	for i, name := range split.Names {
		shares[i] = models.Share{Name: name}
	}
	return shares
}

// generateName creates an auto-generated group name from its members.
func generateName(members []string) string {
	if len(members) == 0 {
		return fmt.Sprintf("Split - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(members) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(members, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(members[:2], ", "),
		len(members)-2,
	)
}
