package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/storage"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var note any
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_member, to_member, amount, created_at, created_by, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.From, payment.To,
		int64(payment.Amount), payment.CreatedAt, payment.CreatedBy, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPaymentsByGroup retrieves all payments for a group, oldest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_member, to_member, amount, created_at, created_by, note
		 FROM payments WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var (
			amount int64
			note   sql.NullString
		)
		if err := rows.Scan(&payment.ID, &payment.GroupID, &payment.From, &payment.To,
			&amount, &payment.CreatedAt, &payment.CreatedBy, &note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Amount = money.Money(amount)
		if note.Valid {
			payment.Note = note.String
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}
