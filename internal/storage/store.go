// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/fairshare/internal/models"
)

// ErrNotFound is returned when a group or payment does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and payment storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its members and expenses.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID, expenses in entry order.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns the groups created by the given user, newest first.
	ListGroups(ctx context.Context, createdBy string) ([]*models.GroupSummary, error)

	// DeleteGroup removes a group, its expenses and its payments.
	// Returns ErrNotFound if the group does not exist.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreatePayment records a settlement that was actually paid.
	// The payment.ID and payment.CreatedAt fields are populated by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByGroup returns a group's payments in the order they were
	// recorded.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	// DeletePayment removes a recorded payment.
	// Returns ErrNotFound if the payment does not exist.
	DeletePayment(ctx context.Context, paymentID string) error

	// Close releases any resources held by the store.
	Close() error
}
