// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/Barkerprooks/void-voyager-backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AccountRepository defines operations for player accounts
type AccountRepository interface {
	Repository[models.Account, models.AccountFilter]
	ByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateBalance(ctx context.Context, accountID uint, balance int64) error
	// DebitBalance atomically subtracts amount from the account balance,
	// refusing the debit when it would go negative. Returns true when the
	// debit was applied.
	DebitBalance(ctx context.Context, accountID uint, amount int64) (bool, error)
	CreditBalance(ctx context.Context, accountID uint, amount int64) error
}

// ShipTypeRepository defines operations for the ship catalog
type ShipTypeRepository interface {
	Repository[models.ShipType, models.ShipTypeFilter]
	ByName(ctx context.Context, name string) (*models.ShipType, error)
	ListAll(ctx context.Context) ([]*models.ShipType, error)
}

// OwnedShipRepository defines operations for the ownership ledger
type OwnedShipRepository interface {
	Repository[models.OwnedShip, models.OwnedShipFilter]
	ListByAccount(ctx context.Context, accountID uint) ([]*models.OwnedShip, error)
	Rename(ctx context.Context, ownedShipID uint, newName string) (*models.OwnedShip, error)
	Remove(ctx context.Context, ownedShipID uint) (bool, error)
}

// SessionRepository binds opaque session tokens to account IDs. Session
// state is transient: implementations are free to drop every binding on
// process restart.
type SessionRepository interface {
	Bind(ctx context.Context, accountID uint) (*models.Session, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Unbind(ctx context.Context, token string) (bool, error)
	UnbindAccount(ctx context.Context, accountID uint) (int, error)
}
