// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"gorm.io/gorm"
)

// ErrDuplicateUsername is returned when an insert collides with the
// unique username index.
var ErrDuplicateUsername = errors.New("username already taken")

// AccountRepositoryImpl implements AccountRepository interface
type AccountRepositoryImpl struct {
	*BaseRepository[models.Account, models.AccountFilter]
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Account, models.AccountFilter](db),
	}
}

// Save inserts a new account, mapping unique index violations to
// ErrDuplicateUsername so callers can report the conflict.
func (r *AccountRepositoryImpl) Save(ctx context.Context, account *models.Account) error {
	err := r.BaseRepository.Save(ctx, account)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// ByUsername retrieves an account by exact username
func (r *AccountRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.Account, error) {
	db := r.getDB(ctx)

	var account models.Account
	err := db.Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account by username: %w", err)
	}

	return &account, nil
}

// UpdateBalance sets the account balance to an absolute value. Prefer
// DebitBalance/CreditBalance for request-time mutations.
func (r *AccountRepositoryImpl) UpdateBalance(ctx context.Context, accountID uint, balance int64) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Model(&models.Account{}).Where("pk = ?", accountID).Update("money", balance)
	if result.Error != nil {
		err = fmt.Errorf("failed to update balance: %w", result.Error)
		return err
	}
	if result.RowsAffected == 0 {
		err = fmt.Errorf("account %d not found", accountID)
		return err
	}

	return nil
}

// DebitBalance subtracts amount in a single conditional UPDATE. The
// balance guard lives in the WHERE clause so two concurrent purchases
// can never both succeed on the last credits.
func (r *AccountRepositoryImpl) DebitBalance(ctx context.Context, accountID uint, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Model(&models.Account{}).
		Where("pk = ? AND money >= ?", accountID, amount).
		Update("money", gorm.Expr("money - ?", amount))
	if result.Error != nil {
		err = fmt.Errorf("failed to debit balance: %w", result.Error)
		return false, err
	}

	return result.RowsAffected == 1, nil
}

// CreditBalance adds amount to the account balance
func (r *AccountRepositoryImpl) CreditBalance(ctx context.Context, accountID uint, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must be non-negative, got %d", amount)
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Model(&models.Account{}).
		Where("pk = ?", accountID).
		Update("money", gorm.Expr("money + ?", amount))
	if result.Error != nil {
		err = fmt.Errorf("failed to credit balance: %w", result.Error)
		return err
	}
	if result.RowsAffected == 0 {
		err = fmt.Errorf("account %d not found", accountID)
		return err
	}

	return nil
}

// ByFilter retrieves accounts matching the given filter
func (r *AccountRepositoryImpl) ByFilter(ctx context.Context, filter models.AccountFilter, orderBy string, limit, offset int) ([]*models.Account, error) {
	db := r.getDB(ctx)

	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var accounts []*models.Account
	err := query.Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by filter: %w", err)
	}

	return accounts, nil
}

// Count returns the number of accounts matching the filter
func (r *AccountRepositoryImpl) Count(ctx context.Context, filter models.AccountFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.Account{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	return count, nil
}

// Exists checks if any account matches the filter
func (r *AccountRepositoryImpl) Exists(ctx context.Context, filter models.AccountFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter criteria to the query
func (r *AccountRepositoryImpl) applyFilter(query *gorm.DB, filter models.AccountFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("pk = ?", *filter.ID)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}
	if filter.IsAdmin != nil {
		query = query.Where("is_admin = ?", *filter.IsAdmin)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}
