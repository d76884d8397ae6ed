// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"gorm.io/gorm"
)

// OwnedShipRepositoryImpl implements OwnedShipRepository interface
type OwnedShipRepositoryImpl struct {
	*BaseRepository[models.OwnedShip, models.OwnedShipFilter]
}

// NewOwnedShipRepository creates a new ownership ledger repository instance
func NewOwnedShipRepository(db *gorm.DB) OwnedShipRepository {
	return &OwnedShipRepositoryImpl{
		BaseRepository: NewBaseRepository[models.OwnedShip, models.OwnedShipFilter](db),
	}
}

// ListByAccount returns every ship the account owns, oldest first, with
// the catalog entry preloaded for cost lookups.
func (r *OwnedShipRepositoryImpl) ListByAccount(ctx context.Context, accountID uint) ([]*models.OwnedShip, error) {
	db := r.getDB(ctx)

	var ships []*models.OwnedShip
	err := db.Preload("ShipType").
		Where("user = ?", accountID).
		Order("pk ASC").
		Find(&ships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ships for account %d: %w", accountID, err)
	}

	return ships, nil
}

// Rename updates the display name and returns the refreshed row so the
// caller can confirm the stored name.
func (r *OwnedShipRepositoryImpl) Rename(ctx context.Context, ownedShipID uint, newName string) (*models.OwnedShip, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return nil, err
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

	result := db.Model(&models.OwnedShip{}).Where("pk = ?", ownedShipID).Update("name", newName)
	if result.Error != nil {
		err = fmt.Errorf("failed to rename ship %d: %w", ownedShipID, result.Error)
		return nil, err
	}
	if result.RowsAffected == 0 {
		err = fmt.Errorf("ship %d not found", ownedShipID)
		return nil, err
	}

	var ship models.OwnedShip
	if err = db.First(&ship, ownedShipID).Error; err != nil {
		err = fmt.Errorf("failed to re-read ship %d after rename: %w", ownedShipID, err)
		return nil, err
	}

	return &ship, nil
}

// Remove deletes the ownership row. Returns false when no row matched,
// so double-sells surface as not-found instead of double refunds.
func (r *OwnedShipRepositoryImpl) Remove(ctx context.Context, ownedShipID uint) (bool, error) {
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

	result := db.Delete(&models.OwnedShip{}, ownedShipID)
	if result.Error != nil {
		err = fmt.Errorf("failed to remove ship %d: %w", ownedShipID, result.Error)
		return false, err
	}

	return result.RowsAffected == 1, nil
}

// ByFilter retrieves ownership rows matching the given filter
func (r *OwnedShipRepositoryImpl) ByFilter(ctx context.Context, filter models.OwnedShipFilter, orderBy string, limit, offset int) ([]*models.OwnedShip, error) {
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

	var ships []*models.OwnedShip
	err := query.Find(&ships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find owned ships by filter: %w", err)
	}

	return ships, nil
}

// Count returns the number of ownership rows matching the filter
func (r *OwnedShipRepositoryImpl) Count(ctx context.Context, filter models.OwnedShipFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.OwnedShip{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count owned ships: %w", err)
	}

	return count, nil
}

// Exists checks if any ownership row matches the filter
func (r *OwnedShipRepositoryImpl) Exists(ctx context.Context, filter models.OwnedShipFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter criteria to the query
func (r *OwnedShipRepositoryImpl) applyFilter(query *gorm.DB, filter models.OwnedShipFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("pk = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.AccountID != nil {
		query = query.Where("user = ?", *filter.AccountID)
	}
	if filter.ShipTypeID != nil {
		query = query.Where("ship = ?", *filter.ShipTypeID)
	}
	return query
}
