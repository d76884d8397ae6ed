// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"gorm.io/gorm"
)

// ShipTypeRepositoryImpl implements ShipTypeRepository interface
type ShipTypeRepositoryImpl struct {
	*BaseRepository[models.ShipType, models.ShipTypeFilter]
}

// NewShipTypeRepository creates a new ship catalog repository instance
func NewShipTypeRepository(db *gorm.DB) ShipTypeRepository {
	return &ShipTypeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ShipType, models.ShipTypeFilter](db),
	}
}

// ByName retrieves a catalog entry by exact name
func (r *ShipTypeRepositoryImpl) ByName(ctx context.Context, name string) (*models.ShipType, error) {
	db := r.getDB(ctx)

	var shipType models.ShipType
	err := db.Where("name = ?", name).First(&shipType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ship type by name: %w", err)
	}

	return &shipType, nil
}

// ListAll returns the full catalog in insertion order
func (r *ShipTypeRepositoryImpl) ListAll(ctx context.Context) ([]*models.ShipType, error) {
	return r.ByFilter(ctx, models.ShipTypeFilter{}, "pk ASC", 0, 0)
}

// ByFilter retrieves catalog entries matching the given filter
func (r *ShipTypeRepositoryImpl) ByFilter(ctx context.Context, filter models.ShipTypeFilter, orderBy string, limit, offset int) ([]*models.ShipType, error) {
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

	var shipTypes []*models.ShipType
	err := query.Find(&shipTypes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ship types by filter: %w", err)
	}

	return shipTypes, nil
}

// Count returns the number of catalog entries matching the filter
func (r *ShipTypeRepositoryImpl) Count(ctx context.Context, filter models.ShipTypeFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := r.applyFilter(db.Model(&models.ShipType{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count ship types: %w", err)
	}

	return count, nil
}

// Exists checks if any catalog entry matches the filter
func (r *ShipTypeRepositoryImpl) Exists(ctx context.Context, filter models.ShipTypeFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter criteria to the query
func (r *ShipTypeRepositoryImpl) applyFilter(query *gorm.DB, filter models.ShipTypeFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("pk = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.CostAtMost != nil {
		query = query.Where("cost <= ?", *filter.CostAtMost)
	}
	return query
}
