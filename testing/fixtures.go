// Package testing provides test utilities and database setup for testing the game backend
package testing

import (
	"fmt"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/utils"
)

// CreateTestAccount inserts an account with the given username, a
// password of "secret123", and the given balance
func (tdb *TestDB) CreateTestAccount(username string, balance int64) (*models.Account, error) {
	account := &models.Account{
		Username:     username,
		PasswordHash: utils.HashPassword("secret123"),
		IsAdmin:      utils.ToPtr(false),
		Balance:      balance,
	}
	if err := tdb.DB.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create test account %s: %w", username, err)
	}
	return account, nil
}

// CreateTestShipType inserts one catalog entry
func (tdb *TestDB) CreateTestShipType(name string, cost int64) (*models.ShipType, error) {
	shipType := &models.ShipType{
		Name: name,
		Cost: cost,
	}
	if err := tdb.DB.Create(shipType).Error; err != nil {
		return nil, fmt.Errorf("failed to create test ship type %s: %w", name, err)
	}
	return shipType, nil
}

// CreateTestOwnedShip inserts one ownership row
func (tdb *TestDB) CreateTestOwnedShip(name string, accountID, shipTypeID uint) (*models.OwnedShip, error) {
	ship := &models.OwnedShip{
		Name:       name,
		AccountID:  accountID,
		ShipTypeID: shipTypeID,
	}
	if err := tdb.DB.Create(ship).Error; err != nil {
		return nil, fmt.Errorf("failed to create test owned ship %s: %w", name, err)
	}
	return ship, nil
}

// SeedTestCatalog inserts a small default catalog
func (tdb *TestDB) SeedTestCatalog() ([]*models.ShipType, error) {
	entries := []struct {
		name string
		cost int64
	}{
		{"Sparrow", 150},
		{"Lancer", 400},
		{"Corsair", 700},
	}

	shipTypes := make([]*models.ShipType, 0, len(entries))
	for _, entry := range entries {
		shipType, err := tdb.CreateTestShipType(entry.name, entry.cost)
		if err != nil {
			return nil, err
		}
		shipTypes = append(shipTypes, shipType)
	}
	return shipTypes, nil
}
