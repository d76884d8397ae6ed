// Package models contains domain entities and business models for the game backend
package models

import (
	"time"
)

// OwnedShip is one ShipType instance owned by one Account, under a
// user-chosen display name. The table keeps the original `user_ship`
// schema: pk, name, user, ship.
type OwnedShip struct {
	ID         uint     `gorm:"column:pk;primaryKey" json:"id"`
	Name       string   `gorm:"column:name;size:64;not null" json:"name"`
	AccountID  uint     `gorm:"column:user;not null;index:idx_user_ship_user" json:"user"`
	Account    Account  `gorm:"foreignKey:AccountID;references:ID" json:"-"`
	ShipTypeID uint     `gorm:"column:ship;not null;index:idx_user_ship_ship" json:"ship"`
	ShipType   ShipType `gorm:"foreignKey:ShipTypeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (OwnedShip) TableName() string {
	return "user_ship"
}

// OwnedShipFilter represents filter criteria for ownership ledger queries
type OwnedShipFilter struct {
	ID         *uint
	Name       *string
	AccountID  *uint
	ShipTypeID *uint
}

// OwnedBy reports whether the ship belongs to the given account.
func (s *OwnedShip) OwnedBy(accountID uint) bool {
	return s.AccountID == accountID
}
