// Package models contains domain entities and business models for the game backend
package models

import (
	"time"
)

// Account is a player identity with credentials and a currency balance.
// The table keeps the original `user` schema: pk, username, password,
// is_admin, money.
type Account struct {
	ID           uint   `gorm:"column:pk;primaryKey" json:"id"`
	Username     string `gorm:"column:username;size:64;not null;uniqueIndex:uk_user_username" json:"username"`
	PasswordHash string `gorm:"column:password;size:64;not null" json:"-"` // Never serialize credential
	IsAdmin      *bool  `gorm:"column:is_admin;default:false" json:"is_admin"`
	Balance      int64  `gorm:"column:money;not null;default:0" json:"money"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Ships []OwnedShip `gorm:"foreignKey:AccountID" json:"-"`
}

func (Account) TableName() string {
	return "user"
}

// AccountFilter represents filter criteria for account queries
type AccountFilter struct {
	ID            *uint
	Username      *string
	IsAdmin       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CanAfford reports whether the account balance covers the given cost.
func (a *Account) CanAfford(cost int64) bool {
	return a.Balance >= cost
}
