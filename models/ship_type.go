// Package models contains domain entities and business models for the game backend
package models

// ShipType is a catalog entry describing a purchasable ship. Rows are
// imported at bootstrap and never mutated at request time.
type ShipType struct {
	ID   uint   `gorm:"column:pk;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:64;not null;uniqueIndex:uk_ship_name" json:"name"`
	Cost int64  `gorm:"column:cost;not null;default:0" json:"cost"` // base price before market adjustments
}

func (ShipType) TableName() string {
	return "ship"
}

// ShipTypeFilter represents filter criteria for ship catalog queries
type ShipTypeFilter struct {
	ID         *uint
	Name       *string
	CostAtMost *int64
}
