// Package dto contains data transfer objects for API requests and responses with validation tags
package dto

// BuyShipRequest represents the purchase request payload. The catalog
// entry may be addressed by ID or by name; exactly one is required.
// Name is the display name for the new ship and defaults to the
// catalog name when omitted.
type BuyShipRequest struct {
	ShipTypeID *uint   `json:"ship_type_id" validate:"omitempty,min=1"`
	ShipName   *string `json:"ship_name" validate:"omitempty,min=1,max=64"`
	Name       string  `json:"name" validate:"omitempty,min=1,max=64"`
}

// RenameShipRequest represents the rename request payload
type RenameShipRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// ShipTypeDTO is the public view of one catalog entry
type ShipTypeDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// OwnedShipDTO is the public view of one owned ship
type OwnedShipDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ShipTypeID uint   `json:"ship_type_id"`
	ShipType   string `json:"ship_type"`
	Cost       int64  `json:"cost"`
	AcquiredAt string `json:"acquired_at"`
}

// CatalogResponse represents the ship catalog response payload
type CatalogResponse struct {
	Ships []ShipTypeDTO `json:"ships"`
}

// FleetResponse represents the owned fleet response payload
type FleetResponse struct {
	Ships []OwnedShipDTO `json:"ships"`
}

// BuyShipResponse represents the purchase response payload
type BuyShipResponse struct {
	Ship    OwnedShipDTO `json:"ship"`
	Balance int64        `json:"money"`
}

// RenameShipResponse represents the rename response payload
type RenameShipResponse struct {
	Ship OwnedShipDTO `json:"ship"`
}

// SellShipResponse represents the sale response payload
type SellShipResponse struct {
	Refund  int64 `json:"refund"`
	Balance int64 `json:"money"`
}
