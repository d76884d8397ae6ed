// Package businessflow contains the core business logic and use cases for the game backend
package businessflow

import (
	"time"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/utils"
)

// Context keys for request-scoped values
type contextKey string

const (
	RequestIDKey contextKey = "X-Request-ID"
	EndpointKey  contextKey = "endpoint"
)

// ClientMetadata holds client-related information for logging and session tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAccountDTO converts an account model to its public view
func ToAccountDTO(account models.Account) dto.AccountDTO {
	return dto.AccountDTO{
		ID:        account.ID,
		Username:  account.Username,
		IsAdmin:   utils.IsTrue(account.IsAdmin),
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

// ToShipTypeDTO converts a catalog entry to its public view
func ToShipTypeDTO(shipType models.ShipType) dto.ShipTypeDTO {
	return dto.ShipTypeDTO{
		ID:   shipType.ID,
		Name: shipType.Name,
		Cost: shipType.Cost,
	}
}

// ToOwnedShipDTO converts an ownership row to its public view. The
// ShipType association must be loaded.
func ToOwnedShipDTO(ship models.OwnedShip) dto.OwnedShipDTO {
	return dto.OwnedShipDTO{
		ID:         ship.ID,
		Name:       ship.Name,
		ShipTypeID: ship.ShipTypeID,
		ShipType:   ship.ShipType.Name,
		Cost:       ship.ShipType.Cost,
		AcquiredAt: ship.CreatedAt.Format(time.RFC3339),
	}
}
