// Package businessflow contains the core business logic and use cases for the game backend
package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	catalogCacheKey        = "catalog:ships"
	defaultCatalogCacheTTL = 5 * time.Minute
)

// FleetFlow handles the ship catalog and the buy/rename/sell lifecycle
type FleetFlow interface {
	Catalog(ctx context.Context) (*dto.CatalogResponse, error)
	ListFleet(ctx context.Context, accountID uint) (*dto.FleetResponse, error)
	BuyShip(ctx context.Context, accountID uint, req *dto.BuyShipRequest) (*dto.BuyShipResponse, error)
	RenameShip(ctx context.Context, accountID, ownedShipID uint, req *dto.RenameShipRequest) (*dto.RenameShipResponse, error)
	SellShip(ctx context.Context, accountID, ownedShipID uint) (*dto.SellShipResponse, error)
}

// FleetFlowImpl implements the fleet business flow
type FleetFlowImpl struct {
	accountRepo  repository.AccountRepository
	shipTypeRepo repository.ShipTypeRepository
	ownedRepo    repository.OwnedShipRepository
	rc           *redis.Client // optional catalog cache, may be nil
	cacheTTL     time.Duration
	db           *gorm.DB
}

// NewFleetFlow creates a new fleet flow instance
func NewFleetFlow(
	accountRepo repository.AccountRepository,
	shipTypeRepo repository.ShipTypeRepository,
	ownedRepo repository.OwnedShipRepository,
	rc *redis.Client,
	cacheTTL time.Duration,
	db *gorm.DB,
) FleetFlow {
	if cacheTTL <= 0 {
		cacheTTL = defaultCatalogCacheTTL
	}
	return &FleetFlowImpl{
		accountRepo:  accountRepo,
		shipTypeRepo: shipTypeRepo,
		ownedRepo:    ownedRepo,
		rc:           rc,
		cacheTTL:     cacheTTL,
		db:           db,
	}
}

// Catalog returns every purchasable ship type. The catalog only changes
// at bootstrap, so cache hits are served without touching the database.
func (f *FleetFlowImpl) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	if f.rc != nil {
		if cached, err := f.rc.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var resp dto.CatalogResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	shipTypes, err := f.shipTypeRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("CATALOG_FAILED", "Failed to load ship catalog", err)
	}

	resp := &dto.CatalogResponse{
		Ships: make([]dto.ShipTypeDTO, 0, len(shipTypes)),
	}
	for _, st := range shipTypes {
		resp.Ships = append(resp.Ships, ToShipTypeDTO(*st))
	}

	if f.rc != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := f.rc.Set(ctx, catalogCacheKey, raw, f.cacheTTL).Err(); err != nil {
				log.Printf("catalog cache set failed: %v", err)
			}
		}
	}

	return resp, nil
}

// ListFleet returns every ship the account owns, oldest first
func (f *FleetFlowImpl) ListFleet(ctx context.Context, accountID uint) (*dto.FleetResponse, error) {
	ships, err := f.ownedRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, NewBusinessError("FLEET_LIST_FAILED", "Failed to list fleet", err)
	}

	resp := &dto.FleetResponse{
		Ships: make([]dto.OwnedShipDTO, 0, len(ships)),
	}
	for _, ship := range ships {
		resp.Ships = append(resp.Ships, ToOwnedShipDTO(*ship))
	}

	return resp, nil
}

// BuyShip debits the catalog cost and records ownership inside one
// transaction. The debit is a conditional update, so a failed balance
// check rolls the whole purchase back and concurrent purchases can
// never overspend.
func (f *FleetFlowImpl) BuyShip(ctx context.Context, accountID uint, req *dto.BuyShipRequest) (*dto.BuyShipResponse, error) {
	shipType, err := f.resolveShipType(ctx, req)
	if err != nil {
		return nil, err
	}

	displayName := req.Name
	if displayName == "" {
		displayName = shipType.Name
	}

	var owned *models.OwnedShip
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		debited, err := f.accountRepo.DebitBalance(txCtx, accountID, shipType.Cost)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientFunds
		}

		owned = &models.OwnedShip{
			Name:       displayName,
			AccountID:  accountID,
			ShipTypeID: shipType.ID,
		}
		return f.ownedRepo.Save(txCtx, owned)
	})
	if err != nil {
		if IsInsufficientFunds(err) {
			return nil, NewBusinessError("BUY_INSUFFICIENT_FUNDS", "Insufficient funds", ErrInsufficientFunds)
		}
		return nil, NewBusinessError("BUY_FAILED", "Purchase failed", err)
	}

	account, err := f.accountRepo.ByID(ctx, accountID)
	if err != nil || account == nil {
		return nil, NewBusinessError("BUY_BALANCE_READBACK_FAILED", "Purchase committed but balance read failed", err)
	}

	log.Printf("ship purchased: account=%d ship=%d type=%d cost=%d", accountID, owned.ID, shipType.ID, shipType.Cost)

	owned.ShipType = *shipType
	return &dto.BuyShipResponse{
		Ship:    ToOwnedShipDTO(*owned),
		Balance: account.Balance,
	}, nil
}

// RenameShip changes the display name of an owned ship. Only the owner
// may rename it.
func (f *FleetFlowImpl) RenameShip(ctx context.Context, accountID, ownedShipID uint, req *dto.RenameShipRequest) (*dto.RenameShipResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, NewBusinessError("RENAME_INVALID_NAME", "Ship name must not be empty", ErrInvalidInput)
	}

	ship, err := f.ownedShipForOwner(ctx, accountID, ownedShipID)
	if err != nil {
		return nil, err
	}

	renamed, err := f.ownedRepo.Rename(ctx, ship.ID, req.Name)
	if err != nil {
		return nil, NewBusinessError("RENAME_FAILED", "Rename failed", err)
	}
	if renamed.Name != req.Name {
		return nil, NewBusinessError("RENAME_NOT_APPLIED", "Stored name does not match the requested name", nil)
	}

	shipType, err := f.shipTypeRepo.ByID(ctx, renamed.ShipTypeID)
	if err == nil && shipType != nil {
		renamed.ShipType = *shipType
	}

	return &dto.RenameShipResponse{
		Ship: ToOwnedShipDTO(*renamed),
	}, nil
}

// SellShip removes the ownership row and refunds the full catalog cost
// inside one transaction. The delete's affected-row count guards
// against double sells: the second request finds no row and no refund
// is issued.
func (f *FleetFlowImpl) SellShip(ctx context.Context, accountID, ownedShipID uint) (*dto.SellShipResponse, error) {
	ship, err := f.ownedShipForOwner(ctx, accountID, ownedShipID)
	if err != nil {
		return nil, err
	}

	shipType, err := f.shipTypeRepo.ByID(ctx, ship.ShipTypeID)
	if err != nil {
		return nil, NewBusinessError("SELL_FAILED", "Sale failed", err)
	}
	if shipType == nil {
		return nil, NewBusinessError("SELL_SHIP_TYPE_MISSING", "Catalog entry missing for owned ship", ErrShipTypeNotFound)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		removed, err := f.ownedRepo.Remove(txCtx, ship.ID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrShipNotFound
		}

		return f.accountRepo.CreditBalance(txCtx, accountID, shipType.Cost)
	})
	if err != nil {
		if IsShipNotFound(err) {
			return nil, NewBusinessError("SELL_SHIP_NOT_FOUND", "Ship not found", ErrShipNotFound)
		}
		return nil, NewBusinessError("SELL_FAILED", "Sale failed", err)
	}

	account, err := f.accountRepo.ByID(ctx, accountID)
	if err != nil || account == nil {
		return nil, NewBusinessError("SELL_BALANCE_READBACK_FAILED", "Sale committed but balance read failed", err)
	}

	log.Printf("ship sold: account=%d ship=%d refund=%d", accountID, ship.ID, shipType.Cost)

	return &dto.SellShipResponse{
		Refund:  shipType.Cost,
		Balance: account.Balance,
	}, nil
}

// resolveShipType looks up the catalog entry addressed by the request
func (f *FleetFlowImpl) resolveShipType(ctx context.Context, req *dto.BuyShipRequest) (*models.ShipType, error) {
	switch {
	case req.ShipTypeID != nil:
		shipType, err := f.shipTypeRepo.ByID(ctx, *req.ShipTypeID)
		if err != nil {
			return nil, NewBusinessError("BUY_FAILED", "Purchase failed", err)
		}
		if shipType == nil {
			return nil, NewBusinessError("BUY_SHIP_TYPE_NOT_FOUND", "Ship type not found", ErrShipTypeNotFound)
		}
		return shipType, nil
	case req.ShipName != nil:
		shipType, err := f.shipTypeRepo.ByName(ctx, *req.ShipName)
		if err != nil {
			return nil, NewBusinessError("BUY_FAILED", "Purchase failed", err)
		}
		if shipType == nil {
			return nil, NewBusinessError("BUY_SHIP_TYPE_NOT_FOUND", "Ship type not found", ErrShipTypeNotFound)
		}
		return shipType, nil
	default:
		return nil, NewBusinessError("BUY_SHIP_TYPE_REQUIRED", "Ship type ID or name is required", ErrInvalidInput)
	}
}

// ownedShipForOwner loads an owned ship and verifies ownership
func (f *FleetFlowImpl) ownedShipForOwner(ctx context.Context, accountID, ownedShipID uint) (*models.OwnedShip, error) {
	ship, err := f.ownedRepo.ByID(ctx, ownedShipID)
	if err != nil {
		return nil, NewBusinessError("SHIP_LOOKUP_FAILED", "Ship lookup failed", err)
	}
	if ship == nil {
		return nil, NewBusinessError("SHIP_NOT_FOUND", "Ship not found", ErrShipNotFound)
	}
	if !ship.OwnedBy(accountID) {
		return nil, NewBusinessError("SHIP_NOT_OWNER", "Ship belongs to another account", ErrNotOwner)
	}
	return ship, nil
}
