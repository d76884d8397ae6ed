package tests

import (
	"context"
	"testing"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	businessflow "github.com/Barkerprooks/void-voyager-backend/business_flow"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	testingutil "github.com/Barkerprooks/void-voyager-backend/testing"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFleetFlow(testDB *testingutil.TestDB) (businessflow.FleetFlow, repository.AccountRepository, repository.OwnedShipRepository) {
	accountRepo := repository.NewAccountRepository(testDB.DB)
	shipTypeRepo := repository.NewShipTypeRepository(testDB.DB)
	ownedRepo := repository.NewOwnedShipRepository(testDB.DB)
	fleetFlow := businessflow.NewFleetFlow(accountRepo, shipTypeRepo, ownedRepo, nil, 0, testDB.DB)
	return fleetFlow, accountRepo, ownedRepo
}

func TestCatalog(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, _, _ := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)

		result, err := fleetFlow.Catalog(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Ships, len(shipTypes))

		// Insertion order is preserved
		assert.Equal(t, "Sparrow", result.Ships[0].Name)
		assert.Equal(t, int64(150), result.Ships[0].Cost)
		assert.Equal(t, "Corsair", result.Ships[2].Name)

		return nil
	})
	require.NoError(t, err)
}

func TestBuyShip(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, accountRepo, ownedRepo := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)
		lancer := shipTypes[1]  // 400
		corsair := shipTypes[2] // 700

		account, err := testDB.CreateTestAccount("captain", 1000)
		require.NoError(t, err)

		t.Run("SuccessfulPurchase", func(t *testing.T) {
			result, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
				ShipTypeID: &lancer.ID,
				Name:       "Stardust",
			})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "Stardust", result.Ship.Name)
			assert.Equal(t, lancer.ID, result.Ship.ShipTypeID)
			assert.Equal(t, int64(600), result.Balance)

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(600), stored.Balance)
		})

		t.Run("InsufficientFundsLeavesStateUnchanged", func(t *testing.T) {
			// 600 left, Corsair costs 700
			result, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
				ShipTypeID: &corsair.ID,
				Name:       "Too Expensive",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsInsufficientFunds(err))

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(600), stored.Balance)

			ships, err := ownedRepo.ListByAccount(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Len(t, ships, 1)
		})

		t.Run("PurchaseByName", func(t *testing.T) {
			result, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
				ShipName: utils.ToPtr("Sparrow"),
				Name:     "Pathfinder",
			})
			require.NoError(t, err)
			assert.Equal(t, int64(450), result.Balance)
		})

		t.Run("ExactBalancePurchase", func(t *testing.T) {
			buyer, err := testDB.CreateTestAccount("exact", 400)
			require.NoError(t, err)

			result, err := fleetFlow.BuyShip(context.Background(), buyer.ID, &dto.BuyShipRequest{
				ShipTypeID: &lancer.ID,
				Name:       "Last Credit",
			})
			require.NoError(t, err)
			assert.Equal(t, int64(0), result.Balance)
		})

		t.Run("DefaultDisplayName", func(t *testing.T) {
			buyer, err := testDB.CreateTestAccount("minimalist", 200)
			require.NoError(t, err)

			result, err := fleetFlow.BuyShip(context.Background(), buyer.ID, &dto.BuyShipRequest{
				ShipName: utils.ToPtr("Sparrow"),
			})
			require.NoError(t, err)
			// Omitted display name falls back to the catalog name
			assert.Equal(t, "Sparrow", result.Ship.Name)
		})

		t.Run("UnknownShipType", func(t *testing.T) {
			missingID := uint(99999)
			result, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
				ShipTypeID: &missingID,
				Name:       "Phantom",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsShipTypeNotFound(err))
		})

		t.Run("MissingShipTypeSelector", func(t *testing.T) {
			result, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
				Name: "Nameless",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsInvalidInput(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRenameShip(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, _, ownedRepo := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)

		owner, err := testDB.CreateTestAccount("owner", 1000)
		require.NoError(t, err)
		other, err := testDB.CreateTestAccount("other", 1000)
		require.NoError(t, err)

		ship, err := testDB.CreateTestOwnedShip("Old Name", owner.ID, shipTypes[0].ID)
		require.NoError(t, err)

		t.Run("SuccessfulRename", func(t *testing.T) {
			result, err := fleetFlow.RenameShip(context.Background(), owner.ID, ship.ID, &dto.RenameShipRequest{
				Name: "New Name",
			})
			require.NoError(t, err)
			assert.Equal(t, "New Name", result.Ship.Name)

			stored, err := ownedRepo.ByID(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.Equal(t, "New Name", stored.Name)
		})

		t.Run("RenameByNonOwner", func(t *testing.T) {
			result, err := fleetFlow.RenameShip(context.Background(), other.ID, ship.ID, &dto.RenameShipRequest{
				Name: "Stolen",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsNotOwner(err))

			stored, err := ownedRepo.ByID(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.Equal(t, "New Name", stored.Name)
		})

		t.Run("EmptyNameRejected", func(t *testing.T) {
			result, err := fleetFlow.RenameShip(context.Background(), owner.ID, ship.ID, &dto.RenameShipRequest{
				Name: "   ",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsInvalidInput(err))

			stored, err := ownedRepo.ByID(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.Equal(t, "New Name", stored.Name)
		})

		t.Run("RenameMissingShip", func(t *testing.T) {
			result, err := fleetFlow.RenameShip(context.Background(), owner.ID, ship.ID+9999, &dto.RenameShipRequest{
				Name: "Ghost",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsShipNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSellShip(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, accountRepo, ownedRepo := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)
		lancer := shipTypes[1] // 400

		owner, err := testDB.CreateTestAccount("seller", 600)
		require.NoError(t, err)
		other, err := testDB.CreateTestAccount("bystander", 600)
		require.NoError(t, err)

		ship, err := testDB.CreateTestOwnedShip("For Sale", owner.ID, lancer.ID)
		require.NoError(t, err)

		t.Run("SellByNonOwner", func(t *testing.T) {
			result, err := fleetFlow.SellShip(context.Background(), other.ID, ship.ID)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsNotOwner(err))
		})

		t.Run("SuccessfulSaleRefundsFullCost", func(t *testing.T) {
			result, err := fleetFlow.SellShip(context.Background(), owner.ID, ship.ID)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, int64(400), result.Refund)
			assert.Equal(t, int64(1000), result.Balance)

			stored, err := ownedRepo.ByID(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.Nil(t, stored)

			account, err := accountRepo.ByID(context.Background(), owner.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1000), account.Balance)
		})

		t.Run("DoubleSellGetsNoSecondRefund", func(t *testing.T) {
			result, err := fleetFlow.SellShip(context.Background(), owner.ID, ship.ID)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsShipNotFound(err))

			account, err := accountRepo.ByID(context.Background(), owner.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1000), account.Balance)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBuySellRoundTrip(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, accountRepo, _ := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)
		lancer := shipTypes[1] // 400

		account, err := testDB.CreateTestAccount("trader", 1000)
		require.NoError(t, err)

		bought, err := fleetFlow.BuyShip(context.Background(), account.ID, &dto.BuyShipRequest{
			ShipTypeID: &lancer.ID,
			Name:       "Round Trip",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(600), bought.Balance)

		sold, err := fleetFlow.SellShip(context.Background(), account.ID, bought.Ship.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(400), sold.Refund)
		assert.Equal(t, int64(1000), sold.Balance)

		// Buying and selling at the same price is credit-neutral
		account2, err := accountRepo.ByID(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account2.Balance)

		fleet, err := fleetFlow.ListFleet(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Empty(t, fleet.Ships)

		return nil
	})
	require.NoError(t, err)
}

func TestListFleet(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fleetFlow, _, _ := newFleetFlow(testDB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)

		owner, err := testDB.CreateTestAccount("collector", 5000)
		require.NoError(t, err)
		other, err := testDB.CreateTestAccount("outsider", 5000)
		require.NoError(t, err)

		first, err := testDB.CreateTestOwnedShip("First", owner.ID, shipTypes[0].ID)
		require.NoError(t, err)
		second, err := testDB.CreateTestOwnedShip("Second", owner.ID, shipTypes[1].ID)
		require.NoError(t, err)
		_, err = testDB.CreateTestOwnedShip("Elsewhere", other.ID, shipTypes[2].ID)
		require.NoError(t, err)

		result, err := fleetFlow.ListFleet(context.Background(), owner.ID)
		require.NoError(t, err)
		require.Len(t, result.Ships, 2)

		// Oldest first, with catalog data joined in
		assert.Equal(t, first.ID, result.Ships[0].ID)
		assert.Equal(t, "Sparrow", result.Ships[0].ShipType)
		assert.Equal(t, int64(150), result.Ships[0].Cost)
		assert.Equal(t, second.ID, result.Ships[1].ID)
		assert.Equal(t, "Lancer", result.Ships[1].ShipType)

		return nil
	})
	require.NoError(t, err)
}
