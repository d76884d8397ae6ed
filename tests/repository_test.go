package tests

import (
	"context"
	"testing"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	testingutil "github.com/Barkerprooks/void-voyager-backend/testing"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepositoryBalance(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		accountRepo := repository.NewAccountRepository(testDB.DB)

		account, err := testDB.CreateTestAccount("wallet", 300)
		require.NoError(t, err)

		t.Run("DebitWithinBalance", func(t *testing.T) {
			ok, err := accountRepo.DebitBalance(context.Background(), account.ID, 100)
			require.NoError(t, err)
			assert.True(t, ok)

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(200), stored.Balance)
		})

		t.Run("DebitBeyondBalanceIsRefused", func(t *testing.T) {
			ok, err := accountRepo.DebitBalance(context.Background(), account.ID, 201)
			require.NoError(t, err)
			assert.False(t, ok)

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(200), stored.Balance)
		})

		t.Run("DebitExactBalance", func(t *testing.T) {
			ok, err := accountRepo.DebitBalance(context.Background(), account.ID, 200)
			require.NoError(t, err)
			assert.True(t, ok)

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(0), stored.Balance)
		})

		t.Run("DebitMissingAccount", func(t *testing.T) {
			ok, err := accountRepo.DebitBalance(context.Background(), account.ID+9999, 1)
			require.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run("NegativeDebitIsRejected", func(t *testing.T) {
			_, err := accountRepo.DebitBalance(context.Background(), account.ID, -5)
			require.Error(t, err)
		})

		t.Run("Credit", func(t *testing.T) {
			err := accountRepo.CreditBalance(context.Background(), account.ID, 750)
			require.NoError(t, err)

			stored, err := accountRepo.ByID(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(750), stored.Balance)
		})

		t.Run("CreditMissingAccount", func(t *testing.T) {
			err := accountRepo.CreditBalance(context.Background(), account.ID+9999, 10)
			require.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAccountRepositoryUniqueUsername(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		accountRepo := repository.NewAccountRepository(testDB.DB)

		first := &models.Account{
			Username:     "unique",
			PasswordHash: utils.HashPassword("pass-one"),
			IsAdmin:      utils.ToPtr(false),
			Balance:      100,
		}
		require.NoError(t, accountRepo.Save(context.Background(), first))

		second := &models.Account{
			Username:     "unique",
			PasswordHash: utils.HashPassword("pass-two"),
			IsAdmin:      utils.ToPtr(false),
			Balance:      100,
		}
		err := accountRepo.Save(context.Background(), second)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

		return nil
	})
	require.NoError(t, err)
}

func TestOwnedShipRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ownedRepo := repository.NewOwnedShipRepository(testDB.DB)

		shipTypes, err := testDB.SeedTestCatalog()
		require.NoError(t, err)

		account, err := testDB.CreateTestAccount("hangar", 1000)
		require.NoError(t, err)

		ship, err := testDB.CreateTestOwnedShip("Vessel", account.ID, shipTypes[0].ID)
		require.NoError(t, err)

		t.Run("RenameReturnsStoredName", func(t *testing.T) {
			renamed, err := ownedRepo.Rename(context.Background(), ship.ID, "Renamed Vessel")
			require.NoError(t, err)
			assert.Equal(t, "Renamed Vessel", renamed.Name)
			assert.Equal(t, ship.ID, renamed.ID)
		})

		t.Run("RenameMissingShip", func(t *testing.T) {
			_, err := ownedRepo.Rename(context.Background(), ship.ID+9999, "Ghost")
			require.Error(t, err)
		})

		t.Run("RemoveReportsAffectedRows", func(t *testing.T) {
			removed, err := ownedRepo.Remove(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.True(t, removed)

			// Second remove finds nothing
			removed, err = ownedRepo.Remove(context.Background(), ship.ID)
			require.NoError(t, err)
			assert.False(t, removed)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShipTypeRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		shipTypeRepo := repository.NewShipTypeRepository(testDB.DB)

		_, err := testDB.SeedTestCatalog()
		require.NoError(t, err)

		t.Run("ByName", func(t *testing.T) {
			shipType, err := shipTypeRepo.ByName(context.Background(), "Lancer")
			require.NoError(t, err)
			require.NotNil(t, shipType)
			assert.Equal(t, int64(400), shipType.Cost)
		})

		t.Run("ByNameMissing", func(t *testing.T) {
			shipType, err := shipTypeRepo.ByName(context.Background(), "Unknown")
			require.NoError(t, err)
			assert.Nil(t, shipType)
		})

		t.Run("ListAllInsertionOrder", func(t *testing.T) {
			shipTypes, err := shipTypeRepo.ListAll(context.Background())
			require.NoError(t, err)
			require.Len(t, shipTypes, 3)
			assert.Equal(t, "Sparrow", shipTypes[0].Name)
			assert.Equal(t, "Lancer", shipTypes[1].Name)
			assert.Equal(t, "Corsair", shipTypes[2].Name)
		})

		t.Run("FilterByCost", func(t *testing.T) {
			shipTypes, err := shipTypeRepo.ByFilter(context.Background(), models.ShipTypeFilter{
				CostAtMost: utils.ToPtr(int64(400)),
			}, "pk ASC", 0, 0)
			require.NoError(t, err)
			require.Len(t, shipTypes, 2)
		})

		return nil
	})
	require.NoError(t, err)
}
