package tests

import (
	"context"
	"testing"

	"github.com/Barkerprooks/void-voyager-backend/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	sessionRepo := repository.NewInMemorySessionRepository()
	ctx := context.Background()

	t.Run("BindAndResolve", func(t *testing.T) {
		session, err := sessionRepo.Bind(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, uint(42), session.AccountID)
		assert.NotEmpty(t, session.CorrelationID)

		resolved, err := sessionRepo.Resolve(ctx, session.Token)
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, session.Token, resolved.Token)
		assert.Equal(t, uint(42), resolved.AccountID)
	})

	t.Run("TokensAreUnique", func(t *testing.T) {
		first, err := sessionRepo.Bind(ctx, 7)
		require.NoError(t, err)
		second, err := sessionRepo.Bind(ctx, 7)
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)

		// Both sessions are live at once
		resolved, err := sessionRepo.Resolve(ctx, first.Token)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
		resolved, err = sessionRepo.Resolve(ctx, second.Token)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
	})

	t.Run("ResolveUnknownToken", func(t *testing.T) {
		resolved, err := sessionRepo.Resolve(ctx, "no-such-token")
		require.NoError(t, err)
		assert.Nil(t, resolved)

		resolved, err = sessionRepo.Resolve(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("Unbind", func(t *testing.T) {
		session, err := sessionRepo.Bind(ctx, 9)
		require.NoError(t, err)

		dropped, err := sessionRepo.Unbind(ctx, session.Token)
		require.NoError(t, err)
		assert.True(t, dropped)

		resolved, err := sessionRepo.Resolve(ctx, session.Token)
		require.NoError(t, err)
		assert.Nil(t, resolved)

		// Second unbind is a no-op
		dropped, err = sessionRepo.Unbind(ctx, session.Token)
		require.NoError(t, err)
		assert.False(t, dropped)
	})

	t.Run("UnbindAccountDropsEverySession", func(t *testing.T) {
		first, err := sessionRepo.Bind(ctx, 21)
		require.NoError(t, err)
		second, err := sessionRepo.Bind(ctx, 21)
		require.NoError(t, err)
		other, err := sessionRepo.Bind(ctx, 22)
		require.NoError(t, err)

		count, err := sessionRepo.UnbindAccount(ctx, 21)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		resolved, err := sessionRepo.Resolve(ctx, first.Token)
		require.NoError(t, err)
		assert.Nil(t, resolved)
		resolved, err = sessionRepo.Resolve(ctx, second.Token)
		require.NoError(t, err)
		assert.Nil(t, resolved)

		// Other accounts are untouched
		resolved, err = sessionRepo.Resolve(ctx, other.Token)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
	})
}
