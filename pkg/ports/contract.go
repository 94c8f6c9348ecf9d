package ports

import (
	"context"
	"testing"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractWalk() *domain.Walk {
	seed := uint64(42)
	w := domain.NewWalk("LoggedOut")
	w.Seed = &seed
	w.Append(domain.NewTransition("LoggedOut", "log_in", "LoggedIn"))
	w.Append(domain.NewTransition("LoggedIn", "log_out", "LoggedOut"))
	w.Measured = true
	w.StateCoverage = 100
	w.TransitionCoverage = 50
	return w
}

// RunWalkStoreContract runs a suite of tests to verify that a WalkStore implementation
// adheres to the defined interface contract.
func RunWalkStoreContract(t *testing.T, store WalkStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		w := contractWalk()

		id, err := store.Save(ctx, w)
		require.NoError(t, err, "Save should not return error")
		require.NotEmpty(t, id, "Save should assign an ID")
		assert.Equal(t, id, w.ID)

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, w.StartState, loaded.StartState)
		assert.Equal(t, w.EndState, loaded.EndState)
		assert.Equal(t, w.Steps, loaded.Steps)
		assert.Equal(t, w.StateCoverage, loaded.StateCoverage)
		assert.Equal(t, w.TransitionCoverage, loaded.TransitionCoverage)
		require.NotNil(t, loaded.Seed)
		assert.Equal(t, uint64(42), *loaded.Seed)
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		w := contractWalk()
		id, err := store.Save(ctx, w)
		require.NoError(t, err)

		w.Steps[0].Action = "mutated"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "log_in", loaded.Steps[0].Action)
	})

	t.Run("Save With Existing ID Replaces", func(t *testing.T) {
		w := contractWalk()
		w.ID = "fixed-id"
		_, err := store.Save(ctx, w)
		require.NoError(t, err)

		w.EndState = "Elsewhere"
		id, err := store.Save(ctx, w)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)

		loaded, err := store.Load(ctx, "fixed-id")
		require.NoError(t, err)
		assert.Equal(t, "Elsewhere", loaded.EndState)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-walk")
		assert.ErrorIs(t, err, domain.ErrWalkNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id, err := store.Save(ctx, contractWalk())
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWalkNotFound, "Load after Delete should return ErrWalkNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not return error")
	})

	t.Run("List", func(t *testing.T) {
		id1, err := store.Save(ctx, contractWalk())
		require.NoError(t, err)
		id2, err := store.Save(ctx, contractWalk())
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
