package tests

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunActionStoreContract runs a suite of tests to verify that an ActionStore
// implementation adheres to the defined interface contract.
func RunActionStoreContract(t *testing.T, store ports.ActionStore) {
	t.Helper()

	ctx := context.Background()

	calls := []domain.SerializedActionCall{
		{Name: "rename", Path: "./child", Args: []domain.Argument{domain.ValueArgument("first")}},
		{Name: "set", Args: []domain.Argument{domain.ValueArgument("count"), domain.ValueArgument(float64(2))}},
		{Name: "link", Path: "./child", Args: []domain.Argument{domain.RefArgument("../other")}},
	}

	t.Run("Append and List", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		for _, call := range calls {
			require.NoError(t, store.Append(ctx, call), "Append should not return error")
		}

		listed, err := store.List(ctx)
		require.NoError(t, err, "List should not return error")
		require.Len(t, listed, len(calls), "List should preserve append order and count")

		for i, call := range calls {
			assert.Equal(t, call.Name, listed[i].Name)
			assert.Equal(t, call.Path, listed[i].Path)
			require.Len(t, listed[i].Args, len(call.Args))
			for j, arg := range call.Args {
				assert.Equal(t, arg.IsRef(), listed[i].Args[j].IsRef())
				if arg.IsRef() {
					assert.Equal(t, arg.Path(), listed[i].Args[j].Path())
				}
			}
		}
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, calls[0]))
		require.NoError(t, store.Clear(ctx))

		listed, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed, "List after Clear should be empty")
	})

	t.Run("List Empty", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		listed, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}
