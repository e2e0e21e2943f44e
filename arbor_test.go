package arbor_test

import (
	"testing"

	"github.com/aretw0/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_RoundTrip(t *testing.T) {
	tree := arbor.NewTree()
	child := tree.Root().AddChild("child")

	var recorded []arbor.SerializedActionCall
	dispose := arbor.OnAction(tree.RootNode(), func(call arbor.SerializedActionCall) {
		recorded = append(recorded, call)
	})
	defer dispose()

	_, err := child.Invoke("rename", "original")
	require.NoError(t, err)
	require.Len(t, recorded, 1)

	// Applying the recorded call to a fresh tree reproduces the mutation.
	replica := arbor.NewTree()
	replica.Root().AddChild("child")

	_, err = arbor.ApplyAction(replica.RootNode(), recorded[0])
	require.NoError(t, err)
	assert.Equal(t, "original", replica.Root().Child("child").Get("name"))
}

func TestFacade_MiddlewareShortCircuit(t *testing.T) {
	tree := arbor.NewTree()

	remove := arbor.AddMiddleware(tree.RootNode(), func(call *arbor.RawActionCall, next arbor.Next) (any, error) {
		if call.Name == "set" {
			return "blocked", nil
		}
		return next(call)
	})
	defer remove()

	result, err := tree.Root().Invoke("set", "title", "doc")
	require.NoError(t, err)
	assert.Equal(t, "blocked", result)
	assert.Nil(t, tree.Root().Get("title"))

	_, err = tree.Root().Invoke("rename", "still works")
	require.NoError(t, err)
	assert.Equal(t, "still works", tree.Root().Get("name"))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, arbor.Version)
}
