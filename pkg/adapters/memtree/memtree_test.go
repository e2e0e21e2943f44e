package memtree

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Paths(t *testing.T) {
	tree := NewTree()
	child := tree.Root().AddChild("child")
	grand := child.AddChild("grand")

	root := tree.RootNode()

	cases := map[string]any{
		"":              tree.Root(),
		".":             tree.Root(),
		"./child":       child,
		"child":         child,
		"./child/grand": grand,
	}
	for path, want := range cases {
		resolved, err := root.Resolve(path)
		require.NoError(t, err, "path %q", path)
		assert.Same(t, want, resolved.StoredValue(), "path %q", path)
	}

	// Upward navigation from a descendant.
	resolved, err := grand.Node().Resolve("../../child")
	require.NoError(t, err)
	assert.Same(t, child, resolved.StoredValue())
}

func TestResolve_Failures(t *testing.T) {
	tree := NewTree()
	tree.Root().AddChild("child")

	var invalidPath *domain.InvalidPathError

	_, err := tree.RootNode().Resolve("./missing")
	require.ErrorAs(t, err, &invalidPath)

	_, err = tree.RootNode().Resolve("..")
	require.ErrorAs(t, err, &invalidPath)

	assert.Nil(t, tree.RootNode().TryResolve("./missing"))
	assert.NotNil(t, tree.RootNode().TryResolve("./child"))
}

func TestRelativePathTo(t *testing.T) {
	tree := NewTree()
	a := tree.Root().AddChild("a")
	b := tree.Root().AddChild("b")
	deep := a.AddChild("deep")

	root := tree.RootNode()

	path, err := root.RelativePathTo(root)
	require.NoError(t, err)
	assert.Equal(t, "", path)

	path, err = root.RelativePathTo(deep.Node())
	require.NoError(t, err)
	assert.Equal(t, "./a/deep", path)

	path, err = deep.Node().RelativePathTo(b.Node())
	require.NoError(t, err)
	assert.Equal(t, "../../b", path)

	// Paths round-trip through Resolve.
	resolved, err := deep.Node().Resolve(path)
	require.NoError(t, err)
	assert.Same(t, b, resolved.StoredValue())
}

func TestRelativePathTo_DifferentTrees(t *testing.T) {
	tree := NewTree()
	other := NewTree()

	_, err := tree.RootNode().RelativePathTo(other.RootNode())
	require.Error(t, err)
}

func TestRemoveChild_MarksSubtreeDead(t *testing.T) {
	tree := NewTree()
	child := tree.Root().AddChild("child")
	grand := child.AddChild("grand")

	tree.Root().RemoveChild("child")

	require.Error(t, child.Node().AssertAlive())
	require.Error(t, grand.Node().AssertAlive())

	var invalidPath *domain.InvalidPathError
	_, err := tree.RootNode().Resolve("./child")
	require.ErrorAs(t, err, &invalidPath)

	// Dead values are no longer recognized as tree members.
	assert.Nil(t, tree.RootNode().NodeFor(child))
}

func TestNodeFor(t *testing.T) {
	tree := NewTree()
	child := tree.Root().AddChild("child")

	assert.Same(t, child.Node(), tree.RootNode().NodeFor(child))
	assert.Nil(t, tree.RootNode().NodeFor("not an object"))
	assert.Nil(t, tree.RootNode().NodeFor(nil))

	// Objects of another tree are still recognized (cross-tree detection
	// happens at serialization time, not lookup time).
	other := NewTree()
	found := tree.RootNode().NodeFor(other.Root())
	require.NotNil(t, found)
	assert.NotEqual(t, tree.RootNode().Root(), found.Root())
}

func TestObserve_BatchesNestedTransactions(t *testing.T) {
	tree := NewTree()
	a := tree.Root().AddChild("a")
	b := tree.Root().AddChild("b")

	b.Define("inner", func(self any, args ...any) (any, error) {
		b.Set("touched", true)
		return nil, nil
	})
	a.Define("outer", func(self any, args ...any) (any, error) {
		a.Set("touched", true)
		return b.Invoke("inner")
	})

	var notified []string
	remove := tree.Observe(func(tx string) { notified = append(notified, tx) })
	defer remove()

	_, err := a.Invoke("outer")
	require.NoError(t, err)

	assert.Equal(t, []string{"outer"}, notified, "nested mutations notify once, named after the outer action")
}

func TestObserve_Dispose(t *testing.T) {
	tree := NewTree()
	count := 0
	remove := tree.Observe(func(string) { count++ })

	tree.Root().Set("a", 1)
	remove()
	remove() // idempotent
	tree.Root().Set("b", 2)

	assert.Equal(t, 1, count)
}

func TestBuiltins(t *testing.T) {
	tree := NewTree()
	root := tree.Root()

	_, err := root.Invoke("set", "title", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", root.Get("title"))

	_, err = root.Invoke("rename", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", root.Get("name"))

	result, err := root.Invoke("addChild", "kid")
	require.NoError(t, err)
	assert.Same(t, root.Child("kid"), result)

	_, err = root.Invoke("removeChild", "kid")
	require.NoError(t, err)
	assert.Nil(t, root.Child("kid"))

	_, err = root.Invoke("unset", "title")
	require.NoError(t, err)
	assert.Nil(t, root.Get("title"))

	// Type errors on builtin arguments.
	_, err = root.Invoke("set", 42, "x")
	require.Error(t, err)
}

func TestSnapshot_RendersReferencesAsPaths(t *testing.T) {
	tree := NewTree()
	child := tree.Root().AddChild("child")
	other := tree.Root().AddChild("other")
	child.Set("friend", other)
	child.Set("count", 2)

	snapshot := tree.Root().Snapshot()
	childView, ok := snapshot["child"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"$ref": "../other"}, childView["friend"])
	assert.Equal(t, 2, childView["count"])
}

func TestSnapshot_DeadReferenceRendersNull(t *testing.T) {
	tree := NewTree()
	child := tree.Root().AddChild("child")
	other := tree.Root().AddChild("other")
	child.Set("friend", other)

	tree.Root().RemoveChild("other")

	snapshot := tree.Root().Snapshot()
	childView, ok := snapshot["child"].(map[string]any)
	require.True(t, ok)
	value, present := childView["friend"]
	assert.True(t, present)
	assert.Nil(t, value)

	// The snapshot still marshals cleanly.
	encoded, err := json.Marshal(tree.Root())
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"friend":null`)
}

func TestMiddlewareRemove_Idempotent(t *testing.T) {
	tree := NewTree()
	node := tree.RootNode()

	remove := node.AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		return next(call)
	})
	assert.Len(t, node.Middlewares(), 1)

	remove()
	remove()
	assert.Len(t, node.Middlewares(), 0)
}
