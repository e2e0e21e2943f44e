package dispatch_test

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/adapters/memtree"
	"github.com/aretw0/arbor/pkg/dispatch"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracer appends a label to trace and forwards the call unchanged.
func tracer(trace *[]string, label string) domain.Middleware {
	return func(call *domain.RawActionCall, next domain.Next) (any, error) {
		*trace = append(*trace, label)
		return next(call)
	}
}

func TestChain_AncestorOrdering(t *testing.T) {
	tree := memtree.NewTree()
	parent := tree.Root().AddChild("parent")
	child := parent.AddChild("child")

	var trace []string
	tree.RootNode().AddMiddleware(tracer(&trace, "root-1"))
	tree.RootNode().AddMiddleware(tracer(&trace, "root-2"))
	parent.Node().AddMiddleware(tracer(&trace, "parent"))
	child.Node().AddMiddleware(tracer(&trace, "child"))

	child.Define("touch", func(self any, args ...any) (any, error) {
		trace = append(trace, "terminal")
		return nil, nil
	})

	_, err := child.Invoke("touch")
	require.NoError(t, err)

	// Nearest node's handlers first, ancestors after, terminal last.
	assert.Equal(t, []string{"child", "parent", "root-1", "root-2", "terminal"}, trace)
}

func TestRun_EmptyChainExecutesDirectly(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	called := false
	obj.Define("touch", func(self any, args ...any) (any, error) {
		called = true
		return "done", nil
	})

	result, err := obj.Invoke("touch")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "done", result)
}

func TestRun_ShortCircuit(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	executed := false
	obj.Define("touch", func(self any, args ...any) (any, error) {
		executed = true
		return nil, nil
	})

	laterRan := false
	obj.Node().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		// Never calls next: terminal execution and later handlers are skipped.
		return "blocked", nil
	})
	tree.RootNode().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		laterRan = true
		return next(call)
	})

	result, err := obj.Invoke("touch")
	require.NoError(t, err)
	assert.Equal(t, "blocked", result)
	assert.False(t, executed, "terminal execution must not run")
	assert.False(t, laterRan, "handlers after the short-circuit must not run")
}

func TestRun_SubstitutedCall(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	var got []any
	obj.Define("touch", func(self any, args ...any) (any, error) {
		got = args
		return nil, nil
	})

	obj.Node().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		return next(&domain.RawActionCall{Name: call.Name, Object: call.Object, Args: []any{"rewritten"}})
	})

	_, err := obj.Invoke("touch", "original")
	require.NoError(t, err)
	assert.Equal(t, []any{"rewritten"}, got)
}

func TestRun_RepeatedNextRunsTerminalPerCall(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	executions := 0
	obj.Define("touch", func(self any, args ...any) (any, error) {
		executions++
		return executions, nil
	})

	downstream := 0
	tree.RootNode().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		downstream++
		return next(call)
	})
	obj.Node().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		first, err := next(call)
		require.NoError(t, err)
		second, err := next(call)
		require.NoError(t, err)
		return []any{first, second}, nil
	})

	result, err := obj.Invoke("touch")
	require.NoError(t, err)

	// The rest of the chain, terminal step included, runs once per next
	// call, and the handler's own return value is the dispatch result.
	assert.Equal(t, 2, executions)
	assert.Equal(t, 2, downstream)
	assert.Equal(t, []any{1, 2}, result)
}

func TestRun_ErrorPropagatesUnmodified(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	boom := errors.New("boom")
	obj.Define("fail", func(self any, args ...any) (any, error) {
		return nil, boom
	})

	seen := 0
	tree.RootNode().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		seen++
		return next(call)
	})

	_, err := obj.Invoke("fail")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestInvoke_NestedCallsBypassPipeline(t *testing.T) {
	tree := memtree.NewTree()
	outer := tree.Root().AddChild("outer")
	inner := tree.Root().AddChild("inner")

	dispatched := 0
	tree.RootNode().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		dispatched++
		return next(call)
	})

	var flagDuringOuter, flagDuringInner bool
	inner.Define("innerAct", func(self any, args ...any) (any, error) {
		flagDuringInner = inner.Node().IsRunningAction()
		return nil, nil
	})
	outer.Define("outerAct", func(self any, args ...any) (any, error) {
		flagDuringOuter = outer.Node().IsRunningAction()
		return inner.Invoke("innerAct")
	})

	_, err := outer.Invoke("outerAct")
	require.NoError(t, err)

	assert.Equal(t, 1, dispatched, "nested call must not re-enter the pipeline")
	assert.True(t, flagDuringOuter)
	assert.True(t, flagDuringInner)
	assert.False(t, tree.RootNode().IsRunningAction(), "flag cleared after the outer call")
}

func TestInvoke_FlagClearedOnFailure(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")

	obj.Define("fail", func(self any, args ...any) (any, error) {
		return nil, errors.New("boom")
	})

	_, err := obj.Invoke("fail")
	require.Error(t, err)
	assert.False(t, tree.RootNode().IsRunningAction())

	// A later call is an outer call again and runs the pipeline.
	count := 0
	remove := tree.RootNode().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		count++
		return next(call)
	})
	defer remove()

	obj.Define("ok", func(self any, args ...any) (any, error) { return nil, nil })
	_, err = obj.Invoke("ok")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInvoke_DeadNode(t *testing.T) {
	tree := memtree.NewTree()
	child := tree.Root().AddChild("child")
	child.Define("touch", func(self any, args ...any) (any, error) { return nil, nil })

	tree.Root().RemoveChild("child")

	_, err := child.Invoke("touch")
	var dead *domain.DeadNodeError
	require.ErrorAs(t, err, &dead)
}

func TestInvoker_Name(t *testing.T) {
	inv := dispatch.NewInvoker("rename", func(self any, args ...any) (any, error) { return nil, nil })
	assert.Equal(t, "rename", inv.Name())
}

func TestRun_UnknownActionAtTerminal(t *testing.T) {
	tree := memtree.NewTree()
	obj := tree.Root().AddChild("leaf")
	obj.Define("real", func(self any, args ...any) (any, error) { return nil, nil })

	// A middleware substitutes a call naming an action that does not exist.
	obj.Node().AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		return next(&domain.RawActionCall{Name: "ghost", Object: call.Object, Args: call.Args})
	})

	_, err := obj.Invoke("real")
	var unknown *domain.UnknownActionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}
