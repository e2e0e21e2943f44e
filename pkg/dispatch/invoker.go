package dispatch

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Invoker wraps a raw action handler under a stable name. Invoking it on a
// node integrates the handler with the tree's transactional wrapper, detects
// re-entrant calls, and triggers the middleware pipeline for outermost calls
// only.
type Invoker struct {
	name string
	fn   ports.ActionHandler
}

// NewInvoker wraps fn as the action named name. The name is carried through
// every call record, transaction and error produced by the invoker, so
// diagnostics always identify the action by its registered name.
func NewInvoker(name string, fn ports.ActionHandler) *Invoker {
	return &Invoker{name: name, fn: fn}
}

// Name returns the action name the invoker was created with.
func (inv *Invoker) Name() string { return inv.name }

// Invoke runs the wrapped handler on node's stored value.
//
// A call made while the tree's root is already running an outer action is a
// nested call: it executes directly inside the transactional wrapper and
// never re-enters the middleware pipeline. An outermost call builds a
// RawActionCall, flags the root as running, and hands the call to the
// middleware executor; the flag is cleared when the call finishes, whether
// it succeeds or fails.
func (inv *Invoker) Invoke(node ports.Node, args ...any) (any, error) {
	if err := node.AssertAlive(); err != nil {
		return nil, err
	}

	root := node.Root()
	if root.IsRunningAction() {
		return node.RunTransactionally(inv.name, func() (any, error) {
			return inv.fn(node.StoredValue(), args...)
		})
	}

	call := &domain.RawActionCall{
		Name:   inv.name,
		Object: node.StoredValue(),
		Args:   args,
	}

	root.SetRunningAction(true)
	defer root.SetRunningAction(false)

	return Run(node, call)
}
