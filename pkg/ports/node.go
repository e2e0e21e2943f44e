package ports

import "github.com/aretw0/arbor/pkg/domain"

// Node is the tree-membership handle of a stored value. The dispatch core
// never owns the tree; it consumes this interface for identity, paths,
// lifecycle and the per-tree running-action flag.
//
// All methods are synchronous. Implementations decide how values map to
// handles and what the path grammar looks like; the reference implementation
// lives in pkg/adapters/memtree.
type Node interface {
	// Parent returns the owning node, or nil at the root.
	Parent() Node

	// Root returns the root of the tree this node belongs to. A node is its
	// own root when detached from any parent.
	Root() Node

	// StoredValue returns the user-facing object this node manages.
	StoredValue() any

	// Middlewares returns the handlers registered on this node, in
	// registration order. The returned slice must not be mutated.
	Middlewares() []domain.Middleware

	// AddMiddleware registers a handler on this node, scoped to this node's
	// action calls and those of all descendants. The returned function
	// removes the registration; calling it more than once is a no-op.
	AddMiddleware(mw domain.Middleware) (remove func())

	// RelativePathTo computes the path string from this node to other.
	RelativePathTo(other Node) (string, error)

	// Resolve resolves a relative path starting at this node. It returns a
	// *domain.InvalidPathError when the path does not reach a live node.
	Resolve(path string) (Node, error)

	// TryResolve is the nullable variant of Resolve.
	TryResolve(path string) Node

	// NodeFor returns the handle managing value, from this tree or any other
	// tree known to the runtime, or nil when the value is unmanaged.
	NodeFor(value any) Node

	// AssertAlive returns a *domain.DeadNodeError when the node has been
	// detached or destroyed.
	AssertAlive() error

	// IsRunningAction reports whether an outer action is currently executing
	// anywhere in this node's tree. The flag lives on the root.
	IsRunningAction() bool

	// SetRunningAction flips the tree-wide running flag. Used only by the
	// dispatch core around outer action invocations.
	SetRunningAction(running bool)

	// RunTransactionally executes fn as a single mutation batch: observers
	// of the tree are notified once, after the outermost batch completes.
	// The name identifies the batch for diagnostics.
	RunTransactionally(name string, fn func() (any, error)) (any, error)
}
