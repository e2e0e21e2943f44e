package memtree

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

type middlewareEntry struct {
	id int
	fn domain.Middleware
}

// node is the ports.Node implementation for memtree. One node exists per
// attached Object; detaching the object marks the node (and its subtree)
// dead without breaking pointers held by callers.
type node struct {
	tree   *Tree
	parent *node
	key    string // path segment under parent; empty at the root
	value  *Object
	alive  bool

	middlewares []middlewareEntry
	nextMW      int
}

var _ ports.Node = (*node)(nil)

// Parent implements ports.Node.
func (n *node) Parent() ports.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Root implements ports.Node.
func (n *node) Root() ports.Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// StoredValue implements ports.Node.
func (n *node) StoredValue() any { return n.value }

// Middlewares implements ports.Node.
func (n *node) Middlewares() []domain.Middleware {
	if len(n.middlewares) == 0 {
		return nil
	}
	out := make([]domain.Middleware, len(n.middlewares))
	for i, entry := range n.middlewares {
		out[i] = entry.fn
	}
	return out
}

// AddMiddleware implements ports.Node.
func (n *node) AddMiddleware(mw domain.Middleware) (remove func()) {
	id := n.nextMW
	n.nextMW++
	n.middlewares = append(n.middlewares, middlewareEntry{id: id, fn: mw})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, entry := range n.middlewares {
			if entry.id == id {
				n.middlewares = append(n.middlewares[:i], n.middlewares[i+1:]...)
				return
			}
		}
	}
}

// NodeFor implements ports.Node. Values managed by any memtree tree are
// recognized through their back-reference; dead nodes are not reported.
func (n *node) NodeFor(value any) ports.Node {
	obj, ok := value.(*Object)
	if !ok || obj.node == nil || !obj.node.alive {
		return nil
	}
	return obj.node
}

// AssertAlive implements ports.Node.
func (n *node) AssertAlive() error {
	if n.alive {
		return nil
	}
	return &domain.DeadNodeError{Path: n.lastKnownPath()}
}

// IsRunningAction implements ports.Node.
func (n *node) IsRunningAction() bool { return n.tree.running }

// SetRunningAction implements ports.Node.
func (n *node) SetRunningAction(running bool) { n.tree.running = running }

// RunTransactionally implements ports.Node.
func (n *node) RunTransactionally(name string, fn func() (any, error)) (any, error) {
	return n.tree.runTransactionally(name, fn)
}

// lastKnownPath reconstructs the node's path from the parent chain. Usable
// for diagnostics even after detachment, since parent pointers are kept.
func (n *node) lastKnownPath() string {
	if n.parent == nil {
		return "."
	}
	segments := []string{}
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append([]string{cur.key}, segments...)
	}
	path := "."
	for _, seg := range segments {
		path += "/" + seg
	}
	return path
}

// die marks the node and its whole subtree dead.
func (n *node) die() {
	n.alive = false
	for _, child := range n.value.children {
		if child.node != nil {
			child.node.die()
		}
	}
}
