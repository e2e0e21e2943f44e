package arbor

import (
	"github.com/aretw0/arbor/pkg/action"
	"github.com/aretw0/arbor/pkg/adapters/memtree"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Version is the library version, used by CLI and HTTP info surfaces.
var Version = "0.3.0"

// Re-exported core types, so simple consumers only import the root package.
type (
	// Node is the tree-membership handle of a stored value.
	Node = ports.Node
	// RawActionCall is an in-memory action call carrying live references.
	RawActionCall = domain.RawActionCall
	// SerializedActionCall is the durable, reference-free call record.
	SerializedActionCall = domain.SerializedActionCall
	// Middleware intercepts action calls on a node and its descendants.
	Middleware = domain.Middleware
	// Next continues the middleware pipeline with the (possibly substituted)
	// call.
	Next = domain.Next
	// Argument is one serialized action argument: a node reference or a
	// plain value.
	Argument = domain.Argument
)

// ValueArgument creates a plain-value serialized argument.
func ValueArgument(v any) domain.Argument { return domain.ValueArgument(v) }

// RefArgument creates a node-reference serialized argument.
func RefArgument(path string) domain.Argument { return domain.RefArgument(path) }

// NewTree creates an in-memory object tree with the built-in actions
// defined on every object.
func NewTree() *memtree.Tree {
	return memtree.NewTree()
}

// ApplyAction replays a serialized call against target's tree. See
// action.Apply.
func ApplyAction(target ports.Node, call domain.SerializedActionCall) (any, error) {
	return action.Apply(target, call)
}

// OnAction subscribes listener to every action dispatched on target or its
// descendants, as serialized records. The returned function disposes the
// subscription. See action.OnAction.
func OnAction(target ports.Node, listener func(domain.SerializedActionCall)) (dispose func()) {
	return action.OnAction(target, listener)
}

// AddMiddleware registers a middleware handler on node, scoped to the node
// and all of its descendants.
func AddMiddleware(node ports.Node, mw domain.Middleware) (remove func()) {
	return node.AddMiddleware(mw)
}
