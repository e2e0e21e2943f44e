package dispatch

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Chain collects the middleware applicable to an action call on node:
// the node's own handlers first, then its parent's, up to the root.
// Handlers registered on an ancestor therefore see every call made on any
// of its descendants, after the descendant's own handlers.
//
// The walk is a plain loop over the parent chain; registrations are assumed
// stable for the duration of a single dispatch.
func Chain(node ports.Node) []domain.Middleware {
	var handlers []domain.Middleware
	for n := node; n != nil; n = n.Parent() {
		handlers = append(handlers, n.Middlewares()...)
	}
	return handlers
}
