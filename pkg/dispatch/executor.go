package dispatch

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Run executes call against the middleware chain collected from node.
//
// Handlers run in collected order via synchronous continuation passing: each
// receives the current call and a next continuation. A handler may pass a
// substituted call to next, call next multiple times, or not at all to
// short-circuit; the overall result is whatever the first handler returns.
// The last handler's next is the terminal execution step. Failures from any
// handler or from terminal execution propagate unmodified.
func Run(node ports.Node, call *domain.RawActionCall) (any, error) {
	handlers := Chain(node)
	if len(handlers) == 0 {
		return execute(node, call)
	}

	// The chain is fixed at dispatch time; handlers registered while a call
	// is in flight do not see it.
	var step func(i int, call *domain.RawActionCall) (any, error)
	step = func(i int, call *domain.RawActionCall) (any, error) {
		if i >= len(handlers) {
			return execute(node, call)
		}
		return handlers[i](call, func(next *domain.RawActionCall) (any, error) {
			return step(i+1, next)
		})
	}
	return step(0, call)
}

// execute is the terminal step: it resolves the named handler on the call's
// target object and runs it inside the tree's transactional wrapper.
func execute(node ports.Node, call *domain.RawActionCall) (any, error) {
	target, ok := call.Object.(ports.ActionTarget)
	if !ok {
		return nil, &domain.UnknownActionError{Name: call.Name}
	}
	handler, ok := target.Handler(call.Name)
	if !ok {
		return nil, &domain.UnknownActionError{Name: call.Name}
	}
	return node.RunTransactionally(call.Name, func() (any, error) {
		return handler(call.Object, call.Args...)
	})
}
