package action

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Apply replays a serialized call against a tree. The call's path is
// resolved relative to target (an empty path addresses target itself), each
// argument is deserialized relative to the resolved node, and the named
// action is invoked through the full dispatch pipeline. The action's result
// or failure is returned unchanged.
func Apply(target ports.Node, call domain.SerializedActionCall) (any, error) {
	node, err := target.Resolve(call.Path)
	if err != nil {
		return nil, err
	}

	obj, ok := node.StoredValue().(ports.ActionTarget)
	if !ok {
		return nil, &domain.UnknownActionError{Name: call.Name, Path: call.Path}
	}
	if _, ok := obj.Handler(call.Name); !ok {
		return nil, &domain.UnknownActionError{Name: call.Name, Path: call.Path}
	}

	args := make([]any, len(call.Args))
	for i, arg := range call.Args {
		decoded, err := DeserializeArgument(node, arg)
		if err != nil {
			return nil, err
		}
		args[i] = decoded
	}

	return obj.Invoke(call.Name, args...)
}

// OnAction subscribes listener to every action call dispatched on target or
// any of its descendants. Each call is serialized and handed to the listener
// before being forwarded, unchanged, to the rest of the chain. The call path
// is relative to target; reference arguments are relative to the call's own
// node, so the record decodes correctly when applied at the same path.
//
// Serialization failures propagate through the pipeline exactly as if they
// occurred in the action itself; the listener cannot suppress them. The
// returned disposer removes the subscription.
func OnAction(target ports.Node, listener func(domain.SerializedActionCall)) (dispose func()) {
	return target.AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		serialized, err := SerializeCall(target, call)
		if err != nil {
			return nil, err
		}
		listener(serialized)
		return next(call)
	})
}
