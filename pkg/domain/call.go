package domain

// RawActionCall represents an action about to execute.
// It carries live references and only exists for the duration of a single
// outer dispatch: built when the wrapped action method is entered, handed
// through the middleware chain, and discarded once the terminal step returns.
type RawActionCall struct {
	// Name is the action name as registered on the target object.
	Name string

	// Object is the stored value of the node the action was invoked on.
	// Middleware may substitute it (together with Name and Args) to redirect
	// the call before the terminal step executes.
	Object any

	// Args are the raw in-memory arguments, references included.
	Args []any
}

// SerializedActionCall is the durable, reference-free form of an action call.
// It can be persisted, transmitted and replayed later via action.Apply.
type SerializedActionCall struct {
	Name string     `json:"name"`
	Path string     `json:"path,omitempty"`
	Args []Argument `json:"args,omitempty"`
}

// Next continues a middleware chain with the given (possibly substituted)
// call. The last handler's Next is the terminal execution step.
type Next func(call *RawActionCall) (any, error)

// Middleware intercepts action calls flowing through a node or any of its
// descendants. A handler may observe the call, pass a modified call to next,
// call next more than once, or skip next entirely to suppress execution; in
// that case its own return values become the result of the dispatch.
type Middleware func(call *RawActionCall, next Next) (any, error)
