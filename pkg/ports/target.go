package ports

// ActionHandler is the raw implementation of a named action. The self
// parameter is the stored value the action executes on.
type ActionHandler func(self any, args ...any) (any, error)

// ActionTarget is implemented by stored values that expose named actions.
//
// Invoke runs the named action through the full dispatch pipeline (alive
// check, re-entrancy detection, middleware chain, transaction). Handler
// returns the raw handler registered under name, bypassing dispatch; the
// executor uses it for the terminal step so that a middleware-substituted
// call is resolved against the substituted object.
type ActionTarget interface {
	Invoke(name string, args ...any) (any, error)
	Handler(name string) (ActionHandler, bool)
}
