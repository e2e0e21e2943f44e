package domain

import "fmt"

// DeadNodeError is returned when an action is invoked on a node that has
// been detached or destroyed.
type DeadNodeError struct {
	// Action is the name of the action that was attempted, if known.
	Action string
	// Path is the node's last known path, if known.
	Path string
}

func (e *DeadNodeError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("node %q is no longer part of a tree", e.Path)
	}
	return fmt.Sprintf("cannot invoke action %q: node %q is no longer part of a tree", e.Action, e.Path)
}

// CrossTreeReferenceError is returned when an action argument is a node
// belonging to a different tree than the node the action is defined on.
type CrossTreeReferenceError struct {
	Action   string
	ArgIndex int
}

func (e *CrossTreeReferenceError) Error() string {
	return fmt.Sprintf("argument %d of action %q is a node from a different tree", e.ArgIndex, e.Action)
}

// InvalidArgumentError is returned when an action argument cannot be
// serialized by construction: functions, channels, tree handles and other
// unsupported structured types.
type InvalidArgumentError struct {
	Action   string
	ArgIndex int
	// Reason describes why the argument is unsupported, naming the concrete
	// type where determinable.
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument %d of action %q cannot be serialized: %s", e.ArgIndex, e.Action, e.Reason)
}

// NotSerializableError is returned when an argument fails the structural
// serialization round-trip.
type NotSerializableError struct {
	Action   string
	ArgIndex int
	Err      error
}

func (e *NotSerializableError) Error() string {
	return fmt.Sprintf("argument %d of action %q does not survive serialization: %v", e.ArgIndex, e.Action, e.Err)
}

func (e *NotSerializableError) Unwrap() error { return e.Err }

// InvalidPathError is returned when a serialized path does not resolve to a
// live node.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("path %q could not be resolved: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("path %q could not be resolved", e.Path)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// UnknownActionError is returned when a target object has no callable action
// of the given name.
type UnknownActionError struct {
	Name string
	Path string
}

func (e *UnknownActionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("no action %q on target object", e.Name)
	}
	return fmt.Sprintf("no action %q on object at %q", e.Name, e.Path)
}
