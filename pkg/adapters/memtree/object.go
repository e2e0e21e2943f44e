package memtree

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/dispatch"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Object is the user-facing stored value of a memtree node: a mutable bag of
// scalar fields and owned child objects. Fields may also hold references to
// other objects of the same tree; only children participate in the path
// space.
type Object struct {
	node *node

	fields   map[string]any
	children map[string]*Object

	handlers map[string]ports.ActionHandler
	invokers map[string]*dispatch.Invoker
}

var _ ports.ActionTarget = (*Object)(nil)

func newObject() *Object {
	return &Object{
		fields:   make(map[string]any),
		children: make(map[string]*Object),
		handlers: make(map[string]ports.ActionHandler),
		invokers: make(map[string]*dispatch.Invoker),
	}
}

// Node returns the object's tree handle.
func (o *Object) Node() ports.Node { return o.node }

// Define registers an action on the object. The handler runs through the
// full dispatch pipeline when invoked via Invoke or action.Apply. Redefining
// an existing name replaces it.
func (o *Object) Define(name string, fn ports.ActionHandler) {
	o.handlers[name] = fn
	o.invokers[name] = dispatch.NewInvoker(name, fn)
}

// Invoke implements ports.ActionTarget.
func (o *Object) Invoke(name string, args ...any) (any, error) {
	inv, ok := o.invokers[name]
	if !ok {
		return nil, &domain.UnknownActionError{Name: name, Path: o.node.lastKnownPath()}
	}
	return inv.Invoke(o.node, args...)
}

// Handler implements ports.ActionTarget.
func (o *Object) Handler(name string) (ports.ActionHandler, bool) {
	fn, ok := o.handlers[name]
	return fn, ok
}

// Actions returns the names of all defined actions, in no particular order.
func (o *Object) Actions() []string {
	names := make([]string, 0, len(o.handlers))
	for name := range o.handlers {
		names = append(names, name)
	}
	return names
}

// Get returns a scalar field or reference value, or nil.
func (o *Object) Get(key string) any { return o.fields[key] }

// Child returns the owned child object under key, or nil.
func (o *Object) Child(key string) *Object { return o.children[key] }

// Children returns the keys of all owned children, in no particular order.
func (o *Object) Children() []string {
	keys := make([]string, 0, len(o.children))
	for key := range o.children {
		keys = append(keys, key)
	}
	return keys
}

// Set stores a field value. Storing an *Object records a reference; it does
// not reparent the object.
func (o *Object) Set(key string, value any) {
	o.fields[key] = value
	o.node.tree.markChanged()
}

// Unset removes a field.
func (o *Object) Unset(key string) {
	delete(o.fields, key)
	o.node.tree.markChanged()
}

// AddChild creates and attaches a new child object under key, with the
// built-in actions defined. An existing child under the same key is
// detached first.
func (o *Object) AddChild(key string) *Object {
	if existing, ok := o.children[key]; ok {
		existing.node.die()
	}

	child := newObject()
	child.node = &node{
		tree:   o.node.tree,
		parent: o.node,
		key:    key,
		alive:  true,
	}
	child.node.value = child
	defineBuiltins(child)

	o.children[key] = child
	o.node.tree.markChanged()
	return child
}

// RemoveChild detaches the child under key. The detached subtree is marked
// dead: its nodes fail AssertAlive and its actions can no longer be invoked.
func (o *Object) RemoveChild(key string) {
	child, ok := o.children[key]
	if !ok {
		return
	}
	child.node.die()
	delete(o.children, key)
	o.node.tree.markChanged()
}

// defineBuiltins installs the generic mutation actions every tree-managed
// object carries.
func defineBuiltins(o *Object) {
	o.Define("set", func(self any, args ...any) (any, error) {
		obj := self.(*Object)
		key, err := stringArg("set", 0, args)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("action %q expects a value argument", "set")
		}
		obj.Set(key, args[1])
		return nil, nil
	})

	o.Define("unset", func(self any, args ...any) (any, error) {
		obj := self.(*Object)
		key, err := stringArg("unset", 0, args)
		if err != nil {
			return nil, err
		}
		obj.Unset(key)
		return nil, nil
	})

	o.Define("rename", func(self any, args ...any) (any, error) {
		obj := self.(*Object)
		name, err := stringArg("rename", 0, args)
		if err != nil {
			return nil, err
		}
		obj.Set("name", name)
		return name, nil
	})

	o.Define("addChild", func(self any, args ...any) (any, error) {
		obj := self.(*Object)
		key, err := stringArg("addChild", 0, args)
		if err != nil {
			return nil, err
		}
		return obj.AddChild(key), nil
	})

	o.Define("removeChild", func(self any, args ...any) (any, error) {
		obj := self.(*Object)
		key, err := stringArg("removeChild", 0, args)
		if err != nil {
			return nil, err
		}
		obj.RemoveChild(key)
		return nil, nil
	})
}

func stringArg(action string, index int, args []any) (string, error) {
	if index >= len(args) {
		return "", fmt.Errorf("action %q expects a string argument at position %d", action, index)
	}
	s, ok := args[index].(string)
	if !ok {
		return "", fmt.Errorf("action %q expects a string at position %d, got %T", action, index, args[index])
	}
	return s, nil
}
