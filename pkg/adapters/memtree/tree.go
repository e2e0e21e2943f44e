// Package memtree provides the reference in-memory implementation of the
// tree collaborator: a mutable object tree whose nodes implement ports.Node
// and whose stored values (Object) expose named actions through the dispatch
// pipeline.
//
// A tree is single-threaded, matching the synchronous dispatch model.
// Callers that share a tree across goroutines (e.g. an HTTP server) must
// serialize access themselves.
package memtree

import "github.com/aretw0/arbor/pkg/ports"

type observerEntry struct {
	id int
	fn func(transaction string)
}

// Tree owns a root object, the tree-wide running-action flag, and the
// transaction machinery that batches change notifications.
type Tree struct {
	root *Object

	running bool

	txDepth int
	txName  string
	changed bool

	observers []observerEntry
	nextObs   int
}

// NewTree creates a tree with an empty root object. The root carries the
// built-in actions (set, unset, rename, addChild, removeChild).
func NewTree() *Tree {
	t := &Tree{}
	t.root = newObject()
	t.root.node = &node{tree: t, alive: true}
	t.root.node.value = t.root
	defineBuiltins(t.root)
	return t
}

// Root returns the root object of the tree.
func (t *Tree) Root() *Object { return t.root }

// RootNode returns the root's tree handle.
func (t *Tree) RootNode() ports.Node { return t.root.node }

// Observe registers fn to be called once per outermost transaction that
// mutated the tree, with the transaction (action) name. The returned
// function removes the observer.
func (t *Tree) Observe(fn func(transaction string)) (remove func()) {
	id := t.nextObs
	t.nextObs++
	t.observers = append(t.observers, observerEntry{id: id, fn: fn})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, entry := range t.observers {
			if entry.id == id {
				t.observers = append(t.observers[:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

// runTransactionally executes fn as one mutation batch. Nested batches fold
// into the outermost one; observers fire once, after the outermost batch
// completes, and only if something actually changed. Notification happens
// on success and on failure alike, since partial mutations are visible
// either way.
func (t *Tree) runTransactionally(name string, fn func() (any, error)) (any, error) {
	if t.txDepth == 0 {
		t.txName = name
		t.changed = false
	}
	t.txDepth++
	defer func() {
		t.txDepth--
		if t.txDepth == 0 && t.changed {
			// Copy so an observer disposing itself mid-notification is safe.
			entries := make([]observerEntry, len(t.observers))
			copy(entries, t.observers)
			for _, entry := range entries {
				entry.fn(t.txName)
			}
			t.changed = false
		}
	}()

	return fn()
}

// markChanged records that the current transaction mutated the tree.
// Mutations outside any transaction notify observers immediately.
func (t *Tree) markChanged() {
	if t.txDepth == 0 {
		for _, entry := range t.observers {
			entry.fn("")
		}
		return
	}
	t.changed = true
}
