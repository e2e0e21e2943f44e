/*
Package arbor is an action-dispatch and middleware pipeline for mutable,
tree-structured object graphs. Every node of a tree can expose named actions
(mutating operations); arbor makes those calls observable, interceptable and
serializable across process boundaries.

# Concept

An action call travels from a raw in-memory invocation, through the
middleware registered on the target node and all of its ancestors
(nearest-first), down to the actual execution inside the tree's
transactional wrapper. The inverse protocol turns each call into a durable,
path-addressed record that can be logged, transmitted and replayed later.

# Key Properties

  - Re-entrancy aware: only the outermost action call of a tree runs the
    middleware pipeline; actions calling other actions execute directly.
  - Deterministic ordering: a node's handlers run before its ancestors',
    terminal execution runs last, exactly once, unless a handler
    short-circuits.
  - Reference-free wire format: node-valued arguments serialize as relative
    paths ({"$ref": "./sibling"}), decoded against the replay target.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/arbor"
	)

	func main() {
		tree := arbor.NewTree()
		child := tree.Root().AddChild("child")

		// Observe every call as a serialized record.
		dispose := arbor.OnAction(tree.RootNode(), func(call arbor.SerializedActionCall) {
			fmt.Printf("dispatched %s at %q\n", call.Name, call.Path)
		})
		defer dispose()

		// Invoke an action; the listener sees {name: "rename", path: "./child"}.
		if _, err := child.Invoke("rename", "first"); err != nil {
			log.Fatal(err)
		}

		// Replay the equivalent serialized call.
		_, err := arbor.ApplyAction(tree.RootNode(), arbor.SerializedActionCall{
			Name: "rename",
			Path: "./child",
			Args: []arbor.Argument{arbor.ValueArgument("second")},
		})
		if err != nil {
			log.Fatal(err)
		}
	}

The tree implementation is pluggable: the dispatch core only consumes the
ports.Node interface. pkg/adapters/memtree provides the reference in-memory
tree; pkg/recorder and the store adapters persist and replay action logs.
*/
package arbor
