// Package action converts between in-memory action calls and their durable,
// reference-free wire form, and exposes the two public entry points built on
// that conversion: Apply (replay a serialized call against a tree) and
// OnAction (observe every dispatched call as a serialized record).
package action
