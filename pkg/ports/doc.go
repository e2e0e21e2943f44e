// Package ports defines the interfaces between the dispatch core and its
// collaborators: the tree (Node), the stored values exposing actions
// (ActionTarget), and the persistence of serialized calls (ActionStore).
//
// The core depends only on these contracts; adapters provide the
// implementations.
package ports
