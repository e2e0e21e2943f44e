// Package dispatch implements the action dispatch pipeline: ancestor-chain
// middleware collection, the continuation-passing executor with its terminal
// execution step, and the invoker factory that distinguishes outermost calls
// (which run the pipeline) from nested calls (which execute directly).
//
// Execution is single-threaded and synchronous. The per-tree running flag is
// not a concurrency lock; its sole purpose is re-entrancy detection within
// one call stack.
package dispatch
