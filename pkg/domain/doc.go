// Package domain contains the core types of the action dispatch protocol:
// the in-memory call record (RawActionCall), its durable wire form
// (SerializedActionCall with tagged Argument values), the middleware
// contract, and the error taxonomy surfaced to callers.
//
// The package has no dependencies on the tree implementation; it only
// describes the shapes that travel through the pipeline.
package domain
