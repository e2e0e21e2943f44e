package domain

import (
	"encoding/json"
	"fmt"
)

// refKey is the single key that marks a serialized node reference.
const refKey = "$ref"

// Argument is one serialized action argument: either a node reference
// (a tree-relative path) or a plain value. The distinction is an explicit
// tagged union rather than a duck-typed map so the wire format can be
// checked exhaustively when decoding.
//
// Wire shape: a reference encodes as {"$ref": "<path>"}; a value encodes as
// the raw JSON of the value itself. Any incoming JSON object with exactly
// one key named "$ref" is treated as a reference. A legitimate plain value
// of that exact shape is therefore indistinguishable on the wire; this is a
// pre-existing format ambiguity and no escaping rule is applied.
type Argument struct {
	ref   bool
	path  string
	value any
}

// RefArgument creates a node-reference argument for the given relative path.
func RefArgument(path string) Argument {
	return Argument{ref: true, path: path}
}

// ValueArgument creates a plain-value argument.
func ValueArgument(v any) Argument {
	return Argument{value: v}
}

// IsRef reports whether the argument is a node reference.
func (a Argument) IsRef() bool { return a.ref }

// Path returns the reference path. Empty for value arguments.
func (a Argument) Path() string { return a.path }

// Value returns the plain value. Nil for reference arguments.
func (a Argument) Value() any { return a.value }

// MarshalJSON implements json.Marshaler.
func (a Argument) MarshalJSON() ([]byte, error) {
	if a.ref {
		return json.Marshal(map[string]string{refKey: a.path})
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err == nil {
		if raw, ok := probe[refKey]; ok && len(probe) == 1 {
			var path string
			if err := json.Unmarshal(raw, &path); err != nil {
				return fmt.Errorf("invalid %s marker: %w", refKey, err)
			}
			*a = Argument{ref: true, path: path}
			return nil
		}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Argument{value: v}
	return nil
}
