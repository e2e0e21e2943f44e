package memtree

import (
	"encoding/json"
	"sort"
)

// Snapshot returns a plain-value view of the object: scalar fields as-is,
// reference fields as {"$ref": "<relative path>"} or null when the target
// is no longer reachable, children nested under their keys. The result
// contains no live references and marshals cleanly.
func (o *Object) Snapshot() map[string]any {
	out := make(map[string]any, len(o.fields)+len(o.children))

	for _, key := range sortedKeys(o.fields) {
		value := o.fields[key]
		if ref, ok := value.(*Object); ok {
			if ref.node != nil && ref.node.alive {
				if path, err := o.node.RelativePathTo(ref.node); err == nil {
					out[key] = map[string]any{"$ref": path}
					continue
				}
			}
			// Detached or unreachable target: there is no path to record.
			out[key] = nil
			continue
		}
		out[key] = value
	}

	for key, child := range o.children {
		out[key] = child.Snapshot()
	}

	return out
}

// MarshalJSON implements json.Marshaler using the snapshot form.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Snapshot())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
