package action

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// SerializeArgument converts one raw action argument into its wire-safe
// form. The node is the one the action was invoked on; reference arguments
// are encoded as paths relative to it.
//
// Rules, in order:
//   - nil and primitives pass through unchanged.
//   - a value managed by a tree becomes a Ref with the relative path;
//     values from a different tree than node's fail with
//     CrossTreeReferenceError.
//   - a ports.Node handle is rejected; actions receive stored values, not
//     tree handles.
//   - functions, channels and other unserializable kinds are rejected with
//     InvalidArgumentError naming the concrete type.
//   - everything else must survive a JSON round-trip; the decoded form is
//     what gets recorded. Failures surface as NotSerializableError.
func SerializeArgument(node ports.Node, actionName string, index int, value any) (domain.Argument, error) {
	if value == nil {
		return domain.ValueArgument(nil), nil
	}

	if target := node.NodeFor(value); target != nil {
		if target.Root() != node.Root() {
			return domain.Argument{}, &domain.CrossTreeReferenceError{Action: actionName, ArgIndex: index}
		}
		path, err := node.RelativePathTo(target)
		if err != nil {
			return domain.Argument{}, &domain.NotSerializableError{Action: actionName, ArgIndex: index, Err: err}
		}
		return domain.RefArgument(path), nil
	}

	if _, ok := value.(ports.Node); ok {
		return domain.Argument{}, &domain.InvalidArgumentError{
			Action:   actionName,
			ArgIndex: index,
			Reason:   fmt.Sprintf("%T is a tree handle, pass the stored value instead", value),
		}
	}

	switch value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return domain.ValueArgument(value), nil
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return domain.Argument{}, &domain.InvalidArgumentError{
			Action:   actionName,
			ArgIndex: index,
			Reason:   fmt.Sprintf("values of type %T cannot be serialized", value),
		}
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return domain.Argument{}, &domain.NotSerializableError{Action: actionName, ArgIndex: index, Err: err}
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return domain.Argument{}, &domain.NotSerializableError{Action: actionName, ArgIndex: index, Err: err}
	}
	return domain.ValueArgument(decoded), nil
}

// DeserializeArgument converts one wire argument back into a live value,
// resolving Ref arguments relative to the target node of the call being
// deserialized. Value arguments pass through unchanged.
func DeserializeArgument(node ports.Node, arg domain.Argument) (any, error) {
	if !arg.IsRef() {
		return arg.Value(), nil
	}
	resolved, err := node.Resolve(arg.Path())
	if err != nil {
		return nil, err
	}
	return resolved.StoredValue(), nil
}

// SerializeCall converts a raw call into its durable form, with the call
// path computed relative to relativeTo (typically the node an OnAction
// listener is registered on).
func SerializeCall(relativeTo ports.Node, call *domain.RawActionCall) (domain.SerializedActionCall, error) {
	node := relativeTo.NodeFor(call.Object)
	if node == nil {
		return domain.SerializedActionCall{}, fmt.Errorf("action %q: target object is not part of a tree", call.Name)
	}

	path, err := relativeTo.RelativePathTo(node)
	if err != nil {
		return domain.SerializedActionCall{}, fmt.Errorf("action %q: %w", call.Name, err)
	}

	serialized := domain.SerializedActionCall{Name: call.Name, Path: path}
	if len(call.Args) > 0 {
		serialized.Args = make([]domain.Argument, len(call.Args))
		for i, raw := range call.Args {
			arg, err := SerializeArgument(node, call.Name, i, raw)
			if err != nil {
				return domain.SerializedActionCall{}, err
			}
			serialized.Args[i] = arg
		}
	}
	return serialized, nil
}
