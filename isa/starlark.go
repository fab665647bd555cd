package isa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// starlarkKeys are the globals a Starlark description may define.
var starlarkKeys = []string{
	"word_width",
	"opcode_width",
	"reserved_register",
	"load_immediate",
	"memory",
	"args",
	"formats",
	"registers",
	"instruction",
}

// decodeStarlark executes a Starlark description script and collects its
// globals into a Description. Globals starting with '_' and functions are
// private to the script.
func decodeStarlark(name string, src []byte) (desc *Description, err error) {
	thread := starlark.Thread{Name: name}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, starlark.StringDict{})
	if err != nil {
		return
	}

	doc := map[string]any{}
	for _, key := range globals.Keys() {
		value := globals[key]
		if strings.HasPrefix(key, "_") {
			continue
		}
		if _, ok := value.(starlark.Callable); ok {
			continue
		}
		if !slices.Contains(starlarkKeys, key) {
			err = fmt.Errorf("%w: %v", ErrDescriptionKey, key)
			return
		}
		doc[key], err = fromStarlark(value)
		if err != nil {
			err = fmt.Errorf("%v: %w", key, err)
			return
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	desc = &Description{}
	err = dec.Decode(desc)
	if err != nil {
		desc = nil
	}

	return
}

// fromStarlark converts a Starlark data value into its Go equivalent.
func fromStarlark(value starlark.Value) (out any, err error) {
	switch v := value.(type) {
	case starlark.NoneType:
		out = nil
	case starlark.Bool:
		out = bool(v)
	case starlark.Int:
		i64, ok := v.Int64()
		if !ok {
			err = fmt.Errorf("%w: %v", ErrStarlarkValue, v)
			return
		}
		out = i64
	case starlark.String:
		out = v.GoString()
	case *starlark.List, starlark.Tuple:
		list := []any{}
		iter := v.(starlark.Iterable).Iterate()
		defer iter.Done()
		var item starlark.Value
		for iter.Next(&item) {
			var elem any
			elem, err = fromStarlark(item)
			if err != nil {
				return
			}
			list = append(list, elem)
		}
		out = list
	case *starlark.Dict:
		dict := map[string]any{}
		for _, kv := range v.Items() {
			key, ok := kv[0].(starlark.String)
			if !ok {
				err = fmt.Errorf("%w: key %v", ErrStarlarkValue, kv[0])
				return
			}
			dict[key.GoString()], err = fromStarlark(kv[1])
			if err != nil {
				return
			}
		}
		out = dict
	default:
		err = fmt.Errorf("%w: %v", ErrStarlarkValue, value.Type())
	}

	return
}
