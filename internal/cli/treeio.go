package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dstlang/dst/lang/value"
)

// DecodeTree reads a JSON-encoded value tree from r and builds the
// value.Value it describes. This is CLI-only plumbing: the compiler
// itself never parses text (its input contract is an already-built
// value.Value tree plus a parallel srcmap.Tree), so dstc needs some way
// to hand it one from a file, and JSON is the least amount of ad hoc
// parsing machinery that can do that without reimplementing a grammar
// this module deliberately does not own.
//
// A JSON value maps onto the tree as follows: null/bool/number/string map
// to the matching Value directly; {"sym": "name"} is a Symbol;
// {"form": [...]} is a Form (code); {"arr": [...]} is an Array; and
// {"dict": [[k, v], ...]} is a Dict.
func DecodeTree(r io.Reader) (value.Value, error) {
	var raw interface{}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding value tree: %w", err)
	}
	return decodeValue(raw)
}

func decodeValue(raw interface{}) (value.Value, error) {
	switch x := raw.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("decoding number %q: %w", x.String(), err)
		}
		return value.Number(f), nil
	case string:
		return value.NewString(x), nil
	case map[string]interface{}:
		return decodeTagged(x)
	default:
		return nil, fmt.Errorf("unsupported JSON shape %T in value tree", raw)
	}
}

func decodeTagged(m map[string]interface{}) (value.Value, error) {
	switch {
	case m["sym"] != nil:
		name, ok := m["sym"].(string)
		if !ok {
			return nil, fmt.Errorf(`"sym" must be a string`)
		}
		return value.NewSymbol(name), nil

	case m["form"] != nil:
		items, err := decodeList(m["form"])
		if err != nil {
			return nil, err
		}
		return value.NewForm(items), nil

	case m["arr"] != nil:
		items, err := decodeList(m["arr"])
		if err != nil {
			return nil, err
		}
		return value.NewArray(items), nil

	case m["dict"] != nil:
		pairs, ok := m["dict"].([]interface{})
		if !ok {
			return nil, fmt.Errorf(`"dict" must be a list of [key, value] pairs`)
		}
		d := value.NewDict(len(pairs))
		for i, p := range pairs {
			kv, ok := p.([]interface{})
			if !ok || len(kv) != 2 {
				return nil, fmt.Errorf("dict entry %d must be a [key, value] pair", i)
			}
			k, err := decodeValue(kv[0])
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(kv[1])
			if err != nil {
				return nil, err
			}
			d.Set(k, v)
		}
		return d, nil

	default:
		return nil, fmt.Errorf(`object must have one of "sym", "form", "arr", "dict"`)
	}
}

func decodeList(raw interface{}) ([]value.Value, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON array")
	}
	out := make([]value.Value, len(items))
	for i, it := range items {
		v, err := decodeValue(it)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
