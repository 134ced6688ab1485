package elm

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON document from r into a Value tree. Numbers keep
// their source text (json.Number) so the comparison can report them as
// written by the translator.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("failed to decode ELM document: %w", err)
	}
	return fromInterface(raw)
}

// DecodeFile loads a JSON document from path.
func DecodeFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, fmt.Errorf("failed to open ELM document: %w", err)
	}
	defer f.Close()

	v, err := Decode(f)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func fromInterface(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case json.Number:
		return FromNumber(x), nil
	case string:
		return FromString(x), nil
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			v, err := fromInterface(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return FromArray(elems), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := fromInterface(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return FromObject(fields), nil
	}
	return Value{}, fmt.Errorf("unsupported JSON value of type %T", raw)
}
