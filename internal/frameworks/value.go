package frameworks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a single form value: either a scalar string or a list of strings.
// Multi-select fields historically accepted both forms, so the rendering of a
// value depends on which one the caller supplied.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// FieldValues maps field names to their submitted values.
type FieldValues map[string]Value

// Scalar wraps a single string value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List wraps a list value.
func List(items ...string) Value {
	return Value{list: append([]string(nil), items...), isList: true}
}

// IsList reports whether the value was supplied as a list.
func (v Value) IsList() bool {
	return v.isList
}

// Items returns the non-empty trimmed list items. A scalar yields a single
// item when non-empty.
func (v Value) Items() []string {
	if !v.isList {
		if s := strings.TrimSpace(v.scalar); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Empty reports whether the value carries no usable content. Blank strings and
// lists of blank strings count as empty.
func (v Value) Empty() bool {
	return len(v.Items()) == 0
}

// Text renders the value for interpolation into a prompt. Lists are numbered
// as "(1) a, (2) b"; scalars are passed through verbatim.
func (v Value) Text() string {
	if !v.isList {
		return v.scalar
	}
	items := v.Items()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("(%d) %s", i+1, item)
	}
	return strings.Join(parts, ", ")
}

func (v Value) String() string {
	return v.Text()
}

// MarshalJSON encodes lists as arrays and scalars as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		list := v.list
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON accepts a string, an array of strings, a number or a bool.
// Numbers and bools keep their literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("field value list must contain strings: %w", err)
		}
		*v = List(items...)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Scalar(s)
	case '{':
		return fmt.Errorf("field value must be a string or a list of strings")
	default:
		*v = Scalar(string(trimmed))
	}
	return nil
}

// Clone returns a copy that shares no backing arrays with fv.
func (fv FieldValues) Clone() FieldValues {
	if fv == nil {
		return nil
	}
	out := make(FieldValues, len(fv))
	for k, v := range fv {
		if v.isList {
			out[k] = List(v.list...)
			continue
		}
		out[k] = v
	}
	return out
}

// text returns the rendered value, or "" when the field is blank so optional
// sections drop out.
func (fv FieldValues) text(name string) string {
	v, ok := fv[name]
	if !ok || v.Empty() {
		return ""
	}
	return v.Text()
}
