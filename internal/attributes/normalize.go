// Package attributes turns loosely typed attribute bags into a closed key/value form.
//
// Everything downstream of Normalize works on Normalized only; raw input never leaks past
// this boundary.
package attributes

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindList
)

// Value is a scalar (string, number, bool) or a list of strings.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func List(items ...string) Value {
	l := make([]string, len(items))
	copy(l, items)
	return Value{kind: KindList, list: l}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
}
func (v Value) Items() []string { return append([]string(nil), v.list...) }
func (v Value) Float() float64  { return v.num }
func (v Value) BoolValue() bool { return v.b }

// Text renders the value for display. Booleans become Yes/No, lists are comma joined.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "Yes"
		}
		return "No"
	case KindList:
		return strings.Join(v.list, ", ")
	}
	return ""
}

// Truthy is true for boolean true and for the strings "true", "yes", "y" and "1".
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.str)) {
		case "true", "yes", "y", "1":
			return true
		}
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return []byte("null"), nil
}

// Normalized is the canonical attribute map.
type Normalized map[string]Value

// Keys returns the keys in sorted order so callers iterate deterministically.
func (n Normalized) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup finds key exactly, then case-insensitively.
func (n Normalized) Lookup(key string) (Value, bool) {
	if v, ok := n[key]; ok {
		return v, true
	}
	for _, k := range n.Keys() {
		if strings.EqualFold(k, key) {
			return n[k], true
		}
	}
	return Value{}, false
}

// Present reports whether key holds a non-blank value.
func (n Normalized) Present(key string) bool {
	v, ok := n.Lookup(key)
	return ok && v.Text() != ""
}

// Normalize never fails: anything it cannot read becomes an empty map.
func Normalize(raw any) Normalized {
	out := Normalized{}
	switch v := raw.(type) {
	case nil:
		return out
	case Normalized:
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[string]any:
		for k, val := range v {
			if nv, ok := scalar(val); ok {
				out[k] = nv
			}
		}
		return out
	case map[string]string:
		for k, val := range v {
			out[k] = String(val)
		}
		return out
	case string:
		return fromJSON([]byte(v))
	case []byte:
		return fromJSON(v)
	case json.RawMessage:
		return fromJSON(v)
	}

	// Other map types (map[string]int, map[string]interface{ ... }) go through reflection.
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		iter := rv.MapRange()
		for iter.Next() {
			if nv, ok := scalar(iter.Value().Interface()); ok {
				out[iter.Key().String()] = nv
			}
		}
	}
	return out
}

func fromJSON(data []byte) Normalized {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Normalized{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Normalized{}
	}
	return Normalize(m)
}

func scalar(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return String(t), true
	case bool:
		return Bool(t), true
	case float64:
		return Number(t), true
	case float32:
		return Number(float64(t)), true
	case int:
		return Number(float64(t)), true
	case int32:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case uint:
		return Number(float64(t)), true
	case uint32:
		return Number(float64(t)), true
	case uint64:
		return Number(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, false
		}
		return Number(f), true
	case []string:
		return List(t...), true
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return Value{}, false
			}
			items = append(items, s)
		}
		return List(items...), true
	}
	return Value{}, false
}

// StringList reads list-shaped fields (highlights, tags, images). Non-string elements and
// blank entries are skipped; anything unreadable yields nil.
func StringList(raw any) []string {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []any:
		items = v
	case string:
		items = listFromJSON([]byte(v))
	case []byte:
		items = listFromJSON(v)
	case json.RawMessage:
		items = listFromJSON(v)
	default:
		return nil
	}

	var out []string
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func listFromJSON(data []byte) []any {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var l []any
	if err := json.Unmarshal(data, &l); err != nil {
		return nil
	}
	return l
}
