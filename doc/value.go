package doc

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/milk9111/rube/common"
)

// Value is one node of a decoded document. The zero Value is an absent node;
// every accessor on it returns its default.
type Value struct {
	raw any
}

// Of wraps an already decoded tree (map[string]any, []any, scalars).
func Of(raw any) Value {
	return Value{raw: normalize(raw)}
}

func (v Value) Raw() any {
	return v.raw
}

func (v Value) IsNil() bool {
	return v.raw == nil
}

func (v Value) IsMap() bool {
	_, ok := v.raw.(map[string]any)
	return ok
}

func (v Value) IsList() bool {
	_, ok := v.raw.([]any)
	return ok
}

func (v Value) Kind() string {
	switch v.raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		if _, ok := toFloat(v.raw); ok {
			return "number"
		}
		return "unknown"
	}
}

// Has reports whether key is present in a mapping node.
func (v Value) Has(key string) bool {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Get returns the child under key, or an absent Value.
func (v Value) Get(key string) Value {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}
	}
	return Value{raw: m[key]}
}

// Keys returns the keys of a mapping node in no particular order.
func (v Value) Keys() []string {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Items returns the elements of a list node in document order.
func (v Value) Items() []Value {
	list, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(list))
	for i, item := range list {
		out[i] = Value{raw: item}
	}
	return out
}

// List returns the list under key. ok is false when the key is present but
// does not hold a list; an absent key yields an empty list and ok true.
func (v Value) List(key string) (items []Value, ok bool) {
	child := v.Get(key)
	if child.IsNil() {
		return nil, true
	}
	if !child.IsList() {
		return nil, false
	}
	return child.Items(), true
}

func (v Value) Float(key string, def float64) float64 {
	if f, ok := toFloat(v.Get(key).raw); ok {
		return f
	}
	return def
}

func (v Value) Int(key string, def int) int {
	if i, ok := toInt(v.Get(key).raw); ok {
		return i
	}
	return def
}

func (v Value) Bool(key string, def bool) bool {
	if b, ok := v.Get(key).raw.(bool); ok {
		return b
	}
	return def
}

func (v Value) String(key string, def string) string {
	if s, ok := v.Get(key).raw.(string); ok {
		return s
	}
	return def
}

// Vec2 reads a {x, y} mapping. RUBE writes the zero vector as the bare
// number 0, which is accepted too.
func (v Value) Vec2(key string, def common.Vec2) common.Vec2 {
	if vec, ok := v.Get(key).AsVec2(); ok {
		return vec
	}
	return def
}

// AsVec2 interprets the node itself as a vector.
func (v Value) AsVec2() (common.Vec2, bool) {
	switch t := v.raw.(type) {
	case map[string]any:
		x, okX := toFloat(t["x"])
		y, okY := toFloat(t["y"])
		if !okX && !okY {
			return common.Vec2{}, false
		}
		return common.Vec2{X: x, Y: y}, true
	default:
		if f, ok := toFloat(t); ok && f == 0 {
			return common.Vec2{}, true
		}
		return common.Vec2{}, false
	}
}

// Vec2Array reads the RUBE vertex layout {x: [...], y: [...]}.
func (v Value) Vec2Array(key string) []common.Vec2 {
	node := v.Get(key)
	xs := node.Get("x").Items()
	ys := node.Get("y").Items()
	n := min(len(xs), len(ys))
	if n == 0 {
		return nil
	}
	out := make([]common.Vec2, n)
	for i := 0; i < n; i++ {
		x, _ := toFloat(xs[i].raw)
		y, _ := toFloat(ys[i].raw)
		out[i] = common.Vec2{X: x, Y: y}
	}
	return out
}

func toFloat(x any) (float64, bool) {
	switch t := x.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return hexFloat(t)
	default:
		return 0, false
	}
}

func toInt(x any) (int, bool) {
	switch t := x.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
	}
	f, ok := toFloat(x)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// hexFloat decodes RUBE's non human readable float encoding: the IEEE-754
// single precision bit pattern written as eight hex digits.
func hexFloat(s string) (float64, bool) {
	if len(s) != 8 {
		return 0, false
	}
	bits, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return float64(math.Float32frombits(uint32(bits))), true
}
