package record

import (
	"reflect"
	"strconv"
)

// MaxDepth bounds traversal of nested record values.
const MaxDepth = 6

// Kind discriminates the value variants found in archive metadata.
type Kind int

// Value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindList
	KindMap
)

// Value is one node of a semi-structured archive record:
// a string, a number, a list of values, or a nested map.
type Value struct {
	kind Kind
	str  string
	num  float64
	list []Value
	obj  map[string]Value
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List creates a list value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map creates a map value.
func Map(fields map[string]Value) Value { return Value{kind: KindMap, obj: fields} }

// Kind returns the value variant.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (empty for non-strings).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (0 for non-numbers).
func (v Value) Num() float64 { return v.num }

// Items returns the list payload (nil for non-lists).
func (v Value) Items() []Value { return v.list }

// Fields returns the map payload (nil for non-maps).
func (v Value) Fields() map[string]Value { return v.obj }

// IsZero reports whether the value carries no payload.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindNumber:
		return false
	case KindList:
		return len(v.list) == 0
	case KindMap:
		return len(v.obj) == 0
	}
	return true
}

// FromAny converts decoded JSON (or any map/slice/scalar shape) into a Value.
// Traversal stops at MaxDepth and skips containers already on the path, so
// cyclic inputs cannot loop. Unsupported leaf types are dropped.
func FromAny(v any) Value {
	return fromAny(v, 0, map[uintptr]struct{}{})
}

func fromAny(v any, depth int, seen map[uintptr]struct{}) Value {
	if depth > MaxDepth {
		return Value{kind: KindString}
	}

	switch t := v.(type) {
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		return String(strconv.FormatBool(t))
	case nil:
		return Value{kind: KindString}
	case Value:
		return t
	case []any:
		if !enter(t, seen) {
			return Value{kind: KindList}
		}
		defer leave(t, seen)
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, fromAny(item, depth+1, seen))
		}
		return Value{kind: KindList, list: items}
	case []string:
		items := make([]Value, 0, len(t))
		for _, s := range t {
			items = append(items, String(s))
		}
		return Value{kind: KindList, list: items}
	case map[string]any:
		if !enter(t, seen) {
			return Value{kind: KindMap}
		}
		defer leave(t, seen)
		obj := make(map[string]Value, len(t))
		for k, item := range t {
			obj[k] = fromAny(item, depth+1, seen)
		}
		return Value{kind: KindMap, obj: obj}
	default:
		return Value{kind: KindString}
	}
}

// enter registers a container identity on the current path.
// Returns false when the container is already on the path (a cycle).
func enter(container any, seen map[uintptr]struct{}) bool {
	p := reflect.ValueOf(container).Pointer()
	if _, ok := seen[p]; ok {
		return false
	}
	seen[p] = struct{}{}
	return true
}

func leave(container any, seen map[uintptr]struct{}) {
	delete(seen, reflect.ValueOf(container).Pointer())
}

// Fold walks a value depth-first, calling fn for every string and number
// leaf, to at most MaxDepth levels. The fold is the single traversal
// primitive shared by the classifier harvester and the trust field gatherer.
func Fold(v Value, fn func(leaf Value)) {
	fold(v, 0, fn)
}

func fold(v Value, depth int, fn func(leaf Value)) {
	if depth > MaxDepth {
		return
	}
	switch v.kind {
	case KindString, KindNumber:
		fn(v)
	case KindList:
		for _, item := range v.list {
			fold(item, depth+1, fn)
		}
	case KindMap:
		for _, item := range v.obj {
			fold(item, depth+1, fn)
		}
	}
}
