package reconcile

import (
	"reflect"
	"strings"

	"github.com/vango-dev/loom/pkg/element"
)

// propsChanged reports whether two host configurations differ in any
// attribute. Event handlers are identity-managed by the host and the
// reconciliation key is not a real attribute; both are skipped.
func propsChanged(prev, next element.Props) bool {
	for key, pv := range prev {
		if isEventHandler(key) || key == "key" || key == "ref" {
			continue
		}
		nv, ok := next[key]
		if !ok || !propEqual(pv, nv) {
			return true
		}
	}
	for key := range next {
		if isEventHandler(key) || key == "key" || key == "ref" {
			continue
		}
		if _, ok := prev[key]; !ok {
			return true
		}
	}
	return false
}

// propEqual compares two prop values.
func propEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

// isEventHandler returns true if the key is an event handler (starts with
// "on"). Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func isEventHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// sameType reports whether two element type values denote the same
// definition. Function values are compared by code pointer; everything else
// by identity when comparable.
func sameType(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	if va := reflect.ValueOf(a); va.Kind() == reflect.Func {
		return va.Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}

// memoEqual decides a memo wrapper's bailout: the user comparator when one
// was given, shallow props comparison otherwise. Children must also be
// unchanged descriptions.
func memoEqual(mt *element.MemoType, prev, next *element.Element) bool {
	if !sameChildren(prev.Children, next.Children) {
		return false
	}
	if mt.Compare != nil {
		return mt.Compare(prev.Props, next.Props)
	}
	return !propsChanged(prev.Props, next.Props)
}

func sameChildren(prev, next []*element.Element) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if prev[i] != next[i] {
			return false
		}
	}
	return true
}
