package fiber

import (
	"reflect"
	"runtime"
	"strings"
)

// NearestOwnerName walks up from owner and returns the name of the nearest
// composite, for use in diagnostics. Returns "" when no named composite
// encloses the position.
func NearestOwnerName(owner *Fiber) string {
	for f := owner; f != nil; f = f.Return {
		if !f.Kind.Composite() {
			continue
		}
		if name := ComponentName(f.Type); name != "" {
			return name
		}
		if name := ComponentName(f.ElementType); name != "" {
			return name
		}
	}
	return ""
}

// ComponentName derives a display name for a component definition.
func ComponentName(t any) string {
	switch v := t.(type) {
	case nil:
		return ""
	case string:
		return v
	case interface{ DisplayName() string }:
		return v.DisplayName()
	}

	rv := reflect.ValueOf(t)
	if rv.Kind() == reflect.Func {
		fn := runtime.FuncForPC(rv.Pointer())
		if fn == nil {
			return ""
		}
		return trimFuncName(fn.Name())
	}

	rt := reflect.TypeOf(t)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Name()
}

// trimFuncName reduces a runtime function name like
// "github.com/x/y.App.func1" to its last meaningful segment.
func trimFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}
