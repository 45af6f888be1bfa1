package fiber

import (
	"strings"
	"testing"

	"github.com/vango-dev/loom/pkg/element"
)

type app struct{}

func (app) Render(props element.Props, state any) *element.Element {
	return element.El("div", nil)
}

func TestFromElementHost(t *testing.T) {
	el := element.El("div", element.Props{"class": "box"})
	f, err := FromElement(el, nil, ModeConcurrent, 4)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if f.Kind != KindHost {
		t.Errorf("Kind = %v, want Host", f.Kind)
	}
	if f.Type != "div" || f.ElementType != "div" {
		t.Errorf("Type = %v / %v, want div", f.Type, f.ElementType)
	}
	if f.PendingProps != el {
		t.Error("pending input must be the description itself")
	}
	if f.Deadline != 4 {
		t.Errorf("Deadline = %v, want 4", f.Deadline)
	}
}

func TestFromElementText(t *testing.T) {
	f, err := FromElement(element.Text("hello"), nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if f.Kind != KindText {
		t.Errorf("Kind = %v, want Text", f.Kind)
	}
	if f.PendingProps != "hello" {
		t.Errorf("PendingProps = %v, want the text content", f.PendingProps)
	}
}

func TestFromElementFragment(t *testing.T) {
	el := element.Fragment(element.Text("a"), element.Text("b"))
	f, err := FromElement(el, nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if f.Kind != KindFragment {
		t.Errorf("Kind = %v, want Fragment", f.Kind)
	}
	children, ok := f.PendingProps.([]*element.Element)
	if !ok || len(children) != 2 {
		t.Errorf("fragment pending input = %T, want the children slice", f.PendingProps)
	}
}

func TestFromElementComposites(t *testing.T) {
	render := element.Render(func(p element.Props) *element.Element { return nil })
	theme := element.NewContext("theme", nil)

	tests := []struct {
		name string
		el   *element.Element
		want Kind
	}{
		{"class", element.New(app{}, nil), KindClass},
		{"function", element.New(render, nil), KindIndeterminate},
		{"bare func", element.New(func(p element.Props) *element.Element { return nil }, nil), KindIndeterminate},
		{"provider", theme.Provide("dark"), KindContextProvider},
		{"consumer", theme.Consume(func(v any) *element.Element { return nil }), KindContextConsumer},
		{"memo", element.New(element.Memo(render), nil), KindMemo},
		{"forward ref", element.New(element.ForwardRef(func(p element.Props, ref any) *element.Element { return nil }), nil), KindForwardRef},
		{"portal", element.Portal("overlay"), KindPortal},
		{"suspense", element.Suspense(element.Text("loading")), KindSuspense},
		{"suspense list", element.SuspenseList(), KindSuspenseList},
		{"fundamental", element.New(&element.FundamentalType{Impl: "impl"}, nil), KindFundamental},
		{"scope", element.New(&element.ScopeType{Name: "focus"}, nil), KindScope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromElement(tt.el, nil, NoMode, Sync)
			if err != nil {
				t.Fatalf("FromElement: %v", err)
			}
			if f.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", f.Kind, tt.want)
			}
		})
	}
}

func TestFromElementDeterministic(t *testing.T) {
	el := element.New(app{}, element.Props{"n": 1})
	a, err := FromElement(el, nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	b, err := FromElement(el, nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if a.Kind != b.Kind || a.Key != b.Key {
		t.Error("same description must classify identically")
	}
	if a == b {
		t.Error("each classification allocates a fresh fiber")
	}
}

func TestFromElementModeWrappers(t *testing.T) {
	strict, err := FromElement(element.Strict(element.Text("x")), nil, ModeConcurrent, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if strict.Kind != KindMode {
		t.Errorf("Kind = %v, want Mode", strict.Kind)
	}
	if !strict.Mode.Has(ModeStrict) || !strict.Mode.Has(ModeConcurrent) {
		t.Errorf("Mode = %b, want strict bit added to inherited mode", strict.Mode)
	}

	prof, err := FromElement(element.Profile("header"), nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if prof.Kind != KindProfiler || !prof.Mode.Has(ModeProfile) {
		t.Errorf("profiler: kind=%v mode=%b", prof.Kind, prof.Mode)
	}
}

func TestFromElementLazyDefersType(t *testing.T) {
	lt := element.Lazy(func() (any, error) { return app{}, nil })
	f, err := FromElement(element.New(lt, nil), nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if f.Kind != KindLazy {
		t.Errorf("Kind = %v, want Lazy", f.Kind)
	}
	if f.ElementType != lt {
		t.Error("ElementType must be the deferred wrapper")
	}
	if f.Type != nil {
		t.Error("Type must stay unresolved until the loader runs")
	}
}

func TestFromElementRef(t *testing.T) {
	ref := &struct{ v any }{}
	f, err := FromElement(element.El("input", element.Props{"ref": ref}), nil, NoMode, Sync)
	if err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if f.Ref != ref {
		t.Error("ref prop must be lifted onto the fiber")
	}
}

func TestFromElementNilType(t *testing.T) {
	owner := New(KindClass, nil, "", NoMode)
	owner.Type = app{}

	_, err := FromElement(&element.Element{Type: nil}, owner, NoMode, Sync)
	if err == nil {
		t.Fatal("expected classification failure")
	}
	if !IsInvalidElementType(err) {
		t.Fatalf("error = %v, want invalid-element-type", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "got: nil") {
		t.Errorf("message %q should name the offending value", msg)
	}
	if !strings.Contains(msg, `"app"`) {
		t.Errorf("message %q should name the enclosing component", msg)
	}
	if !strings.Contains(msg, "forgot to export") {
		t.Errorf("message %q should hint at a missing export", msg)
	}
}

func TestFromElementUnknownType(t *testing.T) {
	_, err := FromElement(&element.Element{Type: 42}, nil, NoMode, Sync)
	if err == nil {
		t.Fatal("expected classification failure")
	}
	if !IsInvalidElementType(err) {
		t.Fatalf("error = %v, want invalid-element-type", err)
	}
	if !strings.Contains(err.Error(), "int") {
		t.Errorf("message %q should name the offending Go type", err)
	}
	// No export hint for a wrong-but-present value.
	if strings.Contains(err.Error(), "forgot to export") {
		t.Errorf("message %q should not hint at a missing export", err)
	}
}

func TestFromElementNilElement(t *testing.T) {
	_, err := FromElement(nil, nil, NoMode, Sync)
	if !IsInvalidElementType(err) {
		t.Fatalf("error = %v, want invalid-element-type", err)
	}
}
