package element

import "testing"

func TestElCompactsNilChildren(t *testing.T) {
	el := El("ul", nil, Text("a"), nil, Text("b"), nil)
	if len(el.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(el.Children))
	}
	if el.Children[0].Text != "a" || el.Children[1].Text != "b" {
		t.Error("non-nil children must keep their order")
	}
}

func TestElLeavesCallerSliceIntact(t *testing.T) {
	items := []*Element{Text("a"), nil, Text("b")}
	el := El("ul", nil, items...)

	if len(el.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(el.Children))
	}
	// The caller may keep using its slice; dropping the nil must not shift
	// elements inside the caller's backing array.
	if items[1] != nil {
		t.Error("caller's slice was mutated")
	}
	if items[2] == nil || items[2].Text != "b" {
		t.Error("caller's slice was mutated")
	}
}

func TestKeyed(t *testing.T) {
	el := El("li", Props{"class": "row"})
	keyed := Keyed("item-1", el)
	if keyed.Key != "item-1" {
		t.Errorf("Key = %q, want item-1", keyed.Key)
	}
	if el.Key != "" {
		t.Error("Keyed must not mutate the original")
	}
	if keyed.Type != el.Type || len(keyed.Props) != len(el.Props) {
		t.Error("Keyed must preserve everything else")
	}
	if Keyed("k", nil) != nil {
		t.Error("Keyed(nil) should be nil")
	}
}

func TestSuspenseFallback(t *testing.T) {
	fallback := Text("loading")
	el := Suspense(fallback, El("div", nil))
	if el.Type != MarkerSuspense {
		t.Errorf("Type = %v, want MarkerSuspense", el.Type)
	}
	if el.Props["fallback"] != fallback {
		t.Error("fallback must be carried in props")
	}
}

func TestContextTypesStable(t *testing.T) {
	theme := NewContext("theme", "light")
	a := theme.Provide("dark")
	b := theme.Provide("darker")
	if a.Type != b.Type {
		t.Error("provider type identity must be stable across renders")
	}
	c := theme.Consume(func(v any) *Element { return nil })
	d := theme.Consume(func(v any) *Element { return nil })
	if c.Type != d.Type {
		t.Error("consumer type identity must be stable across renders")
	}
	if theme.Default() != "light" || theme.Name() != "theme" {
		t.Error("context accessors")
	}
}

func TestLazyResolvesOnce(t *testing.T) {
	calls := 0
	lt := Lazy(func() (any, error) {
		calls++
		return "definition", nil
	})
	for i := 0; i < 3; i++ {
		got, err := lt.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got != "definition" {
			t.Errorf("Resolve = %v, want definition", got)
		}
	}
	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}
}

func TestMarkerString(t *testing.T) {
	if got := MarkerFragment.String(); got != "Fragment" {
		t.Errorf("MarkerFragment.String() = %q, want Fragment", got)
	}
	if got := Marker(99).String(); got != "Unknown" {
		t.Errorf("unknown marker String() = %q, want Unknown", got)
	}
}
