package reconcile

import (
	"reflect"
	"testing"

	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
)

func keyedList(texts ...[2]string) *element.Element {
	var items []*element.Element
	for _, kv := range texts {
		items = append(items, element.Keyed(kv[0], element.El("li", nil, element.Text(kv[1]))))
	}
	return element.El("ul", nil, items...)
}

func TestKeyedReorderIsMovesNotDeletions(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	renderCommit(t, rec, root, keyedList([2]string{"a", "alpha"}, [2]string{"b", "beta"}))
	res := renderCommit(t, rec, root, keyedList([2]string{"b", "beta"}, [2]string{"a", "alpha"}))

	want := []string{
		"Host Placement li:b",
		"Host Placement li:a",
	}
	if got := effectSummary(res.Effects); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
	for _, e := range res.Effects {
		if e.Flags.Has(fiber.Deletion) {
			t.Errorf("persisting key %q must never be tagged Deletion", e.Key)
		}
	}
}

func TestKeyedReusePreservesInstance(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	res1 := renderCommit(t, rec, root, keyedList([2]string{"a", "alpha"}, [2]string{"b", "beta"}))
	instB := findFiber(res1.Finished, func(f *fiber.Fiber) bool { return f.Key == "b" }).Instance

	res2 := renderCommit(t, rec, root, keyedList([2]string{"b", "beta"}, [2]string{"a", "alpha"}))
	moved := findFiber(res2.Finished, func(f *fiber.Fiber) bool { return f.Key == "b" })
	if moved.Instance != instB {
		t.Error("a moved keyed position must keep its platform handle")
	}
}

func TestChildInsertion(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	renderCommit(t, rec, root, element.El("div", nil, element.El("span", nil)))
	res := renderCommit(t, rec, root, element.El("div", nil,
		element.El("span", nil),
		element.El("em", nil),
	))

	want := []string{"Host Placement em"}
	if got := effectSummary(res.Effects); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestChildRemoval(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	res1 := renderCommit(t, rec, root, element.El("div", nil,
		element.El("span", nil),
		element.El("em", nil),
	))
	committed := findFiber(res1.Finished, hostWithTag("em"))

	res2 := renderCommit(t, rec, root, element.El("div", nil, element.El("span", nil)))

	want := []string{"Host Deletion em"}
	if got := effectSummary(res2.Effects); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
	// The deletion must reference the committed fiber so the commit phase
	// can unmount the real instance.
	if res2.Effects[0] != committed {
		t.Error("deletion effect must be the committed-generation fiber")
	}
	if findFiber(res2.Finished, hostWithTag("em")) != nil {
		t.Error("deleted position must not appear in the finished tree")
	}
}

func TestChildTypeReplacement(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	renderCommit(t, rec, root, element.El("div", nil, element.El("span", nil)))
	res := renderCommit(t, rec, root, element.El("div", nil, element.El("p", nil)))

	want := []string{
		"Host Deletion span",
		"Host Placement p",
	}
	if got := effectSummary(res.Effects); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestSiblingOrderAndIndices(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	res := renderCommit(t, rec, root, element.El("div", nil,
		element.El("a", nil),
		element.El("b", nil),
		element.El("c", nil),
	))
	div := findFiber(res.Finished, hostWithTag("div"))

	var tags []string
	i := 0
	for c := div.Child; c != nil; c = c.Sibling {
		tags = append(tags, c.Type.(string))
		if c.Index != i {
			t.Errorf("child %s Index = %d, want %d", c.Type, c.Index, i)
		}
		if c.Return != div {
			t.Errorf("child %s Return does not point at parent", c.Type)
		}
		i++
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("children = %v, want %v", tags, want)
	}
}

func TestFragmentChildren(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	res := renderCommit(t, rec, root, element.El("div", nil,
		element.Fragment(element.Text("a"), element.Text("b")),
		element.El("span", nil),
	))
	frag := findFiber(res.Finished, func(f *fiber.Fiber) bool { return f.Kind == fiber.KindFragment })
	if frag == nil {
		t.Fatal("fragment fiber missing")
	}
	if frag.Child == nil || frag.Child.Sibling == nil {
		t.Fatal("fragment must keep its own children")
	}

	// Updating through the fragment reaches the grouped text.
	res2 := renderCommit(t, rec, root, element.El("div", nil,
		element.Fragment(element.Text("a"), element.Text("B")),
		element.El("span", nil),
	))
	want := []string{`Text Update "B"`}
	if got := effectSummary(res2.Effects); !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestNilChildrenSkipped(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	res := renderCommit(t, rec, root, element.New("div", nil,
		element.El("a", nil),
		nil,
		element.El("b", nil),
	))
	div := findFiber(res.Finished, hostWithTag("div"))
	n := 0
	for c := div.Child; c != nil; c = c.Sibling {
		n++
	}
	if n != 2 {
		t.Errorf("children = %d, want 2", n)
	}
}

func TestFunctionComponentResolvesOnFirstRender(t *testing.T) {
	root := NewRoot(nil)
	rec := New(root)

	fn := element.Render(func(p element.Props) *element.Element {
		return element.El("div", nil)
	})
	res := renderCommit(t, rec, root, element.New(fn, nil))

	f := findFiber(res.Finished, func(f *fiber.Fiber) bool { return f.Kind.Composite() })
	if f == nil {
		t.Fatal("function fiber missing")
	}
	if f.Kind != fiber.KindFunction {
		t.Errorf("Kind = %v, want Function after first invocation", f.Kind)
	}

	// The resolved kind must survive recycling.
	res2 := renderCommit(t, rec, root, element.New(fn, nil))
	f2 := findFiber(res2.Finished, func(f *fiber.Fiber) bool { return f.Kind.Composite() })
	if f2.Kind != fiber.KindFunction {
		t.Errorf("recycled Kind = %v, want Function", f2.Kind)
	}
	if len(res2.Effects) != 0 {
		t.Errorf("unchanged function subtree produced effects: %v", effectSummary(res2.Effects))
	}
}
