package element

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonNode is the wire shape used by DecodeJSON/EncodeJSON. Only the
// description forms expressible without code are supported: intrinsic tags,
// text, and fragments. Component types have no serialized form.
type jsonNode struct {
	Tag      string         `json:"tag,omitempty"`
	Text     *string        `json:"text,omitempty"`
	Fragment bool           `json:"fragment,omitempty"`
	Key      string         `json:"key,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Children []jsonNode     `json:"children,omitempty"`
}

// DecodeJSON reads a JSON tree description.
func DecodeJSON(r io.Reader) (*Element, error) {
	var node jsonNode
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("decode tree description: %w", err)
	}
	return node.element()
}

// EncodeJSON writes el as an indented JSON tree description. Returns an
// error for element types that have no serialized form.
func EncodeJSON(w io.Writer, el *Element) error {
	node, err := toJSONNode(el)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(node)
}

func (n jsonNode) element() (*Element, error) {
	if n.Text != nil {
		return &Element{Type: MarkerText, Text: *n.Text, Key: n.Key}, nil
	}

	var children []*Element
	for i, c := range n.Children {
		child, err := c.element()
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, child)
	}

	el := &Element{Key: n.Key, Children: children}
	if len(n.Props) > 0 {
		el.Props = Props(n.Props)
	}

	switch {
	case n.Fragment:
		el.Type = MarkerFragment
	case n.Tag != "":
		el.Type = n.Tag
	default:
		return nil, fmt.Errorf("node has neither tag, text, nor fragment")
	}
	return el, nil
}

func toJSONNode(el *Element) (jsonNode, error) {
	if el == nil {
		return jsonNode{}, fmt.Errorf("nil element")
	}

	node := jsonNode{Key: el.Key}
	if len(el.Props) > 0 {
		node.Props = map[string]any(el.Props)
	}
	for _, c := range el.Children {
		child, err := toJSONNode(c)
		if err != nil {
			return jsonNode{}, err
		}
		node.Children = append(node.Children, child)
	}

	switch t := el.Type.(type) {
	case string:
		node.Tag = t
	case Marker:
		switch t {
		case MarkerText:
			text := el.Text
			node.Text = &text
		case MarkerFragment:
			node.Fragment = true
		default:
			return jsonNode{}, fmt.Errorf("marker %s has no serialized form", t)
		}
	default:
		return jsonNode{}, fmt.Errorf("element type %T has no serialized form", el.Type)
	}
	return node, nil
}
