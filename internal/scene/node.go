// Package scene provides a small retained render tree with data-join helpers.
//
// A tree is built from Nodes; Selections over a parent's children are joined to
// a number of data items so that repeated renders update elements in place and
// never accumulate stale ones.
package scene

import "strings"

type attr struct {
	name  string
	value string
}

// Node is one element of the render tree.
type Node struct {
	Tag      string
	Text     string
	Children []*Node

	attrs []attr
}

// NewNode returns an element with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// Append adds a new child element and returns it.
func (n *Node) Append(tag string) *Node {
	child := NewNode(tag)
	n.Children = append(n.Children, child)
	return child
}

// Attr sets an attribute, keeping the position of an existing one.
func (n *Node) Attr(name, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return n
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
	return n
}

// AttrValue returns an attribute value.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) *Node {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			break
		}
	}
	return n
}

// Attrs returns the attribute names in insertion order.
func (n *Node) Attrs() []string {
	names := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		names[i] = a.name
	}
	return names
}

// SetText replaces the text content of the node and drops its children.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	n.Children = nil
	return n
}

// HasClass reports whether the class attribute contains class.
func (n *Node) HasClass(class string) bool {
	classes, ok := n.AttrValue("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	n.Children = nil
}

// Remove detaches child if it is a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the first node in the subtree (including n) with the given id.
func (n *Node) Find(id string) *Node {
	if v, ok := n.AttrValue("id"); ok && v == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits the subtree depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
