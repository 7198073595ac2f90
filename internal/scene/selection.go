package scene

// Selection is an ordered set of child elements of one parent.
type Selection struct {
	parent *Node
	class  string
	nodes  []*Node
}

// SelectAll selects the direct children of n carrying class. An empty class
// selects every child.
func (n *Node) SelectAll(class string) *Selection {
	sel := &Selection{parent: n, class: class}
	for _, c := range n.Children {
		if class == "" || c.HasClass(class) {
			sel.nodes = append(sel.nodes, c)
		}
	}
	return sel
}

// Join makes the selection hold exactly count elements: existing elements are
// kept in order, missing ones are appended to the parent as new tag elements
// with the selection's class, and surplus ones are removed from the parent.
func (s *Selection) Join(count int, tag string) *Selection {
	if count < 0 {
		count = 0
	}
	for len(s.nodes) > count {
		last := s.nodes[len(s.nodes)-1]
		s.parent.Remove(last)
		s.nodes = s.nodes[:len(s.nodes)-1]
	}
	for len(s.nodes) < count {
		child := s.parent.Append(tag)
		if s.class != "" {
			child.Attr("class", s.class)
		}
		s.nodes = append(s.nodes, child)
	}
	return s
}

// Attr sets name on every element to the value computed for its index.
func (s *Selection) Attr(name string, value func(i int) string) *Selection {
	for i, n := range s.nodes {
		n.Attr(name, value(i))
	}
	return s
}

// Text sets the text content of every element.
func (s *Selection) Text(text func(i int) string) *Selection {
	for i, n := range s.nodes {
		n.SetText(text(i))
	}
	return s
}

// Each calls fn for every element with its index.
func (s *Selection) Each(fn func(i int, n *Node)) *Selection {
	for i, n := range s.nodes {
		fn(i, n)
	}
	return s
}

// Nodes returns the selected elements.
func (s *Selection) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of selected elements.
func (s *Selection) Len() int {
	return len(s.nodes)
}

// Remove detaches every selected element from the parent.
func (s *Selection) Remove() {
	for _, n := range s.nodes {
		s.parent.Remove(n)
	}
	s.nodes = nil
}
