package scene

// Document is a render tree whose elements are addressed by id.
type Document struct {
	Root *Node
}

// NewDocument wraps root.
func NewDocument(root *Node) *Document {
	return &Document{Root: root}
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Node {
	if d == nil || d.Root == nil || id == "" {
		return nil
	}
	return d.Root.Find(id)
}
