package tree

// Attr is a named attribute of a node.
type Attr struct {
	Name  string
	Value string
}

// Node is one named node of a parsed hierarchical document.
// A node with no children is a terminal and carries Text.
type Node struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Node
}

// NewNode creates a container node with the given children.
func NewNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// NewText creates a terminal node holding text.
func NewText(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// WithAttr appends an attribute and returns the node for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})

	return n
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// IsTerminal returns true if the node has no children.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}
