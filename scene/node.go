// Package scene describes a renderable node hierarchy: named nodes with
// local transforms, materials, colors and text labels.
package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"
)

// Primitive is the geometry a renderer should instantiate for a node.
type Primitive int

const (
	Empty Primitive = iota
	Sphere
	Cylinder
	Cube
	Prototype
	Text
)

var primitiveNames = [...]string{"empty", "sphere", "cylinder", "cube", "prototype", "text"}

func (p Primitive) String() string {
	if p < 0 || int(p) >= len(primitiveNames) {
		return fmt.Sprintf("primitive(%d)", int(p))
	}
	return primitiveNames[p]
}

// ParsePrimitive maps a name produced by String back to a Primitive.
func ParsePrimitive(s string) (Primitive, error) {
	for i, name := range primitiveNames {
		if name == s {
			return Primitive(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown primitive %q", s)
}

// Label is a text mesh attached to a node.
type Label struct {
	Text          string  `json:"text"`
	CharacterSize float64 `json:"character_size"`
	Anchor        string  `json:"anchor"`
	Alignment     string  `json:"alignment"`
}

// NewLabel returns a centered label with the default character size.
func NewLabel(text string) *Label {
	return &Label{
		Text:          text,
		CharacterSize: 0.1,
		Anchor:        "MiddleCenter",
		Alignment:     "Center",
	}
}

// Node is one element of the scene hierarchy.
type Node struct {
	ID        uuid.UUID
	Name      string
	Primitive Primitive
	Transform Transform
	Material  string
	Color     *color.NRGBA
	Label     *Label
	// Prototype names the asset a Prototype node is instantiated from.
	Prototype string

	Parent   *Node
	Children []*Node
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string, p Primitive) *Node {
	return &Node{
		ID:        uuid.New(),
		Name:      name,
		Primitive: p,
		Transform: Identity(),
	}
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) *Node {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Find resolves a "/"-separated path of child names starting below n.
func (n *Node) Find(path string) (*Node, bool) {
	cur := n
	for _, part := range strings.Split(path, "/") {
		next, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Path returns the names from the root down to n joined with "/".
func (n *Node) Path() string {
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns how many nodes in the subtree rooted at n satisfy pred.
func (n *Node) Count(pred func(*Node) bool) int {
	total := 0
	n.Walk(func(x *Node) bool {
		if pred(x) {
			total++
		}
		return true
	})
	return total
}

// IsPrimitive returns a predicate for Count matching nodes of kind p.
func IsPrimitive(p Primitive) func(*Node) bool {
	return func(n *Node) bool { return n.Primitive == p }
}
