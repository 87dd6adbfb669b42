package scene

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// FormatVersion is written into every saved document.
const FormatVersion = "1.0"

// Document is the serializable form of a scene hierarchy.
type Document struct {
	Version string     `json:"version"`
	Root    NodeRecord `json:"root"`
}

// NodeRecord is the serializable form of a single node.
type NodeRecord struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Primitive string       `json:"primitive"`
	Position  [3]float64   `json:"position"`
	Scale     [3]float64   `json:"scale"`
	Rotation  [4]float64   `json:"rotation"` // w, x, y, z
	Material  string       `json:"material,omitempty"`
	Color     string       `json:"color,omitempty"`
	Label     *Label       `json:"label,omitempty"`
	Prototype string       `json:"prototype,omitempty"`
	Children  []NodeRecord `json:"children,omitempty"`
}

// Encode converts the hierarchy rooted at root into a Document.
func Encode(root *Node) Document {
	return Document{Version: FormatVersion, Root: encodeNode(root)}
}

func encodeNode(n *Node) NodeRecord {
	rec := NodeRecord{
		ID:        n.ID.String(),
		Name:      n.Name,
		Primitive: n.Primitive.String(),
		Position:  vecArray(n.Transform.Position),
		Scale:     vecArray(n.Transform.Scale),
		Rotation:  Quaternion(n.Transform.Rotation),
		Material:  n.Material,
		Label:     n.Label,
		Prototype: n.Prototype,
	}
	if n.Color != nil {
		rec.Color = FormatColor(*n.Color)
	}
	for _, c := range n.Children {
		rec.Children = append(rec.Children, encodeNode(c))
	}
	return rec
}

// Decode rebuilds a node hierarchy from a Document.
func Decode(doc Document) (*Node, error) {
	return decodeNode(doc.Root, nil)
}

func decodeNode(rec NodeRecord, parent *Node) (*Node, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("node %q: invalid id: %w", rec.Name, err)
	}
	p, err := ParsePrimitive(rec.Primitive)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", rec.Name, err)
	}
	n := &Node{
		ID:        id,
		Name:      rec.Name,
		Primitive: p,
		Transform: Transform{
			Position: arrayVec(rec.Position),
			Scale:    arrayVec(rec.Scale),
			Rotation: FromQuaternion(rec.Rotation),
		},
		Material:  rec.Material,
		Label:     rec.Label,
		Prototype: rec.Prototype,
	}
	if rec.Color != "" {
		c, err := ParseColor(rec.Color)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", rec.Name, err)
		}
		n.Color = &c
	}
	if parent != nil {
		parent.AddChild(n)
	}
	for _, child := range rec.Children {
		if _, err := decodeNode(child, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// SaveJSON writes the hierarchy rooted at root to filepath.
func SaveJSON(filepath string, root *Node) error {
	data, err := json.MarshalIndent(Encode(root), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadJSON reads a hierarchy previously written by SaveJSON.
func LoadJSON(filepath string) (*Node, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}
	return Decode(doc)
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor is the inverse of FormatColor.
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 7 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func vecArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func arrayVec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
