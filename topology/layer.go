package topology

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/spatial/r3"

	"nnscene/scene"
)

// Neuron is a single sphere in the layout. Position is relative to the
// scene root, before the root offset is applied.
type Neuron struct {
	id       int64
	Layer    int
	Index    int
	Position r3.Vec
	Label    string
	Color    *color.NRGBA
	Node     *scene.Node
}

// ID implements graph.Node.
func (n *Neuron) ID() int64 { return n.id }

// DOTID implements dot.Node.
func (n *Neuron) DOTID() string {
	return fmt.Sprintf("L%d_N%d", n.Layer, n.Index)
}

// Attributes implements encoding.Attributer.
func (n *Neuron) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "label", Value: n.Label}}
	if n.Color != nil {
		attrs = append(attrs,
			encoding.Attribute{Key: "style", Value: "filled"},
			encoding.Attribute{Key: "fillcolor", Value: scene.FormatColor(*n.Color)},
		)
	}
	return attrs
}

// Layer is an ordered group of neurons.
type Layer struct {
	Index   int
	Neurons []*Neuron
	Node    *scene.Node
}

// Size returns the number of neurons in the layer.
func (l *Layer) Size() int { return len(l.Neurons) }

// Edge is a connection cylinder between two neurons.
type Edge struct {
	From, To  *Neuron
	Transform scene.Transform
	Node      *scene.Node
}
