package topology

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r3"

	"nnscene/scene"
)

// Options is the static presentation configuration of a Builder.
type Options struct {
	NeuronMaterial     string
	ConnectionMaterial string
	// SelfConnection names the prototype instantiated for Kohonen self-loops.
	SelfConnection   string
	NeuronScale      float64
	ConnectionRadius float64
	Ramp             Ramp
	// LegacyColorBucket selects LegacyColorFor instead of ColorFor.
	LegacyColorBucket bool
}

// DefaultOptions returns the stock materials and primitive sizes.
func DefaultOptions() Options {
	return Options{
		NeuronMaterial:     "neuron",
		ConnectionMaterial: "connection",
		SelfConnection:     "self_connection",
		NeuronScale:        0.2,
		ConnectionRadius:   0.02,
		Ramp:               DefaultRamp,
	}
}

// Scene is the result of a build. Layers, edges and neurons hold direct
// references to their scene nodes.
type Scene struct {
	Kind Kind
	Root *scene.Node
	// Offset recenters the assembly and is applied as the root position.
	Offset r3.Vec
	Layers []*Layer
	// Edges are the connections between consecutive layers.
	Edges []*Edge
	// Neighbors are the Kohonen grid adjacency connections.
	Neighbors []*Edge
	SelfLoops []*scene.Node
	// Graph holds every neuron and every connection in Edges and Neighbors.
	Graph *simple.UndirectedGraph
}

// NeuronCount returns the total number of neurons across all layers.
func (s *Scene) NeuronCount() int {
	total := 0
	for _, l := range s.Layers {
		total += l.Size()
	}
	return total
}

// LayerSizes returns the neuron count of each layer in order.
func (s *Scene) LayerSizes() []int {
	sizes := make([]int, len(s.Layers))
	for i, l := range s.Layers {
		sizes[i] = l.Size()
	}
	return sizes
}

// Builder lays out a configured NetworkSpec. A Builder is not safe for
// concurrent use; every build starts from an empty scene.
type Builder struct {
	opts Options
	spec *NetworkSpec

	scene  *Scene
	nextID int64
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Configure validates and stores spec for Build.
func (b *Builder) Configure(spec NetworkSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	spec.LayerSizes = append([]int(nil), spec.LayerSizes...)
	b.spec = &spec
	return nil
}

// Spec returns the configured spec.
func (b *Builder) Spec() (NetworkSpec, bool) {
	if b.spec == nil {
		return NetworkSpec{}, false
	}
	return *b.spec, true
}

// Build lays out the configured network.
func (b *Builder) Build() (*Scene, error) {
	if b.spec == nil {
		return nil, configErr("spec", "builder has not been configured")
	}
	switch b.spec.Kind {
	case MLP:
		return b.BuildMLP(b.spec.LayerSizes)
	case Autoencoder:
		return b.BuildAutoencoder(b.spec.LayerSizes)
	case Kohonen:
		return b.BuildKohonen(b.spec.Kohonen)
	}
	return nil, configErr("kind", "unrecognized network kind %d", int(b.spec.Kind))
}

// BuildMLP lays out one column of neurons per layer, centered vertically,
// and fully connects each pair of consecutive layers.
func (b *Builder) BuildMLP(layerSizes []int) (*Scene, error) {
	if err := validateLayerSizes(layerSizes); err != nil {
		return nil, err
	}
	b.reset(MLP)
	return b.layoutMLP(layerSizes)
}

// BuildAutoencoder lays out the mirrored expansion of layerSizes as an MLP.
func (b *Builder) BuildAutoencoder(layerSizes []int) (*Scene, error) {
	if err := validateLayerSizes(layerSizes); err != nil {
		return nil, err
	}
	b.reset(Autoencoder)
	return b.layoutMLP(ExpandAutoencoder(layerSizes))
}

func (b *Builder) layoutMLP(layerSizes []int) (*Scene, error) {
	s := b.scene
	tallest := 0
	for i, n := range layerSizes {
		l := b.addLayer(s.Root, i, n)
		if l.Size() > tallest {
			tallest = l.Size()
		}
	}
	for i := 0; i+1 < len(s.Layers); i++ {
		if err := b.connectLayers(s.Layers[i], s.Layers[i+1]); err != nil {
			return nil, err
		}
	}
	b.finish(r3.Vec{X: -float64(len(layerSizes)) / 2, Y: float64(tallest) / 2})
	return s, nil
}

func (b *Builder) reset(kind Kind) {
	b.nextID = 0
	b.scene = &Scene{
		Kind:  kind,
		Root:  scene.NewNode("Network", scene.Empty),
		Graph: simple.NewUndirectedGraph(),
	}
}

func (b *Builder) finish(offset r3.Vec) {
	b.scene.Offset = offset
	b.scene.Root.Transform.Position = offset
}

// addLayer creates "Layer {index}" under parent with size neurons laid out
// on the plane x = index.
func (b *Builder) addLayer(parent *scene.Node, index, size int) *Layer {
	l := b.newLayer(parent, index)
	for j := 0; j < size; j++ {
		pos := r3.Vec{X: float64(index), Y: float64(j) - float64(size-1)/2}
		b.addNeuron(l, j, pos, LabelFor(index, j))
	}
	return l
}

func (b *Builder) newLayer(parent *scene.Node, index int) *Layer {
	l := &Layer{
		Index: index,
		Node:  parent.AddChild(scene.NewNode(fmt.Sprintf("Layer %d", index), scene.Empty)),
	}
	b.scene.Layers = append(b.scene.Layers, l)
	return l
}

func (b *Builder) addNeuron(l *Layer, index int, pos r3.Vec, label string) *Neuron {
	node := scene.NewNode(fmt.Sprintf("Neuron %d", index), scene.Sphere)
	node.Transform = scene.UniformScale(pos, b.opts.NeuronScale)
	node.Material = b.opts.NeuronMaterial
	node.AddChild(scene.NewNode("Label", scene.Text)).Label = scene.NewLabel(label)
	l.Node.AddChild(node)

	n := &Neuron{
		id:       b.nextID,
		Layer:    l.Index,
		Index:    index,
		Position: pos,
		Label:    label,
		Node:     node,
	}
	b.nextID++
	l.Neurons = append(l.Neurons, n)
	b.scene.Graph.AddNode(n)
	return n
}

// connectLayers fully connects l1 to l2 under "Connections {i}-{j}".
func (b *Builder) connectLayers(l1, l2 *Layer) error {
	if l1.Size() == 0 || l2.Size() == 0 {
		return structuralErr("cannot connect layer %d (%d neurons) to layer %d (%d neurons)",
			l1.Index, l1.Size(), l2.Index, l2.Size())
	}
	group := b.scene.Root.AddChild(scene.NewNode(fmt.Sprintf("Connections %d-%d", l1.Index, l2.Index), scene.Empty))
	for _, from := range l1.Neurons {
		for _, to := range l2.Neurons {
			name := fmt.Sprintf("Connection %d.%d-%d.%d", l1.Index, from.Index, l2.Index, to.Index)
			e, err := b.connect(group, from, to, name)
			if err != nil {
				return err
			}
			b.scene.Edges = append(b.scene.Edges, e)
		}
	}
	return nil
}

// connect adds a cylinder between two distinct, not yet connected neurons.
func (b *Builder) connect(group *scene.Node, from, to *Neuron, name string) (*Edge, error) {
	if from == to {
		return nil, structuralErr("%s would connect neuron %s to itself", name, from.DOTID())
	}
	if b.scene.Graph.HasEdgeBetween(from.ID(), to.ID()) {
		return nil, structuralErr("%s duplicates an existing connection", name)
	}
	node := scene.NewNode(name, scene.Cylinder)
	node.Transform = scene.CylinderBetween(from.Position, to.Position, b.opts.ConnectionRadius)
	node.Material = b.opts.ConnectionMaterial
	group.AddChild(node)
	b.scene.Graph.SetEdge(simple.Edge{F: from, T: to})
	return &Edge{From: from, To: to, Transform: node.Transform, Node: node}, nil
}
