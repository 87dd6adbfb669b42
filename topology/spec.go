// Package topology lays out neural network topologies (multilayer
// perceptrons, autoencoders and Kohonen maps) as scene hierarchies of
// neuron spheres and connection cylinders.
package topology

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kind is the network family being drawn.
type Kind int

const (
	MLP Kind = iota
	Autoencoder
	Kohonen
)

var kindNames = [...]string{"MLP", "AUTOENCODER", "KOHONEN"}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind matches s case-sensitively against the kind names.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return MLP, false
}

// Activation range used for color bucketing.
const (
	MinActivation = 1
	MaxActivation = 6
)

// NetworkSpec describes the network to lay out.
type NetworkSpec struct {
	Kind       Kind
	LayerSizes []int
	// Kohonen is required when Kind is Kohonen and ignored otherwise.
	Kohonen *KohonenSpec
}

// Validate reports the first problem that would prevent a build.
func (s NetworkSpec) Validate() error {
	if !s.Kind.valid() {
		return configErr("kind", "unrecognized network kind %d", int(s.Kind))
	}
	if s.Kind == Kohonen {
		if s.Kohonen == nil {
			return configErr("kohonen", "kohonen network requires a grid")
		}
		return s.Kohonen.Validate()
	}
	return validateLayerSizes(s.LayerSizes)
}

func validateLayerSizes(sizes []int) error {
	if len(sizes) == 0 {
		return configErr("layers", "at least one layer is required")
	}
	for i, n := range sizes {
		if n <= 0 {
			return configErr("layers", "layer %d has %d neurons, must be positive", i, n)
		}
	}
	return nil
}

// ExpandAutoencoder mirrors sizes around its last element, the latent layer,
// which is not repeated: [a b c] becomes [a b c b a].
func ExpandAutoencoder(sizes []int) []int {
	if len(sizes) == 0 {
		return nil
	}
	out := make([]int, 0, 2*len(sizes)-1)
	out = append(out, sizes...)
	for i := len(sizes) - 2; i >= 0; i-- {
		out = append(out, sizes[i])
	}
	return out
}

// KohonenSpec is a self-organizing map: an input layer fully connected to a
// grid of output neurons, each carrying an activation value.
type KohonenSpec struct {
	InputDimension int
	// Activations is indexed [column][row].
	Activations *mat.Dense
}

// NewKohonenSpec builds a spec from a grid indexed [column][row]. Every
// column must have the same number of rows.
func NewKohonenSpec(inputDimension int, grid [][]int) (*KohonenSpec, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, configErr("activations", "activation grid must be non-empty")
	}
	height := len(grid[0])
	data := make([]float64, 0, len(grid)*height)
	for c, column := range grid {
		if len(column) != height {
			return nil, configErr("activations", "column %d has %d rows, want %d", c, len(column), height)
		}
		for _, v := range column {
			data = append(data, float64(v))
		}
	}
	k := &KohonenSpec{
		InputDimension: inputDimension,
		Activations:    mat.NewDense(len(grid), height, data),
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Width is the number of grid columns.
func (k *KohonenSpec) Width() int {
	c, _ := k.Activations.Dims()
	return c
}

// Height is the number of rows in each grid column.
func (k *KohonenSpec) Height() int {
	_, r := k.Activations.Dims()
	return r
}

// Activation returns the activation of the neuron at (col, row).
func (k *KohonenSpec) Activation(col, row int) int {
	return int(k.Activations.At(col, row))
}

// Validate checks the input dimension and that every activation lies in
// [MinActivation, MaxActivation].
func (k *KohonenSpec) Validate() error {
	if k.InputDimension <= 0 {
		return configErr("input_dimension", "input dimension %d must be positive", k.InputDimension)
	}
	if k.Activations == nil || k.Activations.IsEmpty() {
		return configErr("activations", "activation grid must be non-empty")
	}
	values := k.Activations.RawMatrix().Data
	if lo, hi := floats.Min(values), floats.Max(values); lo < MinActivation || hi > MaxActivation {
		return configErr("activations", "activations span [%g, %g], outside [%d, %d]",
			lo, hi, MinActivation, MaxActivation)
	}
	return nil
}
