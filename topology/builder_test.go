package topology

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/spatial/r3"

	"nnscene/scene"
)

func buildMLP(t *testing.T, sizes ...int) *Scene {
	t.Helper()
	s, err := NewBuilder(DefaultOptions()).BuildMLP(sizes)
	require.NoError(t, err)
	return s
}

func TestBuildMLPCounts(t *testing.T) {
	cases := [][]int{
		{1},
		{2, 3},
		{4, 1, 4},
		{3, 5, 2, 7},
	}
	for _, sizes := range cases {
		s := buildMLP(t, sizes...)
		require.Equal(t, sizes, s.LayerSizes())

		want := 0
		for i := 0; i+1 < len(sizes); i++ {
			want += sizes[i] * sizes[i+1]
		}
		if len(s.Edges) != want {
			t.Errorf("sizes %v: got %d edges, want %d", sizes, len(s.Edges), want)
		}
		require.Equal(t, want, s.Root.Count(scene.IsPrimitive(scene.Cylinder)))
		require.Len(t, graph.EdgesOf(s.Graph.Edges()), want)
	}
}

func TestMLPLayersCenteredVertically(t *testing.T) {
	s := buildMLP(t, 1, 2, 3, 4, 7, 10)
	for _, l := range s.Layers {
		sum := 0.0
		for _, n := range l.Neurons {
			sum += n.Position.Y
			require.Equal(t, float64(l.Index), n.Position.X)
			require.Zero(t, n.Position.Z)
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("layer %d: y positions sum to %f, want 0", l.Index, sum)
		}
	}
}

func TestMLPTwoThree(t *testing.T) {
	s := buildMLP(t, 2, 3)

	require.Equal(t, MLP, s.Kind)
	require.Equal(t, r3.Vec{X: -1, Y: 1.5}, s.Offset)
	require.Equal(t, s.Offset, s.Root.Transform.Position)

	group, ok := s.Root.Child("Connections 0-1")
	require.True(t, ok)
	require.Len(t, group.Children, 6)

	neuron, ok := s.Root.Find("Layer 1/Neuron 2")
	require.True(t, ok)
	require.Same(t, s.Layers[1].Neurons[2].Node, neuron)
	require.Equal(t, r3.Vec{X: 1, Y: 1}, neuron.Transform.Position)
	require.Equal(t, r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}, neuron.Transform.Scale)
	require.Equal(t, "neuron", neuron.Material)

	label, ok := neuron.Child("Label")
	require.True(t, ok)
	require.Equal(t, "(1;2)", label.Label.Text)

	conn, ok := group.Child("Connection 0.0-1.0")
	require.True(t, ok)
	require.Equal(t, "connection", conn.Material)
	p1, p2 := r3.Vec{Y: -0.5}, r3.Vec{X: 1, Y: -1}
	require.InDelta(t, 0.5, conn.Transform.Position.X, 1e-12)
	require.InDelta(t, -0.75, conn.Transform.Position.Y, 1e-12)
	require.InDelta(t, r3.Norm(r3.Sub(p2, p1))/2, conn.Transform.Scale.Y, 1e-12)
	dir := conn.Transform.Rotation.Rotate(scene.Up)
	want := r3.Unit(r3.Sub(p2, p1))
	require.InDelta(t, want.X, dir.X, 1e-9)
	require.InDelta(t, want.Y, dir.Y, 1e-9)
}

func TestBuildAutoencoder(t *testing.T) {
	s, err := NewBuilder(DefaultOptions()).BuildAutoencoder([]int{4, 2, 1})
	require.NoError(t, err)
	require.Equal(t, Autoencoder, s.Kind)
	require.Equal(t, []int{4, 2, 1, 2, 4}, s.LayerSizes())
	require.Len(t, s.Edges, 4*2+2*1+1*2+2*4)
	require.Equal(t, r3.Vec{X: -2.5, Y: 2}, s.Offset)
}

func TestExpandAutoencoder(t *testing.T) {
	require.Equal(t, []int{3, 5, 7, 5, 3}, ExpandAutoencoder([]int{3, 5, 7}))
	require.Equal(t, []int{4}, ExpandAutoencoder([]int{4}))
	require.Nil(t, ExpandAutoencoder(nil))
	for n := 1; n < 6; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i + 1
		}
		require.Len(t, ExpandAutoencoder(in), 2*n-1)
	}
}

func TestExpandAutoencoderDoesNotAlias(t *testing.T) {
	in := []int{1, 2, 3}
	out := ExpandAutoencoder(in)
	out[0] = 99
	require.Equal(t, []int{1, 2, 3}, in)
}

func TestConfigureErrors(t *testing.T) {
	k, err := NewKohonenSpec(2, [][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)

	cases := map[string]NetworkSpec{
		"empty layers":  {Kind: MLP},
		"zero layer":    {Kind: Autoencoder, LayerSizes: []int{3, 0}},
		"negative":      {Kind: MLP, LayerSizes: []int{-1}},
		"unknown kind":  {Kind: Kind(7), LayerSizes: []int{1}},
		"missing grid":  {Kind: Kohonen},
		"bad input dim": {Kind: Kohonen, Kohonen: &KohonenSpec{InputDimension: 0, Activations: k.Activations}},
	}
	for name, spec := range cases {
		err := NewBuilder(DefaultOptions()).Configure(spec)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: expected ConfigurationError, got %v", name, err)
		}
	}
}

func TestBuildWithoutConfigure(t *testing.T) {
	_, err := NewBuilder(DefaultOptions()).Build()
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestConfigureCopiesLayerSizes(t *testing.T) {
	sizes := []int{2, 3}
	b := NewBuilder(DefaultOptions())
	require.NoError(t, b.Configure(NetworkSpec{Kind: MLP, LayerSizes: sizes}))
	sizes[1] = 9

	s, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, s.LayerSizes())
}

func TestRebuildStartsFresh(t *testing.T) {
	b := NewBuilder(DefaultOptions())
	first, err := b.BuildMLP([]int{2, 2})
	require.NoError(t, err)
	second, err := b.BuildAutoencoder([]int{3, 1})
	require.NoError(t, err)

	require.NotSame(t, first.Root, second.Root)
	require.Equal(t, []int{2, 2}, first.LayerSizes())
	require.Equal(t, []int{3, 1, 3}, second.LayerSizes())
	require.Equal(t, int64(0), second.Layers[0].Neurons[0].ID())
}

func TestMarshalDOT(t *testing.T) {
	s := buildMLP(t, 2, 3)
	out, err := MarshalDOT(s)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "graph MLP")
	require.Contains(t, text, "L0_N1")
	require.Contains(t, text, "L1_N2")
	require.Equal(t, len(s.Edges), strings.Count(text, "--"))

	_, err = MarshalDOT(nil)
	require.Error(t, err)
}
