package topology

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"nnscene/scene"
)

// kohonenPlaneX is where the output grid sits along x.
const kohonenPlaneX = 5

// BuildKohonen lays out the input layer, the colored output grid on the
// plane x = 5, full connections between them, and the grid adjacency.
func (b *Builder) BuildKohonen(k *KohonenSpec) (*Scene, error) {
	if k == nil {
		return nil, configErr("kohonen", "kohonen network requires a grid")
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	b.reset(Kohonen)
	s := b.scene
	height, width := k.Height(), k.Width()

	input := b.addLayer(s.Root, 0, k.InputDimension)

	last := s.Root.AddChild(scene.NewNode("Last Layer", scene.Empty))
	plane := last.AddChild(scene.NewNode("Plane", scene.Cube))
	plane.Transform = scene.Transform{
		Position: r3.Vec{X: kohonenPlaneX},
		Scale:    r3.Vec{X: float64(height), Y: 0.001, Z: float64(width)},
		Rotation: scene.Euler(0, 0, 90),
	}

	output := b.newLayer(last, 1)
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			pos := r3.Vec{
				X: kohonenPlaneX,
				Y: float64(row) - float64(height-1)/2,
				Z: float64(col) - float64(width-1)/2,
			}
			n := b.addNeuron(output, row+col*height, pos, KohonenLabelFor(col, row))
			c := b.activationColor(k.Activation(col, row))
			n.Color = &c
			n.Node.Color = &c
		}
	}

	if err := b.connectGrid(output, width, height); err != nil {
		return nil, err
	}
	if err := b.connectLayers(input, output); err != nil {
		return nil, err
	}
	b.finish(r3.Vec{Y: float64(height), Z: -6})
	return s, nil
}

func (b *Builder) activationColor(value int) color.NRGBA {
	if b.opts.LegacyColorBucket {
		return LegacyColorFor(MinActivation, MaxActivation, value, b.opts.Ramp)
	}
	return ColorFor(MinActivation, MaxActivation, value, b.opts.Ramp)
}

// connectGrid adds a self-loop to every output neuron and connects it to
// its neighbors in the row above and to its left. Looking only backwards
// emits each undirected neighbor pair once.
func (b *Builder) connectGrid(l *Layer, width, height int) error {
	s := b.scene
	group := s.Root.AddChild(scene.NewNode("Connections K", scene.Empty))
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			a := l.Neurons[row+col*height]

			loop := scene.NewNode(fmt.Sprintf("Connection K%d", a.Index), scene.Prototype)
			loop.Prototype = b.opts.SelfConnection
			loop.Transform.Position = r3.Add(a.Position, r3.Vec{X: 0.1})
			group.AddChild(loop)
			s.SelfLoops = append(s.SelfLoops, loop)

			for dc := -1; dc <= 1; dc++ {
				for dr := -1; dr <= 0; dr++ {
					if dr == 0 && dc >= 0 {
						continue
					}
					r, c := row+dr, col+dc
					if r < 0 || c < 0 || c >= width {
						continue
					}
					idx := r + c*height
					if idx >= l.Size() {
						return structuralErr("neighbor K%d of K%d is outside the %dx%d grid", idx, a.Index, height, width)
					}
					nb := l.Neurons[idx]
					e, err := b.connect(group, a, nb, fmt.Sprintf("Connection K%d-K%d", a.Index, nb.Index))
					if err != nil {
						return err
					}
					s.Neighbors = append(s.Neighbors, e)
				}
			}
		}
	}
	return nil
}
