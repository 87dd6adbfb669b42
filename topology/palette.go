package topology

import (
	"fmt"
	"image/color"
	"math"
)

// Ramp is a fixed six-step activation palette, lowest activation first.
type Ramp [6]color.NRGBA

// DefaultRamp runs from amber through crimson and plum to black.
var DefaultRamp = Ramp{
	{R: 255, G: 195, B: 0, A: 255},
	{R: 255, G: 87, B: 51, A: 255},
	{R: 199, G: 0, B: 57, A: 255},
	{R: 144, G: 12, B: 63, A: 255},
	{R: 88, G: 24, B: 69, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
}

// Bucket returns the ramp index for value in [minValue, maxValue].
// Out of range values are clamped to the first or last entry.
func Bucket(minValue, maxValue, value int) int {
	step := float64(maxValue) / float64(len(Ramp{}))
	if step <= 0 {
		return 0
	}
	return clampBucket(int(math.Floor(float64(value-minValue) / step)))
}

// LegacyBucket reproduces the historical bucket formula, which ignores value
// and divides the whole range by the step. With the default [1, 6] range it
// always selects the last entry.
func LegacyBucket(minValue, maxValue, value int) int {
	step := maxValue / len(Ramp{})
	if step <= 0 {
		return 0
	}
	return clampBucket((maxValue - minValue) / step)
}

func clampBucket(b int) int {
	switch {
	case b < 0:
		return 0
	case b >= len(Ramp{}):
		return len(Ramp{}) - 1
	}
	return b
}

// ColorFor returns the ramp entry for value.
func ColorFor(minValue, maxValue, value int, ramp Ramp) color.NRGBA {
	return ramp[Bucket(minValue, maxValue, value)]
}

// LegacyColorFor returns the ramp entry chosen by LegacyBucket.
func LegacyColorFor(minValue, maxValue, value int, ramp Ramp) color.NRGBA {
	return ramp[LegacyBucket(minValue, maxValue, value)]
}

// LabelFor is the label of neuron j in layer i.
func LabelFor(layerIndex, neuronIndex int) string {
	return fmt.Sprintf("(%d;%d)", layerIndex, neuronIndex)
}

// KohonenLabelFor is the label of the output grid neuron at (column, row).
func KohonenLabelFor(column, row int) string {
	return fmt.Sprintf("(1;%d;%d)", column, row)
}
