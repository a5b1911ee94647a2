package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Style is the outline drawn around each layer.
type Style struct {
	Stroke       colorful.Color
	StrokeWidth  float64
	BoundsRadius float64
}

// DefaultStyle is a 2px red outline with rounded device corners.
func DefaultStyle() Style {
	stroke, _ := colorful.Hex("#ff0000")
	return Style{
		Stroke:       stroke,
		StrokeWidth:  2,
		BoundsRadius: 16,
	}
}

// NewStyle parses a hex stroke colour into a Style.
func NewStyle(stroke string, strokeWidth, boundsRadius float64) (Style, error) {
	c, err := colorful.Hex(stroke)
	if err != nil {
		return Style{}, err
	}
	return Style{Stroke: c, StrokeWidth: strokeWidth, BoundsRadius: boundsRadius}, nil
}
