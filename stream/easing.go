package stream

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Easing maps linear progress in [0, 1] onto eased progress.
type Easing func(t float64) float64

// DefaultEasing is the curve every property transition uses unless
// configured otherwise.
var DefaultEasing Easing = ease.InOutCubic

var easings = map[string]Easing{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
}

// LookupEasing returns the easing registered under name.
func LookupEasing(name string) (Easing, error) {
	if name == "" {
		return DefaultEasing, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}
