package device

// DefaultRatio is the long side over the short side of every device, 16:9.
const DefaultRatio = 1.7777

// Scale says what a Dim is measured against.
type Scale int

const (
	// Absolute values are used as is (rotation).
	Absolute Scale = iota
	// Size values are multiples of the base size.
	Size
	// Short values are multiples of base size / ratio.
	Short
)

// Dim is a single templated property value.
type Dim struct {
	Scale  Scale
	Factor float64
}

func size(f float64) Dim  { return Dim{Size, f} }
func short(f float64) Dim { return Dim{Short, f} }
func abs(v float64) Dim   { return Dim{Absolute, v} }

// Resolve turns the dim into a concrete value.
func (d Dim) Resolve(base, ratio float64) float64 {
	switch d.Scale {
	case Size:
		return base * d.Factor
	case Short:
		return base / ratio * d.Factor
	default:
		return d.Factor
	}
}

// Template describes every profile relative to the base size.
type Template [NumSteps][NumProperties]Dim

// Resolve computes the profiles of a template for a base size and ratio.
func (t *Template) Resolve(base, ratio float64) ProfileSet {
	var set ProfileSet
	for step := range t {
		var values [NumProperties]float64
		for prop, d := range t[step] {
			values[prop] = d.Resolve(base, ratio)
		}
		set[step] = profileFromValues(values)
	}
	return set
}

// Standard is the layout drawn at a base size of 480.
var Standard = Template{
	Desktop: {
		BoundsWidth:        size(1),
		BoundsHeight:       short(1),
		BoundsRotation:     abs(0),
		ScreenWidth:        size(0.97),
		ScreenHeight:       short(0.75),
		ScreenMarginTop:    abs(0),
		ScreenMarginBottom: size(0.04),
		CircleSize:         size(0.06),
	},
	Tablet: {
		BoundsWidth:        short(0.9),
		BoundsHeight:       size(0.7),
		BoundsRotation:     abs(90),
		ScreenWidth:        short(0.8),
		ScreenHeight:       size(0.5),
		ScreenMarginTop:    size(0.04),
		ScreenMarginBottom: size(0.02),
		CircleSize:         size(0.05),
	},
	Phone: {
		BoundsWidth:        short(0.5),
		BoundsHeight:       size(0.6),
		BoundsRotation:     abs(0),
		ScreenWidth:        short(0.45),
		ScreenHeight:       size(0.45),
		ScreenMarginTop:    size(0.04),
		ScreenMarginBottom: size(0.02),
		CircleSize:         size(0.04),
	},
}

// Compact is the layout drawn at a base size of 240. The desktop chin is
// halved so the button still fits under the screen.
var Compact = func() Template {
	t := Standard
	t[Desktop][ScreenMarginBottom] = size(0.02)
	return t
}()

var presets = map[float64]*Template{
	480: &Standard,
	240: &Compact,
}

// PresetTemplate returns the template registered for a base size, or
// Standard when there is none.
func PresetTemplate(base float64) *Template {
	if t, ok := presets[base]; ok {
		return t
	}
	return &Standard
}

// PresetProfiles resolves the preset template for base at DefaultRatio.
func PresetProfiles(base float64) ProfileSet {
	return PresetTemplate(base).Resolve(base, DefaultRatio)
}
