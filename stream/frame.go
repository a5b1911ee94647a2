package stream

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/matt-g-everett/devicetx/device"
	"github.com/matt-g-everett/devicetx/util"
)

// Frame is a snapshot of every animated property at one point in time.
type Frame struct {
	step   device.StepName
	values [device.NumProperties]float64
	style  Style
}

// NewFrame creates a new Frame instance.
func NewFrame(step device.StepName, style Style) *Frame {
	f := new(Frame)
	f.step = step
	f.style = style
	return f
}

// Step is the step the engine was heading to when the frame was taken.
func (f *Frame) Step() device.StepName {
	return f.step
}

// Value returns the current value of a property.
func (f *Frame) Value(p device.Property) float64 {
	if !p.Valid() {
		return 0
	}
	return f.values[p]
}

// Rotation returns the bounds rotation as a CSS style angle.
func (f *Frame) Rotation() string {
	return util.Degrees(util.MapRange(f.values[device.BoundsRotation], 0, 360, 0, 360))
}

// Snapshot maps each property key to its value. The rotation is given with
// its unit.
func (f *Frame) Snapshot() map[string]interface{} {
	m := make(map[string]interface{}, device.NumProperties)
	for _, p := range device.Properties() {
		m[p.String()] = f.values[p]
	}
	m[device.BoundsRotation.String()] = f.Rotation()
	return m
}

// Layer is one of the nested boxes of the illustration.
type Layer struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"marginTop,omitempty"`
	MarginBottom float64 `json:"marginBottom,omitempty"`
	Rotate       string  `json:"rotate,omitempty"`
	BorderRadius float64 `json:"borderRadius"`
	Stroke       string  `json:"stroke"`
	StrokeWidth  float64 `json:"strokeWidth"`
}

// Layers holds the outer device frame, its screen and its button.
type Layers struct {
	Bounds Layer `json:"bounds"`
	Screen Layer `json:"screen"`
	Button Layer `json:"button"`
}

// Layers lays the frame's values out onto the three nested boxes.
func (f *Frame) Layers() Layers {
	stroke := f.style.Stroke.Hex()
	circle := f.values[device.CircleSize]
	return Layers{
		Bounds: Layer{
			Width:        f.values[device.BoundsWidth],
			Height:       f.values[device.BoundsHeight],
			Rotate:       f.Rotation(),
			BorderRadius: f.style.BoundsRadius,
			Stroke:       stroke,
			StrokeWidth:  f.style.StrokeWidth,
		},
		Screen: Layer{
			Width:        f.values[device.ScreenWidth],
			Height:       f.values[device.ScreenHeight],
			MarginTop:    f.values[device.ScreenMarginTop],
			MarginBottom: f.values[device.ScreenMarginBottom],
			Stroke:       stroke,
			StrokeWidth:  f.style.StrokeWidth,
		},
		Button: Layer{
			Width:        circle,
			Height:       circle,
			BorderRadius: circle / 2,
			Stroke:       stroke,
			StrokeWidth:  f.style.StrokeWidth,
		},
	}
}

type frameJSON struct {
	Step       device.StepName        `json:"step"`
	Properties map[string]interface{} `json:"properties"`
	Layers     Layers                 `json:"layers"`
}

// MarshalJSON encodes the frame for renderers that speak JSON.
func (f *Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(frameJSON{
		Step:       f.step,
		Properties: f.Snapshot(),
		Layers:     f.Layers(),
	})
}

// MarshalBinary converts a Frame into binary data: a uint16 property count,
// the step, one little endian float32 per property and the stroke RGB.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 3, 3+(device.NumProperties*4)+3)
	binary.LittleEndian.PutUint16(data, device.NumProperties)
	data[2] = byte(f.step)
	for _, v := range f.values {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
		data = append(data, b[:]...)
	}
	r, g, b := f.style.Stroke.Clamped().RGB255()
	data = append(data, r, g, b)

	return data, nil
}
