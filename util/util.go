package util

import "strconv"

// Lerp blends a towards b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MapRange maps v linearly from [in0, in1] onto [out0, out1]. Values outside
// the input range are extrapolated.
func MapRange(v, in0, in1, out0, out1 float64) float64 {
	if in0 == in1 {
		return out0
	}
	switch v {
	case in0:
		return out0
	case in1:
		return out1
	}
	return Lerp(out0, out1, (v-in0)/(in1-in0))
}

// Degrees formats an angle with its unit, e.g. "90deg".
func Degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "deg"
}

// SampleCurve tabulates an easing function at length evenly spaced points
// from 0 to 1 inclusive. A single point samples the end of the curve.
func SampleCurve(length int, fn func(float64) float64) []float64 {
	if length <= 0 {
		return nil
	}
	if length == 1 {
		return []float64{fn(1)}
	}
	increment := 1.0 / float64(length-1)
	lut := make([]float64, length)
	for i := range lut {
		lut[i] = fn(float64(i) * increment)
	}
	lut[length-1] = fn(1)
	return lut
}
