package stream

// An Animation produces the frame to display at a point in time.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}

// A FrameSink receives every frame the controller calculates.
type FrameSink interface {
	SendFrame(f *Frame) error
}
