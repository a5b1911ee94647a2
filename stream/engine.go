package stream

import (
	"errors"
	"fmt"
	"time"

	"github.com/matt-g-everett/devicetx/device"
)

// DefaultDuration is how long one property transition takes.
const DefaultDuration = 300 * time.Millisecond

// ErrUnknownProperty is returned when a batch names a property the engine
// does not animate.
var ErrUnknownProperty = errors.New("unknown property")

// Interpolation moves one property from From to To.
type Interpolation struct {
	Property device.Property
	From     float64
	To       float64
}

type propertyState struct {
	value   float64
	start   float64
	target  float64
	startMs int64
	active  bool
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	Profiles    device.ProfileSet
	InitialStep device.StepName
	Duration    time.Duration
	Easing      Easing

	// SkipIfUnchanged turns AdvanceTo into a no-op when the requested step
	// is already the current step.
	SkipIfUnchanged bool

	Style Style
}

// Engine eases every property of the illustration towards the profile of
// the current step.
type Engine struct {
	profiles        device.ProfileSet
	current         device.StepName
	properties      [device.NumProperties]propertyState
	durationMs      int64
	easing          Easing
	skipIfUnchanged bool
	style           Style
}

var _ Animation = (*Engine)(nil)

// NewEngine creates an Engine at rest on the initial step's profile.
func NewEngine(config EngineConfig) (*Engine, error) {
	profile, err := config.Profiles.Profile(config.InitialStep)
	if err != nil {
		return nil, err
	}

	e := new(Engine)
	e.profiles = config.Profiles
	e.current = config.InitialStep
	e.skipIfUnchanged = config.SkipIfUnchanged
	e.style = config.Style

	duration := config.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	e.durationMs = duration.Milliseconds()

	e.easing = config.Easing
	if e.easing == nil {
		e.easing = DefaultEasing
	}

	for i, v := range profile.Values() {
		e.properties[i] = propertyState{value: v, start: v, target: v}
	}

	return e, nil
}

// CurrentStep returns the last step the engine was advanced to.
func (e *Engine) CurrentStep() device.StepName {
	return e.current
}

// Settled reports whether every property has reached its target.
func (e *Engine) Settled() bool {
	for i := range e.properties {
		if e.properties[i].active {
			return false
		}
	}
	return true
}

// AdvanceTo starts a transition of every property towards the profile of
// step. Transitions still in flight are replaced, starting from wherever
// they had got to at runtimeMs.
func (e *Engine) AdvanceTo(step device.StepName, runtimeMs int64) error {
	profile, err := e.profiles.Profile(step)
	if err != nil {
		return err
	}

	if e.skipIfUnchanged && step == e.current {
		return nil
	}

	e.update(runtimeMs)

	targets := profile.Values()
	batch := make([]Interpolation, device.NumProperties)
	for i := range batch {
		batch[i] = Interpolation{
			Property: device.Property(i),
			From:     e.properties[i].value,
			To:       targets[i],
		}
	}

	if err := e.ParallelStart(batch, runtimeMs); err != nil {
		return err
	}
	e.current = step

	return nil
}

// ParallelStart starts a batch of interpolations sharing runtimeMs as their
// start time. Nothing is started if any entry names an unknown property.
func (e *Engine) ParallelStart(batch []Interpolation, runtimeMs int64) error {
	for _, in := range batch {
		if !in.Property.Valid() {
			return fmt.Errorf("%w: %v", ErrUnknownProperty, in.Property)
		}
	}

	for _, in := range batch {
		e.properties[in.Property] = propertyState{
			value:   in.From,
			start:   in.From,
			target:  in.To,
			startMs: runtimeMs,
			active:  true,
		}
	}

	return nil
}

func (e *Engine) update(runtimeMs int64) {
	for i := range e.properties {
		p := &e.properties[i]
		if !p.active {
			continue
		}

		elapsed := runtimeMs - p.startMs
		if elapsed < 0 {
			continue
		}
		if e.durationMs <= 0 || elapsed >= e.durationMs {
			p.value = p.target
			p.active = false
			continue
		}

		ratio := float64(elapsed) / float64(e.durationMs)
		p.value = p.start + (p.target-p.start)*e.easing(ratio)
	}
}

// CalculateFrame advances every transition to runtimeMs and returns a
// snapshot of the property values.
func (e *Engine) CalculateFrame(runtimeMs int64) *Frame {
	e.update(runtimeMs)

	f := NewFrame(e.current, e.style)
	for i := range e.properties {
		f.values[i] = e.properties[i].value
	}
	return f
}
