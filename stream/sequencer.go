package stream

import (
	"fmt"
	"time"

	"github.com/matt-g-everett/devicetx/device"
)

// DefaultPeriod is the time spent on each step.
const DefaultPeriod = time.Second

// Sequencer cycles through the steps on a fixed period.
type Sequencer struct {
	steps  []device.StepName
	index  int
	period time.Duration
	ticker *time.Ticker
}

// NewSequencer creates a Sequencer positioned on initial.
func NewSequencer(initial device.StepName, period time.Duration) (*Sequencer, error) {
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: %d", device.ErrInvalidStepName, int(initial))
	}

	s := new(Sequencer)
	s.steps = device.Sequence()
	s.period = period
	if s.period <= 0 {
		s.period = DefaultPeriod
	}
	for i, step := range s.steps {
		if step == initial {
			s.index = i
		}
	}

	return s, nil
}

// Period is the time between ticks.
func (s *Sequencer) Period() time.Duration {
	return s.period
}

// Next moves on to the following step and returns it.
func (s *Sequencer) Next() device.StepName {
	s.index = (s.index + 1) % len(s.steps)
	return s.steps[s.index]
}

// Seek repositions the sequencer so the following tick moves on from step.
func (s *Sequencer) Seek(step device.StepName) {
	for i, st := range s.steps {
		if st == step {
			s.index = i
			return
		}
	}
}

// Start begins ticking. Every call to Start must be paired with Stop.
func (s *Sequencer) Start() <-chan time.Time {
	s.Stop()
	s.ticker = time.NewTicker(s.period)
	return s.ticker.C
}

// Stop releases the ticker. It is safe to call more than once.
func (s *Sequencer) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}
