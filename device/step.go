package device

import (
	"errors"
	"fmt"
)

// ErrInvalidStepName is returned for a step outside Desktop, Tablet and Phone.
var ErrInvalidStepName = errors.New("invalid step name")

// StepName identifies one of the device shapes the animation cycles through.
type StepName int

const (
	Desktop StepName = iota
	Tablet
	Phone

	// NumSteps is the size of the closed step set.
	NumSteps = 3
)

var stepNames = [NumSteps]string{"desktop", "tablet", "phone"}

// Valid reports whether s is one of the known steps.
func (s StepName) Valid() bool {
	return s >= 0 && int(s) < NumSteps
}

func (s StepName) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// ParseStepName converts the text form of a step.
func ParseStepName(name string) (StepName, error) {
	for i, n := range stepNames {
		if n == name {
			return StepName(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStepName, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s StepName) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStepName, int(s))
	}
	return []byte(stepNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StepName) UnmarshalText(text []byte) error {
	step, err := ParseStepName(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// Sequence returns the cycle order of the steps.
func Sequence() []StepName {
	return []StepName{Desktop, Tablet, Phone}
}
