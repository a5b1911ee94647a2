package device

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPropertyKeySetMismatch is returned when a profile table does not carry
// exactly the animated property keys.
var ErrPropertyKeySetMismatch = errors.New("property key set mismatch")

// Property is one of the animated values of the illustration.
type Property int

const (
	BoundsWidth Property = iota
	BoundsHeight
	BoundsRotation
	ScreenWidth
	ScreenHeight
	ScreenMarginTop
	ScreenMarginBottom
	CircleSize

	// NumProperties is the number of animated properties.
	NumProperties = 8
)

var propertyKeys = [NumProperties]string{
	"boundsWidth",
	"boundsHeight",
	"boundsRotation",
	"screenWidth",
	"screenHeight",
	"screenMarginTop",
	"screenMarginBottom",
	"circleSize",
}

// Valid reports whether p is a known property.
func (p Property) Valid() bool {
	return p >= 0 && int(p) < NumProperties
}

// String returns the property key.
func (p Property) String() string {
	if !p.Valid() {
		return fmt.Sprintf("property(%d)", int(p))
	}
	return propertyKeys[p]
}

// ParseProperty looks up a property by key.
func ParseProperty(key string) (Property, bool) {
	for i, k := range propertyKeys {
		if k == key {
			return Property(i), true
		}
	}
	return 0, false
}

// Properties returns every property in key order.
func Properties() []Property {
	props := make([]Property, NumProperties)
	for i := range props {
		props[i] = Property(i)
	}
	return props
}

// StepProfile holds the target value of every property for one step.
type StepProfile struct {
	BoundsWidth    float64
	BoundsHeight   float64
	BoundsRotation float64

	ScreenWidth        float64
	ScreenHeight       float64
	ScreenMarginTop    float64
	ScreenMarginBottom float64

	CircleSize float64
}

// Values returns the profile indexed by Property.
func (p StepProfile) Values() [NumProperties]float64 {
	return [NumProperties]float64{
		p.BoundsWidth,
		p.BoundsHeight,
		p.BoundsRotation,
		p.ScreenWidth,
		p.ScreenHeight,
		p.ScreenMarginTop,
		p.ScreenMarginBottom,
		p.CircleSize,
	}
}

// Get returns the target value of a single property.
func (p StepProfile) Get(prop Property) float64 {
	if !prop.Valid() {
		return 0
	}
	return p.Values()[prop]
}

func profileFromValues(v [NumProperties]float64) StepProfile {
	return StepProfile{
		BoundsWidth:        v[BoundsWidth],
		BoundsHeight:       v[BoundsHeight],
		BoundsRotation:     v[BoundsRotation],
		ScreenWidth:        v[ScreenWidth],
		ScreenHeight:       v[ScreenHeight],
		ScreenMarginTop:    v[ScreenMarginTop],
		ScreenMarginBottom: v[ScreenMarginBottom],
		CircleSize:         v[CircleSize],
	}
}

// ProfileFromMap builds a profile from a keyed table. The table must hold
// every property key and nothing else.
func ProfileFromMap(m map[string]float64) (StepProfile, error) {
	var values [NumProperties]float64
	var seen [NumProperties]bool
	var unknown []string
	for key, v := range m {
		prop, ok := ParseProperty(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		values[prop] = v
		seen[prop] = true
	}

	var missing []string
	for i, ok := range seen {
		if !ok {
			missing = append(missing, propertyKeys[i])
		}
	}

	if len(unknown) > 0 || len(missing) > 0 {
		sort.Strings(unknown)
		return StepProfile{}, fmt.Errorf("%w: missing %v, unknown %v",
			ErrPropertyKeySetMismatch, missing, unknown)
	}

	return profileFromValues(values), nil
}

// ProfileSet holds one profile per step.
type ProfileSet [NumSteps]StepProfile

// Profile returns the profile for a step.
func (s *ProfileSet) Profile(step StepName) (StepProfile, error) {
	if !step.Valid() {
		return StepProfile{}, fmt.Errorf("%w: %d", ErrInvalidStepName, int(step))
	}
	return s[step], nil
}
