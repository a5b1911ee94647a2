package stream

import (
	"errors"
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/devicetx/device"
)

func newTestEngine(t *testing.T, initial device.StepName, skip bool) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{
		Profiles:        device.PresetProfiles(240),
		InitialStep:     initial,
		SkipIfUnchanged: skip,
		Style:           DefaultStyle(),
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func assertProfile(t *testing.T, f *Frame, want device.StepProfile) {
	t.Helper()
	for _, p := range device.Properties() {
		if got := f.Value(p); got != want.Get(p) {
			t.Errorf("%v = %v, want %v", p, got, want.Get(p))
		}
	}
}

func TestEngineStartsAtRest(t *testing.T) {
	profiles := device.PresetProfiles(240)
	for _, step := range device.Sequence() {
		e := newTestEngine(t, step, false)
		if !e.Settled() || e.CurrentStep() != step {
			t.Fatalf("engine for %v not at rest", step)
		}
		assertProfile(t, e.CalculateFrame(0), profiles[step])
	}
}

func TestEngineRejectsInvalidInitialStep(t *testing.T) {
	_, err := NewEngine(EngineConfig{
		Profiles:    device.PresetProfiles(480),
		InitialStep: device.StepName(9),
	})
	if !errors.Is(err, device.ErrInvalidStepName) {
		t.Fatalf("err = %v, want ErrInvalidStepName", err)
	}
}

func TestEngineConvergesForEveryPair(t *testing.T) {
	profiles := device.PresetProfiles(240)
	for _, from := range device.Sequence() {
		for _, to := range device.Sequence() {
			e := newTestEngine(t, from, false)
			if err := e.AdvanceTo(to, 1000); err != nil {
				t.Fatalf("AdvanceTo(%v): %v", to, err)
			}
			f := e.CalculateFrame(1000 + DefaultDuration.Milliseconds())
			if !e.Settled() {
				t.Errorf("%v -> %v not settled", from, to)
			}
			if f.Step() != to {
				t.Errorf("frame step = %v, want %v", f.Step(), to)
			}
			assertProfile(t, f, profiles[to])
		}
	}
}

func TestEngineEasesInOutCubic(t *testing.T) {
	profiles := device.PresetProfiles(480)
	e := newTestEngine(t, device.Desktop, false)
	if err := e.AdvanceTo(device.Tablet, 0); err != nil {
		t.Fatal(err)
	}

	from := profiles[device.Desktop].BoundsRotation
	to := profiles[device.Tablet].BoundsRotation

	f := e.CalculateFrame(75)
	want := from + (to-from)*ease.InOutCubic(0.25)
	if got := f.Value(device.BoundsRotation); got != want {
		t.Errorf("rotation at 75ms = %v, want %v", got, want)
	}

	f = e.CalculateFrame(150)
	if got := f.Value(device.BoundsRotation); got != 45 {
		t.Errorf("rotation at 150ms = %v, want 45", got)
	}
	if e.Settled() {
		t.Error("engine settled mid transition")
	}
}

func TestEngineOverrideStartsFromInFlightValue(t *testing.T) {
	profiles := device.PresetProfiles(480)
	e := newTestEngine(t, device.Desktop, false)
	if err := e.AdvanceTo(device.Tablet, 0); err != nil {
		t.Fatal(err)
	}
	mid := e.CalculateFrame(150).Value(device.BoundsWidth)

	if err := e.AdvanceTo(device.Phone, 150); err != nil {
		t.Fatal(err)
	}
	if got := e.CalculateFrame(150).Value(device.BoundsWidth); got != mid {
		t.Errorf("override jumped: %v, want %v", got, mid)
	}

	// The tablet transition would have finished at 300; the phone one must
	// still be running.
	if e.CalculateFrame(300); e.Settled() {
		t.Error("settled on the overridden schedule")
	}

	f := e.CalculateFrame(450)
	if !e.Settled() {
		t.Fatal("newest transition did not finish")
	}
	assertProfile(t, f, profiles[device.Phone])
}

func TestEngineRapidOverridesAlwaysFinish(t *testing.T) {
	profiles := device.PresetProfiles(480)
	e := newTestEngine(t, device.Desktop, false)
	var now int64
	steps := device.Sequence()
	for i := 0; i < 20; i++ {
		now += 50
		if err := e.AdvanceTo(steps[i%len(steps)], now); err != nil {
			t.Fatal(err)
		}
		e.CalculateFrame(now + 10)
	}
	last := steps[19%len(steps)]
	f := e.CalculateFrame(now + DefaultDuration.Milliseconds())
	if !e.Settled() {
		t.Fatal("engine stuck mid transition")
	}
	assertProfile(t, f, profiles[last])
}

func TestEngineSkipIfUnchanged(t *testing.T) {
	e := newTestEngine(t, device.Desktop, true)
	if err := e.AdvanceTo(device.Desktop, 10); err != nil {
		t.Fatal(err)
	}
	if !e.Settled() {
		t.Error("redundant step started a transition")
	}

	if err := e.AdvanceTo(device.Phone, 10); err != nil {
		t.Fatal(err)
	}
	if e.Settled() || e.CurrentStep() != device.Phone {
		t.Error("new step did not start a transition")
	}
}

func TestEngineAlwaysTransitionsByDefault(t *testing.T) {
	e := newTestEngine(t, device.Desktop, false)
	if err := e.AdvanceTo(device.Desktop, 10); err != nil {
		t.Fatal(err)
	}
	if e.Settled() {
		t.Error("same step transition was skipped")
	}
	assertProfile(t, e.CalculateFrame(500), device.PresetProfiles(240)[device.Desktop])
}

func TestEngineRejectsInvalidStep(t *testing.T) {
	e := newTestEngine(t, device.Tablet, false)
	err := e.AdvanceTo(device.StepName(-1), 0)
	if !errors.Is(err, device.ErrInvalidStepName) {
		t.Fatalf("err = %v, want ErrInvalidStepName", err)
	}
	if e.CurrentStep() != device.Tablet || !e.Settled() {
		t.Error("invalid step changed engine state")
	}
}

func TestEngineParallelStart(t *testing.T) {
	e := newTestEngine(t, device.Desktop, false)
	err := e.ParallelStart([]Interpolation{
		{Property: device.CircleSize, From: 0, To: 10},
		{Property: device.Property(42), From: 0, To: 1},
	}, 0)
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("err = %v, want ErrUnknownProperty", err)
	}
	if !e.Settled() {
		t.Fatal("partial batch was started")
	}

	err = e.ParallelStart([]Interpolation{
		{Property: device.CircleSize, From: 0, To: 10},
		{Property: device.ScreenMarginTop, From: 100, To: 0},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := e.CalculateFrame(150)
	if f.Value(device.CircleSize) != 5 || f.Value(device.ScreenMarginTop) != 50 {
		t.Errorf("batch values = %v, %v", f.Value(device.CircleSize), f.Value(device.ScreenMarginTop))
	}
}

func TestEngineCustomDurationAndEasing(t *testing.T) {
	e, err := NewEngine(EngineConfig{
		Profiles:    device.PresetProfiles(480),
		InitialStep: device.Desktop,
		Duration:    time.Second,
		Easing:      ease.Linear,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.AdvanceTo(device.Tablet, 0); err != nil {
		t.Fatal(err)
	}
	if got := e.CalculateFrame(250).Value(device.BoundsRotation); got != 22.5 {
		t.Errorf("linear rotation = %v, want 22.5", got)
	}
	if e.CalculateFrame(999); e.Settled() {
		t.Error("settled before the duration elapsed")
	}
	if e.CalculateFrame(1000); !e.Settled() {
		t.Error("not settled after the duration elapsed")
	}
}

func TestLookupEasing(t *testing.T) {
	if e, err := LookupEasing(""); err != nil || e(0.5) != DefaultEasing(0.5) {
		t.Errorf("default easing = %v", err)
	}
	if _, err := LookupEasing("bogus"); err == nil {
		t.Error("expected error for unknown easing")
	}
	if e, err := LookupEasing("linear"); err != nil || e(0.3) != 0.3 {
		t.Errorf("linear easing = %v", err)
	}
}
