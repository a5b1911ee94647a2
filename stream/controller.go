package stream

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/matt-g-everett/devicetx/device"
)

// DefaultFrameRate is the number of frames calculated per second.
const DefaultFrameRate = 30.0

// Controller runs the sequencer and engine on a single goroutine and hands
// every frame to its sinks.
type Controller struct {
	engine    *Engine
	sequencer *Sequencer
	sinks     []FrameSink
	frameRate float64
	requests  chan string
	now       func() time.Time
}

// NewController creates an instance of a Controller.
func NewController(engine *Engine, sequencer *Sequencer, frameRate float64, sinks ...FrameSink) *Controller {
	c := new(Controller)
	c.engine = engine
	c.sequencer = sequencer
	c.sinks = sinks
	c.frameRate = frameRate
	if frameInterval(c.frameRate) <= 0 {
		c.frameRate = DefaultFrameRate
	}
	c.requests = make(chan string, 8)
	c.now = time.Now
	return c
}

// Request asks the controller to jump to the named step. It never blocks; a
// request arriving while the queue is full is dropped.
func (c *Controller) Request(name string) {
	select {
	case c.requests <- name:
	default:
		log.Printf("Dropping step request %q: queue full", name)
	}
}

// frameInterval is the time between frames, or 0 when frameRate cannot
// produce a usable ticker.
func frameInterval(frameRate float64) time.Duration {
	if !(frameRate > 0) || math.IsInf(frameRate, 0) {
		return 0
	}
	return time.Duration(float64(time.Second) / frameRate)
}

// advance moves the engine to step and keeps the sequencer cycling on from it.
func (c *Controller) advance(step device.StepName, runtimeMs int64) {
	if err := c.engine.AdvanceTo(step, runtimeMs); err != nil {
		log.Printf("Advance to %v: %v", step, err)
		return
	}
	c.sequencer.Seek(step)
	log.Printf("Step: %v", c.engine.CurrentStep())
}

func (c *Controller) handleRequest(name string, runtimeMs int64) {
	step, err := device.ParseStepName(name)
	if err != nil {
		log.Printf("Step request: %v", err)
		return
	}
	c.advance(step, runtimeMs)
}

func (c *Controller) sendFrame(runtimeMs int64) {
	f := c.engine.CalculateFrame(runtimeMs)
	for _, sink := range c.sinks {
		if err := sink.SendFrame(f); err != nil {
			log.Printf("Send frame: %v", err)
		}
	}
}

// Run cycles the steps and streams frames until ctx is cancelled. Both
// tickers are released before Run returns.
func (c *Controller) Run(ctx context.Context) error {
	start := c.now()
	runtimeMs := func() int64 {
		return c.now().Sub(start).Milliseconds()
	}

	steps := c.sequencer.Start()
	defer c.sequencer.Stop()

	frameTimer := time.NewTicker(frameInterval(c.frameRate))
	defer frameTimer.Stop()

	c.sendFrame(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-steps:
			c.advance(c.sequencer.Next(), runtimeMs())
		case name := <-c.requests:
			c.handleRequest(name, runtimeMs())
		case <-frameTimer.C:
			c.sendFrame(runtimeMs())
		}
	}
}
