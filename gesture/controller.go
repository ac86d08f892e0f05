// Package gesture turns pointer input on a single decoration into position,
// scale and rotation commits.
package gesture

import (
	"context"
	"math"
	"sync"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
)

const (
	// ResizeSensitivity is the pointer distance from the center, in pixels,
	// that maps to scale 1.
	ResizeSensitivity = 40.0
	MinScale          = 0.3
	MaxScale          = 3.0

	// RotationOffset turns "pointer straight above the center" into 0 degrees.
	RotationOffset = 90.0
)

type State int

const (
	Idle State = iota
	Selected
	Dragging
	Resizing
	Rotating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Rotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// Handle is the part of a decoration a pointer went down on.
type Handle int

const (
	Body Handle = iota
	ResizeHandle
	RotateHandle
)

// Committer sends a patch to the server.
type Committer interface {
	Commit(ctx context.Context, id string, patch core.Patch) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithAdmin puts the controller in read-only mode: activation calls inspect
// and never selects the decoration.
func WithAdmin(inspect func(core.Decoration)) Option {
	return func(c *Controller) {
		c.admin = true
		c.onInspect = inspect
	}
}

// WithErrorHandler receives failed commits. The optimistic value stays.
func WithErrorHandler(fn func(id string, err error)) Option {
	return func(c *Controller) {
		c.onError = fn
	}
}

// WithContext sets the context commits run under.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// Controller is the interaction state of one decoration. Input methods are
// meant to be called from a single event loop; commits run in the background.
type Controller struct {
	id        string
	scene     *Scene
	committer Committer

	admin     bool
	onInspect func(core.Decoration)
	onError   func(id string, err error)
	ctx       context.Context

	state   State
	offset  Point
	preview Point

	inflight sync.WaitGroup
	// last is closed when the most recent commit has finished. Commits of
	// one controller reach the server in the order they were made.
	last chan struct{}
}

func NewController(id string, scene *Scene, committer Committer, opts ...Option) *Controller {
	c := &Controller{
		id:        id,
		scene:     scene,
		committer: committer,
		ctx:       context.Background(),
		last:      make(chan struct{}),
	}
	close(c.last)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	return c.state
}

// Preview is where the decoration is drawn while it is being dragged.
func (c *Controller) Preview() (Point, bool) {
	return c.preview, c.state == Dragging
}

// Activate handles a tap or primary click on the decoration.
func (c *Controller) Activate() {
	if c.admin {
		if d, ok := c.scene.Get(c.id); ok && c.onInspect != nil {
			c.onInspect(d)
		}
		return
	}
	if c.state == Idle {
		c.state = Selected
	}
}

// OutsideDown handles a pointer-down anywhere outside the decoration.
func (c *Controller) OutsideDown() {
	if c.state == Selected {
		c.state = Idle
	}
}

// PointerDown starts a gesture on a selected decoration.
func (c *Controller) PointerDown(p Point, h Handle) {
	if c.admin || c.state != Selected {
		return
	}
	d, ok := c.scene.Get(c.id)
	if !ok {
		return
	}

	switch h {
	case Body:
		origin := Origin(d)
		c.offset = Point{X: p.X - origin.X, Y: p.Y - origin.Y}
		c.preview = origin
		c.state = Dragging
	case ResizeHandle:
		c.state = Resizing
	case RotateHandle:
		c.state = Rotating
	}
}

// PointerMove feeds one movement sample of the current gesture.
func (c *Controller) PointerMove(p Point) {
	switch c.state {
	case Dragging:
		c.preview = c.scene.Bounds().Clamp(Point{X: p.X - c.offset.X, Y: p.Y - c.offset.Y})
	case Resizing:
		d, ok := c.scene.Get(c.id)
		if !ok {
			return
		}
		c.commit(core.Patch{Scale: core.Float(ScaleAt(Origin(d), p))})
	case Rotating:
		d, ok := c.scene.Get(c.id)
		if !ok {
			return
		}
		c.commit(core.Patch{Rotation: core.Float(RotationAt(Origin(d), p))})
	}
}

// PointerUp ends the current gesture. A drag commits its final position once,
// in pixels and, when the canvas size is known, as canvas fractions.
func (c *Controller) PointerUp(p Point) {
	switch c.state {
	case Dragging:
		bounds := c.scene.Bounds()
		pos := bounds.Clamp(Point{X: p.X - c.offset.X, Y: p.Y - c.offset.Y})
		patch := core.Patch{X: core.Float(pos.X), Y: core.Float(pos.Y)}
		// Percent wins over pixels on load, so it has to move with the drag.
		if bounds.Known() {
			patch.PercentX = core.Float(pos.X / bounds.Width)
			patch.PercentY = core.Float(pos.Y / bounds.Height)
		}
		c.commit(patch)
		c.state = Selected
	case Resizing, Rotating:
		c.state = Selected
	}
}

// Flush waits for every commit started so far.
func (c *Controller) Flush() {
	c.inflight.Wait()
}

func (c *Controller) commit(patch core.Patch) {
	c.scene.Apply(c.id, patch)

	prev := c.last
	done := make(chan struct{})
	c.last = done

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer close(done)
		<-prev
		if err := c.committer.Commit(c.ctx, c.id, patch); err != nil {
			logrus.WithError(err).WithField("decoration_id", c.id).Warn("Failed to save decoration change")
			if c.onError != nil {
				c.onError(c.id, err)
			}
		}
	}()
}

// ScaleAt is the scale for a resize handle dragged to p around center.
func ScaleAt(center, p Point) float64 {
	distance := math.Hypot(p.X-center.X, p.Y-center.Y)
	return clamp(distance/ResizeSensitivity, MinScale, MaxScale)
}

// RotationAt is the rotation in degrees for a rotate handle dragged to p
// around center.
func RotationAt(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)*180/math.Pi + RotationOffset
}
