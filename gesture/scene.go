package gesture

import (
	"slices"
	"sync"

	"festive-foliage/core"
)

// DefaultPosition is where a decoration without any stored position is drawn.
var DefaultPosition = Point{X: 150, Y: 200}

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Rect is the size of the canvas the decorations live on.
type Rect struct {
	Width, Height float64
}

// Known reports whether the canvas has been measured.
func (r Rect) Known() bool {
	return r.Width > 0 && r.Height > 0
}

// Clamp moves p inside [0, Width] x [0, Height]. Unknown bounds leave p as is.
func (r Rect) Clamp(p Point) Point {
	if !r.Known() {
		return p
	}
	return Point{X: clamp(p.X, 0, r.Width), Y: clamp(p.Y, 0, r.Height)}
}

// Scene is the client's local copy of the tree. Controllers update it
// optimistically before their commits reach the server.
type Scene struct {
	mu     sync.RWMutex
	items  []core.Decoration
	bounds Rect
}

func NewScene(bounds Rect) *Scene {
	return &Scene{bounds: bounds}
}

func (s *Scene) Bounds() Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// SetBounds records a new canvas size, e.g. after a window resize.
func (s *Scene) SetBounds(bounds Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
}

// Load replaces the scene with decorations fetched from the server and gives
// every one of them a pixel position: percent coordinates win when the
// canvas size is known, stored pixels come next, DefaultPosition last.
func (s *Scene) Load(decorations []core.Decoration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]core.Decoration, 0, len(decorations))
	for _, d := range decorations {
		p := position(d, s.bounds)
		d.X, d.Y = core.Float(p.X), core.Float(p.Y)
		s.items = append(s.items, d)
	}
}

func position(d core.Decoration, bounds Rect) Point {
	if d.PercentX != nil && d.PercentY != nil && bounds.Known() {
		return Point{X: *d.PercentX * bounds.Width, Y: *d.PercentY * bounds.Height}
	}
	if d.X != nil && d.Y != nil {
		return Point{X: *d.X, Y: *d.Y}
	}
	return DefaultPosition
}

// Add appends a decoration the server has just created.
func (s *Scene) Add(d core.Decoration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, d)
}

// Apply merges patch into the local copy of id. It reports false when the
// scene does not hold that decoration.
func (s *Scene) Apply(id string, patch core.Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.items, func(d core.Decoration) bool { return d.ID == id })
	if i < 0 {
		return false
	}
	patch.Apply(&s.items[i])
	return true
}

// Replace swaps the whole list, as returned by an admin removal.
func (s *Scene) Replace(decorations []core.Decoration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(decorations)
}

func (s *Scene) Get(id string) (core.Decoration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.items, func(d core.Decoration) bool { return d.ID == id })
	if i < 0 {
		return core.Decoration{}, false
	}
	return s.items[i], true
}

func (s *Scene) All() []core.Decoration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Origin is the pixel position d is drawn at.
func Origin(d core.Decoration) Point {
	if d.X != nil && d.Y != nil {
		return Point{X: *d.X, Y: *d.Y}
	}
	return DefaultPosition
}
