package gesture

import (
	"math"

	"festive-foliage/catalogue"
	"festive-foliage/core"
)

// CreatePayload builds the creation request for a catalogue option dropped
// at p. Percent coordinates, as fractions of the canvas, are sent along when
// the canvas size is known.
func CreatePayload(option catalogue.Option, p Point, bounds Rect) core.NewDecoration {
	payload := core.NewDecoration{
		Type:     option.Type,
		Name:     option.Name,
		Scale:    core.Float(option.DefaultScale),
		Rotation: core.Float(0),
		Data:     map[string]any{},
		X:        core.Float(p.X),
		Y:        core.Float(p.Y),
	}
	if bounds.Known() {
		payload.PercentX = core.Float(p.X / bounds.Width)
		payload.PercentY = core.Float(p.Y / bounds.Height)
	}
	return payload
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
