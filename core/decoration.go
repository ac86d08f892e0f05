package core

import (
	"context"
)

// DecorationType is the closed set of things that can be placed on the tree.
type DecorationType string

const (
	TypeOrnament DecorationType = "ornament"
	TypeSticker  DecorationType = "sticker"
	TypeExtra    DecorationType = "extra"
	TypeLight    DecorationType = "light"
	TypeRibbon   DecorationType = "ribbon"
	TypeText     DecorationType = "text"
	TypeImage    DecorationType = "image"
)

var decorationTypes = map[DecorationType]struct{}{
	TypeOrnament: {},
	TypeSticker:  {},
	TypeExtra:    {},
	TypeLight:    {},
	TypeRibbon:   {},
	TypeText:     {},
	TypeImage:    {},
}

// Valid reports whether t is one of the known decoration types.
func (t DecorationType) Valid() bool {
	_, ok := decorationTypes[t]
	return ok
}

type (
	// Decoration is an item placed on the tree. Only position, scale and
	// rotation change after creation.
	Decoration struct {
		ID       string         `json:"id"`
		Type     DecorationType `json:"type"`
		Name     string         `json:"name,omitempty"` // Catalogue key, resolved to a visual by the client.
		X        *float64       `json:"x,omitempty"`
		Y        *float64       `json:"y,omitempty"`
		PercentX *float64       `json:"percentX,omitempty"`
		PercentY *float64       `json:"percentY,omitempty"`
		Scale    float64        `json:"scale"`
		Rotation float64        `json:"rotation"`
		Data     map[string]any `json:"data"`
		IP       string         `json:"ip,omitempty"`
		Session  string         `json:"session,omitempty"`
	}

	// Attribution identifies who asked for a creation. It is used for
	// moderation only and carries no authentication value.
	Attribution struct {
		IP      string
		Session string
	}

	// NewDecoration is the creation payload accepted from clients.
	NewDecoration struct {
		Type     DecorationType `json:"type"`
		Name     string         `json:"name,omitempty"`
		Scale    *float64       `json:"scale,omitempty"`
		Rotation *float64       `json:"rotation,omitempty"`
		Data     map[string]any `json:"data,omitempty"`
		X        *float64       `json:"x,omitempty"`
		Y        *float64       `json:"y,omitempty"`
		PercentX *float64       `json:"percentX,omitempty"`
		PercentY *float64       `json:"percentY,omitempty"`
	}

	// Patch is a partial update of a decoration. Nil fields are left alone.
	Patch struct {
		X        *float64 `json:"x,omitempty"`
		Y        *float64 `json:"y,omitempty"`
		PercentX *float64 `json:"percentX,omitempty"`
		PercentY *float64 `json:"percentY,omitempty"`
		Scale    *float64 `json:"scale,omitempty"`
		Rotation *float64 `json:"rotation,omitempty"`
	}

	// DecorationStore is the authoritative set of placed decorations.
	DecorationStore interface {
		// List returns every decoration in the current snapshot.
		List(ctx context.Context) ([]Decoration, error)

		// Create checks attr against the block list and appends a new decoration.
		Create(ctx context.Context, payload NewDecoration, attr Attribution) (*Decoration, error)

		// Update merges patch into the decoration with the given id.
		Update(ctx context.Context, id string, patch Patch) (*Decoration, error)

		// Remove drops the decoration with the given id, if any, and returns what is left.
		Remove(ctx context.Context, id string) ([]Decoration, error)
	}
)

// Public returns a copy of d without attribution.
func (d Decoration) Public() Decoration {
	d.IP = ""
	d.Session = ""
	return d
}

// Validate checks the creation payload.
func (p NewDecoration) Validate() error {
	if p.Type == "" {
		return BadRequest("Missing type")
	}
	if !p.Type.Valid() {
		return BadRequest("Unknown decoration type " + string(p.Type))
	}
	if p.Scale != nil && *p.Scale <= 0 {
		return BadRequest("Scale must be positive")
	}
	return validatePercent(p.PercentX, p.PercentY)
}

// Validate checks the patch.
func (p Patch) Validate() error {
	if p.Scale != nil && *p.Scale <= 0 {
		return BadRequest("Scale must be positive")
	}
	return validatePercent(p.PercentX, p.PercentY)
}

// validatePercent rejects percent coordinates outside the canvas. They are
// fractions of its width and height.
func validatePercent(values ...*float64) error {
	for _, v := range values {
		if v != nil && (*v < 0 || *v > 1) {
			return BadRequest("Percent coordinates must be between 0 and 1")
		}
	}
	return nil
}

// Apply merges p into d. Percent coordinates are only taken as a pair; when
// they are present any pixel coordinates sent along are stored too. Pixel
// coordinates on their own are only taken as a pair.
func (p Patch) Apply(d *Decoration) {
	switch {
	case p.PercentX != nil && p.PercentY != nil:
		d.PercentX = Float(*p.PercentX)
		d.PercentY = Float(*p.PercentY)
		if p.X != nil {
			d.X = Float(*p.X)
		}
		if p.Y != nil {
			d.Y = Float(*p.Y)
		}
	case p.X != nil && p.Y != nil:
		d.X = Float(*p.X)
		d.Y = Float(*p.Y)
	}

	if p.Scale != nil {
		d.Scale = *p.Scale
	}
	if p.Rotation != nil {
		d.Rotation = *p.Rotation
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
