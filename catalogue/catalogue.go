// Package catalogue maps decoration names to how they are drawn. Only the
// name is persisted; the drawing is looked up here at render time.
package catalogue

import (
	"strings"

	"festive-foliage/core"
)

// Shape is the drawing routine a visual uses.
type Shape string

const (
	ShapeBauble      Shape = "bauble"
	ShapeStar        Shape = "star"
	ShapeBell        Shape = "bell"
	ShapeOrnament    Shape = "patterned-ornament"
	ShapeCandyCane   Shape = "candy-cane"
	ShapeSnowflake   Shape = "snowflake"
	ShapeGiftBox     Shape = "gift-box"
	ShapeGingerbread Shape = "gingerbread"
	ShapeHolly       Shape = "holly"
	ShapeStocking    Shape = "stocking"
	ShapeWreath      Shape = "wreath"
	ShapeSnowman     Shape = "snowman"
	ShapeAngel       Shape = "angel"
	ShapeRibbon      Shape = "ribbon"
	ShapeCandy       Shape = "candy"
	ShapeGlitter     Shape = "glitter"
	ShapeText        Shape = "text"
	ShapeImage       Shape = "image"
	ShapePlaceholder Shape = "placeholder"
)

// DefaultOrnamentColor is used for ornaments without a catalogue entry or a
// data.color.
const DefaultOrnamentColor = "#C70039"

// Option is one entry of the decoration panel.
type Option struct {
	Type         core.DecorationType
	Name         string
	Shape        Shape
	Color        string
	Pattern      string
	DefaultScale float64
}

// Visual is what the renderer draws for a decoration.
type Visual struct {
	Shape   Shape
	Color   string
	Pattern string
	Text    string
	Src     string
}

var (
	Ornaments = []Option{
		{core.TypeOrnament, "Red Bauble", ShapeBauble, "#E53935", "", 0.9},
		{core.TypeOrnament, "Gold Bauble", ShapeBauble, "#FFD700", "", 0.9},
		{core.TypeOrnament, "Blue Bauble", ShapeBauble, "#1976D2", "", 0.9},
		{core.TypeOrnament, "Green Bauble", ShapeBauble, "#388E3C", "", 0.9},
		{core.TypeOrnament, "Purple Bauble", ShapeBauble, "#7B1FA2", "", 0.9},
		{core.TypeOrnament, "Pink Bauble", ShapeBauble, "#E91E63", "", 0.9},
		{core.TypeOrnament, "Star", ShapeStar, "", "", 0.85},
		{core.TypeOrnament, "Bell", ShapeBell, "", "", 0.8},
		{core.TypeOrnament, "Striped Ornament", ShapeOrnament, "#1976D2", "stripes", 0.85},
		{core.TypeOrnament, "Dotted Ornament", ShapeOrnament, "#7B1FA2", "dots", 0.85},
		{core.TypeOrnament, "Zigzag Ornament", ShapeOrnament, "#00897B", "zigzag", 0.85},
	}

	Stickers = []Option{
		{core.TypeSticker, "Candy Cane", ShapeCandyCane, "", "", 0.85},
		{core.TypeSticker, "Snowflake", ShapeSnowflake, "", "", 0.9},
		{core.TypeSticker, "Gift Box", ShapeGiftBox, "", "", 0.8},
		{core.TypeSticker, "Gingerbread", ShapeGingerbread, "", "", 0.85},
		{core.TypeSticker, "Holly", ShapeHolly, "", "", 0.9},
		{core.TypeSticker, "Stocking", ShapeStocking, "", "", 0.8},
		{core.TypeSticker, "Wreath", ShapeWreath, "", "", 0.8},
		{core.TypeSticker, "Snowman", ShapeSnowman, "", "", 0.75},
		{core.TypeSticker, "Angel", ShapeAngel, "", "", 0.8},
	}

	Extras = []Option{
		{core.TypeExtra, "Red Ribbon", ShapeRibbon, "#E53935", "", 0.85},
		{core.TypeExtra, "Gold Ribbon", ShapeRibbon, "#FFD700", "", 0.85},
		{core.TypeExtra, "Blue Ribbon", ShapeRibbon, "#1976D2", "", 0.85},
		{core.TypeExtra, "Red Candy", ShapeCandy, "#E53935", "", 0.9},
		{core.TypeExtra, "Pink Candy", ShapeCandy, "#E91E63", "", 0.9},
		{core.TypeExtra, "Green Candy", ShapeCandy, "#4CAF50", "", 0.9},
		{core.TypeExtra, "Gold Glitter", ShapeGlitter, "#FFD700", "", 1},
		{core.TypeExtra, "Silver Glitter", ShapeGlitter, "#E0E0E0", "", 1},
		{core.TypeExtra, "Red Glitter", ShapeGlitter, "#F44336", "", 1},
	}
)

var byName = func() map[string]Option {
	m := make(map[string]Option)
	for _, group := range [][]Option{Ornaments, Stickers, Extras} {
		for _, o := range group {
			m[o.Name] = o
		}
	}
	return m
}()

// Lookup returns the catalogue entry called name.
func Lookup(name string) (Option, bool) {
	o, ok := byName[name]
	return o, ok
}

// Visual returns how the option itself is drawn.
func (o Option) Visual() Visual {
	return Visual{Shape: o.Shape, Color: o.Color, Pattern: o.Pattern}
}

// Resolve picks the visual for d: its catalogue entry when the name is
// known, otherwise a default for its type.
func Resolve(d core.Decoration) Visual {
	if o, ok := Lookup(d.Name); ok {
		return o.Visual()
	}

	switch d.Type {
	case core.TypeOrnament:
		color := dataString(d.Data, "color")
		if color == "" {
			color = DefaultOrnamentColor
		}
		return Visual{Shape: ShapeBauble, Color: color}
	case core.TypeText:
		return Visual{Shape: ShapeText, Text: dataString(d.Data, "text")}
	case core.TypeImage:
		return Visual{Shape: ShapeImage, Src: dataString(d.Data, "src")}
	default:
		return Visual{Shape: ShapePlaceholder}
	}
}

// NameTag builds the payload for a text decoration.
func NameTag(text string) (core.NewDecoration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.NewDecoration{}, core.BadRequest("Name is empty")
	}
	return core.NewDecoration{
		Type:     core.TypeText,
		Name:     string(core.TypeText),
		Scale:    core.Float(1),
		Rotation: core.Float(-10),
		Data:     map[string]any{"text": text},
	}, nil
}

// MaxImageBytes caps uploaded photos.
const MaxImageBytes = 2 * 1024 * 1024

// Photo builds the payload for an image decoration from a data URL of an
// image that was size bytes large.
func Photo(src string, size int) (core.NewDecoration, error) {
	if size > MaxImageBytes {
		return core.NewDecoration{}, core.BadRequest("Image too large")
	}
	if src == "" {
		return core.NewDecoration{}, core.BadRequest("Missing image")
	}
	return core.NewDecoration{
		Type:     core.TypeImage,
		Name:     string(core.TypeImage),
		Scale:    core.Float(1),
		Rotation: core.Float(0),
		Data:     map[string]any{"src": src},
	}, nil
}

func dataString(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}
