// Package document persists the decoration and block collections as whole
// JSON documents, one write queue per document.
package document

import (
	"festive-foliage/core"
)

const (
	DecorationsDocument = "decorations.json"
	BlocksDocument      = "blocks.json"
)

// Gateway owns the two documents of the application. Build it once at
// start-up and hand its collections to the stores.
type Gateway struct {
	decorations *Collection[core.Decoration]
	blocks      *Collection[core.Block]
}

// NewGateway creates the decoration and block collections on medium.
func NewGateway(medium core.Medium) *Gateway {
	return &Gateway{
		decorations: NewCollection[core.Decoration](DecorationsDocument, medium),
		blocks:      NewCollection[core.Block](BlocksDocument, medium),
	}
}

func (g *Gateway) Decorations() *Collection[core.Decoration] {
	return g.decorations
}

func (g *Gateway) Blocks() *Collection[core.Block] {
	return g.blocks
}
