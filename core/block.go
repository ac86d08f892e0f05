package core

import (
	"context"
	"slices"
	"time"
)

type (
	// Block suppresses decoration creation from an ip or a session,
	// optionally only for some decoration types.
	Block struct {
		ID        string           `json:"id"`
		IP        string           `json:"ip,omitempty"`
		Session   string           `json:"session,omitempty"`
		Reason    string           `json:"reason,omitempty"`
		Types     []DecorationType `json:"types,omitempty"`
		BlockedAt time.Time        `json:"blockedAt"`
	}

	// NewBlock is the payload an admin sends to create a block.
	NewBlock struct {
		IP      string           `json:"ip,omitempty"`
		Session string           `json:"session,omitempty"`
		Reason  string           `json:"reason,omitempty"`
		Types   []DecorationType `json:"types,omitempty"`
	}

	// BlockStore holds moderation blocks.
	BlockStore interface {
		List(ctx context.Context) ([]Block, error)
		Create(ctx context.Context, payload NewBlock) (*Block, error)
		Remove(ctx context.Context, id string) ([]Block, error)

		// Match returns the first block that rejects a creation of type t by attr,
		// or nil when none does.
		Match(ctx context.Context, attr Attribution, t DecorationType) (*Block, error)
	}
)

// Validate requires at least one identity to block.
func (p NewBlock) Validate() error {
	if p.IP == "" && p.Session == "" {
		return BadRequest("Missing ip or session")
	}
	return nil
}

// Matches reports whether b rejects a creation of type t requested by attr.
// An empty Types list blocks every type.
func (b Block) Matches(attr Attribution, t DecorationType) bool {
	ipMatch := b.IP != "" && b.IP == attr.IP
	sessionMatch := b.Session != "" && attr.Session != "" && b.Session == attr.Session
	if !ipMatch && !sessionMatch {
		return false
	}
	if len(b.Types) > 0 {
		return slices.Contains(b.Types, t)
	}
	return true
}
