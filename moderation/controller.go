// Package moderation holds the admin side of the tree: credential checks and
// the remove, block and unblock commands.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
)

var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// API is the server surface the controller drives.
type API interface {
	// Probe checks the credential against an admin route without side effects.
	Probe(ctx context.Context, cred Credential) error
	List(ctx context.Context, cred *Credential) ([]core.Decoration, error)
	Remove(ctx context.Context, cred Credential, id string) ([]core.Decoration, error)
	Blocks(ctx context.Context, cred *Credential) ([]core.Block, error)
	Block(ctx context.Context, cred Credential, payload core.NewBlock) (*core.Block, error)
	Unblock(ctx context.Context, cred Credential, id string) ([]core.Block, error)
}

// Action is something an admin can do from an inspect view.
type Action string

const (
	ActionRemove           Action = "remove"
	ActionBlockIP          Action = "block-ip"
	ActionBlockSession     Action = "block-session"
	ActionBlockIPType      Action = "block-ip-type"
	ActionBlockSessionType Action = "block-session-type"
)

// Inspection summarises a decoration for an admin.
type Inspection struct {
	Decoration core.Decoration
	Actions    []Action
}

// Controller issues moderation commands with a single admin credential. It
// keeps no state besides that credential.
type Controller struct {
	api  API
	cred Credential
}

func NewController(api API, cred Credential) *Controller {
	return &Controller{api: api, cred: cred}
}

// Login checks the credential. Any answer other than Unauthorized counts as
// accepted.
func (c *Controller) Login(ctx context.Context) error {
	err := c.api.Probe(ctx, c.cred)
	if errors.Is(err, core.ErrUnauthorized) {
		return err
	}
	if err != nil && !errors.Is(err, core.ErrBadRequest) {
		return err
	}
	logrus.WithField("user", c.cred.User).Debug("Admin credential accepted")
	return nil
}

// Decorations lists decorations with attribution.
func (c *Controller) Decorations(ctx context.Context) ([]core.Decoration, error) {
	return c.api.List(ctx, &c.cred)
}

func (c *Controller) Remove(ctx context.Context, id string) ([]core.Decoration, error) {
	return c.api.Remove(ctx, c.cred, id)
}

func (c *Controller) Blocks(ctx context.Context) ([]core.Block, error) {
	return c.api.Blocks(ctx, &c.cred)
}

func (c *Controller) Block(ctx context.Context, payload core.NewBlock) (*core.Block, error) {
	return c.api.Block(ctx, c.cred, payload)
}

func (c *Controller) Unblock(ctx context.Context, id string) ([]core.Block, error) {
	return c.api.Unblock(ctx, c.cred, id)
}

// BlockInput blocks a manually typed identity: a dotted-quad is taken as an
// ip, anything else as a session token.
func (c *Controller) BlockInput(ctx context.Context, input, reason string, types []core.DecorationType) (*core.Block, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, core.BadRequest("Missing ip or session")
	}
	payload := core.NewBlock{Reason: reason, Types: types}
	if ipv4Pattern.MatchString(input) {
		payload.IP = input
	} else {
		payload.Session = input
	}
	return c.Block(ctx, payload)
}

// BlockAuthor blocks whoever created d, by ip or by session. A non-empty
// types list restricts the block to those decoration types.
func (c *Controller) BlockAuthor(ctx context.Context, d core.Decoration, byIP bool, types []core.DecorationType) (*core.Block, error) {
	payload := core.NewBlock{Types: types}
	if byIP {
		if d.IP == "" || d.IP == "unknown" {
			return nil, core.BadRequest("Decoration has no ip")
		}
		payload.IP = d.IP
		payload.Reason = fmt.Sprintf("Blocked from %s by ip", d.ID)
	} else {
		if d.Session == "" {
			return nil, core.BadRequest("Decoration has no session")
		}
		payload.Session = d.Session
		payload.Reason = fmt.Sprintf("Blocked from %s by session", d.ID)
	}
	return c.Block(ctx, payload)
}

// Inspect lists what an admin can do with d.
func (c *Controller) Inspect(d core.Decoration) Inspection {
	actions := []Action{ActionRemove}
	if d.IP != "" && d.IP != "unknown" {
		actions = append(actions, ActionBlockIP, ActionBlockIPType)
	}
	if d.Session != "" {
		actions = append(actions, ActionBlockSession, ActionBlockSessionType)
	}
	return Inspection{Decoration: d, Actions: actions}
}
