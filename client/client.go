// Package client talks to the tree server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"festive-foliage/core"
	"festive-foliage/gesture"
	"festive-foliage/moderation"
)

var (
	_ moderation.API    = (*Client)(nil)
	_ gesture.Committer = (*Client)(nil)
)

// Client calls the decorations and blocks API of one server.
type Client struct {
	BaseURL string
	Session string

	HTTPClient *http.Client
}

// New returns a client for the server at baseURL that attributes its
// creations to session.
func New(baseURL, session string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Session: session,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type (
	updateRequest struct {
		ID string `json:"id"`
		core.Patch
	}

	idRequest struct {
		ID string `json:"id,omitempty"`
	}

	removeDecorationResponse struct {
		Success     bool              `json:"success"`
		Decorations []core.Decoration `json:"decorations"`
	}

	removeBlockResponse struct {
		Success bool         `json:"success"`
		Blocks  []core.Block `json:"blocks"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

// List fetches every decoration. With a credential the server includes
// attribution.
func (c *Client) List(ctx context.Context, cred *moderation.Credential) ([]core.Decoration, error) {
	var out []core.Decoration
	err := c.do(ctx, http.MethodGet, "/api/decorations", nil, cred, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, payload core.NewDecoration) (*core.Decoration, error) {
	var out core.Decoration
	if err := c.do(ctx, http.MethodPost, "/api/decorations", payload, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, patch core.Patch) (*core.Decoration, error) {
	var out core.Decoration
	if err := c.do(ctx, http.MethodPatch, "/api/decorations", updateRequest{ID: id, Patch: patch}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Commit sends a gesture patch and discards the answer.
func (c *Client) Commit(ctx context.Context, id string, patch core.Patch) error {
	_, err := c.Update(ctx, id, patch)
	return err
}

func (c *Client) Remove(ctx context.Context, cred moderation.Credential, id string) ([]core.Decoration, error) {
	var out removeDecorationResponse
	if err := c.do(ctx, http.MethodDelete, "/api/decorations", idRequest{ID: id}, &cred, &out); err != nil {
		return nil, err
	}
	return out.Decorations, nil
}

// Probe sends a removal without an id. A valid credential gets a 400 back,
// an invalid one a 401; nothing is removed either way.
func (c *Client) Probe(ctx context.Context, cred moderation.Credential) error {
	return c.do(ctx, http.MethodDelete, "/api/decorations", idRequest{}, &cred, nil)
}

func (c *Client) Blocks(ctx context.Context, cred *moderation.Credential) ([]core.Block, error) {
	var out []core.Block
	err := c.do(ctx, http.MethodGet, "/api/blocks", nil, cred, &out)
	return out, err
}

func (c *Client) Block(ctx context.Context, cred moderation.Credential, payload core.NewBlock) (*core.Block, error) {
	var out core.Block
	if err := c.do(ctx, http.MethodPost, "/api/blocks", payload, &cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Unblock(ctx context.Context, cred moderation.Credential, id string) ([]core.Block, error) {
	var out removeBlockResponse
	if err := c.do(ctx, http.MethodDelete, "/api/blocks", idRequest{ID: id}, &cred, &out); err != nil {
		return nil, err
	}
	return out.Blocks, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, cred *moderation.Credential, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session != "" {
		req.Header.Set("X-Session-Id", c.Session)
	}
	if cred != nil {
		req.Header.Set("Authorization", cred.Header())
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error response back onto the core error taxonomy.
func statusError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return core.BadRequest(body.Error)
	case http.StatusUnauthorized:
		return core.ErrUnauthorized
	case http.StatusForbidden:
		return core.ErrBlocked
	case http.StatusNotFound:
		return core.ErrNotFound
	}
	if body.Error == "Server not configured" {
		return core.ErrServerMisconfigured
	}
	return fmt.Errorf("%w: server answered %d %s", core.ErrStorage, resp.StatusCode, body.Error)
}
