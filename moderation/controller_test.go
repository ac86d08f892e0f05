package moderation

import (
	"context"
	"errors"
	"testing"

	"festive-foliage/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	probeErr error
	blocked  []core.NewBlock
	removed  []string
	creds    []Credential
}

func (f *fakeAPI) Probe(ctx context.Context, cred Credential) error {
	f.creds = append(f.creds, cred)
	return f.probeErr
}

func (f *fakeAPI) List(ctx context.Context, cred *Credential) ([]core.Decoration, error) {
	return []core.Decoration{{ID: "ornament-1", IP: "1.2.3.4"}}, nil
}

func (f *fakeAPI) Remove(ctx context.Context, cred Credential, id string) ([]core.Decoration, error) {
	f.creds = append(f.creds, cred)
	f.removed = append(f.removed, id)
	return []core.Decoration{}, nil
}

func (f *fakeAPI) Blocks(ctx context.Context, cred *Credential) ([]core.Block, error) {
	return nil, nil
}

func (f *fakeAPI) Block(ctx context.Context, cred Credential, payload core.NewBlock) (*core.Block, error) {
	f.creds = append(f.creds, cred)
	f.blocked = append(f.blocked, payload)
	return &core.Block{ID: "block-1", IP: payload.IP, Session: payload.Session, Types: payload.Types}, nil
}

func (f *fakeAPI) Unblock(ctx context.Context, cred Credential, id string) ([]core.Block, error) {
	return []core.Block{}, nil
}

var admin = Credential{User: "santa", Pass: "secret"}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		probeErr error
		wantErr  error
	}{
		{"accepted with bad request", core.BadRequest("Missing id"), nil},
		{"accepted", nil, nil},
		{"rejected", core.ErrUnauthorized, core.ErrUnauthorized},
		{"misconfigured", core.ErrServerMisconfigured, core.ErrServerMisconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{probeErr: tt.probeErr}
			err := NewController(api, admin).Login(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, []Credential{admin}, api.creds)
		})
	}
}

func TestBlockInput(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, admin)
	ctx := context.Background()

	_, err := c.BlockInput(ctx, " 192.168.1.20 ", "spam", nil)
	require.NoError(t, err)
	_, err = c.BlockInput(ctx, "s-1700000000000-abc1234", "", []core.DecorationType{core.TypeImage})
	require.NoError(t, err)
	_, err = c.BlockInput(ctx, "1.2.3", "", nil)
	require.NoError(t, err)

	require.Len(t, api.blocked, 3)
	assert.Equal(t, core.NewBlock{IP: "192.168.1.20", Reason: "spam"}, api.blocked[0])
	assert.Equal(t, "s-1700000000000-abc1234", api.blocked[1].Session)
	assert.Equal(t, []core.DecorationType{core.TypeImage}, api.blocked[1].Types)
	assert.Equal(t, "1.2.3", api.blocked[2].Session)
	assert.Empty(t, api.blocked[2].IP)

	_, err = c.BlockInput(ctx, "   ", "", nil)
	assert.True(t, errors.Is(err, core.ErrBadRequest))
}

func TestBlockAuthor(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, admin)
	ctx := context.Background()
	d := core.Decoration{ID: "image-1", IP: "5.6.7.8", Session: "s-1-abcdefg"}

	_, err := c.BlockAuthor(ctx, d, true, nil)
	require.NoError(t, err)
	_, err = c.BlockAuthor(ctx, d, false, []core.DecorationType{core.TypeImage})
	require.NoError(t, err)

	require.Len(t, api.blocked, 2)
	assert.Equal(t, "5.6.7.8", api.blocked[0].IP)
	assert.Empty(t, api.blocked[0].Session)
	assert.Equal(t, "s-1-abcdefg", api.blocked[1].Session)
	assert.Equal(t, []core.DecorationType{core.TypeImage}, api.blocked[1].Types)

	_, err = c.BlockAuthor(ctx, core.Decoration{ID: "x-1", IP: "unknown"}, true, nil)
	assert.ErrorIs(t, err, core.ErrBadRequest)
	_, err = c.BlockAuthor(ctx, core.Decoration{ID: "x-1"}, false, nil)
	assert.ErrorIs(t, err, core.ErrBadRequest)
}

func TestRemoveUsesCredential(t *testing.T) {
	api := &fakeAPI{}
	_, err := NewController(api, admin).Remove(context.Background(), "ornament-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ornament-1"}, api.removed)
	assert.Equal(t, []Credential{admin}, api.creds)
}

func TestInspect(t *testing.T) {
	c := NewController(&fakeAPI{}, admin)

	full := c.Inspect(core.Decoration{ID: "a", IP: "1.2.3.4", Session: "s-1"})
	assert.Equal(t, []Action{ActionRemove, ActionBlockIP, ActionBlockIPType, ActionBlockSession, ActionBlockSessionType}, full.Actions)

	anon := c.Inspect(core.Decoration{ID: "b", IP: "unknown"})
	assert.Equal(t, []Action{ActionRemove}, anon.Actions)
}
