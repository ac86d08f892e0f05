package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	cred := Credential{User: "santa", Pass: "h0h0:h0"}

	got, ok := ParseBasic(cred.Header())
	require.True(t, ok)
	assert.Equal(t, cred, got)

	_, ok = ParseBasic("Bearer abc")
	assert.False(t, ok)
	_, ok = ParseBasic("Basic !!!")
	assert.False(t, ok)
	_, ok = ParseBasic("")
	assert.False(t, ok)
	_, ok = ParseBasic("Basic bm9jb2xvbg==") // "nocolon"
	assert.False(t, ok)
}

func TestStaticAuthorizer(t *testing.T) {
	auth := NewStaticAuthorizer("santa", "secret")
	assert.True(t, auth.Configured())
	assert.True(t, auth.Authorize(Credential{User: "santa", Pass: "secret"}))
	assert.False(t, auth.Authorize(Credential{User: "santa", Pass: "wrong"}))
	assert.False(t, auth.Authorize(Credential{User: "elf", Pass: "secret"}))
}

func TestStaticAuthorizer_Unconfigured(t *testing.T) {
	auth := NewStaticAuthorizer("", "")
	assert.False(t, auth.Configured())
	assert.False(t, auth.Authorize(Credential{}))

	auth = NewStaticAuthorizer("santa", "")
	assert.False(t, auth.Configured())
}
