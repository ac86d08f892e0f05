package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"festive-foliage/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	types, err := parseTypes([]string{"ornament", " text "})
	require.NoError(t, err)
	assert.Equal(t, []core.DecorationType{core.TypeOrnament, core.TypeText}, types)

	types, err = parseTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, types)

	_, err = parseTypes([]string{"tinsel"})
	assert.Error(t, err)
}

func TestPrintBlocks(t *testing.T) {
	var buf bytes.Buffer
	printBlocks(&buf, []core.Block{
		{ID: "block-1", IP: "10.0.0.1", BlockedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "block-2", Session: "s-1", Types: []core.DecorationType{core.TypeText, core.TypeImage}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "block-1")
	assert.Contains(t, lines[1], "all")
	assert.Contains(t, lines[1], "2024-12-01T00:00:00Z")
	assert.Contains(t, lines[2], "text,image")
}

func TestDecorationsListCommand(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"ornament-1","type":"ornament","name":"red","scale":1,"rotation":0,"data":{},"ip":"1.2.3.4","session":"s-9"}]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"decorations", "list",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--server", srv.URL,
		"--user", "admin",
		"--pass", "secret",
	})
	require.NoError(t, rootCmd.Execute())

	assert.True(t, strings.HasPrefix(gotAuth, "Basic "))
	assert.Contains(t, out.String(), "ornament-1")
	assert.Contains(t, out.String(), "1.2.3.4")
}
