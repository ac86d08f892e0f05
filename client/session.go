package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionToken returns an anonymous "s-{ms}-{7 chars}" token. It only
// groups creations for moderation and proves nothing about the caller.
func NewSessionToken(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("s-%d-%s", now.UnixMilli(), random[:7])
}

// LoadSession returns the token stored at path, creating and storing a new
// one the first time.
func LoadSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read session file: %w", err)
	}

	token := NewSessionToken(time.Now())
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return "", fmt.Errorf("write session file: %w", err)
	}
	return token, nil
}
