package aws

import (
	"testing"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix  string
		name    string
		want    string
		wantErr bool
	}{
		{"", "decorations.json", "decorations.json", false},
		{"tree", "blocks.json", "tree/blocks.json", false},
		{"tree/", "blocks.json", "tree/blocks.json", false},
		{"tree", "../blocks.json", "", true},
		{"", "a/b.json", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		s := NewStoreWithClient(nil, "bucket", tt.prefix)
		got, err := s.objectKey(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("objectKey(%q, %q) error = %v, wantErr %v", tt.prefix, tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("objectKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}
