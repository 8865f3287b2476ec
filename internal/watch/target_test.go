package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoffindustries/rolexhound/internal/errors"
)

func TestNewTarget_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested path", "/a/b/c", "c"},
		{"bare name", "c", "c"},
		{"trailing separator", "/a/b/", "b"},
		{"multiple trailing separators", "/a/b///", "b"},
		{"relative path", "a/b", "b"},
		{"dotfile", "/home/user/.bashrc", ".bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewTarget(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.DisplayName())
			assert.Equal(t, tt.path, target.Path())
		})
	}
}

func TestNewTarget_NoFinalSegment(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"root", "/"},
		{"only separators", "///"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTarget(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrDisplayName)
		})
	}
}
