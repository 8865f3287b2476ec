package watch

import (
	"fmt"
	"strings"

	"github.com/hoffindustries/rolexhound/internal/errors"
)

// Target is the single filesystem path under observation. It is immutable
// once the session starts; the display name is derived exactly once.
type Target struct {
	path        string
	displayName string
}

// NewTarget validates a watch path and derives its display name, the final
// path segment used as the title of every notification. Trailing separators
// are insignificant. A path with no deriveable final segment (empty, or the
// filesystem root) is rejected.
func NewTarget(path string) (Target, error) {
	name := displayName(path)
	if name == "" {
		return Target{}, errors.DisplayName(fmt.Sprintf("watch path %q has no final segment", path))
	}
	return Target{path: path, displayName: name}, nil
}

// Path returns the watched filesystem path.
func (t Target) Path() string {
	return t.path
}

// DisplayName returns the final segment of the watched path.
func (t Target) DisplayName() string {
	return t.displayName
}

// displayName returns the substring after the last path separator, ignoring
// trailing separators. It returns the whole path when no separator is
// present and the empty string when nothing remains.
func displayName(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
