// Package inotify decodes raw kernel notification buffers into discrete
// event records and classifies them into user-facing categories.
package inotify

// Condition flags as raised in a record's mask. Values match the Linux
// inotify constants, so kernel records pass through unchanged and the
// fallback backend can synthesize compatible masks on other platforms.
const (
	FlagAccess     uint32 = 0x00000001
	FlagModify     uint32 = 0x00000002
	FlagCloseWrite uint32 = 0x00000008
	FlagCreate     uint32 = 0x00000100
	FlagDelete     uint32 = 0x00000200
	FlagMoveSelf   uint32 = 0x00000800
)

// WatchMask is the full set of conditions a watch subscribes to.
const WatchMask = FlagCreate | FlagDelete | FlagAccess | FlagCloseWrite | FlagModify | FlagMoveSelf

// Record is one decoded event from a raw notification buffer.
type Record struct {
	// Name is the optional entry name, empty when watching a single file.
	Name string

	// WD is the watch descriptor the event belongs to.
	WD int32

	// Mask is the set of condition flags raised for this event.
	Mask uint32

	// Cookie correlates related rename events.
	Cookie uint32
}

// Category is the user-facing classification of a record.
type Category int

const (
	// Ignored marks records whose flags are outside the recognized set.
	Ignored Category = iota
	// Created is reported for entry creation.
	Created
	// Deleted is reported for entry deletion.
	Deleted
	// Accessed is reported for reads.
	Accessed
	// WrittenAndClosed is reported when a file open for writing is closed.
	WrittenAndClosed
	// Modified is reported for content changes.
	Modified
	// MovedSelf is reported when the watched path itself is moved.
	MovedSelf
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Accessed:
		return "accessed"
	case WrittenAndClosed:
		return "written and closed"
	case Modified:
		return "modified"
	case MovedSelf:
		return "moved"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Message returns the notification body shown to the user for this category.
func (c Category) Message() string {
	switch c {
	case Created:
		return "File created."
	case Deleted:
		return "File deleted."
	case Accessed:
		return "File accessed."
	case WrittenAndClosed:
		return "File written and closed."
	case Modified:
		return "File modified."
	case MovedSelf:
		return "File moved."
	default:
		return ""
	}
}
