package inotify

// classifications maps condition flags to categories in priority order.
// A record raising several recognized flags reports only the first match,
// so each record yields at most one notification.
var classifications = []struct {
	flag     uint32
	category Category
}{
	{FlagCreate, Created},
	{FlagDelete, Deleted},
	{FlagAccess, Accessed},
	{FlagCloseWrite, WrittenAndClosed},
	{FlagModify, Modified},
	{FlagMoveSelf, MovedSelf},
}

// Classify maps a record's condition flags to a user-facing category.
// Flags outside the recognized set (watch removal, queue overflow, and the
// like) yield Ignored.
func Classify(mask uint32) Category {
	for _, c := range classifications {
		if mask&c.flag != 0 {
			return c.category
		}
	}
	return Ignored
}
