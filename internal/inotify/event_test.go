package inotify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_String(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Created, "created"},
		{Deleted, "deleted"},
		{Accessed, "accessed"},
		{WrittenAndClosed, "written and closed"},
		{Modified, "modified"},
		{MovedSelf, "moved"},
		{Ignored, "ignored"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestCategory_Message(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Created, "File created."},
		{Deleted, "File deleted."},
		{Accessed, "File accessed."},
		{WrittenAndClosed, "File written and closed."},
		{Modified, "File modified."},
		{MovedSelf, "File moved."},
		{Ignored, ""},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Message())
		})
	}
}
