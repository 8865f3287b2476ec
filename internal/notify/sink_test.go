package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		input string
		want  byte
	}{
		{"low", UrgencyLow},
		{"normal", UrgencyNormal},
		{"critical", UrgencyCritical},
		{"CRITICAL", UrgencyCritical},
		{"", UrgencyCritical},
		{"bogus", UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUrgency(tt.input))
		})
	}
}
