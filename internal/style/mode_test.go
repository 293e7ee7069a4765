package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		mode Mode
		ok   bool
	}{
		{"professional", ModeProfessional, true},
		{"student", ModeStudent, true},
		{"fashion", ModeFashion, true},
		{"special_event", ModeSpecialEvent, true},
		{"general", ModeNone, false},
		{"", ModeNone, false},
		{"PROFESSIONAL", ModeNone, false},
	}
	for _, tt := range tests {
		mode, ok := ParseMode(tt.in)
		assert.Equal(t, tt.mode, mode, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestSelectable(t *testing.T) {
	assert.True(t, ModeProfessional.Selectable())
	assert.True(t, ModeSpecialEvent.Selectable())
	assert.False(t, ModeNone.Selectable())
	assert.False(t, ModeGeneral.Selectable())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Professional", ModeProfessional.Title())
	assert.Equal(t, "Special Event", ModeSpecialEvent.Title())
	assert.Equal(t, "General", ModeGeneral.Title())
	assert.Equal(t, "None", ModeNone.Title())
}
