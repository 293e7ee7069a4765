package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylemate/stylemate/internal/style"
)

func TestParseAction_KnownPayloads(t *testing.T) {
	for name, want := range actionNames {
		assert.Equal(t, want, ParseAction(name), "payload %q", name)
	}
}

func TestParseAction_UnknownPayload(t *testing.T) {
	assert.Equal(t, ActionUnknown, ParseAction("definitely_not_a_button"))
	assert.Equal(t, ActionUnknown, ParseAction(""))
}

func TestActionString_RoundTrips(t *testing.T) {
	for name, action := range actionNames {
		assert.Equal(t, name, action.String())
		assert.Equal(t, action, ParseAction(action.String()))
	}
	assert.Equal(t, "", ActionUnknown.String())
}

func TestActionMode(t *testing.T) {
	tests := []struct {
		action Action
		mode   style.Mode
		ok     bool
	}{
		{ActionSelectProfessional, style.ModeProfessional, true},
		{ActionSelectStudent, style.ModeStudent, true},
		{ActionSelectFashion, style.ModeFashion, true},
		{ActionSelectSpecialEvent, style.ModeSpecialEvent, true},
		{ActionQuickSave, style.ModeNone, false},
		{ActionUnknown, style.ModeNone, false},
	}
	for _, tt := range tests {
		mode, ok := tt.action.Mode()
		assert.Equal(t, tt.mode, mode)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestModeKeyboard_PayloadsParse(t *testing.T) {
	for _, row := range modeKeyboard().InlineKeyboard {
		for _, button := range row {
			action := ParseAction(button.CallbackData)
			assert.NotEqual(t, ActionUnknown, action, "button %q", button.Text)
			_, ok := action.Mode()
			assert.True(t, ok, "button %q should select a mode", button.Text)
		}
	}
}
