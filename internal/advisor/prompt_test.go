package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylemate/stylemate/internal/style"
)

func TestBuildPrompt_PerMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     style.Mode
		event    string
		contains string
	}{
		{"professional", style.ModeProfessional, "", "professional business environment"},
		{"student", style.ModeStudent, "", "budget-friendly combination"},
		{"fashion", style.ModeFashion, "", "latest trends"},
		{"special event", style.ModeSpecialEvent, "wedding", "Analyze this outfit for wedding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(tt.mode, tt.event)
			assert.Contains(t, prompt, tt.contains)
			assert.Contains(t, prompt, "Outfit in photo", "all prompts share the response format")
		})
	}
}

func TestBuildPrompt_SpecialEventHasAccessorySection(t *testing.T) {
	prompt := BuildPrompt(style.ModeSpecialEvent, "graduation")
	assert.Contains(t, prompt, "Accessory suggestions")
}

func TestBuildPrompt_NoneIsEmpty(t *testing.T) {
	assert.Empty(t, BuildPrompt(style.ModeNone, ""))
	assert.Empty(t, BuildPrompt(style.ModeGeneral, ""))
}
