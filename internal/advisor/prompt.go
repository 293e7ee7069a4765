package advisor

import (
	"fmt"

	"github.com/stylemate/stylemate/internal/style"
)

// BuildPrompt returns the analysis prompt for the given mode. For
// special_event the pending event text is interpolated into the prompt;
// callers must have validated it is non-empty via the session guard.
func BuildPrompt(mode style.Mode, event string) string {
	switch mode {
	case style.ModeProfessional:
		return "Analyze this outfit for a professional business environment and suggest a matching combination. " +
			"Please respond in the following format:\n" +
			"1. Outfit in photo: [detailed description]\n" +
			"2. Suggested business outfit: [professional environment-appropriate combination]\n" +
			"3. Style tips: [business environment suggestions]"
	case style.ModeStudent:
		return "Analyze this outfit for an affordable and stylish look and suggest a budget-friendly combination. " +
			"Please respond in the following format:\n" +
			"1. Outfit in photo: [detailed description]\n" +
			"2. Suggested budget outfit: [affordable alternatives combination]\n" +
			"3. Budget tips: [budget shopping suggestions]"
	case style.ModeFashion:
		return "Analyze this outfit according to the latest trends and suggest a modern combination. " +
			"Please respond in the following format:\n" +
			"1. Outfit in photo: [detailed description]\n" +
			"2. Trend outfit suggestion: [current fashion trends combination]\n" +
			"3. Season trends: [current season trend tips]"
	case style.ModeSpecialEvent:
		return fmt.Sprintf(
			"Analyze this outfit for %s and suggest a matching combination. "+
				"Please respond in the following format:\n"+
				"1. Outfit in photo: [detailed description]\n"+
				"2. Suggested event outfit: [event-appropriate combination]\n"+
				"3. Event style tips: [special occasion suggestions]\n"+
				"4. Accessory suggestions: [event-appropriate accessories]",
			event,
		)
	}
	return ""
}
