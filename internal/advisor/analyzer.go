package advisor

import "context"

// Analyzer is the vision-analysis boundary.
// Implemented by Gemini (production) and test fakes.
type Analyzer interface {
	// Analyze submits a prepared JPEG image with a mode-specific prompt
	// and returns the suggestion text.
	Analyze(ctx context.Context, image []byte, prompt string) (string, error)
}
