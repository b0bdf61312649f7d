package ports

import (
	"context"
	"io"
)

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
}

// TextGenerator performs one chat completion and returns the assistant's text.
// Implementations do not retry.
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// TextRecognizer extracts text from a scanned image.
type TextRecognizer interface {
	Recognize(ctx context.Context, image io.Reader) (string, error)
}
