package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client abstracts text-generation providers.
type Client interface {
	// GenerateContent sends the input to the provider and returns the raw
	// response payload without interpreting its shape.
	GenerateContent(ctx context.Context, input GenerateInput) (json.RawMessage, error)
}

// GenerateInput captures one generation request.
type GenerateInput struct {
	// Contents become one message part each, in order.
	Contents          []string
	SystemInstruction string
	Temperature       float32
	MaxOutputTokens   int
}

// StatusError reports a non-2xx HTTP response from the generation service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Body)
}
