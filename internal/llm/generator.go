// Package llm calls the generative text-and-vision model and turns its raw
// response into a guaranteed-well-formed listing record.
package llm

import "context"

// Usage contains token usage and cost information for one model call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// Result is the raw model output plus usage accounting.
type Result struct {
	Text  string
	Usage Usage
}

// Generator produces raw listing text from a prompt and attached images.
type Generator interface {
	// Generate sends the prompt with the images and returns the raw
	// response text. Errors are transport-level only; response content is
	// never validated here.
	Generate(ctx context.Context, prompt string, images [][]byte) (*Result, error)
}
