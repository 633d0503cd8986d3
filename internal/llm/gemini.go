package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

const geminiModel = "gemini-3-flash-preview"

// Gemini pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.50
	geminiOutputPricePerMillion = 3.00
)

const maxImages = 10

// Retry policy for rate-limit and transient availability errors.
const (
	retryBaseDelay   = 1 * time.Second
	retryMaxAttempts = 4
)

// GeminiGenerator calls Google's Gemini API for listing extraction.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Gemini-backed generator. It uses the
// GEMINI_API_KEY environment variable for authentication.
func NewGeminiGenerator(ctx context.Context) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate implements Generator. Rate-limit responses are retried with
// bounded exponential backoff; other failures surface immediately.
func (g *GeminiGenerator) Generate(ctx context.Context, promptText string, images [][]byte) (*Result, error) {
	if len(images) > maxImages {
		images = images[:maxImages]
	}

	parts := []*genai.Part{genai.NewPartFromText(promptText)}
	for _, imgData := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: imgData, MIMEType: "image/jpeg"},
		})
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	var result *genai.GenerateContentResponse
	backoff := retry.WithMaxRetries(retryMaxAttempts, retry.NewExponential(retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		result, err = g.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
		if err != nil {
			if isRetryable(err) {
				log.Warn().Err(err).Msg("gemini rate limited, backing off")
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	usage := Usage{}
	if result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = calculateGeminiCost(usage.InputTokens, usage.OutputTokens)
	}

	log.Info().
		Str("model", geminiModel).
		Int("imageCount", len(images)).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("listing extraction llm call")

	return &Result{Text: result.Text(), Usage: usage}, nil
}

// isRetryable reports whether err looks like a rate-limit or transient
// availability failure worth backing off for.
func isRetryable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "UNAVAILABLE")
}

func calculateGeminiCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}
