// Package pipeline wires the extraction stages into one linear sequence:
// annotate, extract, fuse, synthesize, generate, validate-or-repair,
// enhance. All state is request-scoped; the static dictionaries are the only
// shared data and are immutable.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/internal/enhance"
	"github.com/snapsell/listing-pipeline/internal/evidence"
	"github.com/snapsell/listing-pipeline/internal/listing"
	"github.com/snapsell/listing-pipeline/internal/llm"
	"github.com/snapsell/listing-pipeline/internal/prompt"
)

// Annotator provides merged OCR/vision evidence for a set of images.
type Annotator interface {
	AnnotateAll(ctx context.Context, images [][]byte) (evidence.Input, error)
}

// Request is one image-analysis request.
type Request struct {
	Images      [][]byte
	KnownFields map[string]string // confirmed fields from a prior pass
}

// Response is the final pipeline output.
type Response struct {
	Record   listing.Record          `json:"listing"`
	Metrics  listing.AccuracyMetrics `json:"accuracyMetrics"`
	Repaired bool                    `json:"repaired"`
	Usage    llm.Usage               `json:"-"`
}

// Pipeline runs the full extraction sequence.
type Pipeline struct {
	annotator Annotator
	generator llm.Generator
}

// New creates a pipeline over the given annotator and generator.
func New(annotator Annotator, generator llm.Generator) *Pipeline {
	return &Pipeline{annotator: annotator, generator: generator}
}

// Analyze runs the pipeline for one request. Only transport failures (the
// annotate or generate call itself failing) return an error; malformed model
// output degrades to the deterministic fallback record.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*Response, error) {
	if len(req.Images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}

	input, err := p.annotator.AnnotateAll(ctx, req.Images)
	if err != nil {
		return nil, fmt.Errorf("vision annotation failed: %w", err)
	}

	candidates := evidence.Extract(input)
	fused := evidence.Fuse(candidates)

	promptText := prompt.Build(prompt.Request{
		Fused:         fused,
		KnownFields:   req.KnownFields,
		Quality:       classifyQuality(input),
		OCRConfidence: input.OCRConfidence,
		OCRText:       input.OCRText,
	})

	result, err := p.generator.Generate(ctx, promptText, req.Images)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	record, repaired := llm.Validate(result.Text, fused)
	if repaired {
		log.Info().Msg("model response repaired into fallback record")
	}

	enhanced := enhance.Enhance(record, input.OCRText, input.OCRConfidence)

	return &Response{
		Record:   enhanced.Record,
		Metrics:  enhanced.Metrics,
		Repaired: repaired,
		Usage:    result.Usage,
	}, nil
}

// classifyQuality derives a coarse image-quality signal from the evidence
// pool: strong OCR with plenty of labels reads as high quality, a sparse
// pool as low.
func classifyQuality(in evidence.Input) prompt.ImageQuality {
	switch {
	case in.OCRConfidence >= 0.7 && len(in.Labels) >= 3:
		return prompt.QualityHigh
	case in.OCRConfidence < 0.3 && len(in.Labels) < 3:
		return prompt.QualityLow
	default:
		return prompt.QualityMedium
	}
}
