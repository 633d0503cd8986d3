// Package vision is the boundary client for the external OCR/vision
// annotation service. It returns raw text and labeled entities; recognition
// itself happens on the service side.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/snapsell/listing-pipeline/internal/evidence"
)

// Annotation is the per-image annotate response shape.
type Annotation struct {
	OCRText       string      `json:"ocrText"`
	Labels        []LabelInfo `json:"labels"`
	WebEntities   []WebEntity `json:"webEntities"`
	Objects       []ObjectRef `json:"objects"`
	OCRConfidence float64     `json:"ocrConfidence"`
}

// LabelInfo is one vision label with its relevance score.
type LabelInfo struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// WebEntity is one recognized web entity.
type WebEntity struct {
	Description string `json:"description"`
}

// ObjectRef is one localized object.
type ObjectRef struct {
	Name string `json:"name"`
}

// ClientOpts configures the annotate client.
type ClientOpts struct {
	BaseURL string
	APIKey  string
}

// Client calls the annotate endpoint over HTTP.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates an annotate client for the given service.
func NewClient(opts ClientOpts) *Client {
	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json")
	if opts.APIKey != "" {
		c.SetHeader("Authorization", "Bearer "+opts.APIKey)
	}
	return &Client{httpClient: c}
}

// Annotate submits one image and returns its annotation.
func (c *Client) Annotate(ctx context.Context, image []byte) (*Annotation, error) {
	result := &Annotation{}
	resp, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(image).
		SetResult(result).
		Post("/v1/annotate")
	if err != nil {
		return nil, fmt.Errorf("annotate request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("annotate request failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	return result, nil
}

// AnnotateAll annotates every image concurrently, fire-and-settle: a failed
// image is logged and dropped from the evidence pool. It errors when the
// context ends, or when every single image fails, since then there is no
// evidence at all.
func (c *Client) AnnotateAll(ctx context.Context, images [][]byte) (evidence.Input, error) {
	results := make([]*Annotation, len(images))
	var mu sync.Mutex
	failed := 0

	g, ctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			ann, err := c.Annotate(ctx, img)
			if err != nil {
				// A cancelled or expired context is not a per-image failure;
				// propagate it so the caller sees the real cause.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.Warn().Err(err).Int("image", i).Msg("image annotation failed, dropping from evidence pool")
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			results[i] = ann
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return evidence.Input{}, err
	}

	if failed == len(images) && len(images) > 0 {
		return evidence.Input{}, fmt.Errorf("all %d image annotations failed", len(images))
	}

	return mergeAnnotations(results), nil
}

// mergeAnnotations combines per-image annotations into one evidence input.
// OCR confidence is averaged over the images that produced any text.
func mergeAnnotations(anns []*Annotation) evidence.Input {
	var in evidence.Input
	var ocrParts []string
	var confSum float64
	var confCount int

	for _, ann := range anns {
		if ann == nil {
			continue
		}
		if strings.TrimSpace(ann.OCRText) != "" {
			ocrParts = append(ocrParts, ann.OCRText)
			confSum += ann.OCRConfidence
			confCount++
		}
		for _, l := range ann.Labels {
			in.Labels = append(in.Labels, evidence.Label{
				Description: l.Description,
				Score:       l.Score,
			})
		}
		for _, e := range ann.WebEntities {
			in.WebEntities = append(in.WebEntities, e.Description)
		}
		for _, o := range ann.Objects {
			in.Objects = append(in.Objects, o.Name)
		}
	}

	in.OCRText = strings.Join(ocrParts, "\n")
	if confCount > 0 {
		in.OCRConfidence = confSum / float64(confCount)
	}
	return in
}
