package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/internal/storage"
)

// CachedGenerator wraps a Generator with SQLite response caching. Identical
// prompt-plus-image requests reuse the stored raw response instead of
// spending tokens again.
type CachedGenerator struct {
	inner Generator
	store storage.ResponseStore
}

// NewCachedGenerator creates a cached generator. A nil store disables
// caching without changing behavior.
func NewCachedGenerator(inner Generator, store storage.ResponseStore) *CachedGenerator {
	return &CachedGenerator{inner: inner, store: store}
}

// hashRequest creates a SHA256 hash over the prompt and all image bytes.
// Each element is length-prefixed to prevent boundary collisions.
func hashRequest(promptText string, images [][]byte) string {
	h := sha256.New()
	binary.Write(h, binary.LittleEndian, int64(len(promptText)))
	h.Write([]byte(promptText))
	for _, img := range images {
		binary.Write(h, binary.LittleEndian, int64(len(img)))
		h.Write(img)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Generate implements Generator with caching.
func (c *CachedGenerator) Generate(ctx context.Context, promptText string, images [][]byte) (*Result, error) {
	hash := hashRequest(promptText, images)

	if c.store != nil {
		cached, err := c.store.GetResponse(hash)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check response cache")
		} else if cached != "" {
			log.Debug().Str("hash", hash[:16]).Msg("response cache hit")
			return &Result{Text: cached}, nil
		}
	}

	result, err := c.inner.Generate(ctx, promptText, images)
	if err != nil {
		return nil, err
	}

	if c.store != nil && result.Text != "" {
		if err := c.store.SetResponse(hash, result.Text); err != nil {
			log.Warn().Err(err).Msg("failed to cache model response")
		} else {
			log.Debug().Str("hash", hash[:16]).Msg("cached model response")
		}
	}

	return result, nil
}
