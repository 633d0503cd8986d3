package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsell/listing-pipeline/internal/evidence"
	"github.com/snapsell/listing-pipeline/internal/listing"
)

const validResponse = `{
	"title": "Levi's 501 Jeans",
	"item_type": "Jeans",
	"category": "bottoms",
	"condition": "good",
	"brand": "Levi's",
	"size": "32x34",
	"confidence": 0.85
}`

func TestValidateAcceptsWellFormedResponse(t *testing.T) {
	rec, repaired := Validate(validResponse, nil)
	assert.False(t, repaired)
	assert.Equal(t, "Levi's 501 Jeans", rec.Title)
	assert.Equal(t, "bottoms", rec.Category)
	assert.Equal(t, 0.85, rec.Confidence)
}

func TestValidateStripsCodeFences(t *testing.T) {
	tests := map[string]string{
		"json fence":    "```json\n" + validResponse + "\n```",
		"bare fence":    "```\n" + validResponse + "\n```",
		"leading space": "  \n" + validResponse,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			rec, repaired := Validate(raw, nil)
			assert.False(t, repaired)
			assert.Equal(t, "Levi's 501 Jeans", rec.Title)
		})
	}
}

func TestValidateExtractsEmbeddedObject(t *testing.T) {
	raw := "Here is the listing you asked for:\n" + validResponse + "\nHope that helps!"
	rec, repaired := Validate(raw, nil)
	assert.False(t, repaired)
	assert.Equal(t, "Jeans", rec.ItemType)
}

func TestValidateRepairsToFallback(t *testing.T) {
	tests := map[string]string{
		"not json at all":      "Sorry, I cannot identify this item.",
		"truncated json":       `{"title": "Levi`,
		"missing title":        `{"item_type": "Jeans", "category": "bottoms", "condition": "good"}`,
		"missing item type":    `{"title": "Jeans", "category": "bottoms", "condition": "good"}`,
		"bad category enum":    `{"title": "Jeans", "item_type": "Jeans", "category": "denim", "condition": "good"}`,
		"bad condition enum":   `{"title": "Jeans", "item_type": "Jeans", "category": "bottoms", "condition": "excellent"}`,
		"wrong type for title": `{"title": 42, "item_type": "Jeans", "category": "bottoms", "condition": "good"}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			rec, repaired := Validate(raw, nil)
			assert.True(t, repaired)
			assert.True(t, listing.ValidCategory(rec.Category))
			assert.True(t, listing.ValidCondition(rec.Condition))
			assert.NotEmpty(t, rec.Title)
			assert.Contains(t, rec.Features, "requires manual review")
			assert.Equal(t, 0.3, rec.Confidence)
		})
	}
}

func TestValidateFallbackUsesFusedCandidates(t *testing.T) {
	fused := evidence.Set{
		evidence.AttrBrand:     {Attribute: evidence.AttrBrand, Value: "Levi's", Confidence: 0.9, Source: evidence.SourceOCRText},
		evidence.AttrSize:      {Attribute: evidence.AttrSize, Value: "32x34", Confidence: 0.8, Source: evidence.SourceOCRText},
		evidence.AttrCategory:  {Attribute: evidence.AttrCategory, Value: "bottoms", Confidence: 0.7, Source: evidence.SourceOCRText},
		evidence.AttrCondition: {Attribute: evidence.AttrCondition, Value: "fair", Confidence: 0.6, Source: evidence.SourceOCRText},
	}

	rec, repaired := Validate("garbage", fused)
	assert.True(t, repaired)
	assert.Equal(t, "Levi's Item", rec.Title)
	assert.Equal(t, "Levi's", rec.Brand)
	assert.Equal(t, "32x34", rec.Size)
	assert.Equal(t, "bottoms", rec.Category)
	assert.Equal(t, "fair", rec.Condition)
}

func TestValidateFallbackWithoutEvidence(t *testing.T) {
	rec, repaired := Validate("", nil)
	assert.True(t, repaired)
	assert.Equal(t, "Item - Review Required", rec.Title)
	assert.Equal(t, "other", rec.Category)
	assert.Empty(t, rec.Brand)
}

func TestValidateTruncatesLongTitle(t *testing.T) {
	longTitle := strings.Repeat("Very Long Brand Name ", 10)
	raw := `{"title": "` + longTitle + `", "item_type": "Jeans", "category": "bottoms", "condition": "good"}`

	rec, repaired := Validate(raw, nil)
	assert.False(t, repaired)
	assert.LessOrEqual(t, len([]rune(rec.Title)), listing.MaxTitleLen)
}

func TestValidateClampsConfidence(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want float64
	}{
		"above one":  {raw: `{"title": "T", "item_type": "Jeans", "category": "bottoms", "condition": "good", "confidence": 1.7}`, want: 1},
		"below zero": {raw: `{"title": "T", "item_type": "Jeans", "category": "bottoms", "condition": "good", "confidence": -0.2}`, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec, repaired := Validate(tt.raw, nil)
			require.False(t, repaired)
			assert.Equal(t, tt.want, rec.Confidence)
		})
	}
}

func TestValidateDropsSpecificsInvalidForItemType(t *testing.T) {
	raw := `{
		"title": "Levi's 501 Jeans",
		"item_type": "Jeans",
		"category": "bottoms",
		"condition": "good",
		"item_specifics": {"Rise": "Mid", "Sleeve Length": "Long Sleeve", "Neckline": "Crew"}
	}`

	rec, repaired := Validate(raw, nil)
	require.False(t, repaired)
	assert.Contains(t, rec.ItemSpecifics, "Rise")
	assert.NotContains(t, rec.ItemSpecifics, "Sleeve Length")
	assert.NotContains(t, rec.ItemSpecifics, "Neckline")
}
