package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/internal/evidence"
	"github.com/snapsell/listing-pipeline/internal/listing"
)

// fallbackConfidence is forced onto deterministically repaired records.
const fallbackConfidence = 0.3

// manualReviewFeature marks repaired records for human attention.
const manualReviewFeature = "requires manual review"

// Validate parses and validates raw model output into a well-formed listing
// record. On any parse or schema failure it returns the deterministic
// fallback built from the fused candidates instead; repaired reports which
// path was taken. It never returns an error: malformed model output is a
// recoverable condition, not a failure.
func Validate(raw string, fused evidence.Set) (rec listing.Record, repaired bool) {
	parsed, err := parseRecord(raw)
	if err != nil {
		log.Warn().Err(err).Msg("model response unparsable, building fallback record")
		return Fallback(fused), true
	}

	if err := checkSchema(parsed); err != nil {
		log.Warn().Err(err).Msg("model response failed validation, building fallback record")
		return Fallback(fused), true
	}

	normalize(parsed)
	return *parsed, false
}

// parseRecord strips formatting fences, attempts a direct parse and falls
// back to the largest embedded object-looking substring.
func parseRecord(raw string) (*listing.Record, error) {
	text := stripFences(raw)

	var rec listing.Record
	if err := json.Unmarshal([]byte(text), &rec); err == nil {
		return &rec, nil
	}

	embedded, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(embedded), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w (response: %s)", err, embedded)
	}
	return &rec, nil
}

// stripFences removes surrounding markdown code fences if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractJSONObject extracts the largest JSON-object-looking substring from
// text that may contain surrounding prose.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response: %s", text)
	}
	return text[start : end+1], nil
}

// checkSchema validates required fields and closed enumerations.
func checkSchema(rec *listing.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("missing required field: title")
	}
	if strings.TrimSpace(rec.ItemType) == "" {
		return fmt.Errorf("missing required field: item_type")
	}
	if !listing.ValidCategory(rec.Category) {
		return fmt.Errorf("category %q is not in the allowed set", rec.Category)
	}
	if !listing.ValidCondition(rec.Condition) {
		return fmt.Errorf("condition %q is not in the allowed set", rec.Condition)
	}
	return nil
}

// normalize enforces value-level invariants on a schema-valid record: the
// title cap, the confidence range, non-negative price and the mutually
// exclusive specifics sets.
func normalize(rec *listing.Record) {
	rec.Title = listing.TruncateTitle(rec.Title)

	if rec.Confidence < 0 {
		rec.Confidence = 0
	} else if rec.Confidence > 1 {
		rec.Confidence = 1
	}
	if rec.SuggestedPrice < 0 {
		rec.SuggestedPrice = 0
	}

	class := listing.ClassifyItemType(rec.ItemType)
	for key := range rec.ItemSpecifics {
		if !listing.AllowedSpecificKey(class, key) {
			log.Debug().Str("key", key).Str("itemType", rec.ItemType).
				Msg("dropping specifics key not valid for item type")
			delete(rec.ItemSpecifics, key)
		}
	}
}

// Fallback deterministically constructs an always-valid record from the
// fused candidates. Known brand, size and condition populate directly;
// everything else stays absent rather than guessed.
func Fallback(fused evidence.Set) listing.Record {
	rec := listing.Record{
		ItemType:   "Item",
		Category:   string(listing.CategoryOther),
		Condition:  string(listing.ConditionGood),
		Brand:      fused.Value(evidence.AttrBrand),
		Size:       fused.Value(evidence.AttrSize),
		Color:      fused.Value(evidence.AttrColor),
		Confidence: fallbackConfidence,
		Features:   []string{manualReviewFeature},
	}

	if cat := fused.Value(evidence.AttrCategory); listing.ValidCategory(cat) {
		rec.Category = cat
	}
	if cond := fused.Value(evidence.AttrCondition); listing.ValidCondition(cond) {
		rec.Condition = cond
	}

	if rec.Brand != "" {
		rec.Title = listing.TruncateTitle(rec.Brand + " Item")
	} else {
		rec.Title = "Item - Review Required"
	}

	return rec
}
