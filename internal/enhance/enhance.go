// Package enhance runs the deterministic second pass over a validated or
// repaired listing record: brand canonicalization, size standardization,
// title assembly, marketplace specifics population and confidence
// aggregation. Every sub-step is independently skippable; a missing input
// skips the enhancement instead of raising an error.
package enhance

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/internal/evidence"
	"github.com/snapsell/listing-pipeline/internal/listing"
)

// Confidence aggregation weights. Fixed equal weighting over the four
// sub-scores.
const confidenceWeight = 0.25

// sizeVocab maps abbreviated size tokens to the controlled vocabulary.
var sizeVocab = map[string]string{
	"xs":   "X-Small",
	"s":    "Small",
	"m":    "Medium",
	"l":    "Large",
	"xl":   "X-Large",
	"xxl":  "2X-Large",
	"2xl":  "2X-Large",
	"xxxl": "3X-Large",
	"3xl":  "3X-Large",
	"os":   "One Size",
	"osfa": "One Size",
}

var (
	waistLengthRe = regexp.MustCompile(`^(\d{2})x(\d{2})$`)
	numericSizeRe = regexp.MustCompile(`^\d{1,2}(\.5)?$`)
	plusSizeRe    = regexp.MustCompile(`^(1[6-9]|[2-9]\d)W?$|^[1-9]X$`)
)

var womenWords = []string{"women", "women's", "womens", "ladies", "female", "her"}
var menWords = []string{"men", "men's", "mens", "male", "his"}

// Result is the enhanced record with its confidence breakdown.
type Result struct {
	Record  listing.Record
	Metrics listing.AccuracyMetrics
}

// Enhance applies every sub-step to rec and computes the accuracy metrics.
// rec is taken by value; the caller's record is never mutated.
func Enhance(rec listing.Record, ocrText string, ocrConfidence float64) Result {
	metrics := listing.AccuracyMetrics{OCRConfidence: ocrConfidence}

	canonicalizeBrand(&rec, ocrText, &metrics)
	standardizeSize(&rec, &metrics)
	populateSpecifics(&rec)
	assembleTitle(&rec, &metrics)

	metrics.Overall = confidenceWeight*metrics.BrandConfidence +
		confidenceWeight*metrics.SizeConfidence +
		confidenceWeight*metrics.TitleQuality +
		confidenceWeight*metrics.OCRConfidence
	rec.Confidence = metrics.Overall

	log.Debug().
		Str("title", rec.Title).
		Float64("confidence", rec.Confidence).
		Msg("enhanced listing record")

	return Result{Record: rec, Metrics: metrics}
}

// canonicalizeBrand maps alias and misspelled brand forms to the canonical
// display form. When no brand is present it tries to mine one from the OCR
// text; if neither yields anything the step is skipped.
func canonicalizeBrand(rec *listing.Record, ocrText string, metrics *listing.AccuracyMetrics) {
	if rec.Brand != "" {
		if canonical := evidence.CanonicalBrand(rec.Brand); canonical != "" {
			rec.Brand = canonical
			metrics.BrandConfidence = 0.9
		} else {
			// Unrecognized but model-supplied brand; keep as-is.
			metrics.BrandConfidence = 0.6
		}
		return
	}

	for _, line := range strings.Split(ocrText, "\n") {
		if canonical := evidence.CanonicalBrand(line); canonical != "" {
			rec.Brand = canonical
			metrics.BrandConfidence = 0.7
			return
		}
		for _, tok := range strings.Fields(line) {
			if canonical := evidence.CanonicalBrand(tok); canonical != "" {
				rec.Brand = canonical
				metrics.BrandConfidence = 0.7
				return
			}
		}
	}
}

// standardizeSize maps abbreviated or free-form size tokens to the
// controlled vocabulary and records marketplace compliance in the size
// confidence sub-score.
func standardizeSize(rec *listing.Record, metrics *listing.AccuracyMetrics) {
	size := strings.TrimSpace(rec.Size)
	if size == "" {
		return
	}

	folded := strings.ToLower(size)
	if standard, ok := sizeVocab[folded]; ok {
		rec.Size = standard
		metrics.SizeConfidence = 0.9
		return
	}
	if waistLengthRe.MatchString(size) || numericSizeRe.MatchString(size) {
		// Already in marketplace-compliant tag notation.
		metrics.SizeConfidence = 0.9
		return
	}

	// Free-form size kept verbatim but flagged lower.
	metrics.SizeConfidence = 0.5
}

// populateSpecifics fills category-conditioned marketplace fields from
// already-known attributes with intelligent defaults. Sleeve/neckline and
// waist/rise sets stay mutually exclusive by garment class.
func populateSpecifics(rec *listing.Record) {
	class := listing.ClassifyItemType(rec.ItemType)
	if rec.ItemSpecifics == nil {
		rec.ItemSpecifics = make(map[string]string)
	}
	specs := rec.ItemSpecifics

	if _, ok := specs["Department"]; !ok {
		if dept := inferDepartment(rec); dept != "" {
			specs["Department"] = dept
		}
	}

	if _, ok := specs["Size Type"]; !ok && rec.Size != "" {
		if plusSizeRe.MatchString(strings.ToUpper(rec.Size)) {
			specs["Size Type"] = "Plus"
		} else {
			specs["Size Type"] = "Regular"
		}
	}

	if rec.Color != "" {
		if _, ok := specs["Color"]; !ok {
			specs["Color"] = titleCase(rec.Color)
		}
	}
	if rec.Material != "" {
		if _, ok := specs["Material"]; !ok {
			specs["Material"] = titleCase(rec.Material)
		}
	}

	switch class {
	case listing.GarmentBottom:
		if m := waistLengthRe.FindStringSubmatch(rec.Size); m != nil {
			if _, ok := specs["Waist Size"]; !ok {
				specs["Waist Size"] = m[1]
			}
			if _, ok := specs["Inseam"]; !ok {
				specs["Inseam"] = m[2]
			}
		}
		if _, ok := specs["Rise"]; !ok {
			specs["Rise"] = "Mid"
		}
	case listing.GarmentTop:
		if _, ok := specs["Sleeve Length"]; !ok {
			if sleeve := inferSleeve(rec.ItemType); sleeve != "" {
				specs["Sleeve Length"] = sleeve
			}
		}
	}

	// Enforce exclusivity even over model-supplied keys.
	for key := range specs {
		if !listing.AllowedSpecificKey(class, key) {
			delete(specs, key)
		}
	}
}

// inferDepartment derives the marketplace department from gender signals in
// the item type, style keywords and title.
func inferDepartment(rec *listing.Record) string {
	haystack := strings.ToLower(rec.ItemType + " " + rec.Title + " " + strings.Join(rec.Style, " "))
	for _, w := range womenWords {
		if containsWord(haystack, w) {
			return "Women"
		}
	}
	for _, w := range menWords {
		if containsWord(haystack, w) {
			return "Men"
		}
	}
	return ""
}

// containsWord matches w as a whole word so "men" does not match "women"
// and "her" does not match "leather". Possessive forms fold to their base.
func containsWord(haystack, w string) bool {
	w = strings.TrimSuffix(w, "'s")
	for _, tok := range strings.FieldsFunc(haystack, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '/'
	}) {
		if strings.TrimSuffix(tok, "'s") == w || tok == w {
			return true
		}
	}
	return false
}

// inferSleeve guesses sleeve length from the item type name alone.
func inferSleeve(itemType string) string {
	t := strings.ToLower(itemType)
	switch {
	case strings.Contains(t, "t-shirt"), strings.Contains(t, "tee"), strings.Contains(t, "polo"):
		return "Short Sleeve"
	case strings.Contains(t, "sweater"), strings.Contains(t, "hoodie"),
		strings.Contains(t, "sweatshirt"), strings.Contains(t, "long sleeve"):
		return "Long Sleeve"
	case strings.Contains(t, "tank"):
		return "Sleeveless"
	default:
		return ""
	}
}

// assembleTitle rebuilds the title from ordered components with the
// substring/superstring deduplication rule and the hard length cap. The
// model's own title is kept when it is already longer and informative.
func assembleTitle(rec *listing.Record, metrics *listing.AccuracyMetrics) {
	components := []string{
		rec.Brand,
		rec.ItemType,
		rec.ItemSpecifics["Department"],
		sizeComponent(rec.Size),
		titleCase(rec.Color),
		titleCase(rec.Material),
	}

	assembled := JoinDeduplicated(components)
	if len([]rune(assembled)) > len([]rune(rec.Title)) {
		rec.Title = assembled
	}
	rec.Title = listing.TruncateTitle(rec.Title)

	metrics.TitleQuality = titleQuality(rec)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// sizeComponent renders the size for title use.
func sizeComponent(size string) string {
	if size == "" {
		return ""
	}
	return "Size " + size
}

// JoinDeduplicated joins components in order, dropping any candidate that is
// already present as a case-insensitive substring of, or contains, a
// previously added term. Prevents redundant phrases like "Gap" followed by
// "Gap Trousers". No kept term is ever a substring of another kept term.
func JoinDeduplicated(components []string) string {
	var kept []string
	for _, c := range components {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		folded := strings.ToLower(c)
		contained := false
		for _, prev := range kept {
			if strings.Contains(strings.ToLower(prev), folded) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}
		// Drop every kept term the new one subsumes before appending, so a
		// late "Gap Blue Jeans" removes both "Gap" and "Blue".
		filtered := kept[:0]
		for _, prev := range kept {
			if !strings.Contains(folded, strings.ToLower(prev)) {
				filtered = append(filtered, prev)
			}
		}
		kept = append(filtered, c)
	}
	return strings.Join(kept, " ")
}

// titleQuality scores the final title: presence of brand and item type and a
// reasonable length each contribute.
func titleQuality(rec *listing.Record) float64 {
	score := 0.0
	titleFolded := strings.ToLower(rec.Title)
	if rec.Brand != "" && strings.Contains(titleFolded, strings.ToLower(rec.Brand)) {
		score += 0.4
	}
	if rec.ItemType != "" && strings.Contains(titleFolded, strings.ToLower(rec.ItemType)) {
		score += 0.3
	}
	if n := len([]rune(rec.Title)); n >= 20 && n <= listing.MaxTitleLen {
		score += 0.3
	} else if n > 0 {
		score += 0.1
	}
	return score
}
