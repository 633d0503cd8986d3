// Package prompt composes the instruction payload for the generative model
// from composable blocks: category expertise, quality-adaptive OCR guidance,
// an extraction checklist, the fused-candidate context and a strict output
// schema conditioned on the detected item type.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/internal/evidence"
	"github.com/snapsell/listing-pipeline/internal/listing"
)

// ImageQuality is the coarse quality classification of the submitted photos.
type ImageQuality string

const (
	QualityLow    ImageQuality = "low"
	QualityMedium ImageQuality = "medium"
	QualityHigh   ImageQuality = "high"
)

// Request carries everything the synthesizer needs for one prompt.
type Request struct {
	Fused         evidence.Set
	KnownFields   map[string]string // fields confirmed by a prior pass
	Quality       ImageQuality
	OCRConfidence float64
	OCRText       string
}

const basePrompt = `
	Analyze the attached photos of a secondhand item and extract structured
	listing attributes for a marketplace listing.

	Respond with a single JSON object and nothing else. No markdown fences,
	no commentary.`

const checklistBlock = `
	Extraction checklist:
	- Brand: check the neck label first, then waistband tags, care labels,
	  embossed hardware and printed logos, in that order.
	- Size: check the neck or waistband tag first, then the care label; pants
	  sizes may appear as W/L pairs (e.g. W32 L34).
	- Condition: look for tags still attached (new), creasing, pilling,
	  fading, stains or damage.
	- Set each per-field confidence between 0 and 1. Use 0.9+ only when the
	  value is directly readable in the photos; use below 0.5 for inferred
	  values.`

var expertiseBlocks = map[string]string{
	"electronics": `
		You are an expert electronics reseller. Identify the exact model from
		model numbers, FCC IDs and serial labels. Ports, button layout and
		branding placement distinguish generations; include the model in the
		title.`,
	"apparel": `
		You are an expert apparel reseller. Read clothing tags carefully:
		brand from the neck or waistband label, size from the printed tag,
		fabric content from the care label. Stitching, hardware and wash tell
		real denim from fast fashion.`,
	"footwear": `
		You are an expert footwear reseller. Size and style codes are printed
		inside the tongue or on the heel label. Note colorway and sole wear;
		the style code identifies the exact release.`,
	"collectibles": `
		You are an expert collectibles appraiser. Look for maker's marks,
		edition numbers, dates and signatures. Completeness and original
		packaging drive value; mention them when visible.`,
	"general": `
		You are an experienced secondhand marketplace seller. Identify what
		the item is, its brand and its sellable attributes from the photos.`,
}

// expertiseBlock selects the category-specific expertise instructions.
func expertiseBlock(category string) string {
	switch category {
	case "electronics":
		return expertiseBlocks["electronics"]
	case "tops", "bottoms", "dresses", "outerwear":
		return expertiseBlocks["apparel"]
	case "footwear":
		return expertiseBlocks["footwear"]
	case "collectibles":
		return expertiseBlocks["collectibles"]
	default:
		return expertiseBlocks["general"]
	}
}

// qualityBlock adapts OCR-trust instructions to photo quality and OCR
// confidence: trust the transcript when confidence is high, lean on visual
// inference when it is low.
func qualityBlock(quality ImageQuality, ocrConfidence float64) string {
	switch {
	case quality == QualityHigh && ocrConfidence >= 0.7:
		return `
			The photos are sharp and the OCR transcript below is reliable.
			Prefer text read from tags over visual guesses; quote tag values
			exactly as printed.`
	case quality == QualityLow || ocrConfidence < 0.3:
		return `
			The photos are low quality and the OCR transcript is unreliable.
			Rely on visual identification of the item; treat the transcript
			only as a weak hint and keep confidence low for any field you
			cannot see directly.`
	default:
		return `
			The OCR transcript below is partially reliable. Cross-check
			transcript values against what is visible in the photos before
			using them.`
	}
}

// contextBlock serializes fused candidates and known fields verbatim so the
// model can confirm or correct the deterministic evidence.
func contextBlock(req Request) string {
	var b strings.Builder

	attrs := []evidence.Attribute{
		evidence.AttrCategory, evidence.AttrBrand, evidence.AttrSize,
		evidence.AttrColor, evidence.AttrCondition,
	}
	var lines []string
	for _, attr := range attrs {
		f, ok := req.Fused[attr]
		if !ok || f.Value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %q (confidence %.2f, from %s)",
			attr, f.Value, f.Confidence, f.Source))
	}
	if len(lines) > 0 {
		b.WriteString("Detected candidates from text and label analysis:\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	if len(req.KnownFields) > 0 {
		keys := make([]string, 0, len(req.KnownFields))
		for k := range req.KnownFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Fields already confirmed (keep unless clearly wrong):\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %q\n", k, req.KnownFields[k])
		}
	}

	if ocr := strings.TrimSpace(req.OCRText); ocr != "" {
		fmt.Fprintf(&b, "OCR transcript:\n%s\n", ocr)
	}

	return b.String()
}

// schemaBlock describes the required output object field by field. The
// specifics fields vary by garment class: bottoms get waist/inseam/rise,
// tops and dresses get sleeve length and neckline. Asking for the wrong set
// produces nonsense, so the selection is part of the contract.
func schemaBlock(class listing.GarmentClass) string {
	var b strings.Builder
	b.WriteString("Output JSON schema (all keys lowercase snake_case):\n")
	b.WriteString("- title: string, at most 80 characters, brand and item type first\n")
	b.WriteString("- item_type: string, the specific garment or product type\n")
	fmt.Fprintf(&b, "- category: one of %s\n", enumList(categoryValues()))
	fmt.Fprintf(&b, "- condition: one of %s\n", enumList(conditionValues()))
	b.WriteString(`- brand: string, omit if unknown (never write "Unknown")` + "\n")
	b.WriteString("- size: string as printed on the tag, omit if unknown\n")
	b.WriteString("- color: string, omit if unknown\n")
	b.WriteString("- material: string, omit if unknown\n")
	b.WriteString("- pattern: string, omit if unknown\n")
	b.WriteString("- style: array of style keywords\n")
	b.WriteString("- features: array of notable features\n")
	b.WriteString("- suggested_price: number in USD, omit if you cannot estimate\n")
	b.WriteString("- confidence: number between 0 and 1\n")
	b.WriteString("- item_specifics: object of marketplace fields:\n")

	switch class {
	case listing.GarmentBottom:
		b.WriteString(`  - "Waist Size": waist measurement or tag size` + "\n")
		b.WriteString(`  - "Inseam": inseam length if readable` + "\n")
		b.WriteString(`  - "Rise": one of Low, Mid, High` + "\n")
		b.WriteString(`Do NOT include "Sleeve Length" or "Neckline" for bottoms.`)
	case listing.GarmentTop, listing.GarmentDress:
		b.WriteString(`  - "Sleeve Length": one of Short Sleeve, Long Sleeve, Sleeveless, 3/4 Sleeve` + "\n")
		b.WriteString(`  - "Neckline": e.g. Crew Neck, V-Neck, Collared` + "\n")
		b.WriteString(`Do NOT include "Waist Size", "Inseam" or "Rise" for tops.`)
	default:
		b.WriteString("  - include only fields you can read or confidently infer")
	}
	return b.String()
}

func enumList(values []string) string {
	return strings.Join(values, " | ")
}

func categoryValues() []string {
	out := make([]string, len(listing.Categories))
	for i, c := range listing.Categories {
		out[i] = string(c)
	}
	return out
}

func conditionValues() []string {
	out := make([]string, len(listing.Conditions))
	for i, c := range listing.Conditions {
		out[i] = string(c)
	}
	return out
}

// Build assembles the full prompt from its blocks.
func Build(req Request) string {
	category := req.Fused.Value(evidence.AttrCategory)
	class := classForCategory(category)

	blocks := []string{
		strings.TrimSpace(dedent.Dedent(expertiseBlock(category))),
		strings.TrimSpace(dedent.Dedent(basePrompt)),
		strings.TrimSpace(dedent.Dedent(qualityBlock(req.Quality, req.OCRConfidence))),
		strings.TrimSpace(dedent.Dedent(checklistBlock)),
		strings.TrimSpace(contextBlock(req)),
		strings.TrimSpace(schemaBlock(class)),
	}

	var parts []string
	for _, b := range blocks {
		if b != "" {
			parts = append(parts, b)
		}
	}
	out := strings.Join(parts, "\n\n")

	log.Debug().
		Str("category", category).
		Str("quality", string(req.Quality)).
		Int("promptLen", len(out)).
		Msg("synthesized prompt")

	return out
}

// classForCategory maps a fused category to the garment class driving the
// schema block. Fused categories are coarser than item types, so tops and
// dresses map directly while everything else defaults to no garment fields.
func classForCategory(category string) listing.GarmentClass {
	switch category {
	case "bottoms":
		return listing.GarmentBottom
	case "tops", "outerwear":
		return listing.GarmentTop
	case "dresses":
		return listing.GarmentDress
	case "footwear":
		return listing.GarmentFootwear
	default:
		return listing.GarmentNone
	}
}
